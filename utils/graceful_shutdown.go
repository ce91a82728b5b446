package utils

import (
	"context"
	"fmt"

	"archmap/constants/lipgloss"
)

// GracefulShutdown waits for the context to be cancelled (Ctrl+C) and runs
// the provided cleanup functions before the process exits.
func GracefulShutdown(ctx context.Context, cancel context.CancelFunc, cleanup ...func()) {
	<-ctx.Done()

	fmt.Println(lipgloss.Yellow.Render("\n🔄 Shutting down..."))

	for _, fn := range cleanup {
		fn()
	}

	cancel()
}
