package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderMarkdownWithContext highlights markdown content to the terminal,
// checking for cancellation between lines so long diagrams can be
// interrupted cleanly.
func RenderMarkdownWithContext(ctx context.Context, content string, theme string) error {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		select {
		case <-ctx.Done():
			fmt.Printf("\n\n🔄 Output interrupted...\n")
			return ctx.Err()
		default:
		}

		var buf bytes.Buffer
		if err := quick.Highlight(&buf, line+"\n", "markdown", "terminal256", theme); err != nil {
			return err
		}
		fmt.Print(buf.String())

		if i%5 == 0 {
			select {
			case <-ctx.Done():
				fmt.Printf("\n\n🔄 Output interrupted...\n")
				return ctx.Err()
			default:
			}
		}
	}

	return nil
}

// RenderMermaidWithContext highlights mermaid diagram code as a fenced
// block so it stands out from the explanation text.
func RenderMermaidWithContext(ctx context.Context, diagram string, theme string) error {
	fenced := "```mermaid\n" + strings.TrimRight(diagram, "\n") + "\n```\n"
	return RenderMarkdownWithContext(ctx, fenced, theme)
}
