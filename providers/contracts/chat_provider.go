package contracts

import (
	"context"

	"archmap/providers/models"
)

// IChatProvider is the capability interface every chat backend implements.
//
// Complete submits the ordered transcript and returns the assistant's text.
// Implementations do not retry; a failed call surfaces the provider's raw
// status and body so the orchestrator can decide what to do with it.
type IChatProvider interface {
	Complete(ctx context.Context, messages []models.Message, opts *models.CompletionOptions) (string, error)
	Name() string
}
