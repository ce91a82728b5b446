package generator

import (
	"context"
	"fmt"

	"archmap/prompts"
	"archmap/providers/models"
)

// ModifyRequest revises a previously generated diagram with free-text
// instructions. It does not depend on the three generation stages.
type ModifyRequest struct {
	Diagram           string
	Explanation       string
	Instructions      string
	RepoURL           string
	Branch            string
	CompletionOptions *models.CompletionOptions
}

// Modify runs the single-stage variant: modify-prompt -> LLM call ->
// post-processing.
func (g *DiagramGenerator) Modify(ctx context.Context, req ModifyRequest) (*DiagramResult, error) {
	g.progress(StageModifyPrompt, "Revising diagram")
	revised, err := g.complete(ctx, prompts.ModifyMessages(req.Diagram, req.Explanation, req.Instructions), req.CompletionOptions)
	if err != nil {
		return nil, fmt.Errorf("modify stage failed: %w", err)
	}

	g.progress(StagePostProcessing, "Validating and formatting diagram")
	result := g.postProcess(revised, req.Explanation, "", req.RepoURL, req.Branch)

	g.progress(StageDone, "Diagram ready")
	return result, nil
}
