// Package generator sequences context gathering, the three prompt stages,
// and diagram post-processing into one linear pipeline.
package generator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"archmap/diagram"
	context_contracts "archmap/project_context/contracts"
	context_models "archmap/project_context/models"
	"archmap/prompts"
	"archmap/providers/contracts"
	"archmap/providers/models"
)

// Stage identifies one pipeline transition for progress reporting.
type Stage string

const (
	StageContextGathering Stage = "context-gathering"
	StageExplanation      Stage = "explanation"
	StageComponentMapping Stage = "component-mapping"
	StageDiagramCode      Stage = "diagram-code"
	StageModifyPrompt     Stage = "modify-prompt"
	StagePostProcessing   Stage = "post-processing"
	StageDone             Stage = "done"
)

// ProgressFunc receives a callback at each pipeline transition.
type ProgressFunc func(stage Stage, message string)

// GenerateRequest carries everything one generation run needs. Each request
// owns its own context snapshot and message history; independent requests
// share no mutable state.
type GenerateRequest struct {
	RootPath       string
	ContextOptions context_models.Options
	// Instructions is free text appended verbatim to the stage-1 system
	// prompt.
	Instructions      string
	RepoURL           string
	Branch            string
	CompletionOptions *models.CompletionOptions
}

// DiagramGenerator drives the full pipeline: context-gathering ->
// explanation -> component mapping -> diagram code -> post-processing.
type DiagramGenerator struct {
	provider       contracts.IChatProvider
	contextBuilder context_contracts.IContextBuilder
	cache          *ResponseCache
	logger         *zap.Logger
	onProgress     ProgressFunc
}

// NewDiagramGenerator initializes a generator. Cache and progress callback
// are optional; a nil logger is replaced with a no-op logger.
func NewDiagramGenerator(provider contracts.IChatProvider, contextBuilder context_contracts.IContextBuilder, cache *ResponseCache, logger *zap.Logger, onProgress ProgressFunc) *DiagramGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiagramGenerator{
		provider:       provider,
		contextBuilder: contextBuilder,
		cache:          cache,
		logger:         logger,
		onProgress:     onProgress,
	}
}

func (g *DiagramGenerator) progress(stage Stage, message string) {
	if g.onProgress != nil {
		g.onProgress(stage, message)
	}
}

// Generate runs the pipeline to completion. Any stage failure aborts the
// remaining stages and surfaces the originating error; no partial result is
// returned.
func (g *DiagramGenerator) Generate(ctx context.Context, req GenerateRequest) (*DiagramResult, error) {
	g.progress(StageContextGathering, "Collecting project structure")
	projectContext, err := g.contextBuilder.BuildContext(req.RootPath, req.ContextOptions)
	if err != nil {
		return nil, fmt.Errorf("context gathering failed: %w", err)
	}

	g.progress(StageExplanation, "Generating architecture explanation")
	explanation, err := g.complete(ctx, prompts.ExplanationMessages(projectContext, req.Instructions), req.CompletionOptions)
	if err != nil {
		return nil, fmt.Errorf("explanation stage failed: %w", err)
	}

	g.progress(StageComponentMapping, "Mapping components to paths")
	mappingText, err := g.complete(ctx, prompts.ComponentMappingMessages(explanation, projectContext.FileTree), req.CompletionOptions)
	if err != nil {
		return nil, fmt.Errorf("component mapping stage failed: %w", err)
	}

	g.progress(StageDiagramCode, "Generating diagram code")
	rawDiagram, err := g.complete(ctx, prompts.DiagramMessages(explanation, mappingText), req.CompletionOptions)
	if err != nil {
		return nil, fmt.Errorf("diagram code stage failed: %w", err)
	}

	g.progress(StagePostProcessing, "Validating and formatting diagram")
	result := g.postProcess(rawDiagram, explanation, mappingText, req.RepoURL, req.Branch)

	g.progress(StageDone, "Diagram ready")
	return result, nil
}

// complete runs one LLM round-trip through the session response cache.
func (g *DiagramGenerator) complete(ctx context.Context, messages []models.Message, opts *models.CompletionOptions) (string, error) {
	if cached, ok := g.cache.Get(g.provider.Name(), messages); ok {
		g.logger.Debug("response cache hit", zap.String("provider", g.provider.Name()))
		return cached, nil
	}

	response, err := g.provider.Complete(ctx, messages, opts)
	if err != nil {
		return "", err
	}

	g.cache.Set(g.provider.Name(), messages, response)
	return response, nil
}

// postProcess applies the deterministic rewrites to raw diagram output:
// fence stripping, color styling, click-event normalization, GitHub link
// rewriting, indentation, and validation. Validation is attached to the
// result as data; deciding whether warnings or errors block is the caller's
// call.
func (g *DiagramGenerator) postProcess(rawDiagram, explanation, mappingText, repoURL, branch string) *DiagramResult {
	code := prompts.StripCodeFence(rawDiagram)
	code = diagram.EnsureColorStyles(code)

	nodeSet := diagram.DeclaredNodeIDs(code)

	// Dangling click events reference nodes the diagram never declares;
	// they are dropped rather than silently carried into the artifact.
	events := diagram.ExtractClickEvents(code)
	kept := events[:0]
	for _, e := range events {
		if _, ok := nodeSet[e.NodeID]; ok {
			kept = append(kept, e)
		} else {
			g.logger.Warn("dropping click event for undeclared node",
				zap.String("node", e.NodeID),
				zap.String("path", e.Path))
		}
	}
	code = diagram.UpdateClickEvents(code, kept)

	if repoURL != "" {
		if branch == "" {
			branch = "main"
		}
		code = diagram.PathsToGitHubURLs(code, repoURL, branch)
	}

	code = diagram.FormatMermaidCode(code)

	mapping := ParseComponentMapping(mappingText)
	for name := range mapping {
		if _, ok := nodeSet[name]; !ok {
			delete(mapping, name)
		}
	}

	return &DiagramResult{
		MermaidCode:      code,
		Explanation:      explanation,
		ComponentMapping: mapping,
		MappingText:      mappingText,
		Validation:       diagram.ValidateMermaidSyntax(code),
	}
}
