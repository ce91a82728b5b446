package gemini

import (
	"context"
	"fmt"

	genai "google.golang.org/genai"

	"archmap/providers/contracts"
	"archmap/providers/models"
	token_contracts "archmap/token_management/contracts"
)

// GeminiConfig implements the chat provider interface over the official
// genai client.
type GeminiConfig struct {
	Model           string
	ApiKey          string
	TokenManagement token_contracts.ITokenManagement
}

type geminiProvider struct {
	cli             *genai.Client
	model           string
	tokenManagement token_contracts.ITokenManagement
}

// NewGeminiChatProvider initializes a new Gemini provider.
func NewGeminiChatProvider(ctx context.Context, config *GeminiConfig) (contracts.IChatProvider, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.ApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}
	return &geminiProvider{
		cli:             cli,
		model:           config.Model,
		tokenManagement: config.TokenManagement,
	}, nil
}

func (p *geminiProvider) Name() string { return "gemini" }

// Complete submits the transcript and returns the model's text. Gemini keeps
// the system prompt in the generation config and names the assistant role
// "model"; both translations stay inside this adapter.
func (p *geminiProvider) Complete(ctx context.Context, messages []models.Message, opts *models.CompletionOptions) (string, error) {
	system, rest := models.SplitSystem(messages)

	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	if opts != nil {
		if opts.MaxTokens > 0 {
			cfg.MaxOutputTokens = int32(opts.MaxTokens)
		}
		cfg.Temperature = opts.Temperature
		cfg.StopSequences = opts.StopSequences
	}

	var contents []*genai.Content
	for _, m := range rest {
		role := genai.RoleUser
		if m.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	resp, err := p.cli.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini API returned an empty completion")
	}

	if p.tokenManagement != nil && resp.UsageMetadata != nil {
		p.tokenManagement.UsedTokens(int(resp.UsageMetadata.PromptTokenCount), int(resp.UsageMetadata.CandidatesTokenCount))
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		text += part.Text
	}
	if text == "" {
		return "", fmt.Errorf("gemini API returned an empty completion")
	}
	return text, nil
}
