package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"archmap/providers/contracts"
	"archmap/providers/models"
	token_contracts "archmap/token_management/contracts"
)

const (
	defaultBaseURL   = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
	defaultMaxTokens = 4096
)

// AnthropicConfig implements the chat provider interface for the Anthropic
// messages API.
type AnthropicConfig struct {
	BaseURL         string
	Model           string
	ApiKey          string
	TokenManagement token_contracts.ITokenManagement
	client          *http.Client
}

// NewAnthropicChatProvider initializes a new Anthropic provider.
func NewAnthropicChatProvider(config *AnthropicConfig) contracts.IChatProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &AnthropicConfig{
		BaseURL:         baseURL,
		Model:           config.Model,
		ApiKey:          config.ApiKey,
		TokenManagement: config.TokenManagement,
		client:          &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *AnthropicConfig) Name() string { return "anthropic" }

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model         string             `json:"model"`
	MaxTokens     int                `json:"max_tokens"`
	System        string             `json:"system,omitempty"`
	Messages      []anthropicMessage `json:"messages"`
	Temperature   *float32           `json:"temperature,omitempty"`
	StopSequences []string           `json:"stop_sequences,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// Complete submits the transcript and returns the assistant's text. The
// Anthropic API carries the system prompt out-of-band, so a leading system
// message is lifted into the request's System field.
func (p *AnthropicConfig) Complete(ctx context.Context, messages []models.Message, opts *models.CompletionOptions) (string, error) {
	system, rest := models.SplitSystem(messages)

	reqBody := anthropicRequest{
		Model:     p.Model,
		MaxTokens: defaultMaxTokens,
		System:    system,
	}
	for _, m := range rest {
		reqBody.Messages = append(reqBody.Messages, anthropicMessage{Role: string(m.Role), Content: m.Content})
	}
	if opts != nil {
		if opts.MaxTokens > 0 {
			reqBody.MaxTokens = opts.MaxTokens
		}
		reqBody.Temperature = opts.Temperature
		reqBody.StopSequences = opts.StopSequences
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/messages", p.BaseURL), bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("x-api-key", p.ApiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic API request failed with status code '%d' - %s", resp.StatusCode, string(body))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %w", err)
	}

	var sb strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("anthropic API returned an empty completion")
	}

	if p.TokenManagement != nil && apiResp.Usage.InputTokens > 0 {
		p.TokenManagement.UsedTokens(apiResp.Usage.InputTokens, apiResp.Usage.OutputTokens)
	}

	return sb.String(), nil
}
