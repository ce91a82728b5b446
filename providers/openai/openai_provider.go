package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"archmap/providers/contracts"
	"archmap/providers/models"
	token_contracts "archmap/token_management/contracts"
)

const defaultBaseURL = "https://api.openai.com/v1"

// OpenAIConfig implements the chat provider interface for the OpenAI chat
// completions API and compatible endpoints.
type OpenAIConfig struct {
	BaseURL         string
	Model           string
	ApiKey          string
	TokenManagement token_contracts.ITokenManagement
	client          *http.Client
}

// NewOpenAIChatProvider initializes a new OpenAI provider.
func NewOpenAIChatProvider(config *OpenAIConfig) contracts.IChatProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIConfig{
		BaseURL:         baseURL,
		Model:           config.Model,
		ApiKey:          config.ApiKey,
		TokenManagement: config.TokenManagement,
		client:          &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *OpenAIConfig) Name() string { return "openai" }

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature *float32        `json:"temperature,omitempty"`
	Stop        []string        `json:"stop,omitempty"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Complete submits the transcript and returns the assistant's text. OpenAI
// accepts the system message inline, so the transcript is passed through in
// order.
func (p *OpenAIConfig) Complete(ctx context.Context, messages []models.Message, opts *models.CompletionOptions) (string, error) {
	reqBody := openaiRequest{Model: p.Model}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, openaiMessage{Role: string(m.Role), Content: m.Content})
	}
	if opts != nil {
		reqBody.MaxTokens = opts.MaxTokens
		reqBody.Temperature = opts.Temperature
		reqBody.Stop = opts.StopSequences
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", p.BaseURL), bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.ApiKey)
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
		return "", fmt.Errorf("openai API request failed with status code '%d' - %s", resp.StatusCode, string(body))
	}

	var apiResp openaiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %w", err)
	}

	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai API returned an empty completion")
	}

	if p.TokenManagement != nil && apiResp.Usage.PromptTokens > 0 {
		p.TokenManagement.UsedTokens(apiResp.Usage.PromptTokens, apiResp.Usage.CompletionTokens)
	}

	return apiResp.Choices[0].Message.Content, nil
}
