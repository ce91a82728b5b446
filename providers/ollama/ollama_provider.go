package ollama

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

const defaultBaseURL = "http://localhost:11434/api"

// OllamaConfig implements the chat provider interface for a local Ollama
// server.
type OllamaConfig struct {
	BaseURL         string
	Model           string
	TokenManagement token_contracts.ITokenManagement
	client          *http.Client
}

// NewOllamaChatProvider initializes a new Ollama provider.
func NewOllamaChatProvider(config *OllamaConfig) contracts.IChatProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OllamaConfig{
		BaseURL:         baseURL,
		Model:           config.Model,
		TokenManagement: config.TokenManagement,
		client:          &http.Client{Timeout: 300 * time.Second},
	}
}

func (p *OllamaConfig) Name() string { return "ollama" }

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature *float32 `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done            bool `json:"done"`
	PromptEvalCount int  `json:"prompt_eval_count"`
	EvalCount       int  `json:"eval_count"`
}

// Complete submits the transcript in one non-streaming request. Ollama takes
// the system message inline, so the transcript passes through in order.
func (p *OllamaConfig) Complete(ctx context.Context, messages []models.Message, opts *models.CompletionOptions) (string, error) {
	reqBody := ollamaRequest{
		Model:  p.Model,
		Stream: false,
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, ollamaMessage{Role: string(m.Role), Content: m.Content})
	}
	if opts != nil {
		reqBody.Options = &ollamaOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
			Stop:        opts.StopSequences,
		}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat", p.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
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
		return "", fmt.Errorf("ollama API request failed with status code '%d' - %s", resp.StatusCode, string(body))
	}

	var apiResp ollamaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("error unmarshalling response: %w", err)
	}

	if apiResp.Message.Content == "" {
		return "", fmt.Errorf("ollama API returned an empty completion")
	}

	if p.TokenManagement != nil && apiResp.PromptEvalCount > 0 {
		p.TokenManagement.UsedTokens(apiResp.PromptEvalCount, apiResp.EvalCount)
	}

	return apiResp.Message.Content, nil
}
