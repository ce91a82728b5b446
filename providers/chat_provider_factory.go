package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"archmap/providers/anthropic"
	"archmap/providers/contracts"
	"archmap/providers/gemini"
	"archmap/providers/ollama"
	"archmap/providers/openai"
	token_contracts "archmap/token_management/contracts"
)

// AIProviderConfig holds the provider selection and credentials for one
// generation session.
type AIProviderConfig struct {
	Provider    string   `mapstructure:"provider"`
	BaseURL     string   `mapstructure:"base_url"`
	Model       string   `mapstructure:"model"`
	ApiKey      string   `mapstructure:"api_key"`
	MaxTokens   int      `mapstructure:"max_tokens"`
	Temperature *float32 `mapstructure:"temperature"`
}

// apiKeyEnvVars maps each provider to the environment variable its
// credentials conventionally live in.
var apiKeyEnvVars = map[string]string{
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// ResolveAPIKey returns the API key for the named provider: the explicit key
// when set, otherwise the provider's environment variable. An empty result
// means no credentials are configured; the caller decides whether that is
// fatal. Ollama needs no key.
func ResolveAPIKey(providerName string, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if envVar, ok := apiKeyEnvVars[strings.ToLower(providerName)]; ok {
		return os.Getenv(envVar)
	}
	return ""
}

// BuildChatProvider constructs the configured chat provider. It returns nil
// without an error when the provider requires an API key and none could be
// resolved, so the caller can choose to fail fast or prompt for
// configuration.
func BuildChatProvider(ctx context.Context, cfg *AIProviderConfig, tokenManagement token_contracts.ITokenManagement) (contracts.IChatProvider, error) {
	name := strings.ToLower(cfg.Provider)
	apiKey := ResolveAPIKey(name, cfg.ApiKey)

	switch name {
	case "anthropic":
		if apiKey == "" {
			return nil, nil
		}
		return anthropic.NewAnthropicChatProvider(&anthropic.AnthropicConfig{
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			ApiKey:          apiKey,
			TokenManagement: tokenManagement,
		}), nil
	case "openai":
		if apiKey == "" {
			return nil, nil
		}
		return openai.NewOpenAIChatProvider(&openai.OpenAIConfig{
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			ApiKey:          apiKey,
			TokenManagement: tokenManagement,
		}), nil
	case "gemini":
		if apiKey == "" {
			return nil, nil
		}
		return gemini.NewGeminiChatProvider(ctx, &gemini.GeminiConfig{
			Model:           cfg.Model,
			ApiKey:          apiKey,
			TokenManagement: tokenManagement,
		})
	case "ollama":
		return ollama.NewOllamaChatProvider(&ollama.OllamaConfig{
			BaseURL:         cfg.BaseURL,
			Model:           cfg.Model,
			TokenManagement: tokenManagement,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
