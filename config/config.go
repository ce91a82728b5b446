package config

import (
	"fmt"
	"os"

	"archmap/constants/lipgloss"
	"archmap/providers"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file
type Config struct {
	Version          string                      `mapstructure:"version"`
	Theme            string                      `mapstructure:"theme"`
	EnableCache      bool                        `mapstructure:"enable_cache"`
	MaxDepth         int                         `mapstructure:"max_depth"`
	MaxFiles         int                         `mapstructure:"max_files"`
	IncludeSizes     bool                        `mapstructure:"include_sizes"`
	ExcludePatterns  []string                    `mapstructure:"exclude_patterns"`
	RepoURL          string                      `mapstructure:"repo_url"`
	Branch           string                      `mapstructure:"branch"`
	AIProviderConfig *providers.AIProviderConfig `mapstructure:"ai_provider_config"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:      "1.0.0",
	Theme:        "dracula",
	EnableCache:  true,
	MaxDepth:     10,
	MaxFiles:     1000,
	IncludeSizes: true,
	AIProviderConfig: &providers.AIProviderConfig{
		Provider:    "openai",
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o",
		MaxTokens:   4096,
		Temperature: nil,
		ApiKey:      "",
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		// Use the config file from the flag
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("archmap-config")
		viper.AddConfigPath(cwd)

		// Support both JSON and YAML formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			_ = viper.ReadInConfig()
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("enable_cache", DefaultConfig.EnableCache)
	viper.SetDefault("max_depth", DefaultConfig.MaxDepth)
	viper.SetDefault("max_files", DefaultConfig.MaxFiles)
	viper.SetDefault("include_sizes", DefaultConfig.IncludeSizes)
	viper.SetDefault("exclude_patterns", DefaultConfig.ExcludePatterns)
	viper.SetDefault("repo_url", DefaultConfig.RepoURL)
	viper.SetDefault("branch", DefaultConfig.Branch)
	viper.SetDefault("ai_provider_config.provider", DefaultConfig.AIProviderConfig.Provider)
	viper.SetDefault("ai_provider_config.base_url", DefaultConfig.AIProviderConfig.BaseURL)
	viper.SetDefault("ai_provider_config.model", DefaultConfig.AIProviderConfig.Model)
	viper.SetDefault("ai_provider_config.max_tokens", DefaultConfig.AIProviderConfig.MaxTokens)
	viper.SetDefault("ai_provider_config.temperature", DefaultConfig.AIProviderConfig.Temperature)
	viper.SetDefault("ai_provider_config.api_key", DefaultConfig.AIProviderConfig.ApiKey)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "THEME")
	_ = viper.BindEnv("enable_cache", "ENABLE_CACHE")
	_ = viper.BindEnv("max_depth", "MAX_DEPTH")
	_ = viper.BindEnv("max_files", "MAX_FILES")
	_ = viper.BindEnv("repo_url", "REPO_URL")
	_ = viper.BindEnv("branch", "BRANCH")
	_ = viper.BindEnv("ai_provider_config.provider", "PROVIDER")
	_ = viper.BindEnv("ai_provider_config.base_url", "BASE_URL")
	_ = viper.BindEnv("ai_provider_config.model", "MODEL")
	_ = viper.BindEnv("ai_provider_config.max_tokens", "MAX_TOKENS")
	_ = viper.BindEnv("ai_provider_config.temperature", "TEMPERATURE")
	_ = viper.BindEnv("ai_provider_config.api_key", "API_KEY")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("enable_cache", rootCmd.PersistentFlags().Lookup("enable_cache"))
	_ = viper.BindPFlag("max_depth", rootCmd.PersistentFlags().Lookup("max_depth"))
	_ = viper.BindPFlag("max_files", rootCmd.PersistentFlags().Lookup("max_files"))
	_ = viper.BindPFlag("include_sizes", rootCmd.PersistentFlags().Lookup("include_sizes"))
	_ = viper.BindPFlag("exclude_patterns", rootCmd.PersistentFlags().Lookup("exclude"))
	_ = viper.BindPFlag("repo_url", rootCmd.PersistentFlags().Lookup("repo_url"))
	_ = viper.BindPFlag("branch", rootCmd.PersistentFlags().Lookup("branch"))
	_ = viper.BindPFlag("ai_provider_config.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("ai_provider_config.base_url", rootCmd.PersistentFlags().Lookup("base_url"))
	_ = viper.BindPFlag("ai_provider_config.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("ai_provider_config.max_tokens", rootCmd.PersistentFlags().Lookup("max_tokens"))
	_ = viper.BindPFlag("ai_provider_config.temperature", rootCmd.PersistentFlags().Lookup("temperature"))
	_ = viper.BindPFlag("ai_provider_config.api_key", rootCmd.PersistentFlags().Lookup("api_key"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	// Output configuration
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set customize theme for rendering output. (e.g., 'dracula', 'light', 'dark')")
	rootCmd.PersistentFlags().Bool("enable_cache", DefaultConfig.EnableCache, "Enable or disable caching of AI responses for repeated runs")

	// Project traversal configuration
	rootCmd.PersistentFlags().Int("max_depth", DefaultConfig.MaxDepth, "Maximum directory depth included in the project file tree.")
	rootCmd.PersistentFlags().Int("max_files", DefaultConfig.MaxFiles, "Maximum number of files included in the project file tree.")
	rootCmd.PersistentFlags().Bool("include_sizes", DefaultConfig.IncludeSizes, "Include file sizes in the project file tree.")
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "Additional exclude patterns for the file tree (e.g., 'testdata', '*.min.js').")

	// Repository link configuration
	rootCmd.PersistentFlags().String("repo_url", DefaultConfig.RepoURL, "Repository browse URL used for diagram click links (auto-detected from git when empty).")
	rootCmd.PersistentFlags().String("branch", DefaultConfig.Branch, "Branch name for diagram click links (auto-detected from git when empty).")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")

	// AI Provider configuration
	rootCmd.PersistentFlags().String("provider", DefaultConfig.AIProviderConfig.Provider, "The name of the AI provider (e.g., 'openai', 'anthropic', 'gemini', 'ollama')")
	rootCmd.PersistentFlags().String("base_url", DefaultConfig.AIProviderConfig.BaseURL, "The base URL of AI Provider (e.g., default is 'https://api.openai.com/v1').")
	rootCmd.PersistentFlags().String("model", DefaultConfig.AIProviderConfig.Model, "The name of the model used for chat completions, such as 'gpt-4o'.")
	rootCmd.PersistentFlags().Int("max_tokens", DefaultConfig.AIProviderConfig.MaxTokens, "Maximum number of tokens the model may generate per stage.")
	rootCmd.PersistentFlags().Float32("temperature", 0, "Adjusts the AI model's creativity (0-1).")
	rootCmd.PersistentFlags().String("api_key", DefaultConfig.AIProviderConfig.ApiKey, "The API key used to authenticate with the AI service provider.")
}
