package cmd

import (
	"context"
	"fmt"
	"os"

	"archmap/config"
	"archmap/constants/lipgloss"
	"archmap/generator"
	"archmap/project_context"
	context_contracts "archmap/project_context/contracts"
	"archmap/providers"
	contracts_provider "archmap/providers/contracts"
	"archmap/token_management"
	token_contracts "archmap/token_management/contracts"
	"archmap/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootDependencies holds the wiring shared by all subcommands.
type RootDependencies struct {
	Config              *config.Config
	Cwd                 string
	Logger              *zap.Logger
	TokenManagement     token_contracts.ITokenManagement
	CurrentChatProvider contracts_provider.IChatProvider
	ContextBuilder      context_contracts.IContextBuilder
	Cache               *generator.ResponseCache
	GitOperations       *utils.GitOperations
}

var verbose bool

// rootCmd: archmap
var rootCmd = &cobra.Command{
	Use:   "archmap",
	Short: "Generate architecture diagrams for a codebase with AI assistance.",
	Long: `Archmap walks a project directory, summarizes its structure, and drives an
AI provider through a staged pipeline to produce a validated Mermaid
architecture diagram with clickable links into the repository.`,
	Run: func(cmd *cobra.Command, args []string) {
		version, _ := cmd.Flags().GetBool("version")
		if version {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging.")
	config.InitFlags(rootCmd)
}

// newLogger builds the process logger. Debug level when --verbose is set.
func newLogger() *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}

// handleRootCommand loads configuration and wires the shared dependencies.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {

	rootDependencies := &RootDependencies{}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render("Error getting current directory"))
		os.Exit(1)
	}
	rootDependencies.Cwd = cwd

	rootDependencies.Config = config.LoadConfigs(cmd.Root(), cwd)
	rootDependencies.Logger = newLogger()
	rootDependencies.TokenManagement = token_management.NewTokenManager()
	rootDependencies.ContextBuilder = project_context.NewContextBuilder(rootDependencies.Logger)
	rootDependencies.GitOperations = utils.NewGitOperations(cwd)

	if rootDependencies.Config.EnableCache {
		cache, err := generator.NewResponseCache(64)
		if err == nil {
			rootDependencies.Cache = cache
		}
	}

	provider, err := providers.BuildChatProvider(context.Background(), rootDependencies.Config.AIProviderConfig, rootDependencies.TokenManagement)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
	if provider == nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("🚫 No API key configured for provider '%s'. Set the --api_key flag or the provider's environment variable.", rootDependencies.Config.AIProviderConfig.Provider)))
		os.Exit(1)
	}
	rootDependencies.CurrentChatProvider = provider

	return rootDependencies
}

// resolveRepoLink picks the repo URL and branch for click links: explicit
// config wins, otherwise git auto-detection, otherwise links are skipped.
func resolveRepoLink(rootDependencies *RootDependencies) (string, string) {
	repoURL := rootDependencies.Config.RepoURL
	branch := rootDependencies.Config.Branch

	if repoURL == "" {
		detectedURL, detectedBranch, ok := rootDependencies.GitOperations.DetectRepoLink()
		if ok {
			repoURL = detectedURL
			if branch == "" {
				branch = detectedBranch
			}
		}
	}
	if repoURL != "" && branch == "" {
		branch = "main"
	}
	return repoURL, branch
}
