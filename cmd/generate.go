package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"archmap/constants/lipgloss"
	"archmap/generator"
	context_models "archmap/project_context/models"
	"archmap/providers/models"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// generateCmd: archmap generate
var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate an architecture diagram for a project directory.",
	Long: `The 'generate' subcommand walks the project directory, builds a bounded
file tree, and runs the staged AI pipeline to produce a Mermaid architecture
diagram. The diagram is validated, colorized, and linked back to the
repository before being printed or written to a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleGenerateCommand(rootDependencies, cmd, args)
	},
}

func init() {
	generateCmd.Flags().StringP("output", "o", "", "Write the Mermaid diagram to this file instead of only printing it.")
	generateCmd.Flags().StringP("instructions", "i", "", "Additional instructions passed to the AI (e.g., 'focus on the data layer').")
	rootCmd.AddCommand(generateCmd)
}

// stageMessages maps pipeline stages to spinner text.
var stageMessages = map[generator.Stage]string{
	generator.StageContextGathering: "Gathering project context...",
	generator.StageExplanation:      "Explaining the architecture...",
	generator.StageComponentMapping: "Mapping components to files...",
	generator.StageDiagramCode:      "Generating diagram code...",
	generator.StageModifyPrompt:     "Revising the diagram...",
	generator.StagePostProcessing:   "Post-processing the diagram...",
}

// stageSpinner drives one pterm spinner per pipeline stage.
type stageSpinner struct {
	current *pterm.SpinnerPrinter
}

func (s *stageSpinner) onProgress(stage generator.Stage, message string) {
	if s.current != nil {
		_ = s.current.Stop()
		s.current = nil
	}
	if stage == generator.StageDone {
		return
	}

	text, ok := stageMessages[stage]
	if !ok {
		text = message
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)
	s.current, _ = spinner.Start(text)
}

func (s *stageSpinner) stop() {
	if s.current != nil {
		_ = s.current.Stop()
		s.current = nil
	}
}

func handleGenerateCommand(rootDependencies *RootDependencies, cmd *cobra.Command, args []string) {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootPath := rootDependencies.Cwd
	if len(args) > 0 {
		rootPath = args[0]
	}

	outputPath, _ := cmd.Flags().GetString("output")
	instructions, _ := cmd.Flags().GetString("instructions")

	spinner := &stageSpinner{}
	defer spinner.stop()

	gen := generator.NewDiagramGenerator(
		rootDependencies.CurrentChatProvider,
		rootDependencies.ContextBuilder,
		rootDependencies.Cache,
		rootDependencies.Logger,
		spinner.onProgress,
	)

	repoURL, branch := resolveRepoLink(rootDependencies)

	contextOptions := context_models.DefaultOptions()
	contextOptions.MaxDepth = rootDependencies.Config.MaxDepth
	contextOptions.MaxFiles = rootDependencies.Config.MaxFiles
	contextOptions.IncludeSizes = rootDependencies.Config.IncludeSizes
	contextOptions.ExcludePatterns = append(contextOptions.ExcludePatterns, rootDependencies.Config.ExcludePatterns...)

	result, err := gen.Generate(ctx, generator.GenerateRequest{
		RootPath:          rootPath,
		ContextOptions:    contextOptions,
		Instructions:      instructions,
		RepoURL:           repoURL,
		Branch:            branch,
		CompletionOptions: completionOptions(rootDependencies),
	})

	spinner.stop()

	if err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Println(lipgloss.Yellow.Render("\n🔄 Generation cancelled."))
			return
		}
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	displayResult(ctx, rootDependencies, result)

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result.MermaidCode+"\n"), 0644); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error writing diagram to '%s': %v", outputPath, err)))
			os.Exit(1)
		}
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✔️ Diagram written to %s", outputPath)))
	}
}

// completionOptions builds the per-call completion options from config.
func completionOptions(rootDependencies *RootDependencies) *models.CompletionOptions {
	return &models.CompletionOptions{
		MaxTokens:   rootDependencies.Config.AIProviderConfig.MaxTokens,
		Temperature: rootDependencies.Config.AIProviderConfig.Temperature,
	}
}

// displayResult renders the explanation, the diagram, and any validation
// findings to the terminal.
func displayResult(ctx context.Context, rootDependencies *RootDependencies, result *generator.DiagramResult) {

	if result.Explanation != "" {
		if err := renderMarkdown(ctx, rootDependencies, result.Explanation); err != nil {
			return
		}
		fmt.Println()
	}

	if err := renderMermaid(ctx, rootDependencies, result.MermaidCode); err != nil {
		return
	}

	displayValidation(result)
	displayComponentMapping(result)

	rootDependencies.TokenManagement.DisplayTokens(
		rootDependencies.Config.AIProviderConfig.Provider,
		rootDependencies.Config.AIProviderConfig.Model,
	)
}

func displayValidation(result *generator.DiagramResult) {
	for _, warning := range result.Validation.Warnings {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("⚠️  %s", warning)))
	}
	for _, validationErr := range result.Validation.Errors {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("❌ %s", validationErr)))
	}
	if !result.Validation.Valid {
		fmt.Println(lipgloss.Yellow.Render("The diagram has validation errors and may not render correctly."))
	}
}

func displayComponentMapping(result *generator.DiagramResult) {
	if len(result.ComponentMapping) == 0 {
		return
	}

	var builder strings.Builder
	builder.WriteString("Component mapping:\n")
	for component, path := range result.ComponentMapping {
		builder.WriteString(fmt.Sprintf("  %s: %s\n", component, path))
	}
	fmt.Println(lipgloss.BoxStyle.Render(strings.TrimRight(builder.String(), "\n")))
}
