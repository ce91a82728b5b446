package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"archmap/constants/lipgloss"
	"archmap/generator"
	"archmap/utils"

	"github.com/spf13/cobra"
)

// modifyCmd: archmap modify
var modifyCmd = &cobra.Command{
	Use:   "modify [diagram-file]",
	Short: "Revise an existing Mermaid diagram with free-text instructions.",
	Long: `The 'modify' subcommand takes a previously generated Mermaid diagram file
and a set of instructions, and asks the AI to revise the diagram. The revised
diagram goes through the same validation and post-processing as a fresh
generation. When no instructions are given on the command line, they are read
interactively.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleModifyCommand(rootDependencies, cmd, args)
	},
}

func init() {
	modifyCmd.Flags().StringP("instructions", "i", "", "Instructions describing how the diagram should change.")
	modifyCmd.Flags().StringP("output", "o", "", "Write the revised diagram to this file (defaults to overwriting the input file).")
	rootCmd.AddCommand(modifyCmd)
}

func handleModifyCommand(rootDependencies *RootDependencies, cmd *cobra.Command, args []string) {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go utils.GracefulShutdown(ctx, cancel, func() {
		rootDependencies.TokenManagement.ClearToken()
	})

	diagramPath := args[0]
	diagramBytes, err := os.ReadFile(diagramPath)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading diagram file '%s': %v", diagramPath, err)))
		os.Exit(1)
	}

	instructions, _ := cmd.Flags().GetString("instructions")
	if instructions == "" {
		fmt.Println(lipgloss.BoxStyle.Render("Describe how the diagram should change"))
		reader := bufio.NewReader(os.Stdin)
		instructions, err = utils.InputPromptWithContext(ctx, reader)
		if err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			os.Exit(1)
		}
	}
	if instructions == "" {
		fmt.Println(lipgloss.Yellow.Render("No instructions given, nothing to do."))
		return
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = diagramPath
	}

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

	result, err := gen.Modify(ctx, generator.ModifyRequest{
		Diagram:           string(diagramBytes),
		Instructions:      instructions,
		RepoURL:           repoURL,
		Branch:            branch,
		CompletionOptions: completionOptions(rootDependencies),
	})

	spinner.stop()

	if err != nil {
		if ctx.Err() == context.Canceled {
			fmt.Println(lipgloss.Yellow.Render("\n🔄 Modification cancelled."))
			return
		}
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	if err := renderMermaid(ctx, rootDependencies, result.MermaidCode); err != nil {
		return
	}
	displayValidation(result)

	if err := os.WriteFile(outputPath, []byte(result.MermaidCode+"\n"), 0644); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error writing diagram to '%s': %v", outputPath, err)))
		os.Exit(1)
	}
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✔️ Revised diagram written to %s", outputPath)))

	rootDependencies.TokenManagement.DisplayTokens(
		rootDependencies.Config.AIProviderConfig.Provider,
		rootDependencies.Config.AIProviderConfig.Model,
	)
}
