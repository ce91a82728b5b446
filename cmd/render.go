package cmd

import (
	"context"
	"fmt"

	"archmap/constants/lipgloss"
	"archmap/utils"
)

// renderMarkdown highlights markdown content with the configured theme.
func renderMarkdown(ctx context.Context, rootDependencies *RootDependencies, content string) error {
	err := utils.RenderMarkdownWithContext(ctx, content, rootDependencies.Config.Theme)
	if err != nil && err != context.Canceled {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error rendering output: %v", err)))
	}
	return err
}

// renderMermaid highlights diagram code as a fenced block.
func renderMermaid(ctx context.Context, rootDependencies *RootDependencies, diagram string) error {
	err := utils.RenderMermaidWithContext(ctx, diagram, rootDependencies.Config.Theme)
	if err != nil && err != context.Canceled {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error rendering output: %v", err)))
	}
	return err
}
