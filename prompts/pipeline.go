// Package prompts builds the message sequences for the three generation
// stages and the standalone modify stage. Every constructor is a pure
// template-filling function: no network, no filesystem, no side effects.
package prompts

import (
	_ "embed"
	"fmt"
	"strings"

	context_models "archmap/project_context/models"
	"archmap/providers/models"
)

//go:embed templates/explanation.tmpl
var explanationPrompt string

//go:embed templates/component_mapping.tmpl
var componentMappingPrompt string

//go:embed templates/diagram.tmpl
var diagramPrompt string

//go:embed templates/modify.tmpl
var modifyPrompt string

// ExplanationMessages builds the stage-1 transcript: explain the
// architecture given the file tree and README. Free-text additional
// instructions, when present, are appended verbatim to the system prompt.
func ExplanationMessages(ctx *context_models.ProjectContext, instructions string) []models.Message {
	system := strings.TrimSpace(explanationPrompt)
	if instructions != "" {
		system = system + "\n\n## Additional instructions\n\n" + instructions
	}

	var user strings.Builder
	user.WriteString("## Project file tree\n\n```\n")
	user.WriteString(ctx.FileTree)
	user.WriteString("```\n")
	if ctx.Readme != "" {
		user.WriteString("\n## Project README\n\n")
		user.WriteString(ctx.Readme)
		user.WriteString("\n")
	}

	return []models.Message{
		models.SystemMessage(system),
		models.UserMessage(user.String()),
	}
}

// ComponentMappingMessages builds the stage-2 transcript: map the named
// components of the stage-1 explanation to concrete paths in the file tree.
func ComponentMappingMessages(explanation string, fileTree string) []models.Message {
	user := fmt.Sprintf("## Architecture explanation\n\n%s\n\n## Project file tree\n\n```\n%s```\n", explanation, fileTree)

	return []models.Message{
		models.SystemMessage(strings.TrimSpace(componentMappingPrompt)),
		models.UserMessage(user),
	}
}

// DiagramMessages builds the stage-3 transcript: emit the Mermaid diagram
// for the explanation plus mapping.
func DiagramMessages(explanation string, componentMapping string) []models.Message {
	user := fmt.Sprintf("## Architecture explanation\n\n%s\n\n## Component mapping\n\n%s\n", explanation, componentMapping)

	return []models.Message{
		models.SystemMessage(strings.TrimSpace(diagramPrompt)),
		models.UserMessage(user),
	}
}

// ModifyMessages builds the standalone modify transcript. It does not depend
// on the three generation stages and can run against any previously
// generated diagram.
func ModifyMessages(existingDiagram string, explanation string, instructions string) []models.Message {
	var user strings.Builder
	user.WriteString("## Current diagram\n\n```mermaid\n")
	user.WriteString(existingDiagram)
	if !strings.HasSuffix(existingDiagram, "\n") {
		user.WriteString("\n")
	}
	user.WriteString("```\n")
	if explanation != "" {
		user.WriteString("\n## Original explanation\n\n")
		user.WriteString(explanation)
		user.WriteString("\n")
	}
	user.WriteString("\n## Modification request\n\n")
	user.WriteString(instructions)
	user.WriteString("\n")

	return []models.Message{
		models.SystemMessage(strings.TrimSpace(modifyPrompt)),
		models.UserMessage(user.String()),
	}
}

// StripCodeFence removes a surrounding fenced code block from model output.
// It tolerates both fenced and unfenced diagrams and an optional language
// tag on the opening fence.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	start := 1
	end := len(lines)
	for i := len(lines) - 1; i > 0; i-- {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
			end = i
			break
		}
	}
	if start >= end {
		return trimmed
	}
	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}
