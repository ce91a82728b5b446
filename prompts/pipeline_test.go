package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	context_models "archmap/project_context/models"
	"archmap/providers/models"
)

func TestExplanationMessages_Shape(t *testing.T) {
	ctx := &context_models.ProjectContext{
		FileTree: "myproject/\n├── src/\n│   └── main.go (1.2KB)\n└── README.md (300B)\n",
		Readme:   "# My Project\nA sample.",
	}

	messages := ExplanationMessages(ctx, "")
	require.Len(t, messages, 2)

	assert.Equal(t, models.RoleSystem, messages[0].Role)
	assert.NotEmpty(t, messages[0].Content)

	assert.Equal(t, models.RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, ctx.FileTree)
	assert.Contains(t, messages[1].Content, "# My Project")
}

func TestExplanationMessages_InstructionsVerbatim(t *testing.T) {
	ctx := &context_models.ProjectContext{FileTree: "p/\n└── a.go (1B)\n"}
	instructions := "Focus on the data layer; ignore tests."

	messages := ExplanationMessages(ctx, instructions)
	require.Len(t, messages, 2)

	assert.Contains(t, messages[0].Content, "## Additional instructions")
	assert.Contains(t, messages[0].Content, instructions)
}

func TestExplanationMessages_OmitsEmptyReadme(t *testing.T) {
	ctx := &context_models.ProjectContext{FileTree: "p/\n└── a.go (1B)\n"}

	messages := ExplanationMessages(ctx, "")
	assert.NotContains(t, messages[1].Content, "## Project README")
}

func TestComponentMappingMessages_Shape(t *testing.T) {
	messages := ComponentMappingMessages("The API layer handles requests.", "p/\n└── api.go (1B)\n")
	require.Len(t, messages, 2)

	assert.Equal(t, models.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[1].Content, "The API layer handles requests.")
	assert.Contains(t, messages[1].Content, "api.go")
}

func TestDiagramMessages_Shape(t *testing.T) {
	messages := DiagramMessages("Explanation text.", "API: src/api.go")
	require.Len(t, messages, 2)

	assert.Equal(t, models.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "flowchart TD")
	assert.Contains(t, messages[1].Content, "Explanation text.")
	assert.Contains(t, messages[1].Content, "API: src/api.go")
}

func TestModifyMessages_Shape(t *testing.T) {
	diagram := "flowchart TD\n    A[Start] --> B[End]"
	messages := ModifyMessages(diagram, "The original explanation.", "Add a database node.")
	require.Len(t, messages, 2)

	assert.Contains(t, messages[1].Content, diagram)
	assert.Contains(t, messages[1].Content, "The original explanation.")
	assert.Contains(t, messages[1].Content, "Add a database node.")
}

func TestModifyMessages_NoExplanation(t *testing.T) {
	messages := ModifyMessages("flowchart TD\n", "", "Rename node A.")
	assert.NotContains(t, messages[1].Content, "## Original explanation")
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"unfenced", "flowchart TD\n    A --> B", "flowchart TD\n    A --> B"},
		{"fenced", "```\nflowchart TD\n    A --> B\n```", "flowchart TD\n    A --> B"},
		{"fenced with language", "```mermaid\nflowchart TD\n    A --> B\n```", "flowchart TD\n    A --> B"},
		{"surrounding whitespace", "  \n```mermaid\nflowchart TD\n```\n  ", "flowchart TD"},
		{"unterminated fence", "```mermaid", "```mermaid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}
