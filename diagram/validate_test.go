package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMermaidSyntax_ValidFlowchart(t *testing.T) {
	code := "flowchart TD\n    A[Start] --> B[End]\n"

	result := ValidateMermaidSyntax(code)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateMermaidSyntax_Empty(t *testing.T) {
	result := ValidateMermaidSyntax("   \n  ")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "diagram is empty")
}

func TestValidateMermaidSyntax_UnknownHeaderIsWarning(t *testing.T) {
	code := "A[Start] --> B[End]\n"

	result := ValidateMermaidSyntax(code)
	assert.True(t, result.Valid)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "does not declare a known diagram type")
}

func TestValidateMermaidSyntax_DirectivePrefixAccepted(t *testing.T) {
	result := ValidateMermaidSyntax("---\ntitle: Overview\n---\nflowchart TD\n    A --> B\n")
	assert.Empty(t, result.Warnings)

	result = ValidateMermaidSyntax("%% a comment\nflowchart TD\n    A --> B\n")
	assert.Empty(t, result.Warnings)
}

func TestValidateMermaidSyntax_BetaSuffixAccepted(t *testing.T) {
	result := ValidateMermaidSyntax("architecture-beta\n    service api\n")
	assert.Empty(t, result.Warnings)
}

func TestValidateMermaidSyntax_UnbalancedBracket(t *testing.T) {
	code := "flowchart TD\n    A[(bad]\n"

	result := ValidateMermaidSyntax(code)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateMermaidSyntax_QuotedDelimitersIgnored(t *testing.T) {
	code := "flowchart TD\n    A[\"label with (parens\"] --> B\n"

	result := ValidateMermaidSyntax(code)
	assert.True(t, result.Valid)
}

func TestValidateMermaidSyntax_UnterminatedQuote(t *testing.T) {
	code := "flowchart TD\n    A[\"unclosed] --> B\n"

	result := ValidateMermaidSyntax(code)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "unterminated double quote")
}

func TestValidateMermaidSyntax_SpecialCharactersInLabel(t *testing.T) {
	code := "flowchart TD\n    A[a & b] --> C\n"

	result := ValidateMermaidSyntax(code)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "unquoted special characters")
}

func TestValidateMermaidSyntax_PaddedEdgeLabel(t *testing.T) {
	code := "flowchart TD\n    A -->| reads | B\n"

	result := ValidateMermaidSyntax(code)
	assert.True(t, result.Valid)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "padded with spaces")
}

func TestValidateMermaidSyntax_SubgraphClassStyle(t *testing.T) {
	code := "flowchart TD\n    subgraph backend:::styled\n    A --> B\n    end\n"

	result := ValidateMermaidSyntax(code)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "subgraph")
}

func TestValidateMermaidSyntax_InitDirectiveWarning(t *testing.T) {
	code := "%%{init: {'theme': 'dark'}}%%\nflowchart TD\n    A --> B\n"

	result := ValidateMermaidSyntax(code)
	hasInitWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "init") {
			hasInitWarning = true
		}
	}
	assert.True(t, hasInitWarning)
}
