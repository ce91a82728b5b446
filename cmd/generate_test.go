package cmd

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archmap/diagram"
	"archmap/generator"
)

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestDisplayValidation_PrintsFindings(t *testing.T) {
	result := &generator.DiagramResult{
		Validation: diagram.ValidationResult{
			Valid:    false,
			Errors:   []string{"unmatched closing \")\""},
			Warnings: []string{"relationship label is padded with spaces inside the pipes (1 occurrence(s))"},
		},
	}

	out := captureStdout(t, func() {
		displayValidation(result)
	})

	assert.Contains(t, out, "unmatched closing")
	assert.Contains(t, out, "padded with spaces")
	assert.Contains(t, out, "may not render correctly")
}

func TestDisplayValidation_SilentWhenClean(t *testing.T) {
	result := &generator.DiagramResult{
		Validation: diagram.ValidationResult{Valid: true},
	}

	out := captureStdout(t, func() {
		displayValidation(result)
	})

	assert.Empty(t, strings.TrimSpace(out))
}

func TestDisplayComponentMapping(t *testing.T) {
	result := &generator.DiagramResult{
		ComponentMapping: map[string]string{"API": "src/api.go"},
	}

	out := captureStdout(t, func() {
		displayComponentMapping(result)
	})

	assert.Contains(t, out, "API: src/api.go")
}
