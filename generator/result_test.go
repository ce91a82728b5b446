package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseComponentMapping_PlainLines(t *testing.T) {
	text := "API: src/api.go\nDatabase Layer: internal/db/store.go\n"

	mapping := ParseComponentMapping(text)
	assert.Equal(t, map[string]string{
		"API":            "src/api.go",
		"Database Layer": "internal/db/store.go",
	}, mapping)
}

func TestParseComponentMapping_ToleratesListDecorations(t *testing.T) {
	text := "- API: src/api.go\n* Cache: internal/cache.go\n1. Worker: internal/worker.go\n`Queue`: internal/queue.go\n"

	mapping := ParseComponentMapping(text)
	assert.Equal(t, "src/api.go", mapping["API"])
	assert.Equal(t, "internal/cache.go", mapping["Cache"])
	assert.Equal(t, "internal/worker.go", mapping["Worker"])
	assert.Equal(t, "internal/queue.go", mapping["Queue"])
}

func TestParseComponentMapping_IgnoresProse(t *testing.T) {
	text := "# Component mapping\n\nHere are the components I found.\n\nAPI: src/api.go\n\n```\nnot a mapping\n```\n"

	mapping := ParseComponentMapping(text)
	assert.Equal(t, map[string]string{"API": "src/api.go"}, mapping)
}

func TestParseComponentMapping_Empty(t *testing.T) {
	assert.Empty(t, ParseComponentMapping(""))
	assert.Empty(t, ParseComponentMapping("freeform text with no mappings at all"))
}
