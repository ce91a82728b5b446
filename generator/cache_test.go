package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archmap/providers/models"
)

func TestResponseCache_GetSet(t *testing.T) {
	cache, err := NewResponseCache(4)
	require.NoError(t, err)

	messages := []models.Message{
		models.SystemMessage("system"),
		models.UserMessage("user"),
	}

	_, ok := cache.Get("openai", messages)
	assert.False(t, ok)

	cache.Set("openai", messages, "response")

	cached, ok := cache.Get("openai", messages)
	assert.True(t, ok)
	assert.Equal(t, "response", cached)
}

func TestResponseCache_KeyedByProviderAndTranscript(t *testing.T) {
	cache, err := NewResponseCache(4)
	require.NoError(t, err)

	messages := []models.Message{models.UserMessage("same content")}
	cache.Set("openai", messages, "openai response")

	_, ok := cache.Get("anthropic", messages)
	assert.False(t, ok)

	other := []models.Message{models.UserMessage("different content")}
	_, ok = cache.Get("openai", other)
	assert.False(t, ok)
}

func TestResponseCache_RoleBoundariesMatter(t *testing.T) {
	cache, err := NewResponseCache(4)
	require.NoError(t, err)

	asSystem := []models.Message{models.SystemMessage("content")}
	asUser := []models.Message{models.UserMessage("content")}

	cache.Set("openai", asSystem, "system response")
	_, ok := cache.Get("openai", asUser)
	assert.False(t, ok)
}

func TestResponseCache_EvictsOldest(t *testing.T) {
	cache, err := NewResponseCache(2)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		messages := []models.Message{models.UserMessage(fmt.Sprintf("prompt %d", i))}
		cache.Set("openai", messages, fmt.Sprintf("response %d", i))
	}

	_, ok := cache.Get("openai", []models.Message{models.UserMessage("prompt 0")})
	assert.False(t, ok)

	cached, ok := cache.Get("openai", []models.Message{models.UserMessage("prompt 2")})
	assert.True(t, ok)
	assert.Equal(t, "response 2", cached)
}

func TestResponseCache_NilSafe(t *testing.T) {
	var cache *ResponseCache

	_, ok := cache.Get("openai", nil)
	assert.False(t, ok)
	cache.Set("openai", nil, "response")
}
