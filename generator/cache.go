package generator

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"

	"archmap/providers/models"
)

// ResponseCache memoizes completions within a session so identical stage
// prompts skip the network. Bounded LRU; a nil cache is a no-op.
type ResponseCache struct {
	entries *lru.Cache[uint64, string]
}

// NewResponseCache creates a response cache holding up to size entries.
func NewResponseCache(size int) (*ResponseCache, error) {
	entries, err := lru.New[uint64, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}
	return &ResponseCache{entries: entries}, nil
}

// cacheKey hashes the provider identity plus the full rendered transcript.
func cacheKey(providerName string, messages []models.Message) uint64 {
	h := xxh3.New()
	_, _ = h.WriteString(providerName)
	for _, m := range messages {
		_, _ = h.WriteString("\x1f")
		_, _ = h.WriteString(string(m.Role))
		_, _ = h.WriteString("\x1e")
		_, _ = h.WriteString(m.Content)
	}
	return h.Sum64()
}

func (c *ResponseCache) Get(providerName string, messages []models.Message) (string, bool) {
	if c == nil {
		return "", false
	}
	return c.entries.Get(cacheKey(providerName, messages))
}

func (c *ResponseCache) Set(providerName string, messages []models.Message, response string) {
	if c == nil {
		return
	}
	c.entries.Add(cacheKey(providerName, messages), response)
}
