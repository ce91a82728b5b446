package contracts

// ITokenManagement accumulates token usage across the LLM calls of one
// generation session so the CLI can display totals when the run finishes.
type ITokenManagement interface {
	UsedTokens(inputTokens int, outputTokens int)
	GetCurrentTokenUsage() (total int, input int, output int)
	DisplayTokens(providerName string, model string)
	ClearToken()
}
