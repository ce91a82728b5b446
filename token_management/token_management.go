package token_management

import (
	"fmt"

	"archmap/constants/lipgloss"
	"archmap/token_management/contracts"
)

// tokenManager accumulates token counts reported by providers over a session.
type tokenManager struct {
	usedToken       int
	usedInputToken  int
	usedOutputToken int
}

// NewTokenManager creates a new token manager.
func NewTokenManager() contracts.ITokenManagement {
	return &tokenManager{}
}

// UsedTokens accumulates the token count for the session.
func (tm *tokenManager) UsedTokens(inputTokens int, outputTokens int) {
	tm.usedInputToken += inputTokens
	tm.usedOutputToken += outputTokens
	tm.usedToken += inputTokens + outputTokens
}

func (tm *tokenManager) GetCurrentTokenUsage() (total int, input int, output int) {
	return tm.usedToken, tm.usedInputToken, tm.usedOutputToken
}

func (tm *tokenManager) DisplayTokens(providerName string, model string) {
	if tm.usedToken == 0 {
		return
	}

	tokenInfo := fmt.Sprintf("Tokens Used: %d (input: %d / output: %d) - Provider: %s - Model: %s",
		tm.usedToken, tm.usedInputToken, tm.usedOutputToken, providerName, model)

	fmt.Println(lipgloss.BoxStyle.Render(tokenInfo))
}

func (tm *tokenManager) ClearToken() {
	tm.usedToken = 0
	tm.usedInputToken = 0
	tm.usedOutputToken = 0
}
