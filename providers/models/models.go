package models

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in an ordered chat transcript. The system
// message, when present, is always first and singular.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage returns a message with the system role.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage returns a message with the user role.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage returns a message with the assistant role.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// SplitSystem extracts a single leading system message from an ordered
// transcript. Providers that carry the system prompt out-of-band call this
// before building their request body.
func SplitSystem(messages []Message) (system string, rest []Message) {
	if len(messages) > 0 && messages[0].Role == RoleSystem {
		return messages[0].Content, messages[1:]
	}
	return "", messages
}

// CompletionOptions are per-call generation parameters. A nil options value
// means provider defaults.
type CompletionOptions struct {
	MaxTokens     int
	Temperature   *float32
	StopSequences []string
}
