package llmgateway

// Role is the speaker of one Message in a chat() call.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the ordered conversation passed to Chat.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the wire shape sent to the LLM sidecar. SystemInstruction
// carries the single system message folded out of Messages — most
// providers behind this gateway expect system guidance as a distinct
// field, not as a conversation turn.
type chatRequest struct {
	SystemInstruction string    `json:"system_instruction,omitempty"`
	Messages          []Message `json:"messages"`
	Temperature       float64   `json:"temperature"`
	MaxTokens         int       `json:"max_tokens"`
	Model             string    `json:"model"`
}

// chatResponse is the wire shape returned by the sidecar. Candidates holds
// zero or more completions; only the first is ever used (spec.md §4.3).
type chatResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Text string `json:"text"`
}

// normalize splits messages into the folded system instruction plus the
// remaining user/assistant turns, in order.
func normalize(messages []Message) (systemInstruction string, rest []Message) {
	rest = make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			if systemInstruction != "" {
				systemInstruction += "\n\n" + m.Content
			} else {
				systemInstruction = m.Content
			}
			continue
		}
		rest = append(rest, m)
	}
	return systemInstruction, rest
}
