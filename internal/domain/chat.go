package domain

// Chat roles.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatMessage represents one turn in an advisory conversation.
type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	Streaming bool   `json:"streaming,omitempty"`
}
