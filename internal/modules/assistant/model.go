// README: Assistant conversation log entries.
package assistant

import (
	"errors"
	"time"

	"voyager/internal/ai"
)

var (
	ErrBusy         = errors.New("a message is already in flight for this conversation")
	ErrNotFound     = errors.New("conversation not found")
	ErrEmptyMessage = errors.New("empty message")
)

const (
	Greeting         = "Hello! I'm your Voyager Concierge. I can analyze travel documents, check live events, or just chat. How can I assist you today?"
	DegradedMessage  = "I couldn't reach the live search engine right now."
	ImagePlaceholder = "Analyzed an image..."
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type MessageKind string

const (
	KindText  MessageKind = "text"
	KindImage MessageKind = "image"
)

type Message struct {
	ID        string        `json:"id"`
	Role      Role          `json:"role"`
	Kind      MessageKind   `json:"kind"`
	Content   string        `json:"content"`
	Citations []ai.Citation `json:"citations,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}
