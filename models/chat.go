package models

// ChatSender identifies who wrote a chat message.
type ChatSender string

const (
	SenderUser ChatSender = "user"
	SenderBot  ChatSender = "bot"
)

// ChatMessage is one entry in the session's assistant transcript. A bot
// message starts as a pending placeholder and is resolved in place exactly
// once when the assistant call settles.
type ChatMessage struct {
	ID      string     `json:"id"`
	Sender  ChatSender `json:"sender"`
	Text    string     `json:"text"`
	Pending bool       `json:"pending,omitempty"`
}

// ChatRequest represents an incoming chat message
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse acknowledges a chat send with the placeholder that will hold
// the assistant's reply
type ChatResponse struct {
	Message     ChatMessage `json:"message"`
	Placeholder ChatMessage `json:"placeholder"`
}
