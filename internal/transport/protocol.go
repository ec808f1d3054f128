// Package transport defines the chat-transport boundary: inbound event and
// outbound reply shapes plus the delivery contracts the engine and pipeline
// depend on. The concrete chat binding (webhook server, bot API client)
// lives outside this repository.
package transport

import "context"

// EventKind discriminates inbound chat events.
type EventKind string

const (
	// EventText is a free-text message.
	EventText EventKind = "text"
	// EventAudio is a recorded audio/voice message carried by reference.
	EventAudio EventKind = "audio"
	// EventChoice is a button selection carrying an enumerated token.
	EventChoice EventKind = "choice"
	// EventRestart is the restart command.
	EventRestart EventKind = "restart"
)

// Control tokens delivered as EventChoice alongside catalog option tokens.
const (
	TokenRestart    = "restart"
	TokenRewind     = "last_question"
	TokenSendReport = "send_report"
)

// Event is one inbound message from the chat transport.
type Event struct {
	SessionID string    `json:"session_id"`
	Kind      EventKind `json:"kind"`
	// Text carries the message body for EventText.
	Text string `json:"text,omitempty"`
	// Token carries the selected button token for EventChoice.
	Token string `json:"token,omitempty"`
	// AudioRef is a durable pointer to the raw audio for EventAudio.
	AudioRef string `json:"audio_ref,omitempty"`
}

// Reply is the ordered outbound payload produced for one inbound event or
// one completed pipeline job.
type Reply struct {
	Messages []string `json:"messages"`
	// PromptIndex is the catalog index of the question being presented,
	// or -1 when no question prompt is included.
	PromptIndex int `json:"prompt_index"`
	// Done marks the interview as complete.
	Done bool `json:"done,omitempty"`
}

// NoPrompt marks a reply that presents no question.
const NoPrompt = -1

// Sender delivers a reply to a session out of band. The media pipeline uses
// it for completions that arrive after the synchronous request has returned.
type Sender interface {
	Send(ctx context.Context, sessionID string, reply Reply) error
}

// SendFunc adapts a function to the Sender interface.
type SendFunc func(ctx context.Context, sessionID string, reply Reply) error

func (f SendFunc) Send(ctx context.Context, sessionID string, reply Reply) error {
	return f(ctx, sessionID, reply)
}
