package domain

import "context"

type EventType string

const (
	EventTypeCommand  EventType = "command"
	EventTypeMedia    EventType = "media"
	EventTypeText     EventType = "text"
	EventTypeCallback EventType = "callback"
)

// MediaPayload carries the transport's description of an uploaded file.
// SourceRef is the transport's opaque file reference.
type MediaPayload struct {
	SourceRef   string
	DisplayName string
	SizeBytes   int64
}

// Event is one inbound interaction, already classified by the transport.
type Event struct {
	Type      EventType
	SenderID  int64
	ChatID    int64
	MessageID int

	// Command fields, set when Type is EventTypeCommand.
	Command     string
	CommandArgs string

	// Text is the message body for EventTypeText.
	Text string

	// Callback fields, set when Type is EventTypeCallback.
	CallbackID    string
	CallbackToken string

	// Media is set when Type is EventTypeMedia.
	Media *MediaPayload
}

// Button is one inline keyboard button; Token is echoed back as the
// callback token when pressed.
type Button struct {
	Label string
	Token string
}

// Reply is an outbound response sent back to the surface that triggered it.
type Reply struct {
	ChatID  int64
	Text    string
	Buttons [][]Button
}

// Messenger sends outbound replies through the transport.
type Messenger interface {
	SendReply(ctx context.Context, reply Reply) error
	// AnswerCallback acknowledges a callback press with a short notice.
	AnswerCallback(ctx context.Context, callbackID string, text string) error
	BotUsername() string
}

// Archiver moves an uploaded file to durable storage and returns the
// archived message id, the locator for platform links.
type Archiver interface {
	Archive(ctx context.Context, event Event) (int, error)
}
