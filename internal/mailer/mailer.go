package mailer

import "context"

// Message is one outbound email with both HTML and plain-text parts.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends a message and returns a provider message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}
