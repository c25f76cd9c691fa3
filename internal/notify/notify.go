// Package notify dispatches outbound customer messages through external
// email and SMS providers. Provider failures are reported in the Result,
// never as errors: a refused send must not take the API down with it.
package notify

import "context"

// Result describes one dispatch attempt.
type Result struct {
	Success   bool   `json:"success"`
	Provider  string `json:"provider"`
	MessageID string `json:"messageId,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// EmailMessage is one outbound email. An empty From falls back to the
// configured sender address.
type EmailMessage struct {
	To      string
	Subject string
	Content string
	From    string
}

// SMSMessage is one outbound text message. An empty From falls back to the
// configured sender number or mask.
type SMSMessage struct {
	To      string
	Content string
	From    string
}

type EmailDispatcherInterface interface {
	SendEmail(ctx context.Context, provider string, msg EmailMessage) Result
}

type SMSDispatcherInterface interface {
	SendSMS(ctx context.Context, provider string, msg SMSMessage) Result
}

func success(provider, messageID string) Result {
	return Result{Success: true, Provider: provider, MessageID: messageID}
}

func failure(provider, reason string) Result {
	return Result{Success: false, Provider: provider, Reason: reason}
}
