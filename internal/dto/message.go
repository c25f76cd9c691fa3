package dto

// SendEmailRequest represents the request to dispatch an email notification
type SendEmailRequest struct {
	Provider string `json:"provider" validate:"required"`
	To       string `json:"to" validate:"required,email"`
	Subject  string `json:"subject" validate:"required,max=500"`
	Content  string `json:"content" validate:"required"`
	From     string `json:"from" validate:"omitempty,email"`
}

// SendSMSRequest represents the request to dispatch an SMS notification
type SendSMSRequest struct {
	Provider string `json:"provider" validate:"required"`
	To       string `json:"to" validate:"required,contact_number"`
	Content  string `json:"content" validate:"required,max=1600"`
	From     string `json:"from" validate:"omitempty,max=20"`
}

// MessageDispatchResponse reports the outcome of a notification dispatch.
// Provider-side failures are reported here with Success=false rather than
// as API errors.
type MessageDispatchResponse struct {
	Success   bool   `json:"success"`
	Provider  string `json:"provider"`
	MessageID string `json:"messageId,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
