package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"time"

	"custopro-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

const (
	ProviderSendGrid = "sendgrid"
	ProviderSMTP     = "smtp"
	ProviderSES      = "ses"
)

// EmailDispatcher sends one-off emails through the provider named per
// message.
type EmailDispatcher struct {
	cfg    config.EmailConfig
	http   *http.Client
	ses    *sesv2.Client
	sendFn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailDispatcher creates an email dispatcher. The SES client is only
// initialized when credentials are configured; sends through it fail soft
// otherwise.
func NewEmailDispatcher(cfg config.EmailConfig) *EmailDispatcher {
	return &EmailDispatcher{
		cfg:    cfg,
		http:   &http.Client{Timeout: 10 * time.Second},
		ses:    newSESClient(cfg),
		sendFn: smtp.SendMail,
	}
}

// SendEmail dispatches one email through the named provider.
func (d *EmailDispatcher) SendEmail(ctx context.Context, provider string, msg EmailMessage) Result {
	if msg.From == "" {
		msg.From = d.cfg.From
	}

	switch provider {
	case ProviderSendGrid:
		return d.sendWithSendGrid(ctx, msg)
	case ProviderSMTP:
		return d.sendWithSMTP(msg)
	case ProviderSES:
		return d.sendWithSES(ctx, msg)
	default:
		return failure(provider, fmt.Sprintf("unsupported email provider: %s", provider))
	}
}

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridPayload struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress `json:"from"`
	Subject string          `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (d *EmailDispatcher) sendWithSendGrid(ctx context.Context, msg EmailMessage) Result {
	if d.cfg.SendGridAPIKey == "" {
		return failure(ProviderSendGrid, "SendGrid API key is not configured")
	}

	var payload sendGridPayload
	payload.Personalizations = make([]struct {
		To []sendGridAddress `json:"to"`
	}, 1)
	payload.Personalizations[0].To = []sendGridAddress{{Email: msg.To}}
	payload.From = sendGridAddress{Email: msg.From}
	payload.Subject = msg.Subject
	payload.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{{Type: "text/html", Value: msg.Content}}

	body, err := json.Marshal(payload)
	if err != nil {
		return failure(ProviderSendGrid, fmt.Sprintf("failed to encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.SendGridURL, bytes.NewReader(body))
	if err != nil {
		return failure(ProviderSendGrid, fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+d.cfg.SendGridAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.http.Do(req)
	if err != nil {
		return failure(ProviderSendGrid, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return failure(ProviderSendGrid, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, detail))
	}

	return success(ProviderSendGrid, resp.Header.Get("X-Message-Id"))
}

func (d *EmailDispatcher) sendWithSMTP(msg EmailMessage) Result {
	if d.cfg.SMTPHost == "" || d.cfg.SMTPUser == "" || d.cfg.SMTPPassword == "" {
		return failure(ProviderSMTP, "SMTP host, username and password are required")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", msg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.Content)

	addr := d.cfg.SMTPHost + ":" + d.cfg.SMTPPort
	auth := smtp.PlainAuth("", d.cfg.SMTPUser, d.cfg.SMTPPassword, d.cfg.SMTPHost)

	if err := d.sendFn(addr, auth, msg.From, []string{msg.To}, buf.Bytes()); err != nil {
		return failure(ProviderSMTP, fmt.Sprintf("smtp send failed: %v", err))
	}

	return success(ProviderSMTP, "")
}

func (d *EmailDispatcher) sendWithSES(ctx context.Context, msg EmailMessage) Result {
	if d.ses == nil {
		return failure(ProviderSES, "SES credentials are not configured")
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.Content), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	result, err := d.ses.SendEmail(ctx, input)
	if err != nil {
		return failure(ProviderSES, fmt.Sprintf("ses send failed: %v", err))
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}
	return success(ProviderSES, messageID)
}
