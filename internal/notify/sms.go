package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"custopro-api/internal/config"
)

const (
	ProviderTwilio = "twilio"
	ProviderDialog = "dialog"
)

// SMSDispatcher sends one-off text messages through the provider named per
// message.
type SMSDispatcher struct {
	cfg  config.SMSConfig
	http *http.Client
}

// NewSMSDispatcher creates an SMS dispatcher.
func NewSMSDispatcher(cfg config.SMSConfig) *SMSDispatcher {
	return &SMSDispatcher{
		cfg:  cfg,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendSMS dispatches one text message through the named provider.
func (d *SMSDispatcher) SendSMS(ctx context.Context, provider string, msg SMSMessage) Result {
	switch provider {
	case ProviderTwilio:
		return d.sendWithTwilio(ctx, msg)
	case ProviderDialog:
		return d.sendWithDialog(ctx, msg)
	default:
		return failure(provider, fmt.Sprintf("unsupported SMS provider: %s", provider))
	}
}

type twilioResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

func (d *SMSDispatcher) sendWithTwilio(ctx context.Context, msg SMSMessage) Result {
	if d.cfg.TwilioAccountSID == "" || d.cfg.TwilioAuthToken == "" {
		return failure(ProviderTwilio, "Twilio account SID and auth token are required")
	}

	from := msg.From
	if from == "" {
		from = d.cfg.TwilioFrom
	}
	if from == "" {
		return failure(ProviderTwilio, "from number is required")
	}

	form := url.Values{}
	form.Set("To", msg.To)
	form.Set("From", from)
	form.Set("Body", msg.Content)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", d.cfg.TwilioURL, d.cfg.TwilioAccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return failure(ProviderTwilio, fmt.Sprintf("failed to build request: %v", err))
	}
	req.SetBasicAuth(d.cfg.TwilioAccountSID, d.cfg.TwilioAuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.http.Do(req)
	if err != nil {
		return failure(ProviderTwilio, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return failure(ProviderTwilio, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, detail))
	}

	var parsed twilioResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// delivered but unparseable response, keep the success
		return success(ProviderTwilio, "")
	}
	return success(ProviderTwilio, parsed.SID)
}

type dialogPayload struct {
	APIKey    string `json:"apikey"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

func (d *SMSDispatcher) sendWithDialog(ctx context.Context, msg SMSMessage) Result {
	if d.cfg.DialogAPIKey == "" {
		return failure(ProviderDialog, "Dialog API key is required")
	}

	sender := msg.From
	if sender == "" {
		sender = d.cfg.DialogMask
	}

	body, err := json.Marshal(dialogPayload{
		APIKey:    d.cfg.DialogAPIKey,
		Sender:    sender,
		Recipient: msg.To,
		Message:   msg.Content,
	})
	if err != nil {
		return failure(ProviderDialog, fmt.Sprintf("failed to encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.DialogURL, bytes.NewReader(body))
	if err != nil {
		return failure(ProviderDialog, fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.http.Do(req)
	if err != nil {
		return failure(ProviderDialog, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return failure(ProviderDialog, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, detail))
	}

	return success(ProviderDialog, "")
}
