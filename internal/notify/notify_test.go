package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"testing"

	"custopro-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEmailUnsupportedProvider(t *testing.T) {
	d := NewEmailDispatcher(config.EmailConfig{From: "noreply@custopro.lk"})

	result := d.SendEmail(context.Background(), "mailchimp", EmailMessage{To: "a@b.lk"})

	assert.False(t, result.Success)
	assert.Equal(t, "mailchimp", result.Provider)
	assert.Contains(t, result.Reason, "unsupported email provider")
}

func TestSendGridSuccess(t *testing.T) {
	var captured struct {
		auth        string
		contentType string
		body        []byte
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.auth = r.Header.Get("Authorization")
		captured.contentType = r.Header.Get("Content-Type")
		captured.body, _ = io.ReadAll(r.Body)
		w.Header().Set("X-Message-Id", "sg-123")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	d := NewEmailDispatcher(config.EmailConfig{
		From:           "noreply@custopro.lk",
		SendGridAPIKey: "sg-key",
		SendGridURL:    server.URL,
	})

	result := d.SendEmail(context.Background(), ProviderSendGrid, EmailMessage{
		To:      "jane@example.com",
		Subject: "Welcome",
		Content: "<p>Hello</p>",
	})

	require.True(t, result.Success, "reason: %s", result.Reason)
	assert.Equal(t, ProviderSendGrid, result.Provider)
	assert.Equal(t, "sg-123", result.MessageID)
	assert.Equal(t, "Bearer sg-key", captured.auth)
	assert.Equal(t, "application/json", captured.contentType)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(captured.body, &payload))
	assert.Equal(t, "Welcome", payload["subject"])
}

func TestSendGridFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer server.Close()

	d := NewEmailDispatcher(config.EmailConfig{
		From:           "noreply@custopro.lk",
		SendGridAPIKey: "bad",
		SendGridURL:    server.URL,
	})

	result := d.SendEmail(context.Background(), ProviderSendGrid, EmailMessage{To: "jane@example.com"})

	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "401")
}

func TestSendGridMissingKey(t *testing.T) {
	d := NewEmailDispatcher(config.EmailConfig{From: "noreply@custopro.lk"})

	result := d.SendEmail(context.Background(), ProviderSendGrid, EmailMessage{To: "jane@example.com"})

	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "API key")
}

func TestSMTPSendUsesConfiguredFrom(t *testing.T) {
	var gotFrom string
	var gotTo []string
	var gotBody []byte

	d := NewEmailDispatcher(config.EmailConfig{
		From:         "noreply@custopro.lk",
		SMTPHost:     "mail.example.com",
		SMTPPort:     "587",
		SMTPUser:     "user",
		SMTPPassword: "pass",
	})
	d.sendFn = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "mail.example.com:587", addr)
		gotFrom = from
		gotTo = to
		gotBody = msg
		return nil
	}

	result := d.SendEmail(context.Background(), ProviderSMTP, EmailMessage{
		To:      "jane@example.com",
		Subject: "Hi",
		Content: "<p>Hello</p>",
	})

	require.True(t, result.Success)
	assert.Equal(t, "noreply@custopro.lk", gotFrom)
	assert.Equal(t, []string{"jane@example.com"}, gotTo)
	assert.Contains(t, string(gotBody), "Subject: Hi")
	assert.Contains(t, string(gotBody), "text/html")
}

func TestSMTPSendFailure(t *testing.T) {
	d := NewEmailDispatcher(config.EmailConfig{
		From:         "noreply@custopro.lk",
		SMTPHost:     "mail.example.com",
		SMTPPort:     "587",
		SMTPUser:     "user",
		SMTPPassword: "pass",
	})
	d.sendFn = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("connection refused")
	}

	result := d.SendEmail(context.Background(), ProviderSMTP, EmailMessage{To: "jane@example.com"})

	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "connection refused")
}

func TestSESWithoutCredentials(t *testing.T) {
	d := NewEmailDispatcher(config.EmailConfig{From: "noreply@custopro.lk"})

	result := d.SendEmail(context.Background(), ProviderSES, EmailMessage{To: "jane@example.com"})

	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "credentials")
}

func TestSendSMSUnsupportedProvider(t *testing.T) {
	d := NewSMSDispatcher(config.SMSConfig{})

	result := d.SendSMS(context.Background(), "hutch", SMSMessage{To: "+94770000000"})

	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "unsupported SMS provider")
}

func TestTwilioSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "token", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+94770000000", r.PostForm.Get("To"))
		assert.Equal(t, "+15550001111", r.PostForm.Get("From"))
		assert.Equal(t, "hello", r.PostForm.Get("Body"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM999","status":"queued"}`))
	}))
	defer server.Close()

	d := NewSMSDispatcher(config.SMSConfig{
		TwilioAccountSID: "AC123",
		TwilioAuthToken:  "token",
		TwilioFrom:       "+15550001111",
		TwilioURL:        server.URL,
	})

	result := d.SendSMS(context.Background(), ProviderTwilio, SMSMessage{
		To:      "+94770000000",
		Content: "hello",
	})

	require.True(t, result.Success, "reason: %s", result.Reason)
	assert.Equal(t, "SM999", result.MessageID)
}

func TestTwilioMissingCredentials(t *testing.T) {
	d := NewSMSDispatcher(config.SMSConfig{})

	result := d.SendSMS(context.Background(), ProviderTwilio, SMSMessage{To: "+94770000000"})

	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "account SID")
}

func TestDialogSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "dlg-key", payload["apikey"])
		assert.Equal(t, "CustoPro", payload["sender"])
		assert.Equal(t, "+94770000000", payload["recipient"])
		assert.Equal(t, "hello", payload["message"])
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d := NewSMSDispatcher(config.SMSConfig{
		DialogAPIKey: "dlg-key",
		DialogMask:   "CustoPro",
		DialogURL:    server.URL,
	})

	result := d.SendSMS(context.Background(), ProviderDialog, SMSMessage{
		To:      "+94770000000",
		Content: "hello",
	})

	require.True(t, result.Success, "reason: %s", result.Reason)
	assert.Equal(t, ProviderDialog, result.Provider)
}

func TestDialogFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	d := NewSMSDispatcher(config.SMSConfig{DialogAPIKey: "dlg-key", DialogURL: server.URL})

	result := d.SendSMS(context.Background(), ProviderDialog, SMSMessage{To: "+94770000000"})

	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "502")
}
