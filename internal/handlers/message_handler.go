package handlers

import (
	"net/http"
	"strings"

	"custopro-api/internal/dto"
	"custopro-api/internal/errors"
	"custopro-api/internal/notify"
	"custopro-api/internal/services"

	"github.com/labstack/echo/v4"
)

// MessageHandler handles outbound notification dispatch requests
type MessageHandler struct {
	email   notify.EmailDispatcherInterface
	sms     notify.SMSDispatcherInterface
	logger  services.CustomerLoggerInterface
	metrics services.MetricsRecorderInterface
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(
	email notify.EmailDispatcherInterface,
	sms notify.SMSDispatcherInterface,
	logger services.CustomerLoggerInterface,
	metrics services.MetricsRecorderInterface,
) *MessageHandler {
	return &MessageHandler{
		email:   email,
		sms:     sms,
		logger:  logger,
		metrics: metrics,
	}
}

// SendEmail dispatches an email through the requested provider
// @Summary Send email notification
// @Description Dispatch an email via the configured provider (sendgrid, smtp, ses)
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body dto.SendEmailRequest true "Email dispatch request"
// @Success 200 {object} dto.MessageDispatchResponse "Dispatch outcome"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 422 {object} dto.MessageDispatchResponse "Provider rejected or unsupported"
// @Router /messages/email [post]
func (h *MessageHandler) SendEmail(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SendEmailRequest
	if err := c.Bind(&req); err != nil {
		h.logger.LogValidationFailure(ctx, "send_email", err.Error())
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		h.logger.LogValidationFailure(ctx, "send_email", err.Error())
		return err
	}

	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	result := h.email.SendEmail(ctx, provider, notify.EmailMessage{
		To:      req.To,
		Subject: req.Subject,
		Content: req.Content,
		From:    req.From,
	})

	return h.respond(c, "email", provider, result)
}

// SendSMS dispatches an SMS through the requested provider
// @Summary Send SMS notification
// @Description Dispatch an SMS via the configured provider (twilio, dialog)
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body dto.SendSMSRequest true "SMS dispatch request"
// @Success 200 {object} dto.MessageDispatchResponse "Dispatch outcome"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 422 {object} dto.MessageDispatchResponse "Provider rejected or unsupported"
// @Router /messages/sms [post]
func (h *MessageHandler) SendSMS(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SendSMSRequest
	if err := c.Bind(&req); err != nil {
		h.logger.LogValidationFailure(ctx, "send_sms", err.Error())
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		h.logger.LogValidationFailure(ctx, "send_sms", err.Error())
		return err
	}

	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	result := h.sms.SendSMS(ctx, provider, notify.SMSMessage{
		To:      req.To,
		Content: req.Content,
		From:    req.From,
	})

	return h.respond(c, "sms", provider, result)
}

// respond records metrics and logging for the dispatch attempt and writes the
// outcome. Provider failures keep the Result body so callers can read the
// reason, but signal the failure with a 422 status.
func (h *MessageHandler) respond(c echo.Context, channel, provider string, result notify.Result) error {
	ctx := c.Request().Context()

	status := "success"
	if !result.Success {
		status = "failed"
	}
	h.metrics.IncrementCounter("notification_sent", map[string]string{
		"channel":  channel,
		"provider": provider,
		"status":   status,
	})
	h.logger.LogNotificationDispatched(ctx, channel, provider, result.Success)

	response := dto.MessageDispatchResponse{
		Success:   result.Success,
		Provider:  result.Provider,
		MessageID: result.MessageID,
		Reason:    result.Reason,
	}

	if !result.Success {
		return c.JSON(http.StatusUnprocessableEntity, response)
	}
	return c.JSON(http.StatusOK, response)
}
