package services

import (
	"context"
	"log/slog"
	"time"
)

// CustomerLogger provides structured logging for customer view operations.
// Free-text search terms are never logged; they routinely contain names,
// emails and phone numbers.
type CustomerLogger struct {
	logger *slog.Logger
}

// NewCustomerLogger creates a new customer logger
func NewCustomerLogger(logger *slog.Logger) CustomerLoggerInterface {
	return &CustomerLogger{
		logger: logger,
	}
}

// LogCustomerListStarted logs the start of a customer listing request
func (cl *CustomerLogger) LogCustomerListStarted(ctx context.Context, page, limit int, segment string) {
	cl.logger.InfoContext(ctx, "customer list started",
		slog.String("event_type", "customer_list_started"),
		slog.Int("page", page),
		slog.Int("limit", limit),
		slog.String("segment", segment),
		slog.Time("timestamp", time.Now()),
		slog.String("request_id", getRequestID(ctx)),
	)
}

// LogCustomerListCompleted logs the completion of a customer listing request
func (cl *CustomerLogger) LogCustomerListCompleted(ctx context.Context, resultsCount int, total int64, durationMs int64) {
	cl.logger.InfoContext(ctx, "customer list completed",
		slog.String("event_type", "customer_list_completed"),
		slog.Int("results_count", resultsCount),
		slog.Int64("total_matches", total),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("request_id", getRequestID(ctx)),
	)
}

// LogCustomerListFailed logs a failed customer listing request
func (cl *CustomerLogger) LogCustomerListFailed(ctx context.Context, errorMsg string, durationMs int64) {
	cl.logger.WarnContext(ctx, "customer list failed",
		slog.String("event_type", "customer_list_failed"),
		slog.String("error", errorMsg),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("request_id", getRequestID(ctx)),
	)
}

// LogCustomerLookupCompleted logs a successful single-customer resolution
func (cl *CustomerLogger) LogCustomerLookupCompleted(ctx context.Context, matchedBy string, durationMs int64) {
	cl.logger.InfoContext(ctx, "customer lookup completed",
		slog.String("event_type", "customer_lookup_completed"),
		slog.String("matched_by", matchedBy),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("request_id", getRequestID(ctx)),
	)
}

// LogCustomerLookupFailed logs a failed single-customer resolution
func (cl *CustomerLogger) LogCustomerLookupFailed(ctx context.Context, errorMsg string, durationMs int64) {
	cl.logger.WarnContext(ctx, "customer lookup failed",
		slog.String("event_type", "customer_lookup_failed"),
		slog.String("error", errorMsg),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("request_id", getRequestID(ctx)),
	)
}

// LogCustomersSeeded logs startup seeding of generated customer documents
func (cl *CustomerLogger) LogCustomersSeeded(ctx context.Context, count int) {
	cl.logger.InfoContext(ctx, "customers seeded",
		slog.String("event_type", "customers_seeded"),
		slog.Int("count", count),
		slog.Time("timestamp", time.Now()),
	)
}

// LogNormalizationDefaults logs which view fields fell back to defaults for a
// record, keyed by store key so sparse source records can be traced
func (cl *CustomerLogger) LogNormalizationDefaults(ctx context.Context, customerID string, fields []string) {
	cl.logger.DebugContext(ctx, "normalization defaults applied",
		slog.String("event_type", "normalization_defaults"),
		slog.String("customer_id", customerID),
		slog.Any("fields", fields),
		slog.String("request_id", getRequestID(ctx)),
	)
}

// LogNotificationDispatched logs an outbound email or SMS dispatch attempt
func (cl *CustomerLogger) LogNotificationDispatched(ctx context.Context, channel, provider string, success bool) {
	cl.logger.InfoContext(ctx, "notification dispatched",
		slog.String("event_type", "notification_dispatched"),
		slog.String("channel", channel),
		slog.String("provider", provider),
		slog.Bool("success", success),
		slog.Time("timestamp", time.Now()),
		slog.String("request_id", getRequestID(ctx)),
	)
}

// LogValidationFailure logs validation failures
func (cl *CustomerLogger) LogValidationFailure(ctx context.Context, operation string, errorMsg string) {
	cl.logger.WarnContext(ctx, "validation failure",
		slog.String("event_type", "validation_failure"),
		slog.String("operation", operation),
		slog.String("error", errorMsg),
		slog.Time("timestamp", time.Now()),
		slog.String("request_id", getRequestID(ctx)),
	)
}

func getRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}
	return ""
}
