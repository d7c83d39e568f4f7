package logging

import (
	"log/slog"
	"time"

	"github.com/bjaus/action"
)

// Common field names for consistent logging.
const (
	FieldService       = "service"
	FieldKey           = "key"
	FieldCorrelationID = "correlation_id"
	FieldInvoker       = "invoker"
	FieldMessage       = "message"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldSubject       = "subject"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// Key returns a slog attribute for an action routing key.
func Key(key string) slog.Attr {
	return slog.String(FieldKey, key)
}

// CorrelationID returns a slog attribute for a request correlation id.
func CorrelationID(id string) slog.Attr {
	return slog.String(FieldCorrelationID, id)
}

// Invoker returns a slog attribute for an invoker id.
func Invoker(id action.InvokerID) slog.Attr {
	return slog.String(FieldInvoker, string(id))
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Int64(FieldDuration, d.Milliseconds())
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// Subject returns a slog attribute for a messaging subject.
func Subject(subject string) slog.Attr {
	return slog.String(FieldSubject, subject)
}
