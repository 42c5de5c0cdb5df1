package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Fields flow through context enrichment so business context (guild_id, delivery_id, etc.)
// shows up in every log statement without being passed around explicitly.
type LogFields struct {
	GuildID    *string // Discord guild the request is about
	QuestionID *string // Help question (thread) id
	MessageID  *string // Redis stream message ID
	DeliveryID *string // Webhook delivery id
	EventType  *string // Webhook event type (e.g., "release", "member")
	Component  string  // Component name, e.g. "hub.service.dashboard"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.GuildID != nil {
		result.GuildID = new.GuildID
	}
	if new.QuestionID != nil {
		result.QuestionID = new.QuestionID
	}
	if new.MessageID != nil {
		result.MessageID = new.MessageID
	}
	if new.DeliveryID != nil {
		result.DeliveryID = new.DeliveryID
	}
	if new.EventType != nil {
		result.EventType = new.EventType
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{GuildID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
