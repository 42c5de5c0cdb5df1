package mapper

import (
	"context"
	"encoding/json"
	"errors"

	"supportbot.app/hub/internal/model"
)

// ErrUnsupportedEvent is returned for webhook deliveries the hub does not act on.
var ErrUnsupportedEvent = errors.New("unsupported event")

// MappedEvent is a webhook delivery reduced to its canonical type and payload.
type MappedEvent struct {
	Type model.EventType
	// ExternalID identifies the delivery on the code host, when it sends one.
	ExternalID string
	// Payload is the JSON encoding of model.ReleaseEvent or model.MemberEvent.
	Payload json.RawMessage
}

type EventMapper interface {
	Map(ctx context.Context, body []byte, headers map[string]string) (*MappedEvent, error)
}
