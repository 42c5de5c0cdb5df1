package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	"supportbot.app/hub/common/id"
	"supportbot.app/hub/internal/model"
	"supportbot.app/hub/internal/queue"
)

type EventIngestParams struct {
	Source          string          `json:"source"`
	EventType       model.EventType `json:"event_type"`
	DeliveryID      string          `json:"delivery_id"`
	ExternalEventID string          `json:"external_event_id,omitempty"`
	Payload         json.RawMessage `json:"payload"`

	TraceID *string `json:"trace_id,omitempty"`
}

type EventIngestResult struct {
	EventID    int64
	DedupeKey  string
	Enqueued   bool
	Duplicated bool
}

type EventIngestService interface {
	Ingest(ctx context.Context, params EventIngestParams) (*EventIngestResult, error)
}

// DeliveryGuard remembers dedupe keys of deliveries that were already enqueued.
type DeliveryGuard interface {
	MarkSeen(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}

type eventIngestService struct {
	deliveries DeliveryGuard
	queue      queue.Producer
	logger     *slog.Logger
}

// NewEventIngestService enqueues webhook events. deliveries may be nil to skip dedupe.
func NewEventIngestService(deliveries DeliveryGuard, queue queue.Producer, logger *slog.Logger) EventIngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventIngestService{
		deliveries: deliveries,
		queue:      queue,
		logger:     logger,
	}
}

func (s *eventIngestService) Ingest(ctx context.Context, params EventIngestParams) (*EventIngestResult, error) {
	if params.Source == "" || params.EventType == "" {
		return nil, fmt.Errorf("source and event_type are required")
	}
	if len(params.Payload) == 0 {
		return nil, fmt.Errorf("payload is required")
	}

	dedupeKey, err := computeDedupeKey(params.Source, string(params.EventType), params.ExternalEventID, params.Payload)
	if err != nil {
		return nil, err
	}
	result := &EventIngestResult{DedupeKey: dedupeKey}

	if s.deliveries != nil {
		fresh, err := s.deliveries.MarkSeen(ctx, dedupeKey)
		if err != nil {
			return nil, fmt.Errorf("checking delivery: %w", err)
		}
		if !fresh {
			s.logger.InfoContext(ctx, "duplicate event deduped", "dedupe_key", dedupeKey, "delivery_id", params.DeliveryID)
			result.Duplicated = true
			return result, nil
		}
	}

	result.EventID = id.New()
	if err := s.queue.Enqueue(ctx, queue.EventMessage{
		EventID:    result.EventID,
		DeliveryID: params.DeliveryID,
		EventType:  string(params.EventType),
		Payload:    params.Payload,
		TraceID:    params.TraceID,
		Attempt:    1,
	}); err != nil {
		if s.deliveries != nil {
			if ferr := s.deliveries.Forget(ctx, dedupeKey); ferr != nil {
				s.logger.WarnContext(ctx, "failed to release dedupe key", "error", ferr, "dedupe_key", dedupeKey)
			}
		}
		return nil, fmt.Errorf("enqueueing event: %w", err)
	}
	result.Enqueued = true
	return result, nil
}

func computeDedupeKey(source, eventType, externalEventID string, payload json.RawMessage) (string, error) {
	if externalEventID != "" {
		return fmt.Sprintf("%s:%s:%s", source, eventType, externalEventID), nil
	}

	body := struct {
		Source    string          `json:"source"`
		EventType string          `json:"event_type"`
		Payload   json.RawMessage `json:"payload,omitempty"`
	}{
		Source:    source,
		EventType: eventType,
		Payload:   payload,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal dedupe payload: %w", err)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", source, hex.EncodeToString(hash[:])), nil
}
