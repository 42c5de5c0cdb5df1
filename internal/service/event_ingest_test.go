package service_test

import (
	"context"
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"supportbot.app/hub/internal/model"
	"supportbot.app/hub/internal/queue"
	"supportbot.app/hub/internal/service"
)

var _ = Describe("EventIngestService", func() {
	var (
		ctx        context.Context
		producer   *mockProducer
		deliveries *mockDeliveryGuard
		svc        service.EventIngestService
		params     service.EventIngestParams
	)

	BeforeEach(func() {
		ctx = context.Background()
		producer = &mockProducer{}
		deliveries = newMockDeliveryGuard()
		svc = service.NewEventIngestService(deliveries, producer, nil)
		trace := "trace-1"
		params = service.EventIngestParams{
			Source:          "gitlab",
			EventType:       model.EventRelease,
			DeliveryID:      "d-1",
			ExternalEventID: "uuid-1",
			Payload:         json.RawMessage(`{"tag":"v1"}`),
			TraceID:         &trace,
		}
	})

	It("enqueues new events", func() {
		result, err := svc.Ingest(ctx, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Enqueued).To(BeTrue())
		Expect(result.DedupeKey).To(Equal("gitlab:release:uuid-1"))
		Expect(result.EventID).NotTo(BeZero())

		Expect(producer.messages).To(HaveLen(1))
		msg := producer.messages[0]
		Expect(msg.EventID).To(Equal(result.EventID))
		Expect(msg.DeliveryID).To(Equal("d-1"))
		Expect(msg.EventType).To(Equal("release"))
		Expect(msg.Attempt).To(Equal(1))
		Expect(*msg.TraceID).To(Equal("trace-1"))
	})

	It("dedupes redelivered events", func() {
		_, err := svc.Ingest(ctx, params)
		Expect(err).NotTo(HaveOccurred())

		result, err := svc.Ingest(ctx, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Duplicated).To(BeTrue())
		Expect(result.Enqueued).To(BeFalse())
		Expect(producer.messages).To(HaveLen(1))
	})

	It("hashes the payload without an external id", func() {
		params.ExternalEventID = ""
		first, err := svc.Ingest(ctx, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.DedupeKey).To(HavePrefix("gitlab:"))
		Expect(first.DedupeKey).To(HaveLen(len("gitlab:") + 64))

		params.Payload = json.RawMessage(`{"tag":"v2"}`)
		second, err := svc.Ingest(ctx, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.DedupeKey).NotTo(Equal(first.DedupeKey))
	})

	It("releases the dedupe key when enqueueing fails", func() {
		producer.enqueueFn = func(context.Context, queue.EventMessage) error {
			return errors.New("redis down")
		}
		_, err := svc.Ingest(ctx, params)
		Expect(err).To(MatchError(ContainSubstring("enqueueing event")))
		Expect(deliveries.forgotten).To(Equal([]string{"gitlab:release:uuid-1"}))
	})

	It("validates required fields", func() {
		params.Payload = nil
		_, err := svc.Ingest(ctx, params)
		Expect(err).To(MatchError(ContainSubstring("payload is required")))

		params.Payload = json.RawMessage(`{}`)
		params.EventType = ""
		_, err = svc.Ingest(ctx, params)
		Expect(err).To(MatchError(ContainSubstring("required")))
	})

	It("works without dedupe", func() {
		svc = service.NewEventIngestService(nil, producer, nil)
		_, err := svc.Ingest(ctx, params)
		Expect(err).NotTo(HaveOccurred())
		_, err = svc.Ingest(ctx, params)
		Expect(err).NotTo(HaveOccurred())
		Expect(producer.messages).To(HaveLen(2))
	})
})
