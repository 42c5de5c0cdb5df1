package worker_test

import (
	"context"
	"errors"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"supportbot.app/hub/internal/queue"
	"supportbot.app/hub/internal/worker"
)

var _ = Describe("RedisReclaimer", func() {
	var (
		ctx      context.Context
		client   *redis.Client
		consumer *queue.RedisConsumer
		cfg      worker.RedisReclaimerConfig
	)

	BeforeEach(func() {
		ctx = context.Background()
		mr := miniredis.RunT(GinkgoT())
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		DeferCleanup(client.Close)

		var err error
		consumer, err = queue.NewRedisConsumer(ctx, client, queue.ConsumerConfig{
			Stream:    "events",
			Group:     "hub",
			Consumer:  "dead-worker",
			DLQStream: "events_dlq",
			BatchSize: 10,
			Block:     -1,
		})
		Expect(err).NotTo(HaveOccurred())

		cfg = worker.RedisReclaimerConfig{
			Stream:    "events",
			Group:     "hub",
			Consumer:  "reclaimer",
			MinIdle:   0,
			Interval:  time.Minute,
			BatchSize: 10,
		}

		producer := queue.NewRedisProducer(client, "events", nil)
		Expect(producer.Enqueue(ctx, queue.EventMessage{EventID: 1, EventType: "release", Payload: []byte("{}")})).To(Succeed())
		Expect(producer.Enqueue(ctx, queue.EventMessage{EventID: 2, EventType: "member", Payload: []byte("{}")})).To(Succeed())

		// Delivered but never acked.
		msgs, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(msgs).To(HaveLen(2))
	})

	It("hands stale pending messages to the processor", func() {
		var seen []int64
		reclaimer := worker.NewRedisReclaimer(client, cfg, consumer, func(ctx context.Context, msg queue.Message) error {
			seen = append(seen, msg.EventID)
			return consumer.Ack(ctx, msg)
		})

		claimed, err := reclaimer.ReclaimOnce(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(claimed).To(Equal(2))
		Expect(seen).To(ConsistOf(int64(1), int64(2)))

		pending, err := client.XPending(ctx, "events", "hub").Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(pending.Count).To(BeZero())
	})

	It("keeps going when one message fails", func() {
		var calls int
		reclaimer := worker.NewRedisReclaimer(client, cfg, consumer, func(ctx context.Context, msg queue.Message) error {
			calls++
			return errors.New("processing failed")
		})

		claimed, err := reclaimer.ReclaimOnce(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(claimed).To(Equal(2))
		Expect(calls).To(Equal(2))
	})
})
