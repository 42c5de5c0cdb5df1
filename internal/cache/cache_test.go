package cache_test

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"supportbot.app/hub/internal/cache"
	"supportbot.app/hub/internal/model"
)

var _ = Describe("redis caches", func() {
	var (
		ctx    context.Context
		mr     *miniredis.Miniredis
		client *redis.Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		mr = miniredis.RunT(GinkgoT())
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		DeferCleanup(client.Close)
	})

	Describe("Connect", func() {
		It("accepts a plain address", func() {
			c, err := cache.Connect(ctx, mr.Addr())
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Close()).To(Succeed())
		})

		It("accepts a redis URL", func() {
			c, err := cache.Connect(ctx, "redis://"+mr.Addr()+"/0")
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Close()).To(Succeed())
		})
	})

	Describe("ProfileCache", func() {
		var profiles *cache.ProfileCache

		BeforeEach(func() {
			profiles = cache.NewProfileCache(client, time.Minute)
		})

		It("treats a missing key as a miss", func() {
			got, err := profiles.Get(ctx, "u1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})

		It("round-trips a profile without its questions", func() {
			Expect(profiles.Set(ctx, model.AnswererProfile{
				ID:          "u1",
				DisplayName: "alice",
				IsStaff:     true,
				Questions:   []model.Question{{ID: "q1"}},
			})).To(Succeed())

			got, err := profiles.Get(ctx, "u1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.DisplayName).To(Equal("alice"))
			Expect(got.IsStaff).To(BeTrue())
			Expect(got.Questions).To(BeEmpty())
		})

		It("expires entries after the TTL", func() {
			Expect(profiles.Set(ctx, model.AnswererProfile{ID: "u1"})).To(Succeed())
			mr.FastForward(2 * time.Minute)

			got, err := profiles.Get(ctx, "u1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})

		It("deletes entries", func() {
			Expect(profiles.Set(ctx, model.AnswererProfile{ID: "u1"})).To(Succeed())
			Expect(profiles.Delete(ctx, "u1")).To(Succeed())
			Expect(mr.Exists("hub:profile:u1")).To(BeFalse())
		})

		It("reports undecodable entries", func() {
			Expect(mr.Set("hub:profile:u1", "{not json")).To(Succeed())
			_, err := profiles.Get(ctx, "u1")
			Expect(err).To(MatchError(ContainSubstring("decoding cached profile")))
		})
	})

	Describe("DeliveryLog", func() {
		It("accepts a key once until it is forgotten", func() {
			log := cache.NewDeliveryLog(client, time.Hour)

			fresh, err := log.MarkSeen(ctx, "gitlab:release:1")
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh).To(BeTrue())

			fresh, err = log.MarkSeen(ctx, "gitlab:release:1")
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh).To(BeFalse())

			Expect(log.Forget(ctx, "gitlab:release:1")).To(Succeed())
			fresh, err = log.MarkSeen(ctx, "gitlab:release:1")
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh).To(BeTrue())
		})
	})
})
