package stats_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"supportbot.app/hub/internal/model"
	"supportbot.app/hub/internal/stats"
)

var _ = Describe("Filter pipeline", func() {
	var channels []string

	BeforeEach(func() {
		channels = []string{"help-a", "help-b", "help-c"}
	})

	Describe("FilterQuestions", func() {
		It("buckets a monthly range", func() {
			partition := stats.PartitionByCategory([]model.Question{
				unsolved("q1", "help-a", day(2022, 1, 1)),
				answeredBy("q2", "help-b", day(2022, 1, 2), "staff-1"),
				answeredBy("q3", "help-c", day(2022, 2, 1), "member-1"),
			}, stats.StaffSet(map[string]bool{"staff-1": true}))

			m := stats.FilterQuestions(channels, stats.DateRange{Start: day(2022, 1, 1), End: day(2022, 2, 15)},
				stats.UnitMonths, partition, day(2022, 3, 1))

			Expect(m.Buckets).To(HaveLen(2))
			Expect(m.Buckets[0].Partition.Counts()).To(Equal(stats.CategoryCounts{Total: 2, Unanswered: 1, Staff: 1}))
			Expect(m.Buckets[1].Partition.Counts()).To(Equal(stats.CategoryCounts{Total: 1, Community: 1}))
			Expect(m.Aggregate.Counts()).To(Equal(stats.CategoryCounts{Total: 3, Unanswered: 1, Staff: 1, Community: 1}))
		})

		It("drops questions outside the channel list", func() {
			partition := stats.PartitionByCategory([]model.Question{
				unsolved("q1", "help-a", day(2022, 1, 1)),
				unsolved("q2", "general", day(2022, 1, 1)),
			}, nil)

			m := stats.FilterQuestions([]string{"help-a"}, stats.DateRange{Start: day(2022, 1, 1), End: day(2022, 1, 1)},
				stats.UnitDays, partition, day(2022, 1, 2))
			Expect(ids(m.Aggregate.Total)).To(Equal([]string{"q1"}))
		})

		It("does not modify the input partition", func() {
			partition := stats.PartitionByCategory([]model.Question{
				unsolved("q1", "help-a", day(2022, 1, 1)),
				unsolved("q2", "general", day(2022, 1, 1)),
			}, nil)
			stats.FilterQuestions([]string{"help-a"}, stats.DateRange{Start: day(2022, 1, 1), End: day(2022, 1, 1)},
				stats.UnitDays, partition, day(2022, 1, 2))
			Expect(ids(partition.Total)).To(Equal([]string{"q1", "q2"}))
		})

		It("still returns an aggregate for an unsupported unit", func() {
			partition := stats.PartitionByCategory([]model.Question{
				unsolved("q1", "help-a", day(2022, 1, 1)),
			}, nil)
			m := stats.FilterQuestions(channels, stats.DateRange{Start: day(2022, 1, 1), End: day(2022, 6, 1)},
				"fortnights", partition, day(2022, 7, 1))
			Expect(m.Buckets).To(HaveLen(1))
			Expect(m.Aggregate.Count(stats.CategoryTotal)).To(Equal(1))
		})
	})

	Describe("FilterAnswers", func() {
		var contributors *stats.Contributors

		BeforeEach(func() {
			resolver := newFakeResolver()
			contributors = stats.ResolveContributors(context.Background(), []model.Question{
				answeredBy("q1", "help-b", day(2022, 1, 1), "u1"),
				answeredBy("q2", "help-b", day(2022, 1, 5), "u1"),
				answeredBy("q3", "help-a", day(2022, 1, 10), "u2"),
				answeredBy("q4", "help-a", day(2022, 2, 10), "u2"),
			}, resolver, 1)
		})

		It("keeps profiles whose questions are all filtered out", func() {
			out := stats.FilterAnswers([]string{"help-a"}, stats.DateRange{Start: day(2022, 1, 1), End: day(2022, 12, 31)}, contributors)
			Expect(out.Len()).To(Equal(2))
			u1, ok := out.Get("u1")
			Expect(ok).To(BeTrue())
			Expect(u1.Questions).To(BeEmpty())
		})

		It("restricts by channel, then by [start, end)", func() {
			out := stats.FilterAnswers([]string{"help-a", "help-b"}, stats.DateRange{Start: day(2022, 1, 5), End: day(2022, 2, 10)}, contributors)
			u1, _ := out.Get("u1")
			Expect(ids(u1.Questions)).To(Equal([]string{"q2"}))
			u2, _ := out.Get("u2")
			Expect(ids(u2.Questions)).To(Equal([]string{"q3"}))
		})

		It("never mutates its input", func() {
			before := contributors.Profiles()
			out := stats.FilterAnswers([]string{"help-a"}, stats.DateRange{Start: day(2022, 1, 1), End: day(2022, 1, 2)}, contributors)
			Expect(contributors.Profiles()).To(Equal(before))

			u2, _ := out.Get("u2")
			Expect(u2.Questions).To(BeEmpty())
			orig, _ := contributors.Get("u2")
			Expect(orig.Questions).To(HaveLen(2))
		})

		It("copies answers so they cannot leak back", func() {
			out := stats.FilterAnswers([]string{"help-a", "help-b"}, stats.DateRange{Start: day(2022, 1, 1), End: day(2023, 1, 1)}, contributors)
			u1, _ := out.Get("u1")
			u1.Questions[0].Answer.OwnerID = "changed"

			orig, _ := contributors.Get("u1")
			Expect(orig.Questions[0].Answer.OwnerID).To(Equal("u1"))
		})

		It("returns an empty mapping for nil input", func() {
			out := stats.FilterAnswers([]string{"help-a"}, stats.DateRange{Start: time.Time{}, End: day(2030, 1, 1)}, nil)
			Expect(out.Len()).To(Equal(0))
		})
	})
})
