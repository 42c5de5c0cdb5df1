package stats_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"supportbot.app/hub/internal/model"
	"supportbot.app/hub/internal/stats"
)

var _ = Describe("PartitionByCategory", func() {
	var (
		questions []model.Question
		isStaff   stats.StaffFunc
	)

	BeforeEach(func() {
		questions = []model.Question{
			unsolved("q1", "help-a", day(2022, 1, 1)),
			answeredBy("q2", "help-a", day(2022, 1, 2), "staff-1"),
			answeredBy("q3", "help-b", day(2022, 1, 3), "member-1"),
			{ID: "q4", ChannelName: "help-b", CreatedAt: day(2022, 1, 4), IsSolved: true},
			answeredBy("q5", "help-c", day(2022, 1, 5), "unknown"),
		}
		isStaff = stats.StaffSet(map[string]bool{"staff-1": true, "member-1": false})
	})

	It("puts every question in total", func() {
		p := stats.PartitionByCategory(questions, isStaff)
		Expect(p.Count(stats.CategoryTotal)).To(Equal(len(questions)))
		Expect(ids(p.Total)).To(Equal([]string{"q1", "q2", "q3", "q4", "q5"}))
	})

	It("classifies by solved flag and staff lookup", func() {
		p := stats.PartitionByCategory(questions, isStaff)
		Expect(ids(p.Unanswered)).To(Equal([]string{"q1"}))
		Expect(ids(p.Staff)).To(Equal([]string{"q2"}))
		Expect(ids(p.Community)).To(Equal([]string{"q3", "q5"}))
	})

	It("keeps a solved question without an answer only in total", func() {
		p := stats.PartitionByCategory(questions, isStaff)
		for _, c := range []stats.Category{stats.CategoryUnanswered, stats.CategoryStaff, stats.CategoryCommunity} {
			Expect(ids(p.Get(c))).NotTo(ContainElement("q4"))
		}
		_, ok := stats.Classify(questions[3], isStaff)
		Expect(ok).To(BeFalse())
	})

	It("treats everyone as community without a staff lookup", func() {
		p := stats.PartitionByCategory(questions, nil)
		Expect(p.Staff).To(BeEmpty())
		Expect(ids(p.Community)).To(Equal([]string{"q2", "q3", "q5"}))
	})

	It("handles empty input", func() {
		p := stats.PartitionByCategory(nil, isStaff)
		Expect(p.Counts()).To(Equal(stats.CategoryCounts{}))
	})

	It("derives counts from the lists", func() {
		p := stats.PartitionByCategory(questions, isStaff)
		Expect(p.Counts()).To(Equal(stats.CategoryCounts{Total: 5, Unanswered: 1, Staff: 1, Community: 2}))
	})
})

var _ = Describe("Partition", func() {
	It("merges in order", func() {
		a := stats.Partition{Total: []model.Question{{ID: "1"}}, Staff: []model.Question{{ID: "1"}}}
		b := stats.Partition{Total: []model.Question{{ID: "2"}}, Community: []model.Question{{ID: "2"}}}
		merged := a.Merge(b)
		Expect(ids(merged.Total)).To(Equal([]string{"1", "2"}))
		Expect(ids(merged.Staff)).To(Equal([]string{"1"}))
		Expect(ids(merged.Community)).To(Equal([]string{"2"}))
		Expect(ids(a.Total)).To(Equal([]string{"1"}))
	})

	It("returns nil for an unknown category", func() {
		Expect(stats.Partition{}.Get("other")).To(BeNil())
	})
})
