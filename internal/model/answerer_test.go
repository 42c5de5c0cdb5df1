package model_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"supportbot.app/hub/internal/model"
)

var _ = Describe("AnswererProfile", func() {
	Describe("Clone", func() {
		var (
			selectedAt time.Time
			original   model.AnswererProfile
		)

		BeforeEach(func() {
			selectedAt = time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)
			original = model.DefaultProfile("staff-1")
			original.Questions = []model.Question{{
				ID:     "q1",
				Answer: &model.Answer{ID: "a1", OwnerID: "staff-1", SelectedAt: &selectedAt},
			}}
		})

		It("copies the question list", func() {
			clone := original.Clone()
			clone.Questions[0].ID = "changed"
			clone.Questions = append(clone.Questions, model.Question{ID: "q2"})

			Expect(original.Questions).To(HaveLen(1))
			Expect(original.Questions[0].ID).To(Equal("q1"))
		})

		It("copies answers and their selection time", func() {
			clone := original.Clone()
			clone.Questions[0].Answer.OwnerID = "someone-else"
			*clone.Questions[0].Answer.SelectedAt = selectedAt.Add(time.Hour)

			Expect(original.Questions[0].Answer.OwnerID).To(Equal("staff-1"))
			Expect(*original.Questions[0].Answer.SelectedAt).To(Equal(selectedAt))
			Expect(clone.Questions[0].Answer.SelectedAt).NotTo(BeIdenticalTo(original.Questions[0].Answer.SelectedAt))
		})
	})
})
