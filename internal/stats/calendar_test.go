package stats_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"supportbot.app/hub/internal/stats"
)

var _ = Describe("Calendar", func() {
	Describe("ParseUnit", func() {
		DescribeTable("accepts singular and plural names",
			func(input string, want stats.Unit) {
				got, err := stats.ParseUnit(input)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want))
			},
			Entry("days", "days", stats.UnitDays),
			Entry("day", "day", stats.UnitDays),
			Entry("Weeks", "Weeks", stats.UnitWeeks),
			Entry("month", " month ", stats.UnitMonths),
			Entry("years", "years", stats.UnitYears),
		)

		It("rejects unknown units", func() {
			_, err := stats.ParseUnit("fortnights")
			Expect(errors.Is(err, stats.ErrUnsupportedUnit)).To(BeTrue())
		})
	})

	Describe("RoundUp", func() {
		It("leaves days untouched", func() {
			t := time.Date(2022, 1, 5, 13, 30, 0, 0, time.UTC)
			got, err := stats.RoundUp(stats.UnitDays, t)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(t))
		})

		It("moves a Saturday to the following Monday", func() {
			got, err := stats.RoundUp(stats.UnitWeeks, day(2022, 1, 1))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(day(2022, 1, 3)))
		})

		It("moves a Sunday to the next day", func() {
			got, err := stats.RoundUp(stats.UnitWeeks, day(2022, 1, 2))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(day(2022, 1, 3)))
		})

		It("moves a Tuesday six days forward", func() {
			got, err := stats.RoundUp(stats.UnitWeeks, day(2022, 1, 4))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(day(2022, 1, 10)))
		})

		It("keeps a Monday", func() {
			got, err := stats.RoundUp(stats.UnitWeeks, day(2022, 1, 10))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(day(2022, 1, 10)))
		})

		It("moves mid-month to the first of the next month", func() {
			got, err := stats.RoundUp(stats.UnitMonths, day(2022, 1, 15))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(day(2022, 2, 1)))
		})

		It("crosses the year boundary for December", func() {
			got, err := stats.RoundUp(stats.UnitMonths, day(2021, 12, 31))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(day(2022, 1, 1)))
		})

		It("keeps the first of the month", func() {
			got, err := stats.RoundUp(stats.UnitMonths, day(2022, 3, 1))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(day(2022, 3, 1)))
		})

		It("moves to January 1 of the next year", func() {
			got, err := stats.RoundUp(stats.UnitYears, day(2022, 1, 2))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(day(2023, 1, 1)))
		})

		It("keeps January 1", func() {
			got, err := stats.RoundUp(stats.UnitYears, day(2022, 1, 1))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(day(2022, 1, 1)))
		})

		It("reports unsupported units", func() {
			_, err := stats.RoundUp("fortnights", day(2022, 1, 1))
			Expect(errors.Is(err, stats.ErrUnsupportedUnit)).To(BeTrue())
		})

		It("is monotone and idempotent and lands on boundaries", func() {
			start := time.Date(2020, 2, 20, 7, 45, 0, 0, time.UTC)
			for i := 0; i < 400; i++ {
				t := start.Add(time.Duration(i) * 37 * time.Hour)
				for _, unit := range []stats.Unit{stats.UnitDays, stats.UnitWeeks, stats.UnitMonths, stats.UnitYears} {
					once, err := stats.RoundUp(unit, t)
					Expect(err).NotTo(HaveOccurred())
					twice, err := stats.RoundUp(unit, once)
					Expect(err).NotTo(HaveOccurred())

					Expect(once.Before(t)).To(BeFalse(), "unit %s at %s", unit, t)
					Expect(twice).To(Equal(once))

					switch unit {
					case stats.UnitWeeks:
						Expect(once.Weekday()).To(Equal(time.Monday))
					case stats.UnitMonths:
						Expect(once.Day()).To(Equal(1))
					case stats.UnitYears:
						Expect(once.Month()).To(Equal(time.January))
						Expect(once.Day()).To(Equal(1))
					}
				}
			}
		})
	})

	Describe("Advance", func() {
		DescribeTable("adds one unit",
			func(unit stats.Unit, from, want time.Time) {
				got, err := stats.Advance(unit, from)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want))
			},
			Entry("day", stats.UnitDays, day(2022, 2, 28), day(2022, 3, 1)),
			Entry("leap day", stats.UnitDays, day(2024, 2, 28), day(2024, 2, 29)),
			Entry("week", stats.UnitWeeks, day(2022, 1, 3), day(2022, 1, 10)),
			Entry("month", stats.UnitMonths, day(2022, 1, 1), day(2022, 2, 1)),
			Entry("month across years", stats.UnitMonths, day(2022, 12, 1), day(2023, 1, 1)),
			Entry("year", stats.UnitYears, day(2022, 1, 1), day(2023, 1, 1)),
			Entry("year from leap day", stats.UnitYears, day(2024, 2, 29), day(2025, 3, 1)),
		)

		It("reports unsupported units", func() {
			_, err := stats.Advance("fortnights", day(2022, 1, 1))
			Expect(errors.Is(err, stats.ErrUnsupportedUnit)).To(BeTrue())
		})
	})
})
