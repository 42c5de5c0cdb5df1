package stats

import "supportbot.app/hub/internal/model"

// Category is one of the four fixed question categories.
type Category string

const (
	CategoryTotal      Category = "total"
	CategoryUnanswered Category = "unanswered"
	CategoryStaff      Category = "staff"
	CategoryCommunity  Category = "community"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryTotal, CategoryUnanswered, CategoryStaff, CategoryCommunity}

// Partition holds the questions of each category. Counts are derived with Count.
type Partition struct {
	Total      []model.Question
	Unanswered []model.Question
	Staff      []model.Question
	Community  []model.Question
}

// CategoryCounts is the count view of a Partition.
type CategoryCounts struct {
	Total      int `json:"total"`
	Unanswered int `json:"unanswered"`
	Staff      int `json:"staff"`
	Community  int `json:"community"`
}

// StaffFunc reports whether an answer owner holds a staff role. The lookup has already
// been resolved by the caller; a nil StaffFunc treats everyone as community.
type StaffFunc func(identity string) bool

// StaffSet adapts a set of staff identities to a StaffFunc.
func StaffSet(staff map[string]bool) StaffFunc {
	return func(identity string) bool { return staff[identity] }
}

// Get returns the questions of category c.
func (p Partition) Get(c Category) []model.Question {
	switch c {
	case CategoryTotal:
		return p.Total
	case CategoryUnanswered:
		return p.Unanswered
	case CategoryStaff:
		return p.Staff
	case CategoryCommunity:
		return p.Community
	}
	return nil
}

// Count returns the number of questions of category c.
func (p Partition) Count(c Category) int {
	return len(p.Get(c))
}

// Counts returns the count of every category.
func (p Partition) Counts() CategoryCounts {
	return CategoryCounts{
		Total:      len(p.Total),
		Unanswered: len(p.Unanswered),
		Staff:      len(p.Staff),
		Community:  len(p.Community),
	}
}

// Merge returns a partition holding the questions of p followed by those of other.
func (p Partition) Merge(other Partition) Partition {
	return Partition{
		Total:      concat(p.Total, other.Total),
		Unanswered: concat(p.Unanswered, other.Unanswered),
		Staff:      concat(p.Staff, other.Staff),
		Community:  concat(p.Community, other.Community),
	}
}

// Filter keeps, in every category, only the questions for which keep returns true.
func (p Partition) Filter(keep func(model.Question) bool) Partition {
	return Partition{
		Total:      filter(p.Total, keep),
		Unanswered: filter(p.Unanswered, keep),
		Staff:      filter(p.Staff, keep),
		Community:  filter(p.Community, keep),
	}
}

// Classify returns the non-total category of q. ok is false for a solved question
// without an answer owner, which only ever counts towards the total.
func Classify(q model.Question, isStaff StaffFunc) (category Category, ok bool) {
	if !q.IsSolved {
		return CategoryUnanswered, true
	}
	owner := q.AnswerOwner()
	if owner == "" {
		return "", false
	}
	if isStaff != nil && isStaff(owner) {
		return CategoryStaff, true
	}
	return CategoryCommunity, true
}

// PartitionByCategory sorts questions into the four categories, keeping input order.
func PartitionByCategory(questions []model.Question, isStaff StaffFunc) Partition {
	p := Partition{Total: make([]model.Question, 0, len(questions))}
	for _, q := range questions {
		p.Total = append(p.Total, q)
		category, ok := Classify(q, isStaff)
		if !ok {
			continue
		}
		switch category {
		case CategoryUnanswered:
			p.Unanswered = append(p.Unanswered, q)
		case CategoryStaff:
			p.Staff = append(p.Staff, q)
		case CategoryCommunity:
			p.Community = append(p.Community, q)
		}
	}
	return p
}

func concat(a, b []model.Question) []model.Question {
	out := make([]model.Question, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func filter(qs []model.Question, keep func(model.Question) bool) []model.Question {
	out := make([]model.Question, 0, len(qs))
	for _, q := range qs {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}
