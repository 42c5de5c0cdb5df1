package model

// AnswererProfile is a contributor identity together with the questions it answered.
type AnswererProfile struct {
	ID               string     `json:"id"`
	DisplayName      string     `json:"display_name"`
	ExternalUsername string     `json:"external_username"`
	Avatar           string     `json:"avatar"`
	IsStaff          bool       `json:"is_staff"`
	Questions        []Question `json:"questions"`
}

// UnknownDisplayName is shown when a contributor could not be resolved.
const UnknownDisplayName = "unknown user"

// DefaultProfile is the profile used when identity resolution fails.
func DefaultProfile(id string) AnswererProfile {
	return AnswererProfile{ID: id, DisplayName: UnknownDisplayName}
}

// Clone returns a copy whose question list can be changed without touching p.
func (p AnswererProfile) Clone() AnswererProfile {
	out := p
	out.Questions = make([]Question, len(p.Questions))
	for i, q := range p.Questions {
		if q.Answer != nil {
			a := *q.Answer
			if a.SelectedAt != nil {
				at := *a.SelectedAt
				a.SelectedAt = &at
			}
			q.Answer = &a
		}
		out.Questions[i] = q
	}
	return out
}
