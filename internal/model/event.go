package model

import "time"

// EventType is the canonical kind of a code-host webhook delivery.
type EventType string

const (
	EventRelease EventType = "release"
	EventMember  EventType = "member"
)

// ReleaseEvent is a published release on the code host.
type ReleaseEvent struct {
	Project     string    `json:"project"`
	ProjectURL  string    `json:"project_url"`
	Name        string    `json:"name"`
	Tag         string    `json:"tag"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Action      string    `json:"action"`
	ReleasedAt  time.Time `json:"released_at"`
}

// MemberEvent is a change of group membership on the code host.
type MemberEvent struct {
	EventName string `json:"event_name"`
	GroupPath string `json:"group_path"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"user_username"`
}
