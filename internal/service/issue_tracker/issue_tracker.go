package issue_tracker

import (
	"context"
	"errors"

	"supportbot.app/hub/internal/model"
)

// ErrNotMember is returned when an account is not part of the staff group.
var ErrNotMember = errors.New("account is not a group member")

type CreateDiscussionParams struct {
	Project   string // project path, e.g. "acme/cli"
	Title     string
	ThreadURL string // link back to the help thread
	Channel   string // help channel the thread was opened in
	Body      string
	Labels    []string
}

type IssueTrackerService interface {
	// Username returns the code-host username of a staff group member.
	Username(ctx context.Context, accountID string) (string, error)
	IsGroupMember(ctx context.Context, accountID string) (bool, error)
	CreateDiscussion(ctx context.Context, params CreateDiscussionParams) (*model.Discussion, error)
}
