package issue_tracker

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"supportbot.app/hub/internal/model"
)

type gitLabIssueTrackerService struct {
	client *gitlab.Client
	group  string
}

func NewGitLabIssueTrackerService(baseURL, token, group string) (IssueTrackerService, error) {
	client, err := newClient(baseURL, token)
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}
	return &gitLabIssueTrackerService{client: client, group: group}, nil
}

func (s *gitLabIssueTrackerService) Username(ctx context.Context, accountID string) (string, error) {
	member, err := s.findMember(ctx, accountID)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", ErrNotMember
	}
	return member.Username, nil
}

func (s *gitLabIssueTrackerService) IsGroupMember(ctx context.Context, accountID string) (bool, error) {
	member, err := s.findMember(ctx, accountID)
	if err != nil {
		return false, err
	}
	return member != nil, nil
}

func (s *gitLabIssueTrackerService) CreateDiscussion(ctx context.Context, params CreateDiscussionParams) (*model.Discussion, error) {
	if params.Project == "" {
		return nil, fmt.Errorf("project is required")
	}

	labels := gitlab.LabelOptions(params.Labels)
	issue, _, err := s.client.Issues.CreateIssue(
		params.Project,
		&gitlab.CreateIssueOptions{
			Title:       gitlab.Ptr(params.Title),
			Description: gitlab.Ptr(discussionBody(params)),
			Labels:      &labels,
		},
		gitlab.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("creating issue in gitlab: %w", err)
	}

	return &model.Discussion{
		Project: params.Project,
		IID:     int64(issue.IID),
		Title:   issue.Title,
		URL:     issue.WebURL,
	}, nil
}

// findMember pages through the staff group and returns nil when accountID is not in it.
func (s *gitLabIssueTrackerService) findMember(ctx context.Context, accountID string) (*gitlab.GroupMember, error) {
	if s.group == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(accountID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing gitlab account id %q: %w", accountID, err)
	}

	opts := &gitlab.ListGroupMembersOptions{
		ListOptions: gitlab.ListOptions{
			Page:    1,
			PerPage: 100,
		},
	}
	for {
		members, resp, err := s.client.Groups.ListGroupMembers(s.group, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing group members: %w", err)
		}
		for _, m := range members {
			if m != nil && int64(m.ID) == id {
				return m, nil
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

func discussionBody(params CreateDiscussionParams) string {
	var b strings.Builder
	if params.Body != "" {
		b.WriteString(params.Body)
		b.WriteString("\n\n")
	}
	if params.ThreadURL != "" {
		fmt.Fprintf(&b, "Originally asked in #%s: %s\n", params.Channel, params.ThreadURL)
	}
	return b.String()
}

func newClient(baseURL, token string) (*gitlab.Client, error) {
	if baseURL == "" {
		return gitlab.NewClient(token)
	}
	apiURL := strings.TrimSuffix(baseURL, "/") + "/api/v4"
	return gitlab.NewClient(token, gitlab.WithBaseURL(apiURL))
}
