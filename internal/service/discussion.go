package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"supportbot.app/hub/common"
	"supportbot.app/hub/common/logger"
	"supportbot.app/hub/internal/model"
	"supportbot.app/hub/internal/service/chat"
	"supportbot.app/hub/internal/service/issue_tracker"
	"supportbot.app/hub/internal/store"
)

var (
	ErrNotAdmin           = errors.New("only admins can create discussions")
	ErrNotThread          = errors.New("channel is not a thread")
	ErrUnknownRepository  = errors.New("unknown repository")
	ErrThreadNotFound     = errors.New("thread not found")
	ErrTrackerUnavailable = errors.New("code host is not configured")
)

type CreateDiscussionParams struct {
	ThreadID   string `json:"thread_id"`
	Repository string `json:"repository"`
	ActorID    string `json:"actor_id"`
}

type DiscussionService interface {
	// CreateFromThread posts a help thread to a code-host repository on behalf of an admin.
	// ActorID is trusted as given; callers must have authenticated it. Non-admins get
	// ErrNotAdmin before the thread is looked up.
	CreateFromThread(ctx context.Context, params CreateDiscussionParams) (*model.Discussion, error)
}

type discussionService struct {
	chat         chat.ChatService
	staff        StaffChecker
	questions    store.QuestionStore
	tracker      issue_tracker.IssueTrackerService
	repositories map[string]string
	suffixes     []string
}

// NewDiscussionService maps repository names to project paths through repositories.
// Help-channel suffixes are dropped from the channel label.
func NewDiscussionService(
	chatService chat.ChatService,
	staff StaffChecker,
	questions store.QuestionStore,
	tracker issue_tracker.IssueTrackerService,
	repositories map[string]string,
	suffixes []string,
) DiscussionService {
	return &discussionService{
		chat:         chatService,
		staff:        staff,
		questions:    questions,
		tracker:      tracker,
		repositories: repositories,
		suffixes:     suffixes,
	}
}

func (s *discussionService) CreateFromThread(ctx context.Context, params CreateDiscussionParams) (*model.Discussion, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "hub.service.discussion"})

	if !s.staff.IsAdmin(ctx, params.ActorID) {
		return nil, ErrNotAdmin
	}

	thread, err := s.chat.Thread(ctx, params.ThreadID)
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if !thread.IsThread {
		return nil, ErrNotThread
	}

	project, ok := s.repositories[params.Repository]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRepository, params.Repository)
	}
	if s.tracker == nil {
		return nil, ErrTrackerUnavailable
	}

	title := thread.Name
	threadURL := ""
	body := ""
	if q, err := s.questions.GetByThreadID(ctx, params.ThreadID); err == nil {
		ctx = logger.WithLogFields(ctx, logger.LogFields{QuestionID: logger.Ptr(q.ID)})
		if q.Title != "" {
			title = q.Title
		}
		threadURL = q.URL
		if q.Answer != nil && q.Answer.Content != "" {
			body = "Accepted answer:\n\n" + q.Answer.Content
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		slog.WarnContext(ctx, "failed to load question for thread", "error", err, "thread_id", params.ThreadID)
	}

	var labels []string
	if label, err := common.ChannelLabel(thread.ParentName, s.suffixes, ""); err == nil {
		labels = append(labels, label)
	}

	discussion, err := s.tracker.CreateDiscussion(ctx, issue_tracker.CreateDiscussionParams{
		Project:   project,
		Title:     title,
		ThreadURL: threadURL,
		Channel:   thread.ParentName,
		Body:      body,
		Labels:    labels,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	slog.InfoContext(ctx, "discussion created from thread",
		"thread_id", params.ThreadID,
		"repository", params.Repository,
		"url", discussion.URL)
	return discussion, nil
}
