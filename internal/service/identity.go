package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"supportbot.app/hub/internal/model"
	"supportbot.app/hub/internal/service/chat"
	"supportbot.app/hub/internal/service/issue_tracker"
	"supportbot.app/hub/internal/stats"
	"supportbot.app/hub/internal/store"
)

// ProfileCache stores resolved profiles between dashboard requests.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*model.AnswererProfile, error)
	Set(ctx context.Context, profile model.AnswererProfile) error
	Delete(ctx context.Context, userID string) error
}

type identityResolver struct {
	chat     chat.ChatService
	staff    StaffChecker
	accounts store.AccountStore
	tracker  issue_tracker.IssueTrackerService
	cache    ProfileCache
}

// NewProfileResolver builds the resolver used for contributor profiles. tracker and cache
// may be nil.
func NewProfileResolver(
	chatService chat.ChatService,
	staff StaffChecker,
	accounts store.AccountStore,
	tracker issue_tracker.IssueTrackerService,
	cache ProfileCache,
) stats.ProfileResolver {
	return &identityResolver{
		chat:     chatService,
		staff:    staff,
		accounts: accounts,
		tracker:  tracker,
		cache:    cache,
	}
}

// Resolve never fails on a partial lookup: a missing member yields the default profile,
// a failed staff check yields false and a failed code-host lookup an empty username.
// Only profiles resolved without transient failures are cached.
func (r *identityResolver) Resolve(ctx context.Context, userID string) (model.AnswererProfile, error) {
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, userID)
		if err != nil {
			slog.WarnContext(ctx, "profile cache read failed", "error", err, "user_id", userID)
		} else if cached != nil {
			return *cached, nil
		}
	}

	profile := model.DefaultProfile(userID)
	complete := true

	member, err := r.chat.Member(ctx, userID)
	switch {
	case err == nil:
		profile.DisplayName = member.Username
		profile.Avatar = member.Avatar
		if profile.DisplayName == "" {
			profile.DisplayName = model.UnknownDisplayName
		}
		isStaff, err := r.staff.HasLevel(ctx, member.Roles, model.AccessLevelStaff)
		if err != nil {
			slog.WarnContext(ctx, "staff role lookup failed", "error", err, "user_id", userID)
			complete = false
		}
		profile.IsStaff = isStaff
	case errors.Is(err, chat.ErrNotFound):
		profile.Avatar = chat.DefaultAvatarURL(0)
	default:
		return model.AnswererProfile{}, fmt.Errorf("fetching member %s: %w", userID, err)
	}

	if profile.IsStaff {
		username, err := r.externalUsername(ctx, userID)
		if err != nil {
			slog.WarnContext(ctx, "code-host username lookup failed", "error", err, "user_id", userID)
			complete = false
		}
		profile.ExternalUsername = username
	}

	if r.cache != nil && complete {
		if err := r.cache.Set(ctx, profile); err != nil {
			slog.WarnContext(ctx, "profile cache write failed", "error", err, "user_id", userID)
		}
	}
	return profile, nil
}

func (r *identityResolver) externalUsername(ctx context.Context, userID string) (string, error) {
	if r.tracker == nil {
		return "", nil
	}
	accountID, err := r.accounts.LinkedAccountID(ctx, userID, model.ProviderGitLab)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("fetching linked account: %w", err)
	}
	username, err := r.tracker.Username(ctx, accountID)
	if err != nil {
		if errors.Is(err, issue_tracker.ErrNotMember) {
			return "", nil
		}
		return "", err
	}
	return username, nil
}
