package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"supportbot.app/hub/internal/model"
	"supportbot.app/hub/internal/service/chat"
	"supportbot.app/hub/internal/store"
)

// StaffChecker answers access-level questions about guild members from their Discord roles.
type StaffChecker interface {
	IsStaff(ctx context.Context, userID string) bool
	IsAdmin(ctx context.Context, userID string) bool
	// HasLevel reports whether any of roles is mapped to level. An error means the
	// role mapping could not be read.
	HasLevel(ctx context.Context, roles []string, level model.AccessLevel) (bool, error)
}

type staffChecker struct {
	chat    chat.ChatService
	roles   store.RoleStore
	guildID string
}

func NewStaffChecker(chatService chat.ChatService, roles store.RoleStore, guildID string) StaffChecker {
	return &staffChecker{chat: chatService, roles: roles, guildID: guildID}
}

func (s *staffChecker) IsStaff(ctx context.Context, userID string) bool {
	return s.memberHasLevel(ctx, userID, model.AccessLevelStaff)
}

func (s *staffChecker) IsAdmin(ctx context.Context, userID string) bool {
	return s.memberHasLevel(ctx, userID, model.AccessLevelAdmin)
}

func (s *staffChecker) memberHasLevel(ctx context.Context, userID string, level model.AccessLevel) bool {
	member, err := s.chat.Member(ctx, userID)
	if err != nil {
		if !errors.Is(err, chat.ErrNotFound) {
			slog.WarnContext(ctx, "failed to fetch member for access check",
				"error", err,
				"user_id", userID,
				"access_level", level)
		}
		return false
	}
	ok, err := s.HasLevel(ctx, member.Roles, level)
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch access level roles",
			"error", err,
			"access_level", level)
		return false
	}
	return ok
}

func (s *staffChecker) HasLevel(ctx context.Context, roles []string, level model.AccessLevel) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}
	roleIDs, err := s.roles.ListRoleIDs(ctx, s.guildID, level)
	if err != nil {
		return false, fmt.Errorf("listing %s roles: %w", level, err)
	}

	held := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		held[r] = struct{}{}
	}
	for _, id := range roleIDs {
		if _, ok := held[id]; ok {
			return true, nil
		}
	}
	return false, nil
}
