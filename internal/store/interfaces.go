package store

import (
	"context"
	"errors"

	"supportbot.app/hub/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// QuestionStore defines the contract for question data access
type QuestionStore interface {
	// ListWithAnswers returns every question of the guild with its selected answer, oldest first.
	ListWithAnswers(ctx context.Context, guildID string) ([]model.Question, error)
	GetByThreadID(ctx context.Context, threadID string) (*model.Question, error)
}

// RoleStore defines the contract for access-level role data access
type RoleStore interface {
	// ListRoleIDs returns the Discord role ids mapped to any of the given access levels.
	ListRoleIDs(ctx context.Context, guildID string, levels ...model.AccessLevel) ([]string, error)
}

// AccountStore defines the contract for linked account data access
type AccountStore interface {
	LinkedAccountID(ctx context.Context, discordUserID string, provider model.Provider) (string, error)
	DiscordUserID(ctx context.Context, provider model.Provider, accountID string) (string, error)
}
