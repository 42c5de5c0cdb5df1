// Package chat wraps the Discord REST API behind the calls the dashboard and worker need.
package chat

import (
	"context"
	"errors"

	"supportbot.app/hub/core/config"
	"supportbot.app/hub/internal/model"
)

// ErrNotFound is returned when Discord reports an unknown member or channel.
var ErrNotFound = errors.New("chat: not found")

type ChatService interface {
	Member(ctx context.Context, userID string) (*model.Member, error)
	// HelpChannels returns the names of the guild text channels matching rules. Lookup
	// failures are logged and yield an empty list.
	HelpChannels(ctx context.Context, rules config.HelpChannelRules) []string
	Guild(ctx context.Context) (*model.Guild, error)
	Thread(ctx context.Context, channelID string) (*model.Thread, error)
	Announce(ctx context.Context, channelID, content string) error
}
