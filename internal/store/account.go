package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"supportbot.app/hub/core/db"
	"supportbot.app/hub/internal/model"
)

const getLinkedAccountID = `SELECT account_id
FROM accounts
WHERE discord_user_id = $1 AND provider = $2`

const getDiscordUserID = `SELECT discord_user_id
FROM accounts
WHERE provider = $1 AND account_id = $2`

type accountStore struct {
	q db.Querier
}

func newAccountStore(q db.Querier) AccountStore {
	return &accountStore{q: q}
}

func (s *accountStore) LinkedAccountID(ctx context.Context, discordUserID string, provider model.Provider) (string, error) {
	return s.scanOne(ctx, getLinkedAccountID, discordUserID, string(provider))
}

func (s *accountStore) DiscordUserID(ctx context.Context, provider model.Provider, accountID string) (string, error) {
	return s.scanOne(ctx, getDiscordUserID, string(provider), accountID)
}

func (s *accountStore) scanOne(ctx context.Context, sql string, args ...any) (string, error) {
	var out string
	if err := s.q.QueryRow(ctx, sql, args...).Scan(&out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return out, nil
}
