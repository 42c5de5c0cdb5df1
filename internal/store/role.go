package store

import (
	"context"
	"fmt"

	"supportbot.app/hub/core/db"
	"supportbot.app/hub/internal/model"
)

const listRoleIDs = `SELECT discord_role_id
FROM roles
WHERE guild_id = $1 AND access_level = ANY($2)
ORDER BY discord_role_id`

type roleStore struct {
	q db.Querier
}

func newRoleStore(q db.Querier) RoleStore {
	return &roleStore{q: q}
}

func (s *roleStore) ListRoleIDs(ctx context.Context, guildID string, levels ...model.AccessLevel) ([]string, error) {
	if len(levels) == 0 {
		return []string{}, nil
	}
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = string(l)
	}

	rows, err := s.q.Query(ctx, listRoleIDs, guildID, names)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var roleID string
		if err := rows.Scan(&roleID); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}
		ids = append(ids, roleID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	return ids, nil
}
