package store

import (
	"supportbot.app/hub/core/db"
)

// Stores provides access to all store implementations.
// It can be instantiated with either a connection pool or a transaction.
type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Questions() QuestionStore {
	return newQuestionStore(s.q)
}

func (s *Stores) Roles() RoleStore {
	return newRoleStore(s.q)
}

func (s *Stores) Accounts() AccountStore {
	return newAccountStore(s.q)
}
