package store

import (
	"taskplane.app/api-server/core/db"
)

type Stores struct {
	q db.Querier
}

// NewStores binds the stores to a Querier: the pool for regular operations,
// or a transaction inside TxRunner.WithTx.
func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.q)
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.q)
}

func (s *Stores) Projects() ProjectStore {
	return newProjectStore(s.q)
}

func (s *Stores) Tasks() TaskStore {
	return newTaskStore(s.q)
}
