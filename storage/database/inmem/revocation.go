package inmemdb

import (
	"context"
	"time"

	"github.com/campushq/eventsync/core/user"
)

type revocationRepository struct {
	db *revokedTokenTable
}

var _ user.RevocationRepository = (*revocationRepository)(nil)

func NewRevocationRepository(db *DB) *revocationRepository {
	return &revocationRepository{db: db.revoked}
}

func (repo *revocationRepository) RevokeToken(_ context.Context, rt user.RevokedToken) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// keep the first entry; revoking twice is a no-op
	if _, ok := repo.db.table[rt.Token]; !ok {
		repo.db.table[rt.Token] = rt
	}
	return nil
}

func (repo *revocationRepository) IsTokenRevoked(_ context.Context, token string) (bool, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	_, ok := repo.db.table[token]
	return ok, nil
}

func (repo *revocationRepository) PurgeExpiredTokens(_ context.Context, cutoff time.Time) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var n int
	for token, rt := range repo.db.table {
		if rt.ExpiresAt.Before(cutoff) {
			delete(repo.db.table, token)
			n++
		}
	}
	return n, nil
}
