package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campushq/eventsync/core/user"
)

type revocationRepository struct {
	db *sqlx.DB
}

var _ user.RevocationRepository = (*revocationRepository)(nil)

func NewRevocationRepository(db *sqlx.DB) *revocationRepository {
	return &revocationRepository{db: db}
}

// RevokeToken appends to the deny-list. ON CONFLICT DO NOTHING makes
// concurrent logouts with the same token converge to the same end state.
func (repo *revocationRepository) RevokeToken(ctx context.Context, rt user.RevokedToken) error {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO revoked_token (token, expires_at, revoked_at)
		VALUES (:token, :expires_at, :revoked_at)
		ON CONFLICT (token) DO NOTHING`,
		rt,
	)
	return err
}

func (repo *revocationRepository) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM revoked_token WHERE token = $1`, token); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *revocationRepository) PurgeExpiredTokens(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM revoked_token WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
