package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/campushq/eventsync/core/notice"
)

type noticeRepository struct {
	db *sqlx.DB
}

var _ notice.Repository = (*noticeRepository)(nil)

func NewNoticeRepository(db *sqlx.DB) *noticeRepository {
	return &noticeRepository{db: db}
}

func (repo *noticeRepository) CreateNotice(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO notice (id, title, content, start_date, end_date, audience, priority, created_by, created_at, updated_at)
		VALUES (:id, :title, :content, :start_date, :end_date, :audience, :priority, :created_by, :created_at, :updated_at)`,
		n,
	)
	return n, err
}

func (repo *noticeRepository) QueryAllNotices(ctx context.Context) ([]notice.Notice, error) {
	var notices []notice.Notice
	err := repo.db.SelectContext(ctx, &notices, `SELECT * FROM notice ORDER BY priority, created_at DESC`)
	return notices, err
}

func (repo *noticeRepository) GetNoticeByID(ctx context.Context, id string) (notice.Notice, error) {
	var n notice.Notice
	err := repo.db.GetContext(ctx, &n, `SELECT * FROM notice WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return notice.Notice{}, notice.ErrNotFound
	}
	return n, err
}

func (repo *noticeRepository) UpdateNotice(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE notice
		SET title = :title, content = :content, start_date = :start_date, end_date = :end_date,
		    audience = :audience, priority = :priority, updated_at = :updated_at
		WHERE id = :id`,
		n,
	)
	if err != nil {
		return notice.Notice{}, err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return notice.Notice{}, notice.ErrNotFound
	}
	return n, nil
}

func (repo *noticeRepository) DeleteNotice(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM notice WHERE id = $1`, id)
	return err
}
