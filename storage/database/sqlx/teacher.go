package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/campushq/eventsync/core/teacher"
)

type teacherRepository struct {
	db *sqlx.DB
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherRepository(db *sqlx.DB) *teacherRepository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) CheckEmailUniqueness(ctx context.Context, email string) error {
	var count int
	if err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM teacher WHERE email = $1`, email); err != nil {
		return err
	}
	if count > 0 {
		return teacher.ErrEmailExists
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, t teacher.Teacher) (teacher.Teacher, error) {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO teacher (id, name, email, department, subject, phone, teacher_id, is_active, created_by, created_at)
		VALUES (:id, :name, :email, :department, :subject, :phone, :teacher_id, :is_active, :created_by, :created_at)`,
		t,
	)
	return t, err
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	var teachers []teacher.Teacher
	err := repo.db.SelectContext(ctx, &teachers, `SELECT * FROM teacher ORDER BY teacher_id`)
	return teachers, err
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id string) (teacher.Teacher, error) {
	var t teacher.Teacher
	err := repo.db.GetContext(ctx, &t, `SELECT * FROM teacher WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	return t, err
}

func (repo *teacherRepository) CountTeachers(ctx context.Context) (int, error) {
	var count int
	err := repo.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM teacher`)
	return count, err
}

func (repo *teacherRepository) DeleteTeacher(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM teacher WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return teacher.ErrNotFound
	}
	return nil
}
