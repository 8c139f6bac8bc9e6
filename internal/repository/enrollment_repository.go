package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusbot/schedule-api/internal/models"
)

// EnrollmentRepository handles persistence of enrollment rows. It is the
// schedule provider: identifier-only rows, ordered by insertion, with an
// optional term-prefix restriction on the section identifier.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListByUser returns every enrollment row for a user in insertion order.
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]models.EnrollmentRecord, error) {
	const query = `SELECT id, user_id, class_id, section_id FROM enrollments WHERE user_id = $1 ORDER BY id`
	var records []models.EnrollmentRecord
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return records, nil
}

// ListByUserAndTermPrefix returns a user's rows whose section identifier
// carries the given term prefix, in insertion order.
func (r *EnrollmentRepository) ListByUserAndTermPrefix(ctx context.Context, userID, prefix string) ([]models.EnrollmentRecord, error) {
	const query = `SELECT id, user_id, class_id, section_id FROM enrollments WHERE user_id = $1 AND section_id LIKE $2 ORDER BY id`
	var records []models.EnrollmentRecord
	if err := r.db.SelectContext(ctx, &records, query, userID, prefix+"%"); err != nil {
		return nil, fmt.Errorf("list enrollments by term: %w", err)
	}
	return records, nil
}

// BulkInsert persists a batch of enrollment rows, assigning ids where
// missing. Duplicate (user, class, section) rows are silently skipped.
func (r *EnrollmentRepository) BulkInsert(ctx context.Context, records []models.EnrollmentRecord) error {
	if len(records) == 0 {
		return nil
	}
	const query = `INSERT INTO enrollments (id, user_id, class_id, section_id)
        VALUES (:id, :user_id, :class_id, :section_id)
        ON CONFLICT (user_id, class_id, section_id) DO NOTHING`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin enrollment insert: %w", err)
	}
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
		if _, err := tx.NamedExecContext(ctx, query, records[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert enrollment: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit enrollment insert: %w", err)
	}
	return nil
}

// DeleteByUser removes all of a user's rows; used when a fresh roster
// upload replaces the previous one.
func (r *EnrollmentRepository) DeleteByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM enrollments WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete enrollments: %w", err)
	}
	return nil
}
