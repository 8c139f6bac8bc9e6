package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbot/schedule-api/internal/models"
)

func newMockRepo(t *testing.T) (*EnrollmentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEnrollmentRepository(sqlx.NewDb(db, "postgres")), mock
}

func enrollmentRows(records ...models.EnrollmentRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "class_id", "section_id"})
	for _, r := range records {
		rows.AddRow(r.ID, r.UserID, r.ClassID, r.SectionID)
	}
	return rows
}

func TestListByUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, user_id, class_id, section_id FROM enrollments WHERE user_id = $1 ORDER BY id`,
	)).WithArgs("u1").WillReturnRows(enrollmentRows(
		models.EnrollmentRecord{ID: "1", UserID: "u1", ClassID: "MA1021", SectionID: "AL01"},
		models.EnrollmentRecord{ID: "2", UserID: "u1", ClassID: "CS2102", SectionID: "B01"},
	))

	records, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "MA1021", records[0].ClassID)
	assert.Equal(t, "B01", records[1].SectionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserAndTermPrefix(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, user_id, class_id, section_id FROM enrollments WHERE user_id = $1 AND section_id LIKE $2 ORDER BY id`,
	)).WithArgs("u1", "A%").WillReturnRows(enrollmentRows(
		models.EnrollmentRecord{ID: "1", UserID: "u1", ClassID: "MA1021", SectionID: "AL01"},
	))

	records, err := repo.ListByUserAndTermPrefix(context.Background(), "u1", "A")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "AL01", records[0].SectionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsertAssignsMissingIDs(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO enrollments`).
		WithArgs(sqlmock.AnyArg(), "u1", "MA1021", "AL01").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO enrollments`).
		WithArgs("fixed-id", "u1", "CS2102", "B01").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.BulkInsert(context.Background(), []models.EnrollmentRecord{
		{UserID: "u1", ClassID: "MA1021", SectionID: "AL01"},
		{ID: "fixed-id", UserID: "u1", ClassID: "CS2102", SectionID: "B01"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsertEmptyBatchIsNoop(t *testing.T) {
	repo, mock := newMockRepo(t)

	require.NoError(t, repo.BulkInsert(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM enrollments WHERE user_id = $1`)).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.DeleteByUser(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
