package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/portfolio-cms/portfolio-api/internal/core/domain"
)

func setupDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Error mocking DB")

	db, err := Open(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err, "Error opening gorm")

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "Expectations were not met")
		_ = sqlDB.Close()
	})
	return db, mock
}

func TestUserRepository_FindByUsername(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "user" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "is_admin"}).
			AddRow("bob", "hash", true))

	user, err := repo.FindByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.True(t, user.IsAdmin)
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "user" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "is_admin"}))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_Exists(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "user" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.Exists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`DELETE FROM "user" WHERE username = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_StorageErrorIsWrapped(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "user" WHERE username = \$1`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByUsername(context.Background(), "bob")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestContentRepository_FindByID(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewServiceRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "service" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_by", "last_modified_by", "is_published"}).
			AddRow(7, "Consulting", "alice", "alice", false))

	svc, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), svc.ID)
	assert.Equal(t, "Consulting", svc.Title)
	assert.Equal(t, domain.StateDraft, svc.State())
}

func TestContentRepository_ListPublishedFilters(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "project" WHERE is_published = \$1 ORDER BY project_id`).
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "project_image", "category_id", "is_published"}).
			AddRow(1, "a.png", 2, true))

	items, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
}

func TestContentRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewProjectRepository(db)

	mock.ExpectExec(`DELETE FROM "project" WHERE project_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestContentRepository_Update_RollsBackWhenMutationFails(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewServiceRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_by", "last_modified_by", "is_published"}).
			AddRow(3, "Design", "alice", "alice", false))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 3, func(context.Context, *domain.Service) error {
		return domain.ErrNotApprover
	})
	assert.ErrorIs(t, err, domain.ErrNotApprover)
}

func TestContentRepository_Update_MissingRow(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewServiceRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	called := false
	_, err := repo.Update(context.Background(), 3, func(context.Context, *domain.Service) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
	assert.False(t, called)
}

func TestContentRepository_Update_CommitsApproval(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewServiceRepository(db)
	approvedAt := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_by", "last_modified_by", "is_published"}).
			AddRow(3, "Design", "alice", "alice", false))
	mock.ExpectExec(`UPDATE "service" SET .*"last_modified_by"=\$5,"is_published"=\$6,"approved_by"=\$7,"approved_at"=\$8 WHERE .*"id" = \$9`).
		WithArgs("Design", "", "", "alice", "bob", true, "bob", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), 3, func(_ context.Context, s *domain.Service) error {
		return s.Approve(&domain.User{Username: "bob", IsAdmin: true}, approvedAt)
	})
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)
	require.NotNil(t, updated.ApprovedBy)
	assert.Equal(t, "bob", *updated.ApprovedBy)
	require.NotNil(t, updated.ApprovedAt)
	assert.True(t, approvedAt.Equal(*updated.ApprovedAt))
}

// Lookups made from inside the update callback must reuse the locked
// connection. With a single-connection pool a second checkout would block
// until the deadline.
func TestContentRepository_Update_LookupsJoinTransaction(t *testing.T) {
	db, mock := setupDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	items := NewServiceRepository(db)
	users := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "service" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_by", "last_modified_by", "is_published"}).
			AddRow(1, "Consulting", "alice", "alice", false))
	mock.ExpectQuery(`SELECT \* FROM "user" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "is_admin"}).
			AddRow("bob", "hash", true))
	mock.ExpectExec(`UPDATE "service" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	updated, err := items.Update(ctx, 1, func(txCtx context.Context, s *domain.Service) error {
		approver, err := users.FindByUsername(txCtx, "bob")
		if err != nil {
			return err
		}
		return s.Approve(approver, time.Now())
	})
	require.NoError(t, err)
	assert.True(t, updated.IsPublished)
}

func TestContentRepository_Create_DuplicateIsConflict(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewServiceRepository(db)

	mock.ExpectQuery(`INSERT INTO "service"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &domain.Service{Title: "Consulting"})
	assert.ErrorIs(t, err, domain.ErrContentExists)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCategoryRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectExec(`DELETE FROM "category" WHERE category_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 5), domain.ErrCategoryNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "gorm translated", err: gorm.ErrDuplicatedKey, want: true},
		{name: "postgres 23505", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "postgres other", err: &pgconn.PgError{Code: "42P01"}, want: false},
		{name: "mysql 1062", err: &mysql.MySQLError{Number: 1062}, want: true},
		{name: "mysql other", err: &mysql.MySQLError{Number: 1045}, want: false},
		{name: "plain", err: errors.New("boom"), want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isUniqueViolation(tc.err))
		})
	}
}

func TestConnect_RejectsUnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), Config{Driver: "sqlite", DSN: "file::memory:"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
