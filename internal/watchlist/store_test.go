package watchlist

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/apperr"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

// setupTestStore backs a Store with a sqlmock connection.
func setupTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	store := NewStore(sqlx.NewDb(db, "sqlmock"), zap.NewNop())
	t.Cleanup(func() { store.Close() })
	return store, mock
}

var watchedColumns = []string{"id", "owner", "name", "weeks", "note", "created_at", "last_refreshed_at"}

func TestStore_EnsureSchema(t *testing.T) {
	store, mock := setupTestStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS watched_repos").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Add(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		owner     string
		repo      string
		weeks     int
		note      string
		mockSetup func(sqlmock.Sqlmock)
		expected  *WatchedRepo
		wantKind  apperr.Kind
	}{
		{
			name:  "stores a new entry",
			owner: "octocat",
			repo:  "hello-world",
			weeks: 4,
			note:  "demo repo",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(watchedColumns).
					AddRow(1, "octocat", "hello-world", 4, "demo repo", createdAt, nil)
				mock.ExpectQuery("INSERT INTO watched_repos").
					WithArgs("octocat", "hello-world", 4, "demo repo").
					WillReturnRows(rows)
			},
			expected: &WatchedRepo{ID: 1, Owner: "octocat", Name: "hello-world", Weeks: 4, Note: "demo repo", CreatedAt: createdAt},
		},
		{
			name:  "clamps an oversized window",
			owner: "octocat",
			repo:  "hello-world",
			weeks: domain.MaxWeeks + 20,
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(watchedColumns).
					AddRow(1, "octocat", "hello-world", domain.MaxWeeks, "", createdAt, nil)
				mock.ExpectQuery("INSERT INTO watched_repos").
					WithArgs("octocat", "hello-world", domain.MaxWeeks, "").
					WillReturnRows(rows)
			},
			expected: &WatchedRepo{ID: 1, Owner: "octocat", Name: "hello-world", Weeks: domain.MaxWeeks, CreatedAt: createdAt},
		},
		{
			name:      "rejects an invalid owner",
			owner:     "-octocat",
			repo:      "hello-world",
			weeks:     4,
			mockSetup: func(sqlmock.Sqlmock) {},
			wantKind:  apperr.KindInvalidArgument,
		},
		{
			name:      "rejects a non-positive window",
			owner:     "octocat",
			repo:      "hello-world",
			weeks:     0,
			mockSetup: func(sqlmock.Sqlmock) {},
			wantKind:  apperr.KindInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := setupTestStore(t)
			tt.mockSetup(mock)

			watched, err := store.Add(context.Background(), tt.owner, tt.repo, tt.weeks, tt.note)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, apperr.IsKind(err, tt.wantKind), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, watched)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_List(t *testing.T) {
	store, mock := setupTestStore(t)

	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	refreshedAt := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(watchedColumns).
		AddRow(1, "golang", "go", 12, "", createdAt, refreshedAt).
		AddRow(2, "octocat", "hello-world", 4, "demo repo", createdAt, nil)
	mock.ExpectQuery("SELECT id, owner, name, weeks, note, created_at, last_refreshed_at").
		WillReturnRows(rows)

	watched, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, watched, 2)

	assert.Equal(t, "golang", watched[0].Owner)
	require.NotNil(t, watched[0].LastRefreshedAt)
	assert.Equal(t, refreshedAt, *watched[0].LastRefreshedAt)

	assert.Equal(t, "octocat", watched[1].Owner)
	assert.Equal(t, "demo repo", watched[1].Note)
	assert.Nil(t, watched[1].LastRefreshedAt, "never-refreshed entries carry no timestamp")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_List_Empty(t *testing.T) {
	store, mock := setupTestStore(t)

	mock.ExpectQuery("SELECT id, owner, name, weeks, note, created_at, last_refreshed_at").
		WillReturnRows(sqlmock.NewRows(watchedColumns))

	watched, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, watched)
	assert.NotNil(t, watched, "empty watchlist must encode as [] not null")
}

func TestStore_Remove(t *testing.T) {
	tests := []struct {
		name      string
		owner     string
		repo      string
		mockSetup func(sqlmock.Sqlmock)
		wantKind  apperr.Kind
	}{
		{
			name:  "removes a watched repository",
			owner: "octocat",
			repo:  "hello-world",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM watched_repos").
					WithArgs("octocat", "hello-world").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:  "unknown repository",
			owner: "octocat",
			repo:  "missing",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM watched_repos").
					WithArgs("octocat", "missing").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantKind: apperr.KindNotFound,
		},
		{
			name:      "invalid target",
			owner:     "bad owner",
			repo:      "hello-world",
			mockSetup: func(sqlmock.Sqlmock) {},
			wantKind:  apperr.KindInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := setupTestStore(t)
			tt.mockSetup(mock)

			err := store.Remove(context.Background(), tt.owner, tt.repo)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, apperr.IsKind(err, tt.wantKind), "got %v", err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_TouchRefreshed(t *testing.T) {
	store, mock := setupTestStore(t)

	at := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE watched_repos SET last_refreshed_at").
		WithArgs(int64(7), at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.TouchRefreshed(context.Background(), 7, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}
