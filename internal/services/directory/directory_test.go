package directory

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srjn0201/betting/internal/repos/accounts"
	"github.com/srjn0201/betting/internal/roles"
)

const qInsertAccount = `INSERT INTO accounts \(username, password_hash, role, parent_id\)`

var accountCols = []string{"id", "username", "password_hash", "role", "parent_id", "created_at"}

func creator(id int64, role roles.Role) accounts.Account {
	return accounts.Account{ID: id, Username: "creator", Role: role}
}

func TestCreate_Success(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	parentID := int64(1)

	mock.ExpectBegin()
	mock.ExpectQuery(qInsertAccount).
		WithArgs("agent7", sqlmock.AnyArg(), "agent", int64(1)).
		WillReturnRows(sqlmock.NewRows(accountCols).
			AddRow(8, "agent7", "hash", "agent", parentID, time.Now()))
	mock.ExpectCommit()

	svc := New(db)

	created, err := svc.Create(context.Background(), creator(1, roles.Master), "agent7", "s3cret-pass", "agent")
	require.NoError(t, err)

	assert.Equal(t, int64(8), created.ID)
	assert.Equal(t, roles.Agent, created.Role)
	require.NotNil(t, created.ParentID)
	assert.Equal(t, int64(1), *created.ParentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Gates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		creator  accounts.Account
		roleName string
		setup    func(mock sqlmock.Sqlmock)
		wantErr  error
	}{
		{
			name:     "unknown_role",
			creator:  creator(1, roles.Root),
			roleName: "superuser",
			setup:    func(sqlmock.Sqlmock) {},
			wantErr:  ErrUnknownRole,
		},
		{
			name:     "same_role_forbidden",
			creator:  creator(2, roles.Agent),
			roleName: "agent",
			setup:    func(sqlmock.Sqlmock) {},
			wantErr:  ErrRoleNotAllowed,
		},
		{
			name:     "senior_role_forbidden",
			creator:  creator(2, roles.Agent),
			roleName: "master",
			setup:    func(sqlmock.Sqlmock) {},
			wantErr:  ErrRoleNotAllowed,
		},
		{
			name:     "player_creates_nothing",
			creator:  creator(3, roles.Player),
			roleName: "player",
			setup:    func(sqlmock.Sqlmock) {},
			wantErr:  ErrRoleNotAllowed,
		},
		{
			name:     "username_taken",
			creator:  creator(1, roles.Master),
			roleName: "agent",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(qInsertAccount).
					WillReturnError(&pgconn.PgError{Code: "23505"})
				mock.ExpectRollback()
			},
			wantErr: ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)

			svc := New(db)

			_, err = svc.Create(context.Background(), tt.creator, "newuser", "s3cret-pass", tt.roleName)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestChildren(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	parentID := int64(1)

	mock.ExpectQuery(`SELECT id, username, password_hash, role, parent_id, created_at\s+FROM accounts\s+WHERE parent_id = \$1\s+ORDER BY id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(accountCols).
			AddRow(2, "a1", "x", "agent", parentID, time.Now()).
			AddRow(3, "a2", "x", "agent", parentID, time.Now()))

	svc := New(db)

	children, err := svc.Children(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "a1", children[0].Username)
	assert.Equal(t, roles.Agent, children[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
