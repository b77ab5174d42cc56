package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/srjn0201/betting/internal/infra/pgtestutil"
	"github.com/srjn0201/betting/internal/repos/accounts"
	"github.com/srjn0201/betting/internal/roles"
)

func insertTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx) error) error {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	err = fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	return nil
}

func TestAccounts_InsertAndLookup(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	var created accounts.Account

	err := insertTx(t, db, func(tx *sql.Tx) error {
		var ierr error
		created, ierr = repo.Insert(tx, "root1", "hash", roles.Root, nil)
		return ierr
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}

	if created.CreatedAt.IsZero() {
		t.Fatal("expected server-side timestamp")
	}

	got, err := repo.ByUsername(context.Background(), "root1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	if got.ID != created.ID || got.Role != roles.Root || got.ParentID != nil {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestAccounts_UsernameTaken(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	err := insertTx(t, db, func(tx *sql.Tx) error {
		_, ierr := repo.Insert(tx, "dup", "hash", roles.Root, nil)
		return ierr
	})
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err = insertTx(t, db, func(tx *sql.Tx) error {
		_, ierr := repo.Insert(tx, "dup", "hash", roles.Master, nil)
		return ierr
	})
	if !errors.Is(err, accounts.ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}
}

func TestAccounts_NotFound(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	_, err := repo.ByUsername(context.Background(), "ghost")
	if !errors.Is(err, accounts.ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}

	_, err = repo.ByID(context.Background(), 9999)
	if !errors.Is(err, accounts.ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

func TestAccounts_Children(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	var parent accounts.Account

	err := insertTx(t, db, func(tx *sql.Tx) error {
		var ierr error
		parent, ierr = repo.Insert(tx, "parent", "hash", roles.Master, nil)
		if ierr != nil {
			return ierr
		}

		for _, name := range []string{"kid_b", "kid_a"} {
			_, ierr = repo.Insert(tx, name, "hash", roles.Agent, &parent.ID)
			if ierr != nil {
				return ierr
			}
		}

		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	children, err := repo.Children(context.Background(), parent.ID)
	if err != nil {
		t.Fatalf("children: %v", err)
	}

	if len(children) != 2 {
		t.Fatalf("want 2 children, got %d", len(children))
	}

	// Ordered by id, i.e. insertion order, not by name.
	if children[0].Username != "kid_b" || children[1].Username != "kid_a" {
		t.Fatalf("unexpected order: %s, %s", children[0].Username, children[1].Username)
	}

	for _, c := range children {
		if c.ParentID == nil || *c.ParentID != parent.ID {
			t.Fatalf("child %s has wrong parent", c.Username)
		}
	}
}
