package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	"github.com/yungbote/codelearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/codelearn-backend/internal/domain"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserRepo(db, testutil.Logger(t))

	u := &types.User{Email: "  Learner@Example.com ", Password: "hash", Name: "Learner"}
	if _, err := repo.Create(dbc, []*types.User{u}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Fatalf("Create did not assign an id")
	}

	if rows, err := repo.GetByIDs(dbc, []uuid.UUID{u.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByEmails(dbc, []string{"learner@example.com"}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByEmails: err=%v len=%d", err, len(rows))
	}
	if ok, err := repo.EmailExists(dbc, "LEARNER@example.com"); err != nil || !ok {
		t.Fatalf("EmailExists: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.EmailExists(dbc, "nobody@example.com"); err != nil || ok {
		t.Fatalf("EmailExists(nobody): ok=%v err=%v", ok, err)
	}

	dup := &types.User{Email: "learner@example.com", Password: "other", Name: "Dup"}
	if err := repo.CreateIfMissing(dbc, []*types.User{dup}); err != nil {
		t.Fatalf("CreateIfMissing: %v", err)
	}
	rows, err := repo.GetByEmails(dbc, []string{"learner@example.com"})
	if err != nil || len(rows) != 1 || rows[0].Name != "Learner" {
		t.Fatalf("CreateIfMissing overwrote existing user: err=%v rows=%+v", err, rows)
	}
}
