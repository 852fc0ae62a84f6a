package learning

import (
	"context"
	"testing"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	"github.com/yungbote/codelearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/codelearn-backend/internal/domain"
)

func TestCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCourseRepo(db, testutil.Logger(t))

	c := &types.Course{ID: "python", Title: "Python Programming", Description: "Complete Python Programming course"}
	if _, err := repo.Upsert(dbc, []*types.Course{c}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Existing rows are create-only.
	again := &types.Course{ID: "python", Title: "renamed"}
	if _, err := repo.Upsert(dbc, []*types.Course{again}); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	rows, err := repo.GetByIDs(dbc, []string{"python"})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if rows[0].Title != "Python Programming" {
		t.Fatalf("title overwritten: %q", rows[0].Title)
	}

	if _, err := repo.Upsert(dbc, []*types.Course{{ID: "go", Title: "Go Development"}}); err != nil {
		t.Fatalf("Upsert go: %v", err)
	}
	all, err := repo.ListAll(dbc)
	if err != nil || len(all) != 2 {
		t.Fatalf("ListAll: err=%v len=%d", err, len(all))
	}

	if rows, err := repo.GetByIDs(dbc, []string{"missing"}); err != nil || len(rows) != 0 {
		t.Fatalf("GetByIDs(missing): err=%v len=%d", err, len(rows))
	}
}
