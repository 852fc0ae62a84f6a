package learning

import (
	"context"
	"testing"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	"github.com/yungbote/codelearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/codelearn-backend/internal/domain"
)

func TestTopicRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewTopicRepo(db, testutil.Logger(t))

	testutil.SeedCourse(t, ctx, tx, "python", "py", 3)
	testutil.SeedCourse(t, ctx, tx, "go", "go", 2)

	rows, err := repo.GetByCourseIDs(dbc, []string{"python"})
	if err != nil || len(rows) != 3 {
		t.Fatalf("GetByCourseIDs: err=%v len=%d", err, len(rows))
	}
	for i, tp := range rows {
		if tp.Order != i+1 {
			t.Fatalf("topics not ordered: idx=%d order=%d", i, tp.Order)
		}
	}

	if rows, err := repo.GetByIDs(dbc, []string{"py2", "go1"}); err != nil || len(rows) != 2 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if all, err := repo.ListAll(dbc); err != nil || len(all) != 5 {
		t.Fatalf("ListAll: err=%v len=%d", err, len(all))
	}
}

func TestTopicRepoUpsertKeepsStatusAndOrder(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewTopicRepo(db, testutil.Logger(t))

	testutil.SeedCourse(t, ctx, tx, "python", "py", 2)
	if _, err := repo.UnlockSuccessor(dbc, "python", 1); err != nil {
		t.Fatalf("UnlockSuccessor: %v", err)
	}

	updated := &types.Topic{
		ID:          "py2",
		CourseID:    "python",
		Order:       2,
		Title:       "Control Flow and Functions",
		Description: "new description",
		Duration:    45,
		Status:      types.TopicStatusLocked,
	}
	if _, err := repo.Upsert(dbc, []*types.Topic{updated}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rows, err := repo.GetByIDs(dbc, []string{"py2"})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	got := rows[0]
	if got.Title != "Control Flow and Functions" || got.Description != "new description" || got.Duration != 45 {
		t.Fatalf("upsert did not refresh fields: %+v", got)
	}
	if got.Status != types.TopicStatusAvailable {
		t.Fatalf("upsert reset status: %s", got.Status)
	}
}

func TestTopicRepoUnlockSuccessor(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewTopicRepo(db, testutil.Logger(t))

	testutil.SeedCourse(t, ctx, tx, "python", "py", 3)

	changed, err := repo.UnlockSuccessor(dbc, "python", 1)
	if err != nil || !changed {
		t.Fatalf("UnlockSuccessor(1): changed=%v err=%v", changed, err)
	}
	// Compare-and-set: second call finds nothing locked.
	changed, err = repo.UnlockSuccessor(dbc, "python", 1)
	if err != nil || changed {
		t.Fatalf("UnlockSuccessor(1) again: changed=%v err=%v", changed, err)
	}
	// Last topic has no successor.
	changed, err = repo.UnlockSuccessor(dbc, "python", 3)
	if err != nil || changed {
		t.Fatalf("UnlockSuccessor(3): changed=%v err=%v", changed, err)
	}

	rows, err := repo.GetByCourseIDs(dbc, []string{"python"})
	if err != nil {
		t.Fatalf("GetByCourseIDs: %v", err)
	}
	want := []types.TopicStatus{types.TopicStatusAvailable, types.TopicStatusAvailable, types.TopicStatusLocked}
	for i, tp := range rows {
		if tp.Status != want[i] {
			t.Fatalf("%s status=%s want %s", tp.ID, tp.Status, want[i])
		}
	}
}

func TestTopicRepoUpsertRejectsUnknownStatus(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.New(context.Background())
	repo := NewTopicRepo(db, testutil.Logger(t))
	testutil.SeedCourse(t, dbc.Ctx, db, "python", "py", 1)

	bad := &types.Topic{ID: "py9", CourseID: "python", Order: 9, Title: "x", Status: "done"}
	if _, err := repo.Upsert(dbc, []*types.Topic{bad}); err == nil {
		t.Fatalf("expected invalid status error")
	}
	if rows, _ := repo.GetByIDs(dbc, []string{"py9"}); len(rows) != 0 {
		t.Fatalf("invalid topic was written")
	}

	noStatus := &types.Topic{ID: "py2", CourseID: "python", Order: 2, Title: "Second"}
	if _, err := repo.Upsert(dbc, []*types.Topic{noStatus}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	rows, err := repo.GetByIDs(dbc, []string{"py2"})
	if err != nil || len(rows) != 1 || rows[0].Status != types.TopicStatusLocked {
		t.Fatalf("blank status should default to locked: err=%v rows=%v", err, rows)
	}
}
