package learning

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	"github.com/yungbote/codelearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/codelearn-backend/internal/domain"
)

func TestTopicContentRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewTopicContentRepo(db, testutil.Logger(t))

	testutil.SeedCourse(t, ctx, tx, "go", "go", 1)

	if got, err := repo.GetByTopicID(dbc, "go1"); err != nil || got != nil {
		t.Fatalf("GetByTopicID before seed: got=%v err=%v", got, err)
	}

	tc := &types.TopicContent{
		TopicID: "go1",
		Content: "# Go",
		Exercises: datatypes.JSONSlice[types.Exercise]{
			{Question: "print hello", Hints: []string{"fmt"}, Solution: "fmt.Println(\"hello\")"},
		},
	}
	if _, err := repo.Upsert(dbc, []*types.TopicContent{tc}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	tc2 := &types.TopicContent{
		TopicID: "go1",
		Content: "# Go Fundamentals",
		Exercises: datatypes.JSONSlice[types.Exercise]{
			{Question: "a", Hints: []string{}, Solution: "a"},
			{Question: "b", Hints: []string{"x", "y"}, Solution: "b"},
		},
	}
	if _, err := repo.Upsert(dbc, []*types.TopicContent{tc2}); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}

	got, err := repo.GetByTopicID(dbc, "go1")
	if err != nil || got == nil {
		t.Fatalf("GetByTopicID: got=%v err=%v", got, err)
	}
	if got.Content != "# Go Fundamentals" {
		t.Fatalf("content not updated: %q", got.Content)
	}
	if len(got.Exercises) != 2 || got.Exercises[1].Hints[1] != "y" {
		t.Fatalf("exercises not updated: %+v", got.Exercises)
	}
}
