package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/codelearn-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:               uuid.New(),
		Email:            email,
		Password:         "pw",
		Name:             "Test User",
		TargetLanguage:   "ENGLISH",
		ExperienceLevel:  "BEGINNER",
		KnownLanguages:   datatypes.JSONSlice[string]{"Python"},
		DailyGoalMinutes: 30,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedCourse creates a course with n topics ids <prefix>1..<prefix>n.
// Topic 1 starts available, the rest locked.
func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID, prefix string, n int) (*types.Course, []*types.Topic) {
	tb.Helper()
	c := &types.Course{
		ID:          courseID,
		Title:       courseID + " course",
		Description: "Complete " + courseID + " course",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	topics := make([]*types.Topic, 0, n)
	for i := 1; i <= n; i++ {
		status := types.TopicStatusLocked
		if i == 1 {
			status = types.TopicStatusAvailable
		}
		topics = append(topics, &types.Topic{
			ID:          fmt.Sprintf("%s%d", prefix, i),
			CourseID:    courseID,
			Order:       i,
			Title:       fmt.Sprintf("Topic %d", i),
			Description: "desc",
			Duration:    60,
			Status:      status,
		})
	}
	if n > 0 {
		if err := tx.WithContext(ctx).Create(&topics).Error; err != nil {
			tb.Fatalf("seed topics: %v", err)
		}
	}
	return c, topics
}

func SeedTopicContent(tb testing.TB, ctx context.Context, tx *gorm.DB, topicID string) *types.TopicContent {
	tb.Helper()
	tc := &types.TopicContent{
		TopicID: topicID,
		Content: "# " + topicID,
		Exercises: datatypes.JSONSlice[types.Exercise]{
			{Question: "q1", Hints: []string{"h1", "h2"}, Solution: "s1"},
		},
	}
	if err := tx.WithContext(ctx).Create(tc).Error; err != nil {
		tb.Fatalf("seed topic content: %v", err)
	}
	return tc
}

func PtrBool(v bool) *bool { return &v }
