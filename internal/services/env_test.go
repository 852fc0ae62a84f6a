package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/codelearn-backend/internal/data/repos"
	"github.com/yungbote/codelearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type testEnv struct {
	db  *gorm.DB
	log *logger.Logger

	users    repos.UserRepo
	courses  repos.CourseRepo
	topics   repos.TopicRepo
	contents repos.TopicContentRepo
	progress repos.TopicProgressRepo

	user *types.User
}

// newTestEnv seeds one learner and a five topic "python" course (py1..py5).
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	env := &testEnv{
		db:       db,
		log:      log,
		users:    repos.NewUserRepo(db, log),
		courses:  repos.NewCourseRepo(db, log),
		topics:   repos.NewTopicRepo(db, log),
		contents: repos.NewTopicContentRepo(db, log),
		progress: repos.NewTopicProgressRepo(db, log),
	}
	env.user = testutil.SeedUser(t, ctx, db, "learner@example.com")
	testutil.SeedCourse(t, ctx, db, "python", "py", 5)
	return env
}

func (e *testEnv) progressService(requireUnlocked bool) ProgressService {
	return NewProgressService(ProgressServiceDeps{
		Log:             e.log,
		Users:           e.users,
		Courses:         e.courses,
		Topics:          e.topics,
		Progress:        e.progress,
		RequireUnlocked: requireUnlocked,
	})
}
