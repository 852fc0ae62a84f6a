package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	"github.com/yungbote/codelearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/modules/learning/progress"
	"github.com/yungbote/codelearn-backend/internal/platform/apierr"
)

func resultStatuses(results []progress.Result) []types.TopicStatus {
	out := make([]types.TopicStatus, 0, len(results))
	for _, r := range results {
		out = append(out, r.Status)
	}
	return out
}

func globalStatuses(t *testing.T, env *testEnv) []types.TopicStatus {
	t.Helper()
	topics, err := env.topics.GetByCourseIDs(dbctx.Context{Ctx: context.Background()}, []string{"python"})
	require.NoError(t, err)
	out := make([]types.TopicStatus, 0, len(topics))
	for _, tp := range topics {
		out = append(out, tp.Status)
	}
	return out
}

func complete(t *testing.T, svc ProgressService, userID uuid.UUID, topicID string, done bool) *types.TopicProgress {
	t.Helper()
	row, err := svc.RecordCompletion(context.Background(), RecordCompletionInput{
		UserID:    userID,
		TopicID:   topicID,
		Completed: testutil.PtrBool(done),
	})
	require.NoError(t, err)
	return row
}

const (
	L = types.TopicStatusLocked
	A = types.TopicStatusAvailable
	C = types.TopicStatusCompleted
)

func TestProgressScenario(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService(false)
	ctx := context.Background()

	got, err := svc.EffectiveStatuses(ctx, "python", env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.TopicStatus{A, L, L, L, L}, resultStatuses(got))

	row := complete(t, svc, env.user.ID, "py1", true)
	assert.True(t, row.Completed)
	require.NotNil(t, row.CompletedAt)

	got, err = svc.EffectiveStatuses(ctx, "python", env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.TopicStatus{C, A, L, L, L}, resultStatuses(got))
	assert.Equal(t, []types.TopicStatus{A, A, L, L, L}, globalStatuses(t, env))

	// Completing py3 out of order unlocks py4 while py2 stays available.
	complete(t, svc, env.user.ID, "py3", true)
	got, err = svc.EffectiveStatuses(ctx, "python", env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.TopicStatus{C, A, C, A, L}, resultStatuses(got))
}

func TestRecordCompletionIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	clock := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	svc := NewProgressService(ProgressServiceDeps{
		Log:      env.log,
		Users:    env.users,
		Courses:  env.courses,
		Topics:   env.topics,
		Progress: env.progress,
		Now:      func() time.Time { return clock },
	})

	first := complete(t, svc, env.user.ID, "py1", true)
	clock = clock.Add(time.Hour)
	second := complete(t, svc, env.user.ID, "py1", true)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, second.CompletedAt.Equal(clock), "completedAt=%v", second.CompletedAt)

	rows, err := env.progress.ListByUserID(dbctx.Context{Ctx: context.Background()}, env.user.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUncompleteDoesNotRelock(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService(false)
	ctx := context.Background()

	complete(t, svc, env.user.ID, "py1", true)
	complete(t, svc, env.user.ID, "py2", true)
	row := complete(t, svc, env.user.ID, "py1", false)
	assert.False(t, row.Completed)
	assert.Nil(t, row.CompletedAt)

	got, err := svc.EffectiveStatuses(ctx, "python", env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.TopicStatus{A, C, A, L, L}, resultStatuses(got))
	// The shared column keeps what earlier completions unlocked.
	assert.Equal(t, []types.TopicStatus{A, A, A, L, L}, globalStatuses(t, env))
}

func TestCompletingLastTopicHasNoSuccessor(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService(false)

	row := complete(t, svc, env.user.ID, "py5", true)
	assert.True(t, row.Completed)
	assert.Equal(t, []types.TopicStatus{A, L, L, L, L}, globalStatuses(t, env))
}

func TestRecordCompletionValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService(false)
	ctx := context.Background()

	_, err := svc.RecordCompletion(ctx, RecordCompletionInput{TopicID: "py1", Completed: testutil.PtrBool(true)})
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument), "err=%v", err)
	assert.Equal(t, 400, apierr.StatusOf(err))

	_, err = svc.RecordCompletion(ctx, RecordCompletionInput{UserID: env.user.ID, TopicID: "py1"})
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument), "err=%v", err)

	_, err = svc.RecordCompletion(ctx, RecordCompletionInput{UserID: env.user.ID, TopicID: "nope", Completed: testutil.PtrBool(true)})
	assert.True(t, errors.Is(err, apierr.ErrNotFound), "err=%v", err)
	assert.Equal(t, 404, apierr.StatusOf(err))

	_, err = svc.RecordCompletion(ctx, RecordCompletionInput{UserID: uuid.New(), TopicID: "py1", Completed: testutil.PtrBool(true)})
	assert.True(t, errors.Is(err, apierr.ErrNotFound), "err=%v", err)

	var count int64
	require.NoError(t, env.db.Model(&types.TopicProgress{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordCompletionRequireUnlocked(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService(true)
	ctx := context.Background()

	_, err := svc.RecordCompletion(ctx, RecordCompletionInput{UserID: env.user.ID, TopicID: "py3", Completed: testutil.PtrBool(true)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrFailedPrecondition), "err=%v", err)
	assert.Equal(t, 409, apierr.StatusOf(err))
	assert.Equal(t, "topic_locked", apierr.CodeOf(err, ""))

	complete(t, svc, env.user.ID, "py1", true)
	complete(t, svc, env.user.ID, "py2", true)
	// Re-completing and un-completing are never gated.
	complete(t, svc, env.user.ID, "py2", true)
	complete(t, svc, env.user.ID, "py4", false)
}

func TestRecordCompletionConcurrentSameKey(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService(false)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := svc.RecordCompletion(ctx, RecordCompletionInput{
				UserID:    env.user.ID,
				TopicID:   "py1",
				Completed: testutil.PtrBool(true),
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	var count int64
	require.NoError(t, env.db.Model(&types.TopicProgress{}).
		Where("user_id = ? AND topic_id = ?", env.user.ID, "py1").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEffectiveStatusesErrors(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService(false)
	ctx := context.Background()

	_, err := svc.EffectiveStatuses(ctx, "cobol", env.user.ID)
	assert.True(t, errors.Is(err, apierr.ErrNotFound), "err=%v", err)

	_, err = svc.EffectiveStatuses(ctx, "python", uuid.Nil)
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument), "err=%v", err)
}

func TestEffectiveStatusesIgnoreOtherUsers(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService(false)
	other := testutil.SeedUser(t, context.Background(), env.db, "other@example.com")

	complete(t, svc, other.ID, "py1", true)

	got, err := svc.EffectiveStatuses(context.Background(), "python", env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.TopicStatus{A, L, L, L, L}, resultStatuses(got))
}

func TestListUserProgress(t *testing.T) {
	env := newTestEnv(t)
	svc := env.progressService(false)
	ctx := context.Background()

	complete(t, svc, env.user.ID, "py1", true)
	complete(t, svc, env.user.ID, "py2", false)

	items, err := svc.ListUserProgress(ctx, env.user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		require.NotNil(t, it.Topic)
		assert.Equal(t, "python", it.Topic.CourseID)
		assert.NotEmpty(t, it.Topic.Title)
	}

	empty, err := svc.ListUserProgress(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.ListUserProgress(ctx, uuid.Nil)
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))
}
