package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/codelearn-backend/internal/data/repos/testutil"
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/platform/apierr"
)

type memCache struct {
	mu    sync.Mutex
	items map[string][]byte
	gets  int
	hits  int
	sets  int
	fail  bool
}

func newMemCache() *memCache { return &memCache{items: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.fail {
		return false, errors.New("cache down")
	}
	raw, ok := c.items[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.fail {
		return errors.New("cache down")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = raw
	return nil
}

func (c *memCache) Close() error { return nil }

func (e *testEnv) catalogService(cache *memCache) CatalogService {
	deps := CatalogServiceDeps{
		Log:      e.log,
		Courses:  e.courses,
		Topics:   e.topics,
		Contents: e.contents,
		Progress: e.progress,
	}
	if cache != nil {
		deps.Cache = cache
	}
	return NewCatalogService(deps)
}

func viewStatuses(views []TopicView) []types.TopicStatus {
	out := make([]types.TopicStatus, 0, len(views))
	for _, v := range views {
		out = append(out, v.Status)
	}
	return out
}

func TestListCourseTopics(t *testing.T) {
	env := newTestEnv(t)
	catalog := env.catalogService(nil)
	progressSvc := env.progressService(false)
	ctx := context.Background()

	complete(t, progressSvc, env.user.ID, "py1", true)
	complete(t, progressSvc, env.user.ID, "py2", true)

	views, err := catalog.ListCourseTopics(ctx, "python", &env.user.ID)
	require.NoError(t, err)
	require.Len(t, views, 5)
	for i, v := range views {
		assert.Equal(t, i+1, v.Order)
		assert.Equal(t, 60, v.Duration)
	}
	assert.Equal(t, []types.TopicStatus{C, C, A, L, L}, viewStatuses(views))

	// No user: the shared column, which never reports completed.
	views, err = catalog.ListCourseTopics(ctx, "python", nil)
	require.NoError(t, err)
	assert.Equal(t, []types.TopicStatus{A, A, A, L, L}, viewStatuses(views))

	// A different learner starts from scratch regardless of the shared column.
	other := uuid.New()
	views, err = catalog.ListCourseTopics(ctx, "python", &other)
	require.NoError(t, err)
	assert.Equal(t, []types.TopicStatus{A, L, L, L, L}, viewStatuses(views))

	_, err = catalog.ListCourseTopics(ctx, "cobol", nil)
	assert.True(t, errors.Is(err, apierr.ErrNotFound), "err=%v", err)
}

func TestListCoursesAndGetCourse(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedCourse(t, context.Background(), env.db, "go", "go", 3)
	catalog := env.catalogService(nil)
	ctx := context.Background()

	complete(t, env.progressService(false), env.user.ID, "go1", true)

	courses, err := catalog.ListCourses(ctx, &env.user.ID)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	byID := map[string]CourseView{}
	for _, c := range courses {
		byID[c.ID] = c
	}
	assert.Equal(t, []types.TopicStatus{C, A, L}, viewStatuses(byID["go"].Topics))
	assert.Equal(t, []types.TopicStatus{A, L, L, L, L}, viewStatuses(byID["python"].Topics))

	anon, err := catalog.ListCourses(ctx, nil)
	require.NoError(t, err)
	require.Len(t, anon, 2)

	course, err := catalog.GetCourse(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, "go", course.ID)
	assert.Len(t, course.Topics, 3)

	_, err = catalog.GetCourse(ctx, "cobol")
	assert.True(t, errors.Is(err, apierr.ErrNotFound), "err=%v", err)
}

func TestGetTopicUsesContentCache(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedTopicContent(t, context.Background(), env.db, "py1")
	cache := newMemCache()
	catalog := env.catalogService(cache)
	ctx := context.Background()

	first, err := catalog.GetTopic(ctx, "py1", nil)
	require.NoError(t, err)
	assert.Equal(t, "# py1", first.Content)
	require.Len(t, first.Exercises, 1)
	assert.Equal(t, []string{"h1", "h2"}, first.Exercises[0].Hints)
	assert.Equal(t, "python", first.CourseID)
	assert.Equal(t, A, first.Status)
	assert.Equal(t, 1, cache.sets)

	second, err := catalog.GetTopic(ctx, "py1", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)
}

func TestGetTopicPerUserStatus(t *testing.T) {
	env := newTestEnv(t)
	catalog := env.catalogService(nil)
	ctx := context.Background()

	complete(t, env.progressService(false), env.user.ID, "py1", true)

	detail, err := catalog.GetTopic(ctx, "py1", &env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, C, detail.Status)
	assert.Empty(t, detail.Content)
	assert.NotNil(t, detail.Exercises)

	detail, err = catalog.GetTopic(ctx, "py3", &env.user.ID)
	require.NoError(t, err)
	assert.Equal(t, L, detail.Status)

	_, err = catalog.GetTopic(ctx, "nope", nil)
	assert.True(t, errors.Is(err, apierr.ErrNotFound), "err=%v", err)
}

func TestGetTopicSurvivesCacheFailure(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedTopicContent(t, context.Background(), env.db, "py2")
	cache := newMemCache()
	cache.fail = true
	catalog := env.catalogService(cache)

	detail, err := catalog.GetTopic(context.Background(), "py2", nil)
	require.NoError(t, err)
	assert.Equal(t, "# py2", detail.Content)
}
