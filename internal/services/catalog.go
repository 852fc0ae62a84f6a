package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	"github.com/yungbote/codelearn-backend/internal/data/repos"
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/modules/learning/progress"
	"github.com/yungbote/codelearn-backend/internal/platform/apierr"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
	"github.com/yungbote/codelearn-backend/internal/platform/redis"
)

type TopicView struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      types.TopicStatus `json:"status"`
	Duration    int               `json:"duration"`
	Order       int               `json:"order"`
}

type CourseView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Order       int         `json:"order"`
	Topics      []TopicView `json:"topics"`
}

type TopicDetail struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Duration    int               `json:"duration"`
	Order       int               `json:"order"`
	CourseID    string            `json:"courseId"`
	Status      types.TopicStatus `json:"status"`
	Content     string            `json:"content"`
	Exercises   []types.Exercise  `json:"exercises"`
}

// CatalogService reads courses and topics. A nil userID means the shared
// default view built from the topics' status column; otherwise statuses are
// derived from that user's progress.
type CatalogService interface {
	ListCourses(ctx context.Context, userID *uuid.UUID) ([]CourseView, error)
	GetCourse(ctx context.Context, courseID string) (*CourseView, error)
	ListCourseTopics(ctx context.Context, courseID string, userID *uuid.UUID) ([]TopicView, error)
	GetTopic(ctx context.Context, topicID string, userID *uuid.UUID) (*TopicDetail, error)
}

type CatalogServiceDeps struct {
	Log *logger.Logger

	Courses  repos.CourseRepo
	Topics   repos.TopicRepo
	Contents repos.TopicContentRepo
	Progress repos.TopicProgressRepo

	Cache    redis.Cache
	CacheTTL time.Duration
}

type catalogService struct {
	deps CatalogServiceDeps
	log  *logger.Logger
}

func NewCatalogService(deps CatalogServiceDeps) CatalogService {
	if deps.Cache == nil {
		deps.Cache = redis.NewNopCache()
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = time.Hour
	}
	return &catalogService{deps: deps, log: deps.Log.With("service", "CatalogService")}
}

func (s *catalogService) ListCourses(ctx context.Context, userID *uuid.UUID) ([]CourseView, error) {
	var (
		courses []*types.Course
		topics  []*types.Topic
		rows    []*types.TopicProgress
	)
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.New(gctx)
	g.Go(func() error {
		var err error
		courses, err = s.deps.Courses.ListAll(dbc)
		if err != nil {
			return fmt.Errorf("list courses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		topics, err = s.deps.Topics.ListAll(dbc)
		if err != nil {
			return fmt.Errorf("list topics: %w", err)
		}
		return nil
	})
	if hasUser(userID) {
		g.Go(func() error {
			var err error
			rows, err = s.deps.Progress.ListByUserID(dbc, *userID)
			if err != nil {
				return fmt.Errorf("list topic progress: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCourse := make(map[string][]*types.Topic, len(courses))
	for _, t := range topics {
		byCourse[t.CourseID] = append(byCourse[t.CourseID], t)
	}
	done := progress.CompletedSet(rows)

	out := make([]CourseView, 0, len(courses))
	for _, c := range courses {
		ts := byCourse[c.ID]
		var statuses map[string]types.TopicStatus
		if hasUser(userID) {
			statuses = statusMap(progress.Compute(progress.Refs(ts), done))
		}
		out = append(out, courseView(c, topicViews(ts, statuses)))
	}
	return out, nil
}

func (s *catalogService) GetCourse(ctx context.Context, courseID string) (*CourseView, error) {
	dbc := dbctx.New(ctx)
	course, err := s.loadCourse(dbc, courseID)
	if err != nil {
		return nil, err
	}
	topics, err := s.deps.Topics.GetByCourseIDs(dbc, []string{course.ID})
	if err != nil {
		return nil, fmt.Errorf("load course topics: %w", err)
	}
	view := courseView(course, topicViews(topics, nil))
	return &view, nil
}

func (s *catalogService) ListCourseTopics(ctx context.Context, courseID string, userID *uuid.UUID) ([]TopicView, error) {
	dbc := dbctx.New(ctx)
	course, err := s.loadCourse(dbc, courseID)
	if err != nil {
		return nil, err
	}
	topics, err := s.deps.Topics.GetByCourseIDs(dbc, []string{course.ID})
	if err != nil {
		return nil, fmt.Errorf("load course topics: %w", err)
	}
	var statuses map[string]types.TopicStatus
	if hasUser(userID) {
		results, err := effectiveStatuses(dbc, s.deps.Progress, topics, *userID)
		if err != nil {
			return nil, err
		}
		statuses = statusMap(results)
	}
	return topicViews(topics, statuses), nil
}

func (s *catalogService) GetTopic(ctx context.Context, topicID string, userID *uuid.UUID) (*TopicDetail, error) {
	dbc := dbctx.New(ctx)
	topics, err := s.deps.Topics.GetByIDs(dbc, []string{topicID})
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if len(topics) == 0 {
		return nil, apierr.Wrap(apierr.ErrNotFound, "topic_not_found", "topic not found")
	}
	topic := topics[0]

	status := topic.Status
	if hasUser(userID) {
		siblings, err := s.deps.Topics.GetByCourseIDs(dbc, []string{topic.CourseID})
		if err != nil {
			return nil, fmt.Errorf("load course topics: %w", err)
		}
		results, err := effectiveStatuses(dbc, s.deps.Progress, siblings, *userID)
		if err != nil {
			return nil, err
		}
		if st, ok := progress.StatusOf(results, topic.ID); ok {
			status = st
		}
	}

	content, err := s.loadContent(dbc, topic.ID)
	if err != nil {
		return nil, err
	}
	detail := &TopicDetail{
		ID:          topic.ID,
		Title:       topic.Title,
		Description: topic.Description,
		Duration:    topic.Duration,
		Order:       topic.Order,
		CourseID:    topic.CourseID,
		Status:      status,
		Exercises:   []types.Exercise{},
	}
	if content != nil {
		detail.Content = content.Content
		if len(content.Exercises) > 0 {
			detail.Exercises = content.Exercises
		}
	}
	return detail, nil
}

// loadContent reads lesson content through the cache. Cache failures only
// cost a database read.
func (s *catalogService) loadContent(dbc dbctx.Context, topicID string) (*types.TopicContent, error) {
	key := "topic_content:" + topicID
	var cached types.TopicContent
	hit, err := s.deps.Cache.GetJSON(dbc.Ctx, key, &cached)
	if err != nil {
		s.log.Warn("content cache read failed", "topic_id", topicID, "error", err)
	}
	if hit {
		return &cached, nil
	}

	content, err := s.deps.Contents.GetByTopicID(dbc, topicID)
	if err != nil {
		return nil, fmt.Errorf("load topic content: %w", err)
	}
	if content == nil {
		return nil, nil
	}
	if err := s.deps.Cache.SetJSON(dbc.Ctx, key, content, s.deps.CacheTTL); err != nil {
		s.log.Warn("content cache write failed", "topic_id", topicID, "error", err)
	}
	return content, nil
}

func (s *catalogService) loadCourse(dbc dbctx.Context, courseID string) (*types.Course, error) {
	courses, err := s.deps.Courses.GetByIDs(dbc, []string{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, apierr.Wrap(apierr.ErrNotFound, "course_not_found", "course not found")
	}
	return courses[0], nil
}

func hasUser(userID *uuid.UUID) bool {
	return userID != nil && *userID != uuid.Nil
}

func statusMap(results []progress.Result) map[string]types.TopicStatus {
	out := make(map[string]types.TopicStatus, len(results))
	for _, r := range results {
		out[r.TopicID] = r.Status
	}
	return out
}

// topicViews renders topics in order. With a nil statuses map the stored
// status column is used.
func topicViews(topics []*types.Topic, statuses map[string]types.TopicStatus) []TopicView {
	out := make([]TopicView, 0, len(topics))
	for _, t := range topics {
		status := t.Status
		if statuses != nil {
			if st, ok := statuses[t.ID]; ok {
				status = st
			}
		}
		out = append(out, TopicView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      status,
			Duration:    t.Duration,
			Order:       t.Order,
		})
	}
	return out
}

func courseView(c *types.Course, topics []TopicView) CourseView {
	return CourseView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Order:       c.Order,
		Topics:      topics,
	}
}
