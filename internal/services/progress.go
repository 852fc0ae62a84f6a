package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	"github.com/yungbote/codelearn-backend/internal/data/dberr"
	"github.com/yungbote/codelearn-backend/internal/data/repos"
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/modules/learning/progress"
	"github.com/yungbote/codelearn-backend/internal/platform/apierr"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type RecordCompletionInput struct {
	UserID  uuid.UUID
	TopicID string
	// Completed is a pointer so an explicit false is distinguishable from a missing field.
	Completed *bool
}

type ProgressTopicRef struct {
	Title    string `json:"title"`
	CourseID string `json:"courseId"`
}

type UserProgressItem struct {
	*types.TopicProgress
	Topic *ProgressTopicRef `json:"topic"`
}

type ProgressService interface {
	RecordCompletion(ctx context.Context, in RecordCompletionInput) (*types.TopicProgress, error)
	EffectiveStatuses(ctx context.Context, courseID string, userID uuid.UUID) ([]progress.Result, error)
	ListUserProgress(ctx context.Context, userID uuid.UUID) ([]UserProgressItem, error)
}

type ProgressServiceDeps struct {
	Log *logger.Logger

	Users    repos.UserRepo
	Courses  repos.CourseRepo
	Topics   repos.TopicRepo
	Progress repos.TopicProgressRepo

	// RequireUnlocked rejects completing a topic that is still locked for the user.
	RequireUnlocked bool
	Now             func() time.Time
}

type progressService struct {
	deps ProgressServiceDeps
	log  *logger.Logger
}

func NewProgressService(deps ProgressServiceDeps) ProgressService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &progressService{deps: deps, log: deps.Log.With("service", "ProgressService")}
}

func (s *progressService) RecordCompletion(ctx context.Context, in RecordCompletionInput) (_ *types.TopicProgress, err error) {
	ctx, span := tracer.Start(ctx, "progress.RecordCompletion")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("topic.id", in.TopicID))

	if in.UserID == uuid.Nil {
		return nil, apierr.Wrap(apierr.ErrInvalidArgument, "missing_user_id", "userId is required")
	}
	if in.TopicID == "" {
		return nil, apierr.Wrap(apierr.ErrInvalidArgument, "missing_topic_id", "topicId is required")
	}
	if in.Completed == nil {
		return nil, apierr.Wrap(apierr.ErrInvalidArgument, "missing_completed", "completed is required")
	}
	completed := *in.Completed
	span.SetAttributes(attribute.Bool("progress.completed", completed))

	dbc := dbctx.New(ctx)
	topic, err := s.loadTopic(dbc, in.TopicID)
	if err != nil {
		return nil, err
	}
	users, err := s.deps.Users.GetByIDs(dbc, []uuid.UUID{in.UserID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.Wrap(apierr.ErrNotFound, "user_not_found", "user not found")
	}

	if completed && s.deps.RequireUnlocked {
		results, err := s.statusesForCourse(dbc, topic.CourseID, in.UserID)
		if err != nil {
			return nil, err
		}
		if st, _ := progress.StatusOf(results, topic.ID); !progress.CanComplete(st) {
			return nil, apierr.Wrap(apierr.ErrFailedPrecondition, "topic_locked", "topic is locked")
		}
	}

	row := &types.TopicProgress{
		UserID:    in.UserID,
		TopicID:   topic.ID,
		Completed: completed,
	}
	if completed {
		now := s.deps.Now().UTC()
		row.CompletedAt = &now
	}
	stored, err := s.upsertProgress(dbc, row)
	if err != nil {
		return nil, fmt.Errorf("upsert topic progress: %w", err)
	}

	// Un-completing never re-locks anything downstream.
	if completed {
		unlocked, uErr := s.deps.Topics.UnlockSuccessor(dbc, topic.CourseID, topic.Order)
		if uErr != nil {
			s.log.Warn("unlock successor failed",
				"course_id", topic.CourseID,
				"order", topic.Order,
				"error", uErr,
			)
		} else if unlocked {
			s.log.Debug("successor unlocked", "course_id", topic.CourseID, "order", topic.Order+1)
		}
	}

	s.log.Info("topic progress recorded",
		"user_id", in.UserID,
		"topic_id", topic.ID,
		"completed", completed,
	)
	return stored, nil
}

const upsertAttempts = 3

// upsertProgress retries transient lock/serialization failures. The upsert is
// keyed on (user, topic) so replaying it is safe.
func (s *progressService) upsertProgress(dbc dbctx.Context, row *types.TopicProgress) (*types.TopicProgress, error) {
	var lastErr error
	for attempt := 1; attempt <= upsertAttempts; attempt++ {
		stored, err := s.deps.Progress.Upsert(dbc, row)
		if err == nil {
			return stored, nil
		}
		lastErr = err
		if !dberr.IsRetryable(err) || attempt == upsertAttempts {
			break
		}
		s.log.Debug("retrying progress upsert", "attempt", attempt, "error", err)
		select {
		case <-dbc.Ctx.Done():
			return nil, dbc.Ctx.Err()
		case <-time.After(time.Duration(attempt*25) * time.Millisecond):
		}
	}
	return nil, lastErr
}

func (s *progressService) EffectiveStatuses(ctx context.Context, courseID string, userID uuid.UUID) ([]progress.Result, error) {
	if userID == uuid.Nil {
		return nil, apierr.Wrap(apierr.ErrInvalidArgument, "missing_user_id", "userId is required")
	}
	dbc := dbctx.New(ctx)
	courses, err := s.deps.Courses.GetByIDs(dbc, []string{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, apierr.Wrap(apierr.ErrNotFound, "course_not_found", "course not found")
	}
	return s.statusesForCourse(dbc, courseID, userID)
}

func (s *progressService) ListUserProgress(ctx context.Context, userID uuid.UUID) ([]UserProgressItem, error) {
	if userID == uuid.Nil {
		return nil, apierr.Wrap(apierr.ErrInvalidArgument, "invalid_user_id", "userId is required")
	}
	dbc := dbctx.New(ctx)
	rows, err := s.deps.Progress.ListByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list topic progress: %w", err)
	}
	out := make([]UserProgressItem, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	topicIDs := make([]string, 0, len(rows))
	for _, r := range rows {
		topicIDs = append(topicIDs, r.TopicID)
	}
	topics, err := s.deps.Topics.GetByIDs(dbc, topicIDs)
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}
	byID := make(map[string]*types.Topic, len(topics))
	for _, t := range topics {
		byID[t.ID] = t
	}
	for _, r := range rows {
		item := UserProgressItem{TopicProgress: r}
		if t := byID[r.TopicID]; t != nil {
			item.Topic = &ProgressTopicRef{Title: t.Title, CourseID: t.CourseID}
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *progressService) loadTopic(dbc dbctx.Context, topicID string) (*types.Topic, error) {
	topics, err := s.deps.Topics.GetByIDs(dbc, []string{topicID})
	if err != nil {
		return nil, fmt.Errorf("load topic: %w", err)
	}
	if len(topics) == 0 {
		return nil, apierr.Wrap(apierr.ErrNotFound, "topic_not_found", "topic not found")
	}
	return topics[0], nil
}

func (s *progressService) statusesForCourse(dbc dbctx.Context, courseID string, userID uuid.UUID) ([]progress.Result, error) {
	topics, err := s.deps.Topics.GetByCourseIDs(dbc, []string{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course topics: %w", err)
	}
	return effectiveStatuses(dbc, s.deps.Progress, topics, userID)
}

// effectiveStatuses folds the user's completion rows over topics.
func effectiveStatuses(dbc dbctx.Context, repo repos.TopicProgressRepo, topics []*types.Topic, userID uuid.UUID) ([]progress.Result, error) {
	ids := make([]string, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}
	rows, err := repo.GetByUserAndTopicIDs(dbc, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("load topic progress: %w", err)
	}
	return progress.Compute(progress.Refs(topics), progress.CompletedSet(rows)), nil
}
