package learning

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type TopicRepo interface {
	// Upsert creates new topics and refreshes title, description and duration
	// of existing ones. course_id, sort_order and status are create-only.
	Upsert(dbc dbctx.Context, topics []*types.Topic) ([]*types.Topic, error)
	GetByIDs(dbc dbctx.Context, topicIDs []string) ([]*types.Topic, error)
	GetByCourseIDs(dbc dbctx.Context, courseIDs []string) ([]*types.Topic, error)
	ListAll(dbc dbctx.Context) ([]*types.Topic, error)
	// UnlockSuccessor flips the topic at (courseID, order+1) from locked to
	// available. It reports whether a row changed; a missing successor is not an error.
	UnlockSuccessor(dbc dbctx.Context, courseID string, order int) (bool, error)
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	repoLog := baseLog.With("repo", "TopicRepo")
	return &topicRepo{db: db, log: repoLog}
}

func (r *topicRepo) Upsert(dbc dbctx.Context, topics []*types.Topic) ([]*types.Topic, error) {
	if len(topics) == 0 {
		return []*types.Topic{}, nil
	}
	for _, t := range topics {
		if t.Status == "" {
			t.Status = types.TopicStatusLocked
		}
		if !t.Status.Valid() {
			return nil, fmt.Errorf("topic %s: invalid status %q", t.ID, t.Status)
		}
	}
	if err := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "duration", "updated_at"}),
		}).
		Create(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *topicRepo) GetByIDs(dbc dbctx.Context, topicIDs []string) ([]*types.Topic, error) {
	var results []*types.Topic
	if len(topicIDs) == 0 {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("id IN ?", topicIDs).
		Order("course_id ASC, sort_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *topicRepo) GetByCourseIDs(dbc dbctx.Context, courseIDs []string) ([]*types.Topic, error) {
	var results []*types.Topic
	if len(courseIDs) == 0 {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("course_id IN ?", courseIDs).
		Order("course_id ASC, sort_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *topicRepo) ListAll(dbc dbctx.Context) ([]*types.Topic, error) {
	var results []*types.Topic
	if err := dbc.DB(r.db).
		Order("course_id ASC, sort_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *topicRepo) UnlockSuccessor(dbc dbctx.Context, courseID string, order int) (bool, error) {
	res := dbc.DB(r.db).
		Model(&types.Topic{}).
		Where("course_id = ? AND sort_order = ? AND status = ?", courseID, order+1, types.TopicStatusLocked).
		Updates(map[string]interface{}{
			"status":     types.TopicStatusAvailable,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
