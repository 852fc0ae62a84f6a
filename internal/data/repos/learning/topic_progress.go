package learning

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type TopicProgressRepo interface {
	// Upsert writes completed/completed_at for (user_id, topic_id) in a single
	// statement and returns the stored row.
	Upsert(dbc dbctx.Context, row *types.TopicProgress) (*types.TopicProgress, error)
	GetByUserAndTopicIDs(dbc dbctx.Context, userID uuid.UUID, topicIDs []string) ([]*types.TopicProgress, error)
	ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.TopicProgress, error)
}

type topicProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicProgressRepo(db *gorm.DB, baseLog *logger.Logger) TopicProgressRepo {
	repoLog := baseLog.With("repo", "TopicProgressRepo")
	return &topicProgressRepo{db: db, log: repoLog}
}

func (r *topicProgressRepo) Upsert(dbc dbctx.Context, row *types.TopicProgress) (*types.TopicProgress, error) {
	if row == nil || row.UserID == uuid.Nil || row.TopicID == "" {
		return nil, fmt.Errorf("topic progress upsert: missing user_id or topic_id")
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	transaction := dbc.DB(r.db)
	if err := transaction.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"completed",
				"completed_at",
				"updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	// On conflict the stored id and created_at belong to the existing row.
	var stored types.TopicProgress
	if err := transaction.
		Where("user_id = ? AND topic_id = ?", row.UserID, row.TopicID).
		Take(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *topicProgressRepo) GetByUserAndTopicIDs(dbc dbctx.Context, userID uuid.UUID, topicIDs []string) ([]*types.TopicProgress, error) {
	var results []*types.TopicProgress
	if userID == uuid.Nil || len(topicIDs) == 0 {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("user_id = ? AND topic_id IN ?", userID, topicIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *topicProgressRepo) ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.TopicProgress, error) {
	var results []*types.TopicProgress
	if userID == uuid.Nil {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
