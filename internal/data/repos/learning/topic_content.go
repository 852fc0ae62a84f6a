package learning

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type TopicContentRepo interface {
	Upsert(dbc dbctx.Context, contents []*types.TopicContent) ([]*types.TopicContent, error)
	// GetByTopicID returns (nil, nil) when the topic has no content row.
	GetByTopicID(dbc dbctx.Context, topicID string) (*types.TopicContent, error)
}

type topicContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicContentRepo(db *gorm.DB, baseLog *logger.Logger) TopicContentRepo {
	repoLog := baseLog.With("repo", "TopicContentRepo")
	return &topicContentRepo{db: db, log: repoLog}
}

func (r *topicContentRepo) Upsert(dbc dbctx.Context, contents []*types.TopicContent) ([]*types.TopicContent, error) {
	if len(contents) == 0 {
		return []*types.TopicContent{}, nil
	}
	if err := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "topic_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "exercises", "updated_at"}),
		}).
		Create(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *topicContentRepo) GetByTopicID(dbc dbctx.Context, topicID string) (*types.TopicContent, error) {
	if topicID == "" {
		return nil, nil
	}
	var rows []*types.TopicContent
	if err := dbc.DB(r.db).
		Where("topic_id = ?", topicID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
