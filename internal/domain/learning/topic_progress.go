package learning

import (
	"time"

	"github.com/google/uuid"
)

// TopicProgress is the authoritative per-user completion record.
// (user_id, topic_id) is unique; writes are upserts on that key.
type TopicProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;column:user_id;uniqueIndex:idx_topic_progress_user_topic,priority:1" json:"userId"`
	TopicID     string     `gorm:"not null;size:64;column:topic_id;uniqueIndex:idx_topic_progress_user_topic,priority:2;index" json:"topicId"`
	Completed   bool       `gorm:"not null;column:completed" json:"completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completedAt"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (TopicProgress) TableName() string { return "topic_progress" }
