package learning

import (
	"time"

	"gorm.io/datatypes"
)

type TopicStatus string

const (
	TopicStatusLocked    TopicStatus = "locked"
	TopicStatusAvailable TopicStatus = "available"
	TopicStatusCompleted TopicStatus = "completed"
)

func (s TopicStatus) Valid() bool {
	switch s {
	case TopicStatusLocked, TopicStatusAvailable, TopicStatusCompleted:
		return true
	}
	return false
}

// Course is a language track. Ids are stable slugs ("python", "go").
type Course struct {
	ID          string    `gorm:"primaryKey;size:64;column:id" json:"id"`
	Title       string    `gorm:"not null;column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	Order       int       `gorm:"not null;default:0;column:sort_order" json:"order"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (Course) TableName() string { return "course" }

// Topic is one lesson in a course. Order is 1-based and unique per course.
// Status is the shared default-view column; per-user state lives in TopicProgress.
type Topic struct {
	ID          string      `gorm:"primaryKey;size:64;column:id" json:"id"`
	CourseID    string      `gorm:"not null;size:64;column:course_id;uniqueIndex:idx_topic_course_order,priority:1" json:"courseId"`
	Order       int         `gorm:"not null;column:sort_order;uniqueIndex:idx_topic_course_order,priority:2" json:"order"`
	Title       string      `gorm:"not null;column:title" json:"title"`
	Description string      `gorm:"column:description" json:"description"`
	Duration    int         `gorm:"not null;default:60;column:duration" json:"duration"`
	Status      TopicStatus `gorm:"not null;size:16;default:locked;column:status" json:"status"`
	CreatedAt   time.Time   `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (Topic) TableName() string { return "topic" }

type Exercise struct {
	Question string   `json:"question" yaml:"question"`
	Hints    []string `json:"hints" yaml:"hints"`
	Solution string   `json:"solution" yaml:"solution"`
}

// TopicContent holds the lesson body for a topic. Immutable after seeding.
type TopicContent struct {
	TopicID   string                        `gorm:"primaryKey;size:64;column:topic_id" json:"topicId"`
	Content   string                        `gorm:"type:text;column:content" json:"content"`
	Exercises datatypes.JSONSlice[Exercise] `gorm:"column:exercises" json:"exercises"`
	CreatedAt time.Time                     `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time                     `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (TopicContent) TableName() string { return "topic_content" }
