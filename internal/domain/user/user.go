package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Email            string                      `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password         string                      `gorm:"not null;column:password" json:"-"`
	Name             string                      `gorm:"column:name" json:"name"`
	TargetLanguage   string                      `gorm:"not null;default:ENGLISH;column:target_language" json:"targetLanguage"`
	ExperienceLevel  string                      `gorm:"not null;default:BEGINNER;column:experience_level" json:"experienceLevel"`
	KnownLanguages   datatypes.JSONSlice[string] `gorm:"column:known_languages" json:"knownLanguages"`
	DailyGoalMinutes int                         `gorm:"not null;default:30;column:daily_goal_minutes" json:"dailyGoalMinutes"`
	CreatedAt        time.Time                   `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time                   `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "user" }
