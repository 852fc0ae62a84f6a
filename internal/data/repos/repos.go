package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/codelearn-backend/internal/data/repos/learning"
	"github.com/yungbote/codelearn-backend/internal/data/repos/user"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type CourseRepo = learning.CourseRepo
type TopicRepo = learning.TopicRepo
type TopicContentRepo = learning.TopicContentRepo
type TopicProgressRepo = learning.TopicProgressRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, baseLog)
}
func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return learning.NewTopicRepo(db, baseLog)
}
func NewTopicContentRepo(db *gorm.DB, baseLog *logger.Logger) TopicContentRepo {
	return learning.NewTopicContentRepo(db, baseLog)
}
func NewTopicProgressRepo(db *gorm.DB, baseLog *logger.Logger) TopicProgressRepo {
	return learning.NewTopicProgressRepo(db, baseLog)
}
