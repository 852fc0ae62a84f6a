package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/codelearn-backend/internal/data/repos"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type Repos struct {
	User          repos.UserRepo
	Course        repos.CourseRepo
	Topic         repos.TopicRepo
	TopicContent  repos.TopicContentRepo
	TopicProgress repos.TopicProgressRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          repos.NewUserRepo(db, log),
		Course:        repos.NewCourseRepo(db, log),
		Topic:         repos.NewTopicRepo(db, log),
		TopicContent:  repos.NewTopicContentRepo(db, log),
		TopicProgress: repos.NewTopicProgressRepo(db, log),
	}
}
