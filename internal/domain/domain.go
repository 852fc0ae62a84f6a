package domain

import (
	"github.com/yungbote/codelearn-backend/internal/domain/learning"
	"github.com/yungbote/codelearn-backend/internal/domain/user"
)

const (
	TopicStatusLocked    = learning.TopicStatusLocked
	TopicStatusAvailable = learning.TopicStatusAvailable
	TopicStatusCompleted = learning.TopicStatusCompleted
)

type (
	User = user.User

	Course        = learning.Course
	Topic         = learning.Topic
	TopicStatus   = learning.TopicStatus
	TopicContent  = learning.TopicContent
	Exercise      = learning.Exercise
	TopicProgress = learning.TopicProgress
)
