package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	"github.com/yungbote/codelearn-backend/internal/data/repos"
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

// DefaultUserID is the fixed id of the placeholder learner created by seeding.
var DefaultUserID = uuid.MustParse("00000000-0000-4000-8000-000000000123")

type UserSeed struct {
	ID               uuid.UUID
	Email            string
	Password         string
	Name             string
	TargetLanguage   string
	ExperienceLevel  string
	KnownLanguages   []string
	DailyGoalMinutes int
}

func DefaultUser() UserSeed {
	return UserSeed{
		ID:               DefaultUserID,
		Email:            "test@example.com",
		Password:         "password123",
		Name:             "Test User",
		TargetLanguage:   "ENGLISH",
		ExperienceLevel:  "INTERMEDIATE",
		KnownLanguages:   []string{"JavaScript", "Python"},
		DailyGoalMinutes: 30,
	}
}

type SeederDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Users    repos.UserRepo
	Courses  repos.CourseRepo
	Topics   repos.TopicRepo
	Contents repos.TopicContentRepo

	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

type Seeder struct {
	deps SeederDeps
	log  *logger.Logger
}

type Stats struct {
	Courses  int
	Topics   int
	Contents int
	User     bool
}

func NewSeeder(deps SeederDeps) *Seeder {
	if deps.BcryptCost == 0 {
		deps.BcryptCost = bcrypt.DefaultCost
	}
	return &Seeder{deps: deps, log: deps.Log.With("service", "CatalogSeeder")}
}

// Seed writes the catalog (and user, when non-nil) in one transaction.
// Running it again refreshes lesson text but never touches unlock state or progress.
func (s *Seeder) Seed(ctx context.Context, cat *Catalog, user *UserSeed) (Stats, error) {
	var stats Stats
	if err := cat.Validate(); err != nil {
		return stats, fmt.Errorf("invalid catalog: %w", err)
	}
	courses, topics, contents := cat.Rows()

	var userRow *types.User
	if user != nil {
		row, err := s.userRow(*user)
		if err != nil {
			return stats, err
		}
		userRow = row
	}

	err := s.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.New(ctx).WithTx(tx)
		if userRow != nil {
			if err := s.deps.Users.CreateIfMissing(dbc, []*types.User{userRow}); err != nil {
				return fmt.Errorf("seed user: %w", err)
			}
			stats.User = true
		}
		if _, err := s.deps.Courses.Upsert(dbc, courses); err != nil {
			return fmt.Errorf("seed courses: %w", err)
		}
		if _, err := s.deps.Topics.Upsert(dbc, topics); err != nil {
			return fmt.Errorf("seed topics: %w", err)
		}
		if _, err := s.deps.Contents.Upsert(dbc, contents); err != nil {
			return fmt.Errorf("seed topic content: %w", err)
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	stats.Courses, stats.Topics, stats.Contents = len(courses), len(topics), len(contents)
	s.log.Info("catalog seeded",
		"courses", stats.Courses,
		"topics", stats.Topics,
		"contents", stats.Contents,
	)
	return stats, nil
}

func (s *Seeder) userRow(u UserSeed) (*types.User, error) {
	email := strings.TrimSpace(u.Email)
	if email == "" || u.Password == "" {
		return nil, fmt.Errorf("seed user needs email and password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.deps.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	return &types.User{
		ID:               u.ID,
		Email:            email,
		Password:         string(hash),
		Name:             u.Name,
		TargetLanguage:   u.TargetLanguage,
		ExperienceLevel:  u.ExperienceLevel,
		KnownLanguages:   u.KnownLanguages,
		DailyGoalMinutes: u.DailyGoalMinutes,
	}, nil
}
