package app

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/codelearn-backend/internal/modules/learning/catalog"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
	"github.com/yungbote/codelearn-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	Catalog     services.CatalogService
	Progress    services.ProgressService
	Translation services.TranslationService
	Seeder      *catalog.Seeder
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL, bcrypt.DefaultCost),
		Catalog: services.NewCatalogService(services.CatalogServiceDeps{
			Log:      log,
			Courses:  reposet.Course,
			Topics:   reposet.Topic,
			Contents: reposet.TopicContent,
			Progress: reposet.TopicProgress,
			Cache:    clients.Cache,
			CacheTTL: cfg.CacheTTL,
		}),
		Progress: services.NewProgressService(services.ProgressServiceDeps{
			Log:             log,
			Users:           reposet.User,
			Courses:         reposet.Course,
			Topics:          reposet.Topic,
			Progress:        reposet.TopicProgress,
			RequireUnlocked: cfg.ProgressRequireUnlocked,
		}),
		Translation: services.NewTranslationService(log, clients.OpenAI),
		Seeder: catalog.NewSeeder(catalog.SeederDeps{
			DB:       db,
			Log:      log,
			Users:    reposet.User,
			Courses:  reposet.Course,
			Topics:   reposet.Topic,
			Contents: reposet.TopicContent,
		}),
	}
}
