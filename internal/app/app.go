package app

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/codelearn-backend/internal/data/db"
	apphttp "github.com/yungbote/codelearn-backend/internal/http"
	"github.com/yungbote/codelearn-backend/internal/modules/learning/catalog"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *apphttp.Server
	Cfg      Config
	Repos    Repos
	Services Services

	dbService *db.Service
	clients   Clients
}

// New connects storage and clients, migrates the schema and wires the HTTP stack.
func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	dbService, err := db.Open(log, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	theDB := dbService.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		_ = dbService.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = dbService.Close()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients)

	if cfg.SeedOnStart {
		if err := seedCatalog(ctx, log, serviceset.Seeder); err != nil {
			clients.Close()
			_ = dbService.Close()
			return nil, err
		}
	}

	handlerset := wireHandlers(log, cfg, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := apphttp.NewServer(wireRouter(log, cfg, handlerset, middleware), ":"+cfg.Port)

	return &App{
		Log:       log,
		DB:        theDB,
		Server:    server,
		Cfg:       cfg,
		Repos:     reposet,
		Services:  serviceset,
		dbService: dbService,
		clients:   clients,
	}, nil
}

func seedCatalog(ctx context.Context, log *logger.Logger, seeder *catalog.Seeder) error {
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	user := catalog.DefaultUser()
	stats, err := seeder.Seed(ctx, cat, &user)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	log.Info("Catalog seeded", "courses", stats.Courses, "topics", stats.Topics, "contents", stats.Contents)
	return nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Server.Run()
}

// Close stops accepting requests, waits for in-flight ones until ctx is done,
// then releases clients and the database.
func (a *App) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http: %w", err))
		}
	}
	a.clients.Close()
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	return errors.Join(errs...)
}
