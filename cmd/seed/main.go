package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/codelearn-backend/internal/app"
	"github.com/yungbote/codelearn-backend/internal/data/db"
	"github.com/yungbote/codelearn-backend/internal/data/repos"
	"github.com/yungbote/codelearn-backend/internal/modules/learning/catalog"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

func main() {
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), log); err != nil {
		log.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	cfg := app.LoadConfig(log)

	dbService, err := db.Open(log, cfg.DB)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer dbService.Close()
	theDB := dbService.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	seeder := catalog.NewSeeder(catalog.SeederDeps{
		DB:       theDB,
		Log:      log,
		Users:    repos.NewUserRepo(theDB, log),
		Courses:  repos.NewCourseRepo(theDB, log),
		Topics:   repos.NewTopicRepo(theDB, log),
		Contents: repos.NewTopicContentRepo(theDB, log),
	})
	user := catalog.DefaultUser()
	stats, err := seeder.Seed(ctx, cat, &user)
	if err != nil {
		return err
	}
	log.Info("Database seeded",
		"courses", stats.Courses,
		"topics", stats.Topics,
		"contents", stats.Contents,
		"user_created", stats.User,
	)
	return nil
}
