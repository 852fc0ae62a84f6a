package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type Config struct {
	Driver string // "postgres" or "sqlite"

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string
	PostgresSSLMode  string

	SQLitePath string
}

type Service struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

func (s *Service) DB() *gorm.DB   { return s.db }
func (s *Service) Driver() string { return s.driver }

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Open connects using cfg.Driver. Unknown drivers are an error.
func Open(log *logger.Logger, cfg Config) (*Service, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "postgres", "postgresql":
		return NewPostgresService(log, cfg)
	case "sqlite", "sqlite3":
		return NewSQLiteService(log, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func NewPostgresService(log *logger.Logger, cfg Config) (*Service, error) {
	serviceLog := log.With("service", "PostgresService")
	sslMode := cfg.PostgresSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresName,
		sslMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), gormConfig(serviceLog))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	serviceLog.Info("connected", "host", cfg.PostgresHost, "db", cfg.PostgresName)
	return &Service{db: db, driver: "postgres", log: serviceLog}, nil
}

// NewSQLiteService opens a file-backed (or ":memory:") SQLite database.
// SQLite serializes writers, so the pool is pinned to one connection.
func NewSQLiteService(log *logger.Logger, path string) (*Service, error) {
	serviceLog := log.With("service", "SQLiteService")
	if strings.TrimSpace(path) == "" {
		path = "codelearn.db"
	}
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_busy_timeout=5000"
	}
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(serviceLog))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	serviceLog.Info("opened", "path", path)
	return &Service{db: db, driver: "sqlite", log: serviceLog}, nil
}

func gormConfig(log *logger.Logger) *gorm.Config {
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: gormLogger.New(
			log,
			gormLogger.Config{
				SlowThreshold:             1 * time.Second,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}
}
