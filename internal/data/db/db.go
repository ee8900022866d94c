// Package db owns database connectivity, migration and the transaction
// retry helper. Postgres is the production driver; DB_DRIVER=sqlite switches
// to an embedded file database for local development without a server.
package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/jyotishya/jyotishya-backend/internal/platform/envutil"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

type Service struct {
	db     *gorm.DB
	driver string
	log    *logger.Logger
}

func New(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	driver := strings.ToLower(envutil.GetEnv("DB_DRIVER", "postgres", logg))

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "postgres":
		db, err = openPostgres(cfg, logg)
	case "sqlite":
		db, err = openSQLite(cfg, logg)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
	if err != nil {
		return nil, err
	}

	serviceLog.Info("database connected", "driver", driver)
	return &Service{db: db, driver: driver, log: serviceLog}, nil
}

func openPostgres(cfg *gorm.Config, logg *logger.Logger) (*gorm.DB, error) {
	host := envutil.GetEnv("POSTGRES_HOST", "localhost", logg)
	port := envutil.GetEnv("POSTGRES_PORT", "5432", logg)
	user := envutil.GetEnv("POSTGRES_USER", "postgres", logg)
	password := envutil.GetEnv("POSTGRES_PASSWORD", "", logg)
	name := envutil.GetEnv("POSTGRES_NAME", "jyotishya", logg)

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, host, port, name,
	)

	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}
	return db, nil
}

func openSQLite(cfg *gorm.Config, logg *logger.Logger) (*gorm.DB, error) {
	path := envutil.GetEnv("SQLITE_PATH", "jyotishya.db", logg)

	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db %s: %w", path, err)
	}
	// Single writer keeps SQLITE_BUSY rare; the tx retry helper covers the rest.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Driver() string { return s.driver }
