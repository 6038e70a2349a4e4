package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hrms-lite-console/internal/config"
	"github.com/hrms-lite-console/migrations"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open подключается к БД выбранного драйвера и применяет миграции
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case DriverPostgres:
		db, err = connectPostgres(cfg)
	case DriverSQLite:
		db, err = gorm.Open(sqlite.Open(sqliteDSN(cfg.Path)), gormConfig())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := Migrate(sqlDB, cfg.Driver); err != nil {
		return nil, err
	}

	return db, nil
}

// connectAttempts - сколько раз пытаемся подключиться к PostgreSQL, пока контейнер БД поднимается
const connectAttempts = 30

func connectPostgres(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB

	err := retry(connectAttempts, time.Second, func() error {
		var err error
		if db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig()); err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// retry вызывает fn до первого успеха; в ошибку попадает причина последней попытки
func retry(attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(delay)
	}
	return fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

// Migrate применяет встроенные миграции для диалекта драйвера
func Migrate(db *sql.DB, driver string) error {
	goose.SetBaseFS(migrations.FS)

	dialect := "postgres"
	if driver == DriverSQLite {
		dialect = "sqlite3"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, driver); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// sqliteDSN включает внешние ключи, чтобы каскадное удаление работало
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}
