// file: internals/databases/database.go
package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"trainingcenter_backend/internals/configs"
)

var DB *gorm.DB

func ConnectDB() {
	zap.L().Info("connecting to PostgreSQL")

	// statement_timeout keeps a stuck day lock from pinning a request forever.
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=trainingcenter&options=-c statement_timeout=%s",
		configs.GetEnv("DB_USER", "postgres"),
		configs.GetEnv("DB_PASSWORD"),
		configs.GetEnv("DB_HOST", "localhost"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME", "trainingcenter"),
		configs.GetEnv("DB_SSLMODE", "disable"),
		configs.GetEnv("DB_STATEMENT_TIMEOUT_MS", "5000"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 configs.NewGormLogger(zap.L()),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		zap.L().Fatal("db connect failed", zap.Error(err))
	}
	DB = db
	zap.L().Info("db connected")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		zap.L().Warn("pool tune failed", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, DB); err != nil {
			zap.L().Warn("warm-up ping failed", zap.Error(err))
			return
		}
		// the two hot lookups of every conflict check
		DB.WithContext(ctx).Exec("SELECT 1 FROM schedules WHERE schedule_day_of_week = 'MONDAY' LIMIT 1")
		DB.WithContext(ctx).Exec("SELECT 1 FROM sessions WHERE session_date = CURRENT_DATE LIMIT 1")
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("db not connected")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
