package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qsite/pkg/config"
	"qsite/pkg/logger"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// PostgresDSN build postgres key/value dsn from config
func PostgresDSN(c config.DatabaseConfig) string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.Database, c.Port, sslMode)
}

// NewPGConnection create a gorm postgres connection with retry
func NewPGConnection(d Connection) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < retryCount(d.RetryCount); i++ {
		db, err = gorm.Open(postgres.Open(d.ConnectStr), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					sqlDB.SetMaxOpenConns(20)
					sqlDB.SetMaxIdleConns(10)
					sqlDB.SetConnMaxLifetime(30 * time.Minute)
					return db, nil
				}
			} else {
				err = dbErr
			}
		}
		logger.Log.Warn(
			"Failed to connect to postgreSQL (gorm), retrying...",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		time.Sleep(d.RetryInterval * time.Second)
	}

	return nil, err
}

// NewDatabaseConnection create a new postgresSQL pgx pool, used for stored procedures
func NewDatabaseConnection(d Connection) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	dbConfig, err := pgxpool.ParseConfig(d.ConnectStr)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	for i := 0; i < retryCount(d.RetryCount); i++ {
		pool, err = pgxpool.ConnectConfig(context.Background(), dbConfig)
		if err == nil {
			break
		}
		logger.Log.Warn(
			"Failed to connect to postgreSQL database, retrying...",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		time.Sleep(d.RetryInterval * time.Second)
	}

	return pool, err
}

// invalid_text_representation, e.g. "abc" 寫進 uuid 欄位
const pgInvalidTextRepresentation = "22P02"

// IsInvalidInput gorm 回傳的錯誤是否為欄位型別轉換失敗
func IsInvalidInput(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation
}

func retryCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
