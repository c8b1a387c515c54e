package models

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN   string
	Debug bool
}

// InitDB opens the MySQL connection and migrates the relational models.
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if config.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(config.DSN), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&File{}, &User{}, &Appointment{}); err != nil {
		return nil, err
	}

	return db, nil
}
