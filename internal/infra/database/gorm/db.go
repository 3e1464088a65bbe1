package gorm

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"weather-notifier/configs"
	"weather-notifier/internal/domain/entity"
)

// Open connects to postgres and migrates the user detail table. TranslateError lets the
// gateways see gorm.ErrDuplicatedKey on unique violations.
func Open(cfg configs.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("fail to connect database: %w", err)
	}

	if err := db.AutoMigrate(&entity.UserDetail{}); err != nil {
		return nil, fmt.Errorf("fail to migrate user details: %w", err)
	}
	return db, nil
}
