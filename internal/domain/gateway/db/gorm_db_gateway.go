package db

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"

	"weather-notifier/internal/domain/model"
)

type GormHealthDBGateway struct {
	DB      *gorm.DB
	Timeout time.Duration
}

var _ HealthDBGateway = (*GormHealthDBGateway)(nil)

func NewGormHealthDBGateway(db *gorm.DB) *GormHealthDBGateway {
	return &GormHealthDBGateway{DB: db, Timeout: 2 * time.Second}
}

func (gateway *GormHealthDBGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	sqlDB, err := gateway.DB.DB()
	if err != nil {
		return downStatus(err)
	}

	ctx, cancel := context.WithTimeout(ctx, gateway.Timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return downStatus(err)
	}

	stats := sqlDB.Stats()
	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"open_connections": strconv.Itoa(stats.OpenConnections),
			"in_use":           strconv.Itoa(stats.InUse),
			"idle":             strconv.Itoa(stats.Idle),
		},
	}
}

func downStatus(err error) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{
		Status:  model.StatusDown,
		Details: map[string]string{"message": err.Error()},
	}
}
