package db

import (
	"context"

	"weather-notifier/internal/domain/entity"
)

type UserDetailGateway interface {
	FindAll(ctx context.Context, offset int, limit int) ([]entity.UserDetail, error)
	CountAll(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id uint) (*entity.UserDetail, error)

	Create(ctx context.Context, userDetail *entity.UserDetail) error
	Update(ctx context.Context, userDetail *entity.UserDetail) error
	DeleteByID(ctx context.Context, id uint) error
}
