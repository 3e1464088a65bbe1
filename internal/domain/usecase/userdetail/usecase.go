package userdetail

import (
	"context"

	"weather-notifier/internal/domain/entity"
	"weather-notifier/internal/domain/model"
)

type UseCase interface {
	FindAll(ctx context.Context, page int, size int) (*model.Page[entity.UserDetail], error)
	FindByID(ctx context.Context, id uint) (*entity.UserDetail, error)
	Create(ctx context.Context, dto model.UserDetailDTO) (*entity.UserDetail, error)
	Update(ctx context.Context, id uint, dto model.UserDetailUpdateDTO) (*entity.UserDetail, error)
	Delete(ctx context.Context, id uint) error
}
