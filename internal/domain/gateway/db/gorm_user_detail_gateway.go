package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"weather-notifier/internal/domain/entity"
	"weather-notifier/internal/domain/model"
)

type GormUserDetailGateway struct {
	DB *gorm.DB
}

var _ UserDetailGateway = (*GormUserDetailGateway)(nil)

func NewGormUserDetailGateway(db *gorm.DB) *GormUserDetailGateway {
	return &GormUserDetailGateway{DB: db}
}

func (gateway *GormUserDetailGateway) FindAll(ctx context.Context, offset int, limit int) ([]entity.UserDetail, error) {
	userDetails := make([]entity.UserDetail, 0)
	err := gateway.DB.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&userDetails).Error
	return userDetails, err
}

func (gateway *GormUserDetailGateway) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := gateway.DB.WithContext(ctx).Model(&entity.UserDetail{}).Count(&count).Error
	return count, err
}

func (gateway *GormUserDetailGateway) FindByID(ctx context.Context, id uint) (*entity.UserDetail, error) {
	var userDetail entity.UserDetail
	if err := gateway.DB.WithContext(ctx).First(&userDetail, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &userDetail, nil
}

func (gateway *GormUserDetailGateway) Create(ctx context.Context, userDetail *entity.UserDetail) error {
	return translateError(gateway.DB.WithContext(ctx).Create(userDetail).Error)
}

// Update writes every column, so nil pointers clear the optional fields
func (gateway *GormUserDetailGateway) Update(ctx context.Context, userDetail *entity.UserDetail) error {
	result := gateway.DB.WithContext(ctx).Select("*").Omit("created_at").Updates(userDetail)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrUserDetailNotFound
	}
	return nil
}

func (gateway *GormUserDetailGateway) DeleteByID(ctx context.Context, id uint) error {
	result := gateway.DB.WithContext(ctx).Delete(&entity.UserDetail{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrUserDetailNotFound
	}
	return nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.ErrUserDetailNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return model.ErrDuplicatedDeviceToken
	default:
		return err
	}
}
