package userdetail

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"weather-notifier/internal/domain/entity"
	"weather-notifier/internal/domain/gateway/db"
	"weather-notifier/internal/domain/gateway/queue"
	"weather-notifier/internal/domain/model"
	"weather-notifier/pkg/log"
	"weather-notifier/pkg/msg"
)

const maxPageSize = 100

type userDetailUseCase struct {
	gateway   db.UserDetailGateway
	sender    queue.Sender
	queueName string
}

// NewUserDetailUseCase creates the registry use case. A nil sender or empty queue name
// disables the registration events.
func NewUserDetailUseCase(gateway db.UserDetailGateway, sender queue.Sender, queueName string) UseCase {
	return &userDetailUseCase{
		gateway:   gateway,
		sender:    sender,
		queueName: queueName,
	}
}

func (uc *userDetailUseCase) FindAll(ctx context.Context, page int, size int) (*model.Page[entity.UserDetail], error) {
	if page < 0 {
		page = 0
	}
	if size < 1 || size > maxPageSize {
		size = 10
	}

	userDetails, err := uc.gateway.FindAll(ctx, page*size, size)
	if err != nil {
		return nil, err
	}
	total, err := uc.gateway.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return model.NewPage(userDetails, page, size, total), nil
}

func (uc *userDetailUseCase) FindByID(ctx context.Context, id uint) (*entity.UserDetail, error) {
	return uc.gateway.FindByID(ctx, id)
}

func (uc *userDetailUseCase) Create(ctx context.Context, dto model.UserDetailDTO) (*entity.UserDetail, error) {
	if dto.DeviceToken == nil || strings.TrimSpace(*dto.DeviceToken) == "" {
		return nil, model.ErrDeviceTokenRequired
	}

	userDetail := newUserDetail(dto)

	if err := uc.gateway.Create(ctx, userDetail); err != nil {
		return nil, err
	}

	log.Info(msg.GetMessage("user-detail.created", userDetail.ID), zap.Uint("id", userDetail.ID))
	uc.publishSaved(ctx, userDetail)
	return userDetail, nil
}

// Update changes only the fields present in the dto. The device token never changes.
func (uc *userDetailUseCase) Update(ctx context.Context, id uint, dto model.UserDetailUpdateDTO) (*entity.UserDetail, error) {
	userDetail, err := uc.gateway.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Address.Set {
		userDetail.Address = dto.Address.Value
	}
	if dto.City.Set {
		userDetail.City = dto.City.Value
	}
	if dto.Lat.Set {
		userDetail.Lat = dto.Lat.Value
	}
	if dto.Lon.Set {
		userDetail.Lon = dto.Lon.Value
	}
	if err := uc.gateway.Update(ctx, userDetail); err != nil {
		return nil, err
	}

	log.Info(msg.GetMessage("user-detail.updated", userDetail.ID), zap.Uint("id", userDetail.ID))
	uc.publishSaved(ctx, userDetail)
	return userDetail, nil
}

func (uc *userDetailUseCase) Delete(ctx context.Context, id uint) error {
	if err := uc.gateway.DeleteByID(ctx, id); err != nil {
		return err
	}
	log.Info(msg.GetMessage("user-detail.deleted", id), zap.Uint("id", id))
	return nil
}

// publishSaved emits the post-write event. The write has already succeeded, so failures only log.
func (uc *userDetailUseCase) publishSaved(ctx context.Context, userDetail *entity.UserDetail) {
	if uc.sender == nil || uc.queueName == "" {
		return
	}

	event := model.RegistrationSaved{
		ID:          userDetail.ID,
		DeviceToken: userDetail.DeviceToken,
		City:        userDetail.CityName(),
	}
	if err := uc.sender.SendMessage(ctx, uc.queueName, event); err != nil {
		log.Warn(msg.GetMessage("user-detail.event.enqueue-failed", userDetail.ID, err.Error()),
			zap.Uint("id", userDetail.ID),
			zap.String("queue", uc.queueName),
			zap.Error(err))
	}
}

func newUserDetail(dto model.UserDetailDTO) *entity.UserDetail {
	return &entity.UserDetail{
		DeviceToken: strings.TrimSpace(*dto.DeviceToken),
		Address:     dto.Address,
		City:        dto.City,
		Lat:         dto.Lat,
		Lon:         dto.Lon,
	}
}
