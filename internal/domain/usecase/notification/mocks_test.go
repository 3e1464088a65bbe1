package notification

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"weather-notifier/internal/domain/model"
)

type weatherGatewayMock struct {
	mock.Mock
}

func (m *weatherGatewayMock) CheckCredentials() error {
	return m.Called().Error(0)
}

func (m *weatherGatewayMock) FetchCurrent(ctx context.Context, city string) (*model.WeatherReading, error) {
	args := m.Called(ctx, city)
	if reading := args.Get(0); reading != nil {
		return reading.(*model.WeatherReading), args.Error(1)
	}
	return nil, args.Error(1)
}

type pushGatewayMock struct {
	mock.Mock
}

func (m *pushGatewayMock) CheckCredentials() error {
	return m.Called().Error(0)
}

func (m *pushGatewayMock) Send(ctx context.Context, city string, message model.NotificationMessage, recipients model.RecipientSet) (*model.ProviderReceipt, error) {
	args := m.Called(ctx, city, message, recipients)
	if receipt := args.Get(0); receipt != nil {
		return receipt.(*model.ProviderReceipt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *pushGatewayMock) UpdateDeviceTags(ctx context.Context, deviceToken string, tags map[string]string, externalUserID string) error {
	return m.Called(ctx, deviceToken, tags, externalUserID).Error(0)
}

type recipientGatewayMock struct {
	mock.Mock
}

func (m *recipientGatewayMock) FindDistinctCities(ctx context.Context, asOf time.Time) ([]string, error) {
	args := m.Called(ctx, asOf)
	if cities := args.Get(0); cities != nil {
		return cities.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *recipientGatewayMock) FindDeviceTokensByCity(ctx context.Context, city string, asOf time.Time) ([]string, error) {
	args := m.Called(ctx, city, asOf)
	if tokens := args.Get(0); tokens != nil {
		return tokens.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
