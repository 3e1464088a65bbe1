package api

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"weather-notifier/configs"
	"weather-notifier/internal/domain/model"
	"weather-notifier/internal/domain/model/external"
	"weather-notifier/pkg/http"
	"weather-notifier/pkg/log"
)

const (
	notificationsPath = "/api/v1/notifications"
	playersPath       = "/api/v1/players/"
	defaultLanguage   = "en"
)

// pushGatewayImpl implements the PushGateway interface against the OneSignal REST API
type pushGatewayImpl struct {
	httpClient *http.Client
	appID      string
	apiKey     string
	timeout    time.Duration
	limiter    *rate.Limiter
}

// NewPushGateway creates a new instance of PushGateway with HTTP client.
// A zero rate limit disables throttling.
func NewPushGateway(cfg configs.PushConfig, clientOptions http.ClientOptions) PushGateway {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &pushGatewayImpl{
		httpClient: http.NewHttpClient(cfg.BaseURL, clientOptions),
		appID:      strings.TrimSpace(cfg.AppID),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		timeout:    cfg.Timeout,
		limiter:    limiter,
	}
}

func (p *pushGatewayImpl) CheckCredentials() error {
	var missing []string
	if p.appID == "" {
		missing = append(missing, "app id")
	}
	if p.apiKey == "" {
		missing = append(missing, "api key")
	}
	if len(missing) > 0 {
		return &model.DispatchError{Kind: model.ErrAuthMisconfigured, Err: errors.New("missing " + strings.Join(missing, " and "))}
	}
	return nil
}

// Send posts one notification targeting either the city segment or the explicit device tokens
func (p *pushGatewayImpl) Send(ctx context.Context, city string, message model.NotificationMessage, recipients model.RecipientSet) (*model.ProviderReceipt, error) {
	if err := p.CheckCredentials(); err != nil {
		err.(*model.DispatchError).City = city
		return nil, err
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &model.DispatchError{City: city, Kind: model.ErrTimeout, Err: err}
	}

	body := external.OneSignalNotificationRequest{
		AppID:    p.appID,
		Headings: map[string]string{defaultLanguage: message.Heading},
		Contents: map[string]string{defaultLanguage: message.Body},
	}
	if recipients.IsSegment() {
		segment := recipients.Segment
		body.Filters = []external.OneSignalFilter{{
			Field:    segment.Field,
			Key:      segment.Key,
			Relation: segment.Relation,
			Value:    segment.Value,
		}}
	} else {
		body.IncludePlayerIDs = recipients.DeviceTokens
	}

	successResp, _, status, err := p.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.POST).
		WithPath(notificationsPath).
		WithHeaders(p.authHeaders()).
		WithBody(body).
		WithSuccessResp(&external.OneSignalNotificationResponse{}).
		WithErrorResp(&external.OneSignalErrorResponse{}).
		Execute()

	if err != nil {
		if status >= 200 && status < 300 {
			log.Warn("Push provider accepted the notification with an unreadable body",
				zap.String("city", city), zap.Int("status", status), zap.Error(err))
			return &model.ProviderReceipt{Recipients: recipients.Count(), StatusCode: status}, nil
		}
		return nil, toDispatchError(city, err)
	}

	response := successResp.(*external.OneSignalNotificationResponse)
	if response.Errors != nil {
		log.Warn("Push provider reported errors for an accepted notification",
			zap.String("city", city), zap.Any("errors", response.Errors))
	}

	recipientCount := response.Recipients
	if recipientCount == 0 {
		recipientCount = recipients.Count()
	}

	return &model.ProviderReceipt{
		NotificationID: response.ID,
		Recipients:     recipientCount,
		StatusCode:     status,
	}, nil
}

// UpdateDeviceTags sets the device tags and external user id of a registered device
func (p *pushGatewayImpl) UpdateDeviceTags(ctx context.Context, deviceToken string, tags map[string]string, externalUserID string) error {
	city := tags["city"]
	if err := p.CheckCredentials(); err != nil {
		err.(*model.DispatchError).City = city
		return err
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if err := p.limiter.Wait(ctx); err != nil {
		return &model.DispatchError{City: city, Kind: model.ErrTimeout, Err: err}
	}

	_, _, status, err := p.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.PUT).
		WithPath(playersPath + url.PathEscape(deviceToken)).
		WithHeaders(p.authHeaders()).
		WithBody(external.OneSignalDeviceUpdateRequest{
			AppID:          p.appID,
			Tags:           tags,
			ExternalUserID: externalUserID,
		}).
		WithSuccessResp(&external.OneSignalDeviceUpdateResponse{}).
		WithErrorResp(&external.OneSignalErrorResponse{}).
		Execute()

	if err != nil && (status < 200 || status >= 300) {
		return toDispatchError(city, err)
	}
	return nil
}

func (p *pushGatewayImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout > 0 {
		return context.WithTimeout(ctx, p.timeout)
	}
	return context.WithCancel(ctx)
}

func (p *pushGatewayImpl) authHeaders() map[string]string {
	return map[string]string{"Authorization": "Basic " + p.apiKey}
}

func toDispatchError(city string, err error) error {
	var statusErr *http.StatusError
	switch {
	case errors.As(err, &statusErr):
		return &model.DispatchError{City: city, Kind: model.ErrProviderHTTP, Status: statusErr.StatusCode, Body: statusErr.Body}
	case model.IsTimeout(err):
		return &model.DispatchError{City: city, Kind: model.ErrTimeout, Err: err}
	default:
		return &model.DispatchError{City: city, Kind: model.ErrUnavailable, Err: err}
	}
}
