package notification

import (
	"context"
	"time"

	"weather-notifier/configs"
	"weather-notifier/internal/domain/gateway/db"
	"weather-notifier/internal/domain/model"
)

// RecipientResolver decides who receives a city's notification.
type RecipientResolver interface {
	Resolve(ctx context.Context, city string, asOf time.Time) (model.RecipientSet, error)
}

// NewRecipientResolver returns the resolver for the dispatch mode. Unknown modes fall back to
// segment targeting.
func NewRecipientResolver(mode string, recipientGateway db.RecipientGateway) RecipientResolver {
	if mode == configs.ModeList {
		return &listResolver{recipientGateway: recipientGateway}
	}
	return segmentResolver{}
}

// segmentResolver lets the push provider match devices by their city tag.
type segmentResolver struct{}

func (segmentResolver) Resolve(_ context.Context, city string, _ time.Time) (model.RecipientSet, error) {
	segment := model.CitySegment(city)
	return model.RecipientSet{Segment: &segment}, nil
}

// listResolver reads the device tokens registered for the city.
type listResolver struct {
	recipientGateway db.RecipientGateway
}

func (r *listResolver) Resolve(ctx context.Context, city string, asOf time.Time) (model.RecipientSet, error) {
	tokens, err := r.recipientGateway.FindDeviceTokensByCity(ctx, city, asOf)
	if err != nil {
		return model.RecipientSet{}, err
	}
	return model.RecipientSet{DeviceTokens: distinctTokens(tokens)}, nil
}

// distinctTokens drops blanks and repeats, keeping first-seen order.
func distinctTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		result = append(result, token)
	}
	return result
}
