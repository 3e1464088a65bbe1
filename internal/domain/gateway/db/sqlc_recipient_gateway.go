package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	findDistinctCitiesQuery = `
		SELECT DISTINCT u.city
		FROM user_details u
		WHERE u.city IS NOT NULL AND u.city <> '' AND u.created_at <= $1
		ORDER BY u.city`

	findDeviceTokensByCityQuery = `
		SELECT DISTINCT u.device_token
		FROM user_details u
		WHERE u.city = $1 AND u.device_token IS NOT NULL AND u.device_token <> '' AND u.created_at <= $2
		ORDER BY u.device_token`
)

type SQLCRecipientGateway struct {
	DB *sql.DB
}

var _ RecipientGateway = (*SQLCRecipientGateway)(nil)

func NewSQLCRecipientGateway(db *sql.DB) *SQLCRecipientGateway {
	return &SQLCRecipientGateway{DB: db}
}

// FindDistinctCities lists every city with at least one registration
func (gateway *SQLCRecipientGateway) FindDistinctCities(ctx context.Context, asOf time.Time) ([]string, error) {
	cities, err := gateway.queryStrings(ctx, findDistinctCitiesQuery, asOf)
	if err != nil {
		return nil, fmt.Errorf("find distinct cities: %w", err)
	}
	return cities, nil
}

// FindDeviceTokensByCity lists the distinct non-empty device tokens registered for the city
func (gateway *SQLCRecipientGateway) FindDeviceTokensByCity(ctx context.Context, city string, asOf time.Time) ([]string, error) {
	tokens, err := gateway.queryStrings(ctx, findDeviceTokensByCityQuery, city, asOf)
	if err != nil {
		return nil, fmt.Errorf("find device tokens for city %q: %w", city, err)
	}
	return tokens, nil
}

func (gateway *SQLCRecipientGateway) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := gateway.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return values, rows.Err()
}
