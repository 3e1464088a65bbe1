package db

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecipientGateway(t *testing.T) (*SQLCRecipientGateway, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewSQLCRecipientGateway(conn), mock
}

func TestFindDistinctCities(t *testing.T) {
	gateway, mock := newRecipientGateway(t)
	asOf := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT u.city")).
		WithArgs(asOf).
		WillReturnRows(sqlmock.NewRows([]string{"city"}).AddRow("Karachi").AddRow("Lahore"))

	cities, err := gateway.FindDistinctCities(context.Background(), asOf)

	require.NoError(t, err)
	assert.Equal(t, []string{"Karachi", "Lahore"}, cities)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindDeviceTokensByCity(t *testing.T) {
	gateway, mock := newRecipientGateway(t)
	asOf := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT u.device_token")).
		WithArgs("Lahore", asOf).
		WillReturnRows(sqlmock.NewRows([]string{"device_token"}).AddRow("a").AddRow("b"))

	tokens, err := gateway.FindDeviceTokensByCity(context.Background(), "Lahore", asOf)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tokens)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindDeviceTokensByCityEmpty(t *testing.T) {
	gateway, mock := newRecipientGateway(t)
	asOf := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT u.device_token")).
		WithArgs("Multan", asOf).
		WillReturnRows(sqlmock.NewRows([]string{"device_token"}))

	tokens, err := gateway.FindDeviceTokensByCity(context.Background(), "Multan", asOf)

	require.NoError(t, err)
	assert.NotNil(t, tokens)
	assert.Empty(t, tokens)
}

func TestFindDistinctCitiesWrapsQueryError(t *testing.T) {
	gateway, mock := newRecipientGateway(t)
	asOf := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT u.city")).
		WithArgs(asOf).
		WillReturnError(errors.New("connection reset"))

	_, err := gateway.FindDistinctCities(context.Background(), asOf)
	assert.EqualError(t, err, "find distinct cities: connection reset")
}
