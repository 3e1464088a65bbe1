package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"weather-notifier/internal/domain/entity"
	"weather-notifier/internal/domain/model"
)

type userDetailUseCaseMock struct {
	mock.Mock
}

func (m *userDetailUseCaseMock) FindAll(ctx context.Context, page int, size int) (*model.Page[entity.UserDetail], error) {
	args := m.Called(ctx, page, size)
	if result := args.Get(0); result != nil {
		return result.(*model.Page[entity.UserDetail]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *userDetailUseCaseMock) FindByID(ctx context.Context, id uint) (*entity.UserDetail, error) {
	args := m.Called(ctx, id)
	if result := args.Get(0); result != nil {
		return result.(*entity.UserDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *userDetailUseCaseMock) Create(ctx context.Context, dto model.UserDetailDTO) (*entity.UserDetail, error) {
	args := m.Called(ctx, dto)
	if result := args.Get(0); result != nil {
		return result.(*entity.UserDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *userDetailUseCaseMock) Update(ctx context.Context, id uint, dto model.UserDetailUpdateDTO) (*entity.UserDetail, error) {
	args := m.Called(ctx, id, dto)
	if result := args.Get(0); result != nil {
		return result.(*entity.UserDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *userDetailUseCaseMock) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func newUserDetailServer(useCase *userDetailUseCaseMock) *echo.Echo {
	e := echo.New()
	NewUserDetailController(e.Group("/weather-notifier"), useCase).InitUserDetailRoutes()
	return e
}

func serve(e *echo.Echo, method string, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFindAllUserDetails(t *testing.T) {
	useCase := &userDetailUseCaseMock{}
	useCase.On("FindAll", mock.Anything, 1, 5).
		Return(model.NewPage([]entity.UserDetail{{ID: 6, DeviceToken: "token-a"}}, 1, 5, 6), nil)

	rec := serve(newUserDetailServer(useCase), http.MethodGet, "/weather-notifier/user-details?page=1&size=5", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"device_token":"token-a"`)
	assert.Contains(t, rec.Body.String(), `"totalPages":2`)
}

func TestFindAllUsesDefaultPaging(t *testing.T) {
	useCase := &userDetailUseCaseMock{}
	useCase.On("FindAll", mock.Anything, 0, 10).Return(model.NewPage([]entity.UserDetail{}, 0, 10, 0), nil)

	rec := serve(newUserDetailServer(useCase), http.MethodGet, "/weather-notifier/user-details?page=abc", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	useCase.AssertExpectations(t)
}

func TestCreateUserDetail(t *testing.T) {
	token := "token-a"
	city := "Lahore"
	useCase := &userDetailUseCaseMock{}
	useCase.On("Create", mock.Anything, model.UserDetailDTO{DeviceToken: &token, City: &city}).
		Return(&entity.UserDetail{ID: 1, DeviceToken: token, City: &city}, nil)

	rec := serve(newUserDetailServer(useCase), http.MethodPost, "/weather-notifier/user-details", `{"device_token":"token-a","city":"Lahore"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)
}

func TestCreateUserDetailErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "missing token", err: model.ErrDeviceTokenRequired, status: http.StatusBadRequest},
		{name: "duplicated token", err: model.ErrDuplicatedDeviceToken, status: http.StatusConflict},
		{name: "unexpected", err: assert.AnError, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := &userDetailUseCaseMock{}
			useCase.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(newUserDetailServer(useCase), http.MethodPost, "/weather-notifier/user-details", `{"city":"Lahore"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestCreateUserDetailInvalidBody(t *testing.T) {
	useCase := &userDetailUseCaseMock{}

	rec := serve(newUserDetailServer(useCase), http.MethodPost, "/weather-notifier/user-details", `{"device_token":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	useCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateUserDetail(t *testing.T) {
	city := "Multan"
	useCase := &userDetailUseCaseMock{}
	useCase.On("Update", mock.Anything, uint(3), model.UserDetailUpdateDTO{City: model.Of("Multan")}).
		Return(&entity.UserDetail{ID: 3, DeviceToken: "token-a", City: &city}, nil)
	useCase.On("Update", mock.Anything, uint(4), mock.Anything).Return(nil, model.ErrUserDetailNotFound)
	e := newUserDetailServer(useCase)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodPut, "/weather-notifier/user-details/3", `{"city":"Multan"}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodPut, "/weather-notifier/user-details/4", `{"city":"Multan"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPut, "/weather-notifier/user-details/x", `{"city":"Multan"}`).Code)
}

func TestUpdateUserDetailNullClearsField(t *testing.T) {
	useCase := &userDetailUseCaseMock{}
	useCase.On("Update", mock.Anything, uint(3), model.UserDetailUpdateDTO{City: model.Null[string](), Lat: model.Of(31.5)}).
		Return(&entity.UserDetail{ID: 3, DeviceToken: "token-a"}, nil)
	e := newUserDetailServer(useCase)

	rec := serve(e, http.MethodPut, "/weather-notifier/user-details/3", `{"city":null,"lat":31.5,"device_token":"token-b"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	useCase.AssertExpectations(t)
}

func TestDeleteUserDetail(t *testing.T) {
	useCase := &userDetailUseCaseMock{}
	useCase.On("Delete", mock.Anything, uint(3)).Return(nil)
	useCase.On("Delete", mock.Anything, uint(4)).Return(model.ErrUserDetailNotFound)
	e := newUserDetailServer(useCase)

	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodDelete, "/weather-notifier/user-details/3", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodDelete, "/weather-notifier/user-details/4", "").Code)
}

type healthUseCaseStub struct {
	response model.HealthResponse
}

func (s healthUseCaseStub) CheckHealth(context.Context) model.HealthResponse {
	return s.response
}

func TestCheckHealthStatusCodes(t *testing.T) {
	for status, code := range map[model.HealthStatus]int{
		model.StatusUp:   http.StatusOK,
		model.StatusDown: http.StatusServiceUnavailable,
	} {
		e := echo.New()
		NewHealthController(e.Group(""), healthUseCaseStub{response: model.HealthResponse{Status: status}}).InitHealthRoutes()

		rec := serve(e, http.MethodGet, "/health", "")

		assert.Equal(t, code, rec.Code)
		assert.Contains(t, rec.Body.String(), string(status))
	}
}

type triggerFunc func(ctx context.Context, runID string) error

func (f triggerFunc) Trigger(ctx context.Context, runID string) error {
	return f(ctx, runID)
}

func TestRunNotificationsIsAsync(t *testing.T) {
	triggered := make(chan string, 1)
	e := echo.New()
	NewNotificationController(e.Group(""), triggerFunc(func(ctx context.Context, runID string) error {
		triggered <- runID
		return nil
	})).InitNotificationRoutes()

	rec := serve(e, http.MethodGet, "/notifications/run", "")

	require.Equal(t, http.StatusAccepted, rec.Code)
	select {
	case runID := <-triggered:
		assert.Contains(t, rec.Body.String(), runID)
	case <-time.After(time.Second):
		t.Fatal("run was not triggered")
	}
}

func TestSwaggerServesDocument(t *testing.T) {
	e := echo.New()
	NewSwaggerController(e.Group("/weather-notifier"), "/weather-notifier").InitSwaggerRoutes()

	rec := serve(e, http.MethodGet, "/weather-notifier/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var document struct {
		BasePath string         `json:"basePath"`
		Paths    map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &document))
	assert.Equal(t, "/weather-notifier", document.BasePath)
	assert.Contains(t, document.Paths, "/user-details/{id}")
}
