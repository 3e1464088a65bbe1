package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"weather-notifier/internal/domain/model"
	"weather-notifier/internal/domain/usecase/userdetail"
	"weather-notifier/pkg/msg"
	"weather-notifier/pkg/util/numberutils"
)

type UserDetailController struct {
	api     *echo.Group
	useCase userdetail.UseCase
}

func NewUserDetailController(api *echo.Group, useCase userdetail.UseCase) *UserDetailController {
	return &UserDetailController{api: api, useCase: useCase}
}

// InitUserDetailRoutes initializes user detail routes
func (controller *UserDetailController) InitUserDetailRoutes() {
	controller.api.GET("/user-details", controller.FindAll)
	controller.api.GET("/user-details/:id", controller.FindByID)
	controller.api.POST("/user-details", controller.Create)
	controller.api.PUT("/user-details/:id", controller.Update)
	controller.api.DELETE("/user-details/:id", controller.Delete)
}

// FindAll godoc
// @Summary List user details
// @Description Retrieve registered devices with pagination
// @Tags user-details
// @Produce json
// @Param page query int false "Page number" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} model.Page[entity.UserDetail] "Paginated list of user details"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /user-details [get]
func (controller *UserDetailController) FindAll(c echo.Context) error {
	page := numberutils.ToIntWithDefault(c.QueryParam("page"), 0)
	size := numberutils.ToIntWithDefault(c.QueryParam("size"), 10)

	userDetailsPage, err := controller.useCase.FindAll(c.Request().Context(), page, size)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, userDetailsPage)
}

// FindByID godoc
// @Summary Get user detail
// @Tags user-details
// @Produce json
// @Param id path int true "User detail id"
// @Success 200 {object} entity.UserDetail
// @Failure 404 {object} map[string]string "User detail not found"
// @Router /user-details/{id} [get]
func (controller *UserDetailController) FindByID(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg.GetMessage("user-detail.error.invalid-id")})
	}

	userDetail, err := controller.useCase.FindByID(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, userDetail)
}

// Create godoc
// @Summary Register a device
// @Description Create a user detail. device_token is required and unique
// @Tags user-details
// @Accept json
// @Produce json
// @Param userDetail body model.UserDetailDTO true "User detail data"
// @Success 201 {object} entity.UserDetail "Created user detail"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Device token already registered"
// @Router /user-details [post]
func (controller *UserDetailController) Create(c echo.Context) error {
	var dto model.UserDetailDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg.GetMessage("user-detail.error.invalid-body")})
	}

	userDetail, err := controller.useCase.Create(c.Request().Context(), dto)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, userDetail)
}

// Update godoc
// @Summary Update a device registration
// @Description Fields absent from the body are left unchanged, null clears a field and device_token is ignored
// @Tags user-details
// @Accept json
// @Produce json
// @Param id path int true "User detail id"
// @Param userDetail body model.UserDetailUpdateDTO true "User detail data"
// @Success 200 {object} entity.UserDetail "Updated user detail"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "User detail not found"
// @Router /user-details/{id} [put]
func (controller *UserDetailController) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg.GetMessage("user-detail.error.invalid-id")})
	}

	var dto model.UserDetailUpdateDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg.GetMessage("user-detail.error.invalid-body")})
	}

	userDetail, err := controller.useCase.Update(c.Request().Context(), id, dto)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, userDetail)
}

// Delete godoc
// @Summary Delete a device registration
// @Tags user-details
// @Param id path int true "User detail id"
// @Success 204 "User detail deleted successfully"
// @Failure 404 {object} map[string]string "User detail not found"
// @Router /user-details/{id} [delete]
func (controller *UserDetailController) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg.GetMessage("user-detail.error.invalid-id")})
	}

	if err := controller.useCase.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrDeviceTokenRequired):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg.GetMessage("user-detail.error.token-required")})
	case errors.Is(err, model.ErrUserDetailNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": msg.GetMessage("user-detail.error.not-found")})
	case errors.Is(err, model.ErrDuplicatedDeviceToken):
		return c.JSON(http.StatusConflict, map[string]string{"error": msg.GetMessage("user-detail.error.duplicated-token")})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
