package controller

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"weather-notifier/docs"
)

type SwaggerController struct {
	api *echo.Group
}

// NewSwaggerController serves the API document with basePath set to the group's context path
func NewSwaggerController(api *echo.Group, contextPath string) *SwaggerController {
	docs.SwaggerInfo.BasePath = contextPath
	return &SwaggerController{api: api}
}

func (controller *SwaggerController) InitSwaggerRoutes() {
	controller.api.GET("/swagger/*", echoSwagger.WrapHandler)
}
