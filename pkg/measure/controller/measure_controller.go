package controller

import "github.com/labstack/echo/v4"

type MeasureController interface {
	Get(c echo.Context) error
	Add(c echo.Context) error
	Upload(c echo.Context) error

	Invalid(c echo.Context) error
	InvalidByID(c echo.Context) error
	DeleteInvalid(c echo.Context) error
}
