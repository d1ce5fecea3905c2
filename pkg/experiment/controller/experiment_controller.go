package controller

import "github.com/labstack/echo/v4"

type ExperimentController interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	GetByName(c echo.Context) error
	GetBySpecies(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error

	Activate(c echo.Context) error
	Active(c echo.Context) error

	Measurements(c echo.Context) error
	LatestMeasurements(c echo.Context) error
	ExportCSV(c echo.Context) error
	ExportJSON(c echo.Context) error
	ExportXLSX(c echo.Context) error
}
