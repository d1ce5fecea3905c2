package router

import (
	"github.com/labstack/echo/v4"

	expctrl "greenhouse/pkg/experiment/controller"
	measctrl "greenhouse/pkg/measure/controller"
)

func New(
	e *echo.Echo,
	expCtrl expctrl.ExperimentController,
	measCtrl measctrl.MeasureController,
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	api := e.Group("/api")

	exp := api.Group("/experiments")
	exp.GET("", expCtrl.List)
	exp.POST("", expCtrl.Create)
	exp.GET("/active", expCtrl.Active)
	exp.GET("/name/:name", expCtrl.GetByName)
	exp.GET("/species/:species", expCtrl.GetBySpecies)
	exp.GET("/:id", expCtrl.Get)
	exp.PUT("/:id", expCtrl.Update)
	exp.DELETE("/:id", expCtrl.Delete)
	exp.PUT("/:id/activate", expCtrl.Activate)
	exp.GET("/:id/measurements", expCtrl.Measurements)
	exp.GET("/:id/measurements/latest", expCtrl.LatestMeasurements)
	exp.GET("/:id/export/csv", expCtrl.ExportCSV)
	exp.GET("/:id/export/json", expCtrl.ExportJSON)
	exp.GET("/:id/export/xlsx", expCtrl.ExportXLSX)

	meas := api.Group("/measurements")
	meas.GET("/:id", measCtrl.Get)
	meas.POST("/:id", measCtrl.Add)
	meas.POST("/:id/upload", measCtrl.Upload)
	meas.GET("/:id/invalid", measCtrl.Invalid)
	meas.GET("/invalid/:id", measCtrl.InvalidByID)
	meas.DELETE("/invalid/:id", measCtrl.DeleteInvalid)

	return e
}
