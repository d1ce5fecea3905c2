package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"greenhouse/config"
	"greenhouse/database"
	"greenhouse/logger"
	"greenhouse/router"

	// Experiment
	expCtrlImp "greenhouse/pkg/experiment/controllerImp"
	expRepoImp "greenhouse/pkg/experiment/repositoryImp"
	expSvcImp "greenhouse/pkg/experiment/serviceImp"

	// Measure
	measCtrlImp "greenhouse/pkg/measure/controllerImp"
	measRepoImp "greenhouse/pkg/measure/repositoryImp"
	measSvcImp "greenhouse/pkg/measure/serviceImp"

	// Sensor ingestion
	ingestSvcImp "greenhouse/pkg/ingest/serviceImp"
	"greenhouse/pkg/listener"

	// Health
	healthCtrlImp "greenhouse/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logging
	cfg := config.Load()
	if err := logger.Init(cfg.LogFile, cfg.LogToConsole, cfg.LogLevel); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Close()

	// 2) DB + automigrate
	db := database.Open(cfg)

	// 3) Repos
	expRepo := expRepoImp.New(db)
	cfgRepo := expRepoImp.NewConfig(db)
	measRepo := measRepoImp.New(db)

	// 4) Services
	active := expSvcImp.New(expRepo, cfgRepo, cfg.DefaultExperimentID)
	measSvc := measSvcImp.New(measRepo, cfg.CSVMaxRows, cfg.CSVMaxCols)
	ingestSvc := ingestSvcImp.New(measRepo, active)

	// 5) Controllers
	expCtrl := expCtrlImp.New(expRepo, measRepo, active)
	measCtrl := measCtrlImp.New(expRepo, measRepo, measSvc)
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 6) HTTP
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	r := router.New(e, expCtrl, measCtrl, hCtrl)

	// 7) Sensor TCP listener
	tcp := listener.New(cfg.TCPPort, ingestSvc)
	if err := tcp.Start(); err != nil {
		logger.Fatalf("tcp listener: %v", err)
	}
	logger.Infof("sensor listener on %s", tcp.Addr())

	go func() {
		logger.Infof("http listening on :%s", cfg.Port)
		if err := r.Start(":" + cfg.Port); err != nil {
			logger.Errorf("http server: %v", err)
		}
	}()

	// 8) Shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Infof("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := tcp.Shutdown(ctx); err != nil {
		logger.Errorf("tcp shutdown: %v", err)
	}
	if err := e.Shutdown(ctx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
}
