package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct {
	db *gorm.DB
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

// Health reports process liveness and database reachability. A failed
// ping turns the whole report 503 so load balancers pull the instance.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbOK := true
	dbErr := ""
	sqlDB, err := h.db.DB()
	if err != nil {
		dbOK = false
		dbErr = err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbOK = false
		dbErr = err.Error()
	}

	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}

	type check struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": dbOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": check{OK: dbOK, Err: dbErr},
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
