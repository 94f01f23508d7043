package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Nano867/prediction-crop/entities"
)

// ReferenceCounter reports the size of the loaded reference data.
type ReferenceCounter interface {
	Regions() []entities.Region
	Crops() []entities.Crop
	Zones() []entities.ClimateZone
}

type HealthCtrl struct {
	db      *gorm.DB // optional
	ref     ReferenceCounter
	clock   clockwork.Clock
	started time.Time
}

func NewHealthCtrl(db *gorm.DB, ref ReferenceCounter, clock clockwork.Clock) *HealthCtrl {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HealthCtrl{db: db, ref: ref, clock: clock, started: clock.Now()}
}

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	checks := map[string]any{}
	allOK := true

	if h.db != nil {
		dbCheck := sub{OK: true}
		sqlDB, err := h.db.DB()
		if err != nil {
			dbCheck = sub{Err: "db.DB(): " + err.Error()}
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbCheck = sub{Err: "ping: " + err.Error()}
		}
		allOK = allOK && dbCheck.OK
		checks["database"] = dbCheck
	}

	refCheck := map[string]any{"ok": h.ref != nil}
	if h.ref != nil {
		regions, crops, zones := len(h.ref.Regions()), len(h.ref.Crops()), len(h.ref.Zones())
		refCheck["regions"] = regions
		refCheck["crops"] = crops
		refCheck["zones"] = zones
		refCheck["ok"] = regions > 0 && crops > 0
	}
	allOK = allOK && refCheck["ok"].(bool)
	checks["reference_data"] = refCheck

	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	now := h.clock.Now()
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(now.Sub(h.started).Seconds()),
		"checks":     checks,
		"time":       now.UTC().Format(time.RFC3339),
	})
}
