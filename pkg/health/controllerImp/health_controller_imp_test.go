package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nano867/prediction-crop/database"
	"github.com/Nano867/prediction-crop/pkg/refdata"
)

type healthBody struct {
	Status struct {
		OK bool `json:"ok"`
	} `json:"status"`
	UptimeSec int                        `json:"uptime_sec"`
	Checks    map[string]json.RawMessage `json:"checks"`
	Time      string                     `json:"time"`
}

func callHealth(t *testing.T, h *HealthCtrl) (int, healthBody) {
	t.Helper()
	e := echo.New()
	e.GET("/health", h.Health)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body healthBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealth_CatalogOnly(t *testing.T) {
	cat, err := refdata.NewCatalog(refdata.Default())
	require.NoError(t, err)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 11, 1, 8, 0, 0, 0, time.UTC))

	h := NewHealthCtrl(nil, cat, clock)
	clock.Advance(90 * time.Second)

	code, body := callHealth(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, body.Status.OK)
	assert.Equal(t, 90, body.UptimeSec)
	assert.Equal(t, "2024-11-01T08:01:30Z", body.Time)
	assert.NotContains(t, body.Checks, "database")

	var ref map[string]any
	require.NoError(t, json.Unmarshal(body.Checks["reference_data"], &ref))
	assert.Equal(t, 9.0, ref["regions"])
	assert.Equal(t, 4.0, ref["crops"])
	assert.Equal(t, 3.0, ref["zones"])
}

func TestHealth_WithDatabase(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	cat, err := refdata.NewCatalog(refdata.Default())
	require.NoError(t, err)

	code, body := callHealth(t, NewHealthCtrl(db, cat, clockwork.NewFakeClock()))
	assert.Equal(t, http.StatusOK, code)

	var dbCheck sub
	require.NoError(t, json.Unmarshal(body.Checks["database"], &dbCheck))
	assert.True(t, dbCheck.OK)
}

func TestHealth_ClosedDatabase(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	cat, err := refdata.NewCatalog(refdata.Default())
	require.NoError(t, err)

	code, body := callHealth(t, NewHealthCtrl(db, cat, clockwork.NewFakeClock()))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, body.Status.OK)
}

func TestHealth_EmptyCatalog(t *testing.T) {
	cat, err := refdata.NewCatalog(refdata.Dataset{})
	require.NoError(t, err)

	code, body := callHealth(t, NewHealthCtrl(nil, cat, clockwork.NewFakeClock()))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, body.Status.OK)
}
