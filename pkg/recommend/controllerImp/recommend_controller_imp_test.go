package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nano867/prediction-crop/entities"
	"github.com/Nano867/prediction-crop/pkg/recommend/serviceImp"
	"github.com/Nano867/prediction-crop/pkg/refdata"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	cat, err := refdata.NewCatalog(refdata.Default())
	require.NoError(t, err)
	h := New(serviceImp.NewAdvisorService(cat, nil, nil, nil))

	e := echo.New()
	e.GET("/recommend", h.Recommend)
	e.POST("/recommend", h.RecommendJSON)
	e.GET("/regions", h.Regions)
	e.GET("/crops", h.Crops)
	e.GET("/zones", h.Zones)
	e.GET("/rules", h.Rules)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRecommend_Query(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodGet, "/recommend?region=Cairo&month=11", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got entities.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.RegionKnown)
	assert.Equal(t, entities.ClimateZone("Delta"), got.Zone)
	require.NotEmpty(t, got.Matches)
	assert.Equal(t, "wheat", got.Matches[0].CropID)
	assert.NotEmpty(t, got.Summary)
}

func TestRecommend_Body(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodPost, "/recommend", `{"region":"aswan","month":6}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got entities.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Aswan", got.Region)
	assert.Equal(t, "June", got.MonthName)
}

func TestRecommend_Errors(t *testing.T) {
	e := newTestEcho(t)

	cases := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"missing region", http.MethodGet, "/recommend?month=3", "", http.StatusBadRequest},
		{"month not a number", http.MethodGet, "/recommend?region=Cairo&month=march", "", http.StatusBadRequest},
		{"month out of range", http.MethodGet, "/recommend?region=Cairo&month=0", "", http.StatusBadRequest},
		{"body month out of range", http.MethodPost, "/recommend", `{"region":"Cairo","month":13}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/recommend", `{"region":`, http.StatusBadRequest},
		{"unknown region", http.MethodGet, "/recommend?region=Atlantis&month=3", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(e, tc.method, tc.target, tc.body)
			assert.Equal(t, tc.status, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRecommend_UnknownRegionCarriesRecommendation(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodGet, "/recommend?region=Atlantis&month=3", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error          string                  `json:"error"`
		Recommendation entities.Recommendation `json:"recommendation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unknown region", body.Error)
	assert.False(t, body.Recommendation.RegionKnown)
	assert.Empty(t, body.Recommendation.Matches)
	assert.Contains(t, body.Recommendation.Summary, "Unknown region")
}

func TestReferenceEndpoints(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodGet, "/regions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var regions []entities.Region
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &regions))
	assert.Len(t, regions, 9)
	assert.Equal(t, "Cairo", regions[0].Name)

	rec = do(e, http.MethodGet, "/crops", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var crops []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &crops))
	require.Len(t, crops, 4)
	assert.Equal(t, "wheat", crops[0]["id"])
	assert.Equal(t, "17–24", crops[0]["ideal_range"])
	assert.Equal(t, "clay, loam", crops[0]["soils_display"])

	rec = do(e, http.MethodGet, "/zones", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var zones []entities.ZoneTable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &zones))
	assert.Len(t, zones, 3)

	rec = do(e, http.MethodGet, "/rules", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Prediction rules (editable):"))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/plain")
}
