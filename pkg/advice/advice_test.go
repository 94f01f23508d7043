package advice

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nano867/prediction-crop/entities"
)

func ptr(v float64) *float64 { return &v }

func sampleRecommendation() *entities.Recommendation {
	return &entities.Recommendation{
		Region:            "Cairo",
		RegionKnown:       true,
		Zone:              "Delta",
		Month:             1,
		MonthName:         "January",
		RegionTemperature: ptr(17),
		Matches: []entities.EvaluationResult{{
			CropID: "wheat", Name: "Wheat (Triticum aestivum)", Score: 3,
			TemperatureMatched: true, MonthMatched: true,
			IdealRange: "17–24", RegionTemperature: ptr(17), WaterNeed: "moderate", Soils: "clay, loam",
		}},
	}
}

func TestTemplate_WithMatches(t *testing.T) {
	got := NewTemplate().Summarize(sampleRecommendation())

	assert.Contains(t, got, "Recommended crops for Cairo (Delta) - January")
	assert.Contains(t, got, "Region mean temperature: 17 °C")
	assert.Contains(t, got, "- Wheat (Triticum aestivum): match score 3. Ideal temp: 17–24 °C. Water: moderate. Soils: clay, loam.")
	assert.Contains(t, got, "rule-based recommendation")
}

func TestTemplate_NoMatch(t *testing.T) {
	rec := sampleRecommendation()
	rec.Month, rec.MonthName, rec.RegionTemperature = 7, "July", ptr(36)
	rec.Matches = nil

	got := NewTemplate().Summarize(rec)
	assert.Contains(t, got, "No strong match found.")
	assert.Contains(t, got, "Region average temp: 36 °C (month: July).")
	assert.Contains(t, got, "Consider soil test")
}

func TestTemplate_UnknownTemperatureAndRegion(t *testing.T) {
	rec := sampleRecommendation()
	rec.RegionTemperature = nil
	rec.Matches = nil
	assert.Contains(t, NewTemplate().Summarize(rec), "Region average temp: unknown")

	got := NewTemplate().Summarize(&entities.Recommendation{Region: "Atlantis", Month: 3})
	assert.Contains(t, got, `Unknown region "Atlantis"`)

	assert.Empty(t, NewTemplate().Summarize(nil))
}

func TestDescribeRules(t *testing.T) {
	got := DescribeRules([]entities.Crop{
		{ID: "wheat", Name: "Wheat (Triticum aestivum)", IdealTempMin: 17, IdealTempMax: 24,
			Soils: []string{"clay", "loam"}, PlantingMonths: []int{11, 12, 1}},
		{ID: "barley", Name: "Barley", IdealTempMin: 15, IdealTempMax: 22.5, Soils: []string{"varied"}, PlantingMonths: []int{1}},
	})

	assert.Equal(t, "Prediction rules (editable):\n\n"+
		"Wheat (Triticum aestivum)\n - months: 11, 12, 1\n - temp: 17–24 °C\n - soils: clay, loam\n\n"+
		"Barley\n - months: 1\n - temp: 15–22.5 °C\n - soils: varied\n\n", got)
}

func TestOpenAI_UsesCompletion(t *testing.T) {
	var gotAuth, gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  - Plant wheat now.  "}}]}`))
	}))
	defer srv.Close()

	got := NewOpenAI(srv.URL+"/", "sk-test", "gpt-4o-mini", nil).Summarize(sampleRecommendation())
	assert.Equal(t, "- Plant wheat now.", got)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotModel)
}

func TestOpenAI_FallsBackToTemplate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rec := sampleRecommendation()
	got := NewOpenAI(srv.URL, "k", "m", nil).Summarize(rec)
	require.NotEmpty(t, got)
	assert.Equal(t, NewTemplate().Summarize(rec), got)

	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv2.Close()
	assert.Equal(t, NewTemplate().Summarize(rec), NewOpenAI(srv2.URL, "k", "m", nil).Summarize(rec))
}
