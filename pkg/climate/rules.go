package climate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Nano867/prediction-crop/entities"
)

// Scoring weights. A temperature match counts double a planting-month match,
// and a crop needs InclusionThreshold points to be recommended, so a month
// match alone never qualifies.
const (
	MonthWeight        = 1
	TemperatureWeight  = 2
	InclusionThreshold = 2
)

var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// Reference is the read-only view of the reference tables the rules need.
type Reference interface {
	Crops() []entities.Crop
	MonthlyTemperature(zone entities.ClimateZone, month int) (float64, bool)
}

type RulesEngine interface {
	Evaluate(zone entities.ClimateZone, month int) (entities.Evaluation, error)
}

type rules struct{ ref Reference }

func NewRules(ref Reference) RulesEngine { return &rules{ref: ref} }

func (r *rules) Evaluate(zone entities.ClimateZone, month int) (entities.Evaluation, error) {
	return Evaluate(r.ref, zone, month)
}

// Evaluate scores every crop against the zone's mean temperature for month and
// returns the qualifying crops, highest score first. Equal scores keep crop
// definition order. An unknown zone is not an error: the temperature is nil
// and nothing qualifies.
func Evaluate(ref Reference, zone entities.ClimateZone, month int) (entities.Evaluation, error) {
	if month < 1 || month > 12 {
		return entities.Evaluation{}, fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
	}

	var temp *float64
	if v, ok := ref.MonthlyTemperature(zone, month); ok {
		temp = &v
	}

	out := entities.Evaluation{Zone: zone, Month: month, RegionTemperature: temp, Matches: []entities.EvaluationResult{}}
	for _, c := range ref.Crops() {
		monthOK := c.PlantsIn(month)
		tempOK := temp != nil && *temp >= c.IdealTempMin && *temp <= c.IdealTempMax

		score := 0
		if monthOK {
			score += MonthWeight
		}
		if tempOK {
			score += TemperatureWeight
		}
		if score < InclusionThreshold {
			continue
		}
		out.Matches = append(out.Matches, entities.EvaluationResult{
			CropID:             c.ID,
			Name:               c.Name,
			Score:              score,
			TemperatureMatched: tempOK,
			MonthMatched:       monthOK,
			IdealRange:         c.IdealRange(),
			RegionTemperature:  cloneTemp(temp),
			WaterNeed:          c.WaterNeed,
			Soils:              c.SoilsDisplay(),
		})
	}

	sort.SliceStable(out.Matches, func(i, j int) bool { return out.Matches[i].Score > out.Matches[j].Score })
	return out, nil
}

func cloneTemp(t *float64) *float64 {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
