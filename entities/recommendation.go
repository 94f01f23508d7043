package entities

type EvaluationResult struct {
	CropID             string   `json:"crop_id"`
	Name               string   `json:"name"`
	Score              int      `json:"score"`
	TemperatureMatched bool     `json:"temperature_matched"`
	MonthMatched       bool     `json:"month_matched"`
	IdealRange         string   `json:"ideal_range"`
	RegionTemperature  *float64 `json:"region_temperature"`
	WaterNeed          string   `json:"water_need"`
	Soils              string   `json:"soils"`
}

// Evaluation is the evaluator output for one (zone, month) pair.
type Evaluation struct {
	Zone              ClimateZone        `json:"zone"`
	Month             int                `json:"month"`
	RegionTemperature *float64           `json:"region_temperature"` // nil when the zone is unknown
	Matches           []EvaluationResult `json:"matches"`
}

// Recommendation is what a caller gets back for a region name and month.
type Recommendation struct {
	Region            string             `json:"region"`
	RegionKnown       bool               `json:"region_known"`
	Zone              ClimateZone        `json:"zone,omitempty"`
	Month             int                `json:"month"`
	MonthName         string             `json:"month_name"`
	RegionTemperature *float64           `json:"region_temperature"`
	Matches           []EvaluationResult `json:"matches"`
	Summary           string             `json:"summary"`
}
