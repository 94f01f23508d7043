package refdata

import "github.com/Nano867/prediction-crop/entities"

const (
	ZoneDelta entities.ClimateZone = "Delta"
	ZoneUpper entities.ClimateZone = "Upper"
	ZoneSinai entities.ClimateZone = "Sinai"
)

// Default returns the built-in placeholder tables. The temperatures are
// approximate monthly means (°C) meant to be replaced by measured values.
func Default() Dataset {
	return Dataset{
		Regions: []entities.Region{
			{Name: "Cairo", Zone: ZoneDelta},
			{Name: "Giza", Zone: ZoneDelta},
			{Name: "Fayoum", Zone: ZoneDelta},
			{Name: "Dakahlia", Zone: ZoneDelta},
			{Name: "Kafr El-Sheikh", Zone: ZoneDelta},
			{Name: "Minya", Zone: ZoneUpper},
			{Name: "Beni Suef", Zone: ZoneUpper},
			{Name: "Aswan", Zone: ZoneUpper},
			{Name: "North Sinai", Zone: ZoneSinai},
		},
		Crops: []entities.Crop{
			{
				ID: "wheat", Name: "Wheat (Triticum aestivum)",
				IdealTempMin: 17, IdealTempMax: 24,
				Soils: []string{"clay", "loam"}, WaterNeed: "moderate",
				PlantingMonths: []int{11, 12, 1, 2, 3, 4}, // sown Nov-Dec
			},
			{
				ID: "rice", Name: "Rice (Oryza sativa)",
				IdealTempMin: 20, IdealTempMax: 30,
				Soils: []string{"clay"}, WaterNeed: "high",
				PlantingMonths: []int{4, 5, 6, 7, 8, 9},
			},
			{
				ID: "maize", Name: "Maize (Zea mays)",
				IdealTempMin: 25, IdealTempMax: 35,
				Soils: []string{"loam", "sandy loam"}, WaterNeed: "moderate-high",
				PlantingMonths: []int{5, 6, 7, 8, 9, 10},
			},
			{
				ID: "barley", Name: "Barley (Hordeum vulgare)",
				IdealTempMin: 15, IdealTempMax: 22,
				Soils: []string{"varied"}, WaterNeed: "low",
				PlantingMonths: []int{11, 12, 1, 2, 3},
			},
		},
		Temperatures: map[entities.ClimateZone][]float64{
			ZoneDelta: {17, 18, 21, 24, 27, 30, 32, 31, 29, 26, 22, 18},
			ZoneUpper: {19, 20, 24, 28, 31, 34, 36, 35, 33, 29, 25, 20},
			ZoneSinai: {16, 17, 20, 24, 28, 31, 33, 32, 30, 26, 21, 17},
		},
	}
}
