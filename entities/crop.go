package entities

import (
	"strconv"
	"strings"
	"time"
)

type Crop struct {
	ID             string   `gorm:"primaryKey" json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	IdealTempMin   float64  `json:"ideal_temp_min" yaml:"ideal_temp_min"`
	IdealTempMax   float64  `json:"ideal_temp_max" yaml:"ideal_temp_max"`
	Soils          []string `gorm:"serializer:json" json:"soils" yaml:"soils"`
	WaterNeed      string   `json:"water_need" yaml:"water_need"` // low|moderate|moderate-high|high
	PlantingMonths []int    `gorm:"serializer:json" json:"planting_months" yaml:"planting_months"`
	Ord            int      `json:"-" yaml:"-"`
}

// IdealRange renders the ideal temperature range as "min–max".
func (c Crop) IdealRange() string {
	return FormatTemp(c.IdealTempMin) + "–" + FormatTemp(c.IdealTempMax)
}

// SoilsDisplay joins the soil tags for display.
func (c Crop) SoilsDisplay() string { return strings.Join(c.Soils, ", ") }

func (c Crop) PlantsIn(month int) bool {
	for _, m := range c.PlantingMonths {
		if m == month {
			return true
		}
	}
	return false
}

// MonthNames returns the English names of the planting months in definition order.
func (c Crop) MonthNames() []string {
	out := make([]string, 0, len(c.PlantingMonths))
	for _, m := range c.PlantingMonths {
		out = append(out, MonthName(m))
	}
	return out
}

// Clone returns a deep copy so callers cannot mutate shared reference data.
func (c Crop) Clone() Crop {
	c.Soils = append([]string(nil), c.Soils...)
	c.PlantingMonths = append([]int(nil), c.PlantingMonths...)
	return c
}

// FormatTemp prints a temperature without trailing zeros (17, 17.5).
func FormatTemp(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// MonthName returns the English month name, or "" outside 1..12.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()
}
