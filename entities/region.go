package entities

// ClimateZone tags a group of regions that share one monthly temperature table.
type ClimateZone string

type Region struct {
	Name string      `gorm:"primaryKey" json:"name" yaml:"name"`
	Zone ClimateZone `gorm:"index" json:"zone" yaml:"zone"`
	Ord  int         `json:"-" yaml:"-"` // definition order when read back from the db
}

// ZoneTemperature is one cell of the monthly temperature table.
type ZoneTemperature struct {
	Zone  ClimateZone `gorm:"primaryKey" json:"zone"`
	Month int         `gorm:"primaryKey;autoIncrement:false" json:"month"` // 1..12
	MeanC float64     `json:"mean_c"`
}

// ZoneTable is a zone's full year of monthly means, January first.
type ZoneTable struct {
	Zone         ClimateZone `json:"zone"`
	Temperatures [12]float64 `json:"temperatures"`
}
