package refdata

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Nano867/prediction-crop/entities"
)

var ErrInvalidDataset = errors.New("invalid reference data")

// Catalog is the validated, read-only view of the reference tables.
// Accessors return copies, so a Catalog is safe to share between goroutines.
type Catalog struct {
	regions []entities.Region
	byName  map[string]int
	crops   []entities.Crop
	temps   map[entities.ClimateZone][12]float64
	zones   []entities.ClimateZone
}

// NewCatalog validates ds and freezes it.
func NewCatalog(ds Dataset) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]int, len(ds.Regions)),
		temps:  make(map[entities.ClimateZone][12]float64, len(ds.Temperatures)),
	}

	for i, r := range ds.Regions {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: region #%d has no name", ErrInvalidDataset, i+1)
		}
		if strings.TrimSpace(string(r.Zone)) == "" {
			return nil, fmt.Errorf("%w: region %q has no zone", ErrInvalidDataset, name)
		}
		key := normName(name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("%w: duplicate region %q", ErrInvalidDataset, name)
		}
		c.byName[key] = len(c.regions)
		c.regions = append(c.regions, entities.Region{Name: name, Zone: r.Zone, Ord: len(c.regions)})
	}

	seen := map[string]bool{}
	for i, cr := range ds.Crops {
		cr.ID = strings.TrimSpace(cr.ID)
		if cr.ID == "" {
			return nil, fmt.Errorf("%w: crop #%d has no id", ErrInvalidDataset, i+1)
		}
		if seen[cr.ID] {
			return nil, fmt.Errorf("%w: duplicate crop %q", ErrInvalidDataset, cr.ID)
		}
		seen[cr.ID] = true
		if !finite(cr.IdealTempMin) || !finite(cr.IdealTempMax) {
			return nil, fmt.Errorf("%w: crop %q ideal range %v..%v is not finite", ErrInvalidDataset, cr.ID, cr.IdealTempMin, cr.IdealTempMax)
		}
		if cr.IdealTempMin > cr.IdealTempMax {
			return nil, fmt.Errorf("%w: crop %q ideal range %v > %v", ErrInvalidDataset, cr.ID, cr.IdealTempMin, cr.IdealTempMax)
		}
		for _, m := range cr.PlantingMonths {
			if m < 1 || m > 12 {
				return nil, fmt.Errorf("%w: crop %q planting month %d outside 1..12", ErrInvalidDataset, cr.ID, m)
			}
		}
		cp := cr.Clone()
		cp.Ord = len(c.crops)
		c.crops = append(c.crops, cp)
	}

	for z, row := range ds.Temperatures {
		if strings.TrimSpace(string(z)) == "" {
			return nil, fmt.Errorf("%w: temperature row with empty zone", ErrInvalidDataset)
		}
		if len(row) != 12 {
			return nil, fmt.Errorf("%w: zone %q has %d monthly temperatures, want 12", ErrInvalidDataset, z, len(row))
		}
		var arr [12]float64
		for m, v := range row {
			if !finite(v) {
				return nil, fmt.Errorf("%w: zone %q %s temperature %v is not finite", ErrInvalidDataset, z, entities.MonthName(m+1), v)
			}
			arr[m] = v
		}
		c.temps[z] = arr
		c.zones = append(c.zones, z)
	}
	sort.Slice(c.zones, func(i, j int) bool { return c.zones[i] < c.zones[j] })

	return c, nil
}

// Region looks a region up by name (case-insensitive). ok is false for unknown names.
func (c *Catalog) Region(name string) (entities.Region, bool) {
	i, ok := c.byName[normName(name)]
	if !ok {
		return entities.Region{}, false
	}
	return c.regions[i], true
}

// MonthlyTemperature returns the mean temperature of zone in month (1..12).
// ok is false for an unknown zone or a month outside 1..12.
func (c *Catalog) MonthlyTemperature(zone entities.ClimateZone, month int) (float64, bool) {
	row, ok := c.temps[zone]
	if !ok || month < 1 || month > 12 {
		return 0, false
	}
	return row[month-1], true
}

func (c *Catalog) ZoneTemperatures(zone entities.ClimateZone) ([12]float64, bool) {
	row, ok := c.temps[zone]
	return row, ok
}

func (c *Catalog) Regions() []entities.Region {
	return append([]entities.Region(nil), c.regions...)
}

// Crops returns the crops in definition order.
func (c *Catalog) Crops() []entities.Crop {
	out := make([]entities.Crop, len(c.crops))
	for i, cr := range c.crops {
		out[i] = cr.Clone()
	}
	return out
}

// Zones returns the zones that have a temperature table, sorted by name.
func (c *Catalog) Zones() []entities.ClimateZone {
	return append([]entities.ClimateZone(nil), c.zones...)
}

// Dataset converts the catalog back to its raw form, e.g. for export.
func (c *Catalog) Dataset() Dataset {
	ds := Dataset{
		Regions:      c.Regions(),
		Crops:        c.Crops(),
		Temperatures: make(map[entities.ClimateZone][]float64, len(c.temps)),
	}
	for z, row := range c.temps {
		ds.Temperatures[z] = append([]float64(nil), row[:]...)
	}
	return ds
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func normName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
