// Package refdata holds the static reference tables the crop evaluator reads:
// regions, crops and the monthly mean temperature per climate zone.
//
// Tables are assembled once at startup from the built-in placeholders and any
// configured overrides (YAML, workbook, CSV, HTML table, SQLite), validated,
// and frozen into a Catalog. Nothing mutates a Catalog after NewCatalog.
package refdata

import (
	"sort"
	"strings"

	"github.com/Nano867/prediction-crop/entities"
)

// Dataset is the raw, possibly partial, form of the reference tables.
type Dataset struct {
	Regions      []entities.Region                  `yaml:"regions,omitempty"`
	Crops        []entities.Crop                    `yaml:"crops,omitempty"`
	Temperatures map[entities.ClimateZone][]float64 `yaml:"temperatures,omitempty"`
}

func (d Dataset) Empty() bool {
	return len(d.Regions) == 0 && len(d.Crops) == 0 && len(d.Temperatures) == 0
}

// Merge overlays o on d. Regions match by name and crops by id: a match is
// replaced in place, anything new is appended. Temperature rows replace whole zones.
func Merge(d, o Dataset) Dataset {
	out := Dataset{
		Regions:      append([]entities.Region(nil), d.Regions...),
		Crops:        make([]entities.Crop, 0, len(d.Crops)+len(o.Crops)),
		Temperatures: map[entities.ClimateZone][]float64{},
	}
	for _, c := range d.Crops {
		out.Crops = append(out.Crops, c.Clone())
	}
	for z, row := range d.Temperatures {
		out.Temperatures[z] = append([]float64(nil), row...)
	}

	for _, r := range o.Regions {
		replaced := false
		for i := range out.Regions {
			if normName(out.Regions[i].Name) == normName(r.Name) {
				out.Regions[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			out.Regions = append(out.Regions, r)
		}
	}
	for _, c := range o.Crops {
		replaced := false
		for i := range out.Crops {
			if strings.TrimSpace(out.Crops[i].ID) == strings.TrimSpace(c.ID) {
				out.Crops[i] = c.Clone()
				replaced = true
				break
			}
		}
		if !replaced {
			out.Crops = append(out.Crops, c.Clone())
		}
	}
	for z, row := range o.Temperatures {
		out.Temperatures[z] = append([]float64(nil), row...)
	}
	return out
}

// Overwrite replaces each table of d that o has rows for. Tables o leaves empty
// are kept from d. Unlike Merge, entries missing from o are dropped.
func Overwrite(d, o Dataset) Dataset {
	out := Merge(d, Dataset{})
	if len(o.Regions) > 0 {
		out.Regions = append([]entities.Region(nil), o.Regions...)
	}
	if len(o.Crops) > 0 {
		out.Crops = make([]entities.Crop, len(o.Crops))
		for i, c := range o.Crops {
			out.Crops[i] = c.Clone()
		}
	}
	if len(o.Temperatures) > 0 {
		out.Temperatures = map[entities.ClimateZone][]float64{}
		for z, row := range o.Temperatures {
			out.Temperatures[z] = append([]float64(nil), row...)
		}
	}
	return out
}

func sortedZones(m map[entities.ClimateZone][]float64) []entities.ClimateZone {
	out := make([]entities.ClimateZone, 0, len(m))
	for z := range m {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
