package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Nano867/prediction-crop/entities"
)

// LoadTemperaturesCSV reads a monthly temperature table: a zone column plus one
// column per month. Month headers may be "Jan", "January", "1" or "01".
func LoadTemperaturesCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	return ReadTemperaturesCSV(f)
}

func ReadTemperaturesCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return Dataset{}, fmt.Errorf("read header: %w", err)
	}

	findAny := headerFinder(head)

	cZone := findAny("zone", "region", "climate_zone", "climatezone")
	if cZone == -1 {
		return Dataset{}, fmt.Errorf("temperature csv missing zone column. Found headers: %v", head)
	}
	var cMonth [12]int
	for m := 1; m <= 12; m++ {
		cMonth[m-1] = findAny(monthAliases(m)...)
		if cMonth[m-1] == -1 {
			return Dataset{}, fmt.Errorf("temperature csv missing column for %s. Found headers: %v", entities.MonthName(m), head)
		}
	}

	ds := Dataset{Temperatures: map[entities.ClimateZone][]float64{}}
	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Dataset{}, err
		}
		line++
		get := func(idx int) string { return cell(rec, idx) }

		zone := get(cZone)
		if zone == "" {
			continue
		}
		row := make([]float64, 12)
		for i, idx := range cMonth {
			v, err := strconv.ParseFloat(get(idx), 64)
			if err != nil {
				return Dataset{}, fmt.Errorf("line %d zone %q %s: %w", line, zone, entities.MonthName(i+1), err)
			}
			row[i] = v
		}
		ds.Temperatures[entities.ClimateZone(zone)] = row
	}
	return ds, nil
}

// headerFinder maps normalized header names to column indexes and returns a
// lookup that accepts several aliases. Missing columns report -1.
func headerFinder(head []string) func(keys ...string) int {
	hmap := map[string]int{}
	for i, h := range head {
		hmap[normHeader(h)] = i
	}
	return func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[normHeader(k)]; ok {
				return idx
			}
		}
		return -1
	}
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func monthAliases(m int) []string {
	name := time.Month(m).String()
	return []string{name, name[:3], strconv.Itoa(m), fmt.Sprintf("%02d", m)}
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
