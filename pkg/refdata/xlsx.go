package refdata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Nano867/prediction-crop/entities"
)

const (
	SheetRegions      = "Regions"
	SheetCrops        = "Crops"
	SheetTemperatures = "Temperatures"
)

// LoadWorkbook reads reference tables from an Excel workbook. Each of the
// Regions, Crops and Temperatures sheets is optional.
func LoadWorkbook(path string) (Dataset, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return Dataset{}, err
	}
	defer x.Close()

	present := map[string]bool{}
	for _, s := range x.GetSheetList() {
		present[s] = true
	}

	var ds Dataset
	if present[SheetRegions] {
		rows, err := x.GetRows(SheetRegions)
		if err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", SheetRegions, err)
		}
		if ds.Regions, err = regionsFromRows(rows); err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", SheetRegions, err)
		}
	}
	if present[SheetCrops] {
		rows, err := x.GetRows(SheetCrops)
		if err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", SheetCrops, err)
		}
		if ds.Crops, err = cropsFromRows(rows); err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", SheetCrops, err)
		}
	}
	if present[SheetTemperatures] {
		rows, err := x.GetRows(SheetTemperatures)
		if err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", SheetTemperatures, err)
		}
		if ds.Temperatures, err = temperaturesFromRows(rows); err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", SheetTemperatures, err)
		}
	}
	return ds, nil
}

// WriteWorkbook saves ds in the layout LoadWorkbook reads.
func WriteWorkbook(path string, ds Dataset) error {
	x := excelize.NewFile()
	defer x.Close()

	regions := [][]any{{"Name", "Zone"}}
	for _, r := range ds.Regions {
		regions = append(regions, []any{r.Name, string(r.Zone)})
	}

	crops := [][]any{{"ID", "Name", "TempMin", "TempMax", "Soils", "Water", "Months"}}
	for _, c := range ds.Crops {
		months := make([]string, len(c.PlantingMonths))
		for i, m := range c.PlantingMonths {
			months[i] = strconv.Itoa(m)
		}
		crops = append(crops, []any{c.ID, c.Name, c.IdealTempMin, c.IdealTempMax,
			strings.Join(c.Soils, ", "), c.WaterNeed, strings.Join(months, ",")})
	}

	head := []any{"Zone"}
	for m := 1; m <= 12; m++ {
		head = append(head, entities.MonthName(m)[:3])
	}
	temps := [][]any{head}
	for _, z := range sortedZones(ds.Temperatures) {
		row := []any{string(z)}
		for _, v := range ds.Temperatures[z] {
			row = append(row, v)
		}
		temps = append(temps, row)
	}

	for _, sh := range []struct {
		name string
		rows [][]any
	}{{SheetRegions, regions}, {SheetCrops, crops}, {SheetTemperatures, temps}} {
		if _, err := x.NewSheet(sh.name); err != nil {
			return fmt.Errorf("new sheet %s: %w", sh.name, err)
		}
		for i, row := range sh.rows {
			addr, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := x.SetSheetRow(sh.name, addr, &row); err != nil {
				return fmt.Errorf("%s row %d: %w", sh.name, i+1, err)
			}
		}
	}
	if idx, err := x.GetSheetIndex(SheetRegions); err == nil {
		x.SetActiveSheet(idx)
	}
	x.DeleteSheet("Sheet1")
	return x.SaveAs(path)
}

func regionsFromRows(rows [][]string) ([]entities.Region, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	find := headerFinder(rows[0])
	cName := find("name", "region", "governorate")
	cZone := find("zone", "climate_zone", "climatezone")
	if cName == -1 || cZone == -1 {
		return nil, fmt.Errorf("missing columns. Found headers: %v\nNeed at least: Name, Zone", rows[0])
	}
	var out []entities.Region
	for _, rec := range rows[1:] {
		name := cell(rec, cName)
		if name == "" {
			continue
		}
		out = append(out, entities.Region{Name: name, Zone: entities.ClimateZone(cell(rec, cZone))})
	}
	return out, nil
}

func cropsFromRows(rows [][]string) ([]entities.Crop, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	find := headerFinder(rows[0])
	cID := find("id", "crop_id", "cropid")
	cName := find("name", "crop")
	cMin := find("tempmin", "ideal_temp_min", "min")
	cMax := find("tempmax", "ideal_temp_max", "max")
	cSoils := find("soils", "soil")
	cWater := find("water", "water_need", "waterneed")
	cMonths := find("months", "planting_months", "plantingmonths")
	if cID == -1 || cMin == -1 || cMax == -1 || cMonths == -1 {
		return nil, fmt.Errorf("missing columns. Found headers: %v\nNeed at least: ID, TempMin, TempMax, Months", rows[0])
	}

	var out []entities.Crop
	for i, rec := range rows[1:] {
		id := cell(rec, cID)
		if id == "" {
			continue
		}
		line := i + 2
		tmin, err := strconv.ParseFloat(cell(rec, cMin), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d crop %q TempMin: %w", line, id, err)
		}
		tmax, err := strconv.ParseFloat(cell(rec, cMax), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d crop %q TempMax: %w", line, id, err)
		}
		months, err := parseMonths(cell(rec, cMonths))
		if err != nil {
			return nil, fmt.Errorf("row %d crop %q Months: %w", line, id, err)
		}
		name := cell(rec, cName)
		if name == "" {
			name = id
		}
		out = append(out, entities.Crop{
			ID:             id,
			Name:           name,
			IdealTempMin:   tmin,
			IdealTempMax:   tmax,
			Soils:          splitList(cell(rec, cSoils)),
			WaterNeed:      cell(rec, cWater),
			PlantingMonths: months,
		})
	}
	return out, nil
}

func temperaturesFromRows(rows [][]string) (map[entities.ClimateZone][]float64, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	find := headerFinder(rows[0])
	cZone := find("zone", "region", "climate_zone")
	if cZone == -1 {
		return nil, fmt.Errorf("missing zone column. Found headers: %v", rows[0])
	}
	var cMonth [12]int
	for m := 1; m <= 12; m++ {
		if cMonth[m-1] = find(monthAliases(m)...); cMonth[m-1] == -1 {
			return nil, fmt.Errorf("missing column for %s. Found headers: %v", entities.MonthName(m), rows[0])
		}
	}
	out := map[entities.ClimateZone][]float64{}
	for _, rec := range rows[1:] {
		zone := cell(rec, cZone)
		if zone == "" {
			continue
		}
		row := make([]float64, 12)
		for i, idx := range cMonth {
			v, err := strconv.ParseFloat(cell(rec, idx), 64)
			if err != nil {
				return nil, fmt.Errorf("zone %q %s: %w", zone, entities.MonthName(i+1), err)
			}
			row[i] = v
		}
		out[entities.ClimateZone(zone)] = row
	}
	return out, nil
}

func parseMonths(s string) ([]int, error) {
	var out []int
	for _, p := range splitList(s) {
		m, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// splitList splits "a, b; c" into trimmed, non-empty parts.
func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
