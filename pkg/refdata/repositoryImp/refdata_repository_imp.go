package repositoryImp

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Nano867/prediction-crop/entities"
	"github.com/Nano867/prediction-crop/pkg/refdata"
	"github.com/Nano867/prediction-crop/pkg/refdata/repository"
)

type refdataRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RefDataRepository { return &refdataRepo{db} }

func (r *refdataRepo) Load() (refdata.Dataset, error) {
	var ds refdata.Dataset
	if err := r.db.Order("ord ASC").Find(&ds.Regions).Error; err != nil {
		return refdata.Dataset{}, fmt.Errorf("load regions: %w", err)
	}
	if err := r.db.Order("ord ASC").Find(&ds.Crops).Error; err != nil {
		return refdata.Dataset{}, fmt.Errorf("load crops: %w", err)
	}
	var rows []entities.ZoneTemperature
	if err := r.db.Order("zone ASC, month ASC").Find(&rows).Error; err != nil {
		return refdata.Dataset{}, fmt.Errorf("load temperatures: %w", err)
	}

	if len(rows) > 0 {
		ds.Temperatures = map[entities.ClimateZone][]float64{}
		count := map[entities.ClimateZone]int{}
		for _, t := range rows {
			if t.Month < 1 || t.Month > 12 {
				return refdata.Dataset{}, fmt.Errorf("zone %q stored month %d outside 1..12", t.Zone, t.Month)
			}
			row, ok := ds.Temperatures[t.Zone]
			if !ok {
				row = make([]float64, 12)
				ds.Temperatures[t.Zone] = row
			}
			row[t.Month-1] = t.MeanC
			count[t.Zone]++
		}
		for z, n := range count {
			if n != 12 {
				return refdata.Dataset{}, fmt.Errorf("zone %q has %d stored months, want 12", z, n)
			}
		}
	}
	return ds, nil
}

func (r *refdataRepo) Replace(ds refdata.Dataset) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&entities.Region{}, &entities.Crop{}, &entities.ZoneTemperature{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		if len(ds.Regions) > 0 {
			regions := make([]entities.Region, len(ds.Regions))
			for i, reg := range ds.Regions {
				reg.Ord = i
				regions[i] = reg
			}
			if err := tx.Create(&regions).Error; err != nil {
				return fmt.Errorf("insert regions: %w", err)
			}
		}
		if len(ds.Crops) > 0 {
			crops := make([]entities.Crop, len(ds.Crops))
			for i, c := range ds.Crops {
				c = c.Clone()
				c.Ord = i
				crops[i] = c
			}
			if err := tx.Create(&crops).Error; err != nil {
				return fmt.Errorf("insert crops: %w", err)
			}
		}
		var temps []entities.ZoneTemperature
		for z, row := range ds.Temperatures {
			for i, v := range row {
				temps = append(temps, entities.ZoneTemperature{Zone: z, Month: i + 1, MeanC: v})
			}
		}
		if len(temps) > 0 {
			if err := tx.Create(&temps).Error; err != nil {
				return fmt.Errorf("insert temperatures: %w", err)
			}
		}
		return nil
	})
}
