package refdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

type datasetLoader interface {
	Load() (Dataset, error)
}

// Options lists the overrides applied on top of the built-in tables, in order.
type Options struct {
	Store    datasetLoader // SQLite copy; skipped when nil or empty
	File     string        // .yaml, .yml or .xlsx
	TempsCSV string
	TempsURL string
	Logger   *zap.Logger
}

// Load assembles the startup catalog: defaults, then Store, File, TempsCSV and
// TempsURL. Store replaces whole tables (Overwrite); the others are overlaid
// with Merge. The result is validated once.
func Load(ctx context.Context, opts Options) (*Catalog, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ds := Default()

	if opts.Store != nil {
		stored, err := opts.Store.Load()
		if err != nil {
			return nil, fmt.Errorf("load stored reference data: %w", err)
		}
		if !stored.Empty() {
			// the stored copy is authoritative per table, so seeded removals stick
			ds = Overwrite(ds, stored)
			log.Info("reference data loaded from database",
				zap.Int("regions", len(stored.Regions)),
				zap.Int("crops", len(stored.Crops)),
				zap.Int("zones", len(stored.Temperatures)))
		}
	}

	if opts.File != "" {
		over, err := LoadFile(opts.File)
		if err != nil {
			return nil, err
		}
		ds = Merge(ds, over)
		log.Info("reference data file applied", zap.String("path", opts.File))
	}

	if opts.TempsCSV != "" {
		over, err := LoadTemperaturesCSV(opts.TempsCSV)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opts.TempsCSV, err)
		}
		ds = Merge(ds, over)
		log.Info("temperature csv applied", zap.String("path", opts.TempsCSV), zap.Int("zones", len(over.Temperatures)))
	}

	if opts.TempsURL != "" {
		over, err := FetchTemperatureTable(ctx, opts.TempsURL, 0)
		if err != nil {
			return nil, fmt.Errorf("temperature table %s: %w", opts.TempsURL, err)
		}
		ds = Merge(ds, over)
		log.Info("temperature table fetched", zap.String("url", opts.TempsURL), zap.Int("zones", len(over.Temperatures)))
	}

	return NewCatalog(ds)
}

// LoadFile picks a reader by extension.
func LoadFile(path string) (Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".xlsx":
		ds, err := LoadWorkbook(path)
		if err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", path, err)
		}
		return ds, nil
	case ".csv":
		return LoadTemperaturesCSV(path)
	default:
		return Dataset{}, fmt.Errorf("%s: unsupported reference data format", path)
	}
}

// WriteFile is the export counterpart of LoadFile (.yaml, .yml or .xlsx).
func WriteFile(path string, ds Dataset) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := EncodeYAML(f, ds); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
		return f.Close()
	case ".xlsx":
		if err := WriteWorkbook(path, ds); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("%s: unsupported export format", path)
	}
}
