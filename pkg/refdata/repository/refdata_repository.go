package repository

import "github.com/Nano867/prediction-crop/pkg/refdata"

// RefDataRepository stores a copy of the reference tables. Load is called once
// at startup; Replace is only used by the seeding tool.
type RefDataRepository interface {
	Load() (refdata.Dataset, error)
	Replace(ds refdata.Dataset) error
}
