package refdata

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadYAML(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, err
	}
	defer f.Close()
	ds, err := DecodeYAML(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// DecodeYAML reads a dataset document. Unknown keys are rejected so a typo in a
// hand-edited file does not silently drop a table.
func DecodeYAML(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		if err == io.EOF {
			return Dataset{}, nil
		}
		return Dataset{}, fmt.Errorf("decode yaml: %w", err)
	}
	return ds, nil
}

func EncodeYAML(w io.Writer, ds Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
