// Package seed loads YAML datasets used to pre-populate mock backends and the
// sandbox. A dataset maps collection names to lists of attribute maps:
//
//	users:
//	  - id: u-1
//	    name: Ada
//	  - id: u-2
//	    name: Grace
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dataset maps a collection name to its initial records.
type Dataset map[string][]map[string]any

// LoadDataset reads and validates a YAML dataset file.
func LoadDataset(path string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read dataset: %w", err)
	}

	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("seed: parse dataset %s: %w", path, err)
	}

	for collection, records := range ds {
		if collection == "" {
			return nil, fmt.Errorf("seed: dataset %s contains an empty collection name", path)
		}
		for i, attrs := range records {
			if attrs == nil {
				return nil, fmt.Errorf("seed: dataset %s: %s[%d] is empty", path, collection, i)
			}
		}
	}
	return ds, nil
}
