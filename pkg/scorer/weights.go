package scorer

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultWeight applies to publications absent from a WeightTable.
const DefaultWeight = 1.0

// WeightTable maps a publication to its reputation weight.
type WeightTable struct {
	Default      float64            `yaml:"default_weight"`
	Publications map[string]float64 `yaml:"publications"`
}

// DefaultWeightTable returns the weights used when no weights file is configured.
func DefaultWeightTable() (table WeightTable) {
	table = WeightTable{
		Default:      DefaultWeight,
		Publications: map[string]float64{
			"RTINGS":           2.0,
			"Wirecutter":       2.0,
			"Consumer Reports": 2.0,
			"PCMag":            1.5,
			"The Verge":        1.5,
			"Notebookcheck":    1.5,
			"CNET":             1.25,
			"Tom's Guide":      1.25,
			"TechRadar":        1.0,
			"Digital Trends":   1.0,
		},
	}
	return table
}

// Weight returns the weight for a publication, matched ignoring case.
// Unknown publications and non-positive entries get the default weight.
func (w WeightTable) Weight(publication string) (weight float64) {
	weight = w.Default
	if weight <= 0 {
		weight = DefaultWeight
	}

	name := strings.TrimSpace(publication)
	v, found := w.Publications[name]
	if !found {
		pubs := make([]string, 0, len(w.Publications))
		for pub := range w.Publications {
			pubs = append(pubs, pub)
		}
		sort.Strings(pubs)
		for _, pub := range pubs {
			if strings.EqualFold(pub, name) {
				v, found = w.Publications[pub], true
				break
			}
		}
	}

	if found && v > 0 {
		weight = v
	}

	return weight
}

// Validate rejects negative weights.
func (w WeightTable) Validate() (err error) {
	if w.Default < 0 {
		err = errors.Errorf("default_weight must not be negative: %v", w.Default)
		return err
	}

	for pub, v := range w.Publications {
		if v < 0 {
			err = errors.Errorf("weight for %s must not be negative: %v", pub, v)
			return err
		}
	}

	return err
}

// LoadWeights reads a weight table from a YAML file.
func LoadWeights(path string) (table WeightTable, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read weights file: %s", path)
		return table, err
	}

	err = yaml.Unmarshal(data, &table)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse weights file: %s", path)
		return table, err
	}

	if table.Default == 0 {
		table.Default = DefaultWeight
	}

	err = table.Validate()
	if err != nil {
		err = errors.Wrap(err, "weights validation failed")
		return table, err
	}

	return table, err
}

// SaveWeights writes a weight table to a YAML file.
func SaveWeights(path string, table WeightTable) (err error) {
	err = table.Validate()
	if err != nil {
		err = errors.Wrap(err, "weights validation failed")
		return err
	}

	var data []byte
	data, err = yaml.Marshal(table)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal weights")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write weights file: %s", path)
		return err
	}

	return err
}
