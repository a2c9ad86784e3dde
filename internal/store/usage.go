package store

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SumanAdhithya30/Urban-Loads/internal/energy"
)

//go:embed historical.yaml
var defaultUsage []byte

// UsageTable is an immutable historical usage table keyed by lower-cased city id.
// It is built once at startup and safe for concurrent reads.
type UsageTable struct {
	data map[string]energy.PeriodUsage
}

// DefaultUsageTable returns the table bundled with the binary.
func DefaultUsageTable() (*UsageTable, error) {
	return ParseUsageTable(defaultUsage)
}

// LoadUsageTable reads a YAML usage table from path.
func LoadUsageTable(path string) (*UsageTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading usage table: %w", err)
	}
	return ParseUsageTable(data)
}

// ParseUsageTable decodes a YAML document of the form city -> period -> usage.
// Unknown period names are rejected so typos surface at startup.
func ParseUsageTable(data []byte) (*UsageTable, error) {
	var raw map[string]map[string]float64
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing usage table: %w", err)
	}

	t := &UsageTable{data: make(map[string]energy.PeriodUsage, len(raw))}
	for city, periods := range raw {
		key := cityKey(city)
		if key == "" {
			return nil, fmt.Errorf("parsing usage table: empty city key")
		}
		if _, dup := t.data[key]; dup {
			return nil, fmt.Errorf("parsing usage table: duplicate city %q", city)
		}
		byPeriod := make(energy.PeriodUsage, len(periods))
		for name, usage := range periods {
			p, err := energy.ParsePeriod(name)
			if err != nil {
				return nil, fmt.Errorf("parsing usage table: city %q: %w", city, err)
			}
			byPeriod[p] = usage
		}
		t.data[key] = byPeriod
	}
	return t, nil
}

// CityUsage returns a copy of the usage figures for city.
func (t *UsageTable) CityUsage(city string) (energy.PeriodUsage, error) {
	byPeriod, ok := t.data[cityKey(city)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", energy.ErrUnknownCity, city)
	}
	out := make(energy.PeriodUsage, len(byPeriod))
	for p, v := range byPeriod {
		out[p] = v
	}
	return out, nil
}

// Len reports the number of cities in the table.
func (t *UsageTable) Len() int {
	return len(t.data)
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
