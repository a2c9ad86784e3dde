package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SumanAdhithya30/Urban-Loads/internal/energy"
)

func TestDefaultUsageTableCoversCatalog(t *testing.T) {
	table, err := DefaultUsageTable()
	require.NoError(t, err)

	for _, c := range energy.DefaultCities {
		usage, err := table.CityUsage(c.ID)
		require.NoError(t, err, c.ID)
		for _, p := range []energy.UsagePeriod{energy.PeriodToday, energy.PeriodWeek, energy.PeriodMonth} {
			assert.Contains(t, usage, p, "%s/%s", c.ID, p)
		}
	}
	assert.Equal(t, len(energy.DefaultCities), table.Len())
}

func TestCityUsageLookup(t *testing.T) {
	table, err := ParseUsageTable([]byte("Chennai:\n  today: 10\n  week: 0\n"))
	require.NoError(t, err)

	usage, err := table.CityUsage(" CHENNAI ")
	require.NoError(t, err)
	assert.Equal(t, energy.PeriodUsage{energy.PeriodToday: 10, energy.PeriodWeek: 0}, usage)

	usage[energy.PeriodToday] = 99
	again, _ := table.CityUsage("chennai")
	assert.Equal(t, 10.0, again[energy.PeriodToday])

	_, err = table.CityUsage("paris")
	assert.ErrorIs(t, err, energy.ErrUnknownCity)
}

func TestParseUsageTableRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown period": "chennai:\n  year: 10\n",
		"not a number":   "chennai:\n  today: lots\n",
		"duplicate city": "chennai:\n  today: 1\nChennai:\n  today: 2\n",
		"bad yaml":       "chennai: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseUsageTable([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadUsageTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pune:\n  month: 4200.5\n"), 0o600))

	table, err := LoadUsageTable(path)
	require.NoError(t, err)
	usage, err := table.CityUsage("pune")
	require.NoError(t, err)
	assert.Equal(t, 4200.5, usage[energy.PeriodMonth])

	_, err = LoadUsageTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
