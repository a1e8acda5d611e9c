package balance

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/require"
)

type col struct {
	name string
	vals any
}

func textCol(name string, vals ...string) col { return col{name: name, vals: vals} }

func numCol(name string, vals ...float64) col { return col{name: name, vals: vals} }

func newDataset(t *testing.T, cols ...col) *Dataset {
	t.Helper()
	ss := make([]series.Series, len(cols))
	for i, c := range cols {
		switch v := c.vals.(type) {
		case []string:
			ss[i] = series.New(v, series.String, c.name)
		case []float64:
			ss[i] = series.New(v, series.Float, c.name)
		default:
			t.Fatalf("unsupported column %s", c.name)
		}
	}
	ds, err := NewDataset(dataframe.New(ss...))
	require.NoError(t, err)
	return ds
}

// fixtureDataset is the three hour scenario used across the derivation tests.
func fixtureDataset(t *testing.T) *Dataset {
	return newDataset(t,
		numCol(ColOnshoreWindPower, 1, 2, 3),
		numCol(ColOffshoreWindPower, 1, 0, 1),
		numCol(ColSolarPower, 0, 1, 0),
		numCol(ColTotalLoad, 10, 10, 10),
		numCol(ColBiomass, 1, 1, 1),
	)
}
