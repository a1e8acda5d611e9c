package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/prosumption/core/balance"
)

func TestSQLiteStoreReport(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	res := sampleResult(t, withGap)
	require.NoError(t, store.Report(ctx, res))

	recs, err := store.Hourly(ctx, res.RunID)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, 0, recs[0].Row)
	assert.Equal(t, time.Date(2023, 1, 10, 23, 0, 0, 0, time.UTC), recs[0].HourUTC)
	assert.Equal(t, "2023-01-11 00:00", recs[0].HourDK)
	assert.Equal(t, "DK1", recs[0].PriceArea)
	require.NotNil(t, recs[0].Values[balance.ColSolarAndWind])
	assert.Equal(t, 2.0, *recs[0].Values[balance.ColSolarAndWind])
	assert.Nil(t, recs[1].Values[balance.ColSolarAndWind])
	assert.Nil(t, recs[1].Values[balance.ColScaledSolarAndWind])
	require.NotNil(t, recs[1].Values[balance.ColTotalWind])
	assert.Equal(t, 2.0, *recs[1].Values[balance.ColTotalWind])

	f, ok, err := store.ScalingFactor(ctx, res.RunID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 27.0/6.0, f, 1e-9)
}

func TestSQLiteStoreRerunReplaces(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	res := sampleResult(t, threeHours)
	require.NoError(t, store.Report(ctx, res))
	require.NoError(t, store.Report(ctx, res))

	recs, err := store.Hourly(ctx, res.RunID)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
	require.NotNil(t, recs[2].Values[balance.ColScaledSolarAndWind])
	assert.Equal(t, 12.0, *recs[2].Values[balance.ColScaledSolarAndWind])
}
