package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLatencyStats_SnapshotPercentiles(t *testing.T) {
	stats := NewLatencyStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(time.Duration(ms)*time.Millisecond, 10)
	}

	snap := stats.Snapshot()
	assert.Equal(t, 5, snap.Count)
	assert.Equal(t, int64(100), snap.MinMs)
	assert.Equal(t, int64(500), snap.MaxMs)
	assert.Equal(t, 300.0, snap.AvgMs)
	assert.Equal(t, 300.0, snap.P50Ms)
	assert.InDelta(t, 480.0, snap.P95Ms, 1e-9)
	assert.InDelta(t, 496.0, snap.P99Ms, 1e-9)
	assert.Equal(t, 50, snap.TotalLines)
}

func TestLatencyStats_PrunesExpiredSamples(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	stats := NewLatencyStats(10 * time.Second)
	stats.now = func() time.Time { return clock }

	stats.Record(100*time.Millisecond, 1)
	clock = clock.Add(25 * time.Second)
	assert.Equal(t, 0, stats.Snapshot().Count)

	stats.Record(200*time.Millisecond, 1)
	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, int64(200), snap.MinMs)
	assert.Equal(t, int64(200), snap.MaxMs)
}

func TestLatencyStats_ClampsNegativeDuration(t *testing.T) {
	stats := NewLatencyStats(0)
	stats.Record(-10*time.Millisecond, 0)

	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, int64(0), snap.MinMs)
	assert.Equal(t, int64(0), snap.MaxMs)
}

func TestLatencyStats_Empty(t *testing.T) {
	assert.Equal(t, LatencySnapshot{}, NewLatencyStats(time.Minute).Snapshot())
}
