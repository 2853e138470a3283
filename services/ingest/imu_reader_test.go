package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imuplot/models"
	"imuplot/utils"
)

func drain(t *testing.T, ch <-chan *models.Sample) []*models.Sample {
	t.Helper()
	var out []*models.Sample
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, s)
		case <-timeout:
			t.Fatal("reader did not close its channel")
		}
	}
}

func TestMPU6050Reader_ProducesConfiguredSamples(t *testing.T) {
	r := NewMPU6050Reader(utils.RecordConfig{Samples: 32, IntervalMs: 0, Seed: 7})
	r.Start(context.Background())

	samples := drain(t, r.Out)
	require.Len(t, samples, 32)
	assert.Equal(t, uint64(32), r.Produced())

	for i, s := range samples {
		assert.Equal(t, i+1, s.Index, "indices are 1-based and consecutive")
		assert.InDelta(t, 1.0, s.AccelX*s.AccelX+s.AccelY*s.AccelY+s.AccelZ*s.AccelZ, 0.1, "gravity magnitude")
		assert.GreaterOrEqual(t, s.GiroZ, -180.0)
		assert.LessOrEqual(t, s.GiroZ, 180.0)
	}
}

func TestMPU6050Reader_Interval(t *testing.T) {
	r := NewMPU6050Reader(utils.RecordConfig{Samples: 3, IntervalMs: 20, Seed: 1})

	start := time.Now()
	r.Start(context.Background())
	samples := drain(t, r.Out)

	require.Len(t, samples, 3)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestMPU6050Reader_Cancel(t *testing.T) {
	r := NewMPU6050Reader(utils.RecordConfig{Samples: 1000, IntervalMs: 10, Seed: 1})
	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)

	first := <-r.Out
	require.NotNil(t, first)
	cancel()

	rest := drain(t, r.Out)
	assert.Less(t, len(rest), 999)
}

func TestToCounts(t *testing.T) {
	assert.Equal(t, int16(16384), toCounts(16384.4))
	assert.Equal(t, int16(32767), toCounts(40000))
	assert.Equal(t, int16(-32768), toCounts(-40000))
}
