package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{" warn ", WARN, false},
		{"error", ERROR, false},
		{"verbose", INFO, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_LevelFilterAndFile(t *testing.T) {
	var buf bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "imuplot.log")

	l := InitLogger(WARN, logPath, &buf)
	t.Cleanup(func() { InitLogger(INFO, "", os.Stderr) })
	assert.Same(t, l, L())

	L().Info("hidden %d", 1)
	L().Warn("loaded %d rows", 3)
	l.Close()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="loaded 3 rows"`)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded 3 rows")
}

func TestSampleTime(t *testing.T) {
	start := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, start, SampleTime(start, 0, 50*time.Millisecond))
	assert.Equal(t, start.Add(6400*time.Millisecond), SampleTime(start, 128, 50*time.Millisecond))
	assert.Equal(t, start.UnixNano(), NanoToTime(start.UnixNano()).UnixNano())
}
