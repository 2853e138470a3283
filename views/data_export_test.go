package views

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imuplot/models"
)

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewCSVWriter(path, 0, true, RequiredColumns)
	require.NoError(t, err)

	s := models.Sample{Index: 1, AccelX: 0.1, AccelY: -0.98, AccelZ: 0.03, GiroX: 12.5, GiroY: -3, GiroZ: 179.994}
	w.WriteRow(s.CSVRow())
	assert.EqualValues(t, 1, w.Rows())

	// Nothing reaches the file before a flush.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"numero_amostra,accel_x,accel_y,accel_z,giro_x,giro_y,giro_z\n"+
			"1,0.10,-0.98,0.03,12.50,-3.00,179.99\n",
		string(data))
}

func TestCSVWriter_ConcurrentRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewCSVWriter(path, 128, false, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s := models.Sample{Index: g*50 + i}
				w.WriteRow(s.CSVRow())
			}
		}(g)
	}
	wg.Wait()
	require.NoError(t, w.Close())

	assert.EqualValues(t, 200, w.Rows())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	assert.Equal(t, 200, lines)
}

func TestNewCSVWriter_BadPath(t *testing.T) {
	_, err := NewCSVWriter(filepath.Join(t.TempDir(), "missing", "out.csv"), 0, true, RequiredColumns)
	assert.Error(t, err)
}
