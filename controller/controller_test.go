package controller

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"imuplot/models"
	"imuplot/services/ingest"
	"imuplot/utils"
	"imuplot/views"
)

const exampleCSV = `numero_amostra,accel_x,accel_y,accel_z,giro_x,giro_y,giro_z
0,0.12,-0.98,0.03,1.1,-0.2,0.05
1,0.10,-0.97,0.04,1.0,-0.1,0.06
2,0.11,-0.99,0.02,0.9,-0.3,0.04
`

var smallChart = views.ChartOptions{Width: 4 * vg.Inch, Height: 3 * vg.Inch, DPI: 50}

type fakeDisplay struct {
	title string
	img   image.Image
	err   error
}

func (d *fakeDisplay) Show(title string, img image.Image) error {
	d.title = title
	d.img = img
	return d.err
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "MPU6050_data1.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPlotController_SavesFigure(t *testing.T) {
	in := writeInput(t, exampleCSV)
	out := filepath.Join(filepath.Dir(in), "figure.png")

	fig, err := NewPlotController(smallChart, nil).Run(PlotRequest{Input: in, Output: out})
	require.NoError(t, err)

	require.Len(t, fig.Panels, 2)
	for _, p := range fig.Panels {
		require.Len(t, p.Series, 3)
		for _, s := range p.Series {
			assert.Len(t, s.Points, 3)
		}
	}

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestPlotController_HeaderOnly(t *testing.T) {
	in := writeInput(t, "numero_amostra,accel_x,accel_y,accel_z,giro_x,giro_y,giro_z\n")
	out := filepath.Join(filepath.Dir(in), "empty.svg")

	fig, err := NewPlotController(smallChart, nil).Run(PlotRequest{Input: in, Output: out})
	require.NoError(t, err)
	for _, p := range fig.Panels {
		for _, s := range p.Series {
			assert.Empty(t, s.Points)
		}
	}
	assert.FileExists(t, out)
}

func TestPlotController_Show(t *testing.T) {
	in := writeInput(t, exampleCSV)
	display := &fakeDisplay{}

	_, err := NewPlotController(smallChart, display).Run(PlotRequest{Input: in, Show: true})
	require.NoError(t, err)

	assert.Equal(t, "MPU6050_data1.csv", display.title)
	require.NotNil(t, display.img)
	assert.Equal(t, 200, display.img.Bounds().Dx())
	assert.Equal(t, 150, display.img.Bounds().Dy())
}

func TestPlotController_Errors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		_, err := NewPlotController(smallChart, nil).Run(PlotRequest{Input: filepath.Join(t.TempDir(), "none.csv")})
		var dfe *models.DataFormatError
		assert.ErrorAs(t, err, &dfe)
	})

	t.Run("missing column", func(t *testing.T) {
		in := writeInput(t, "numero_amostra,accel_x\n0,1\n")
		_, err := NewPlotController(smallChart, nil).Run(PlotRequest{Input: in})
		assert.ErrorIs(t, err, models.ErrMissingColumn)
	})

	t.Run("unsupported format", func(t *testing.T) {
		in := writeInput(t, exampleCSV)
		_, err := NewPlotController(smallChart, nil).Run(PlotRequest{Input: in, Output: in + ".bmp"})
		var rerr *models.RenderError
		require.ErrorAs(t, err, &rerr)
		assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
	})

	t.Run("no display", func(t *testing.T) {
		in := writeInput(t, exampleCSV)
		_, err := NewPlotController(smallChart, nil).Run(PlotRequest{Input: in, Show: true})
		var rerr *models.RenderError
		require.ErrorAs(t, err, &rerr)
		assert.ErrorIs(t, err, ErrNoDisplay)
	})

	t.Run("display failure", func(t *testing.T) {
		in := writeInput(t, exampleCSV)
		display := &fakeDisplay{err: errors.New("no X11")}
		_, err := NewPlotController(smallChart, display).Run(PlotRequest{Input: in, Show: true})
		var rerr *models.RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "display", rerr.Backend)
	})
}

func TestRecord_WritesLoadableCapture(t *testing.T) {
	out := filepath.Join(t.TempDir(), "session", "MPU6050_data1.csv")
	cfg := utils.RecordConfig{
		Output:          out,
		Samples:         128,
		IntervalMs:      0,
		FlushIntervalMs: 5,
		Seed:            42,
	}

	rows, err := Record(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(128), rows)

	tbl, err := ingest.LoadSampleTable(out)
	require.NoError(t, err)
	require.Equal(t, 128, tbl.Len())
	assert.Equal(t, 1, tbl.Index[0])
	assert.Equal(t, 128, tbl.Index[127])

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("numero_amostra,accel_x,accel_y,accel_z,giro_x,giro_y,giro_z\n")))
}

func TestRecord_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "MPU6050_data1.csv")
	_, err := Record(ctx, utils.RecordConfig{Output: out, Samples: 10, IntervalMs: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	tbl, err := ingest.LoadSampleTable(out)
	require.NoError(t, err, "an interrupted capture still has a valid header")
	assert.LessOrEqual(t, tbl.Len(), 10)
}

func TestNewRecordingController_EmptyPath(t *testing.T) {
	_, err := NewRecordingController(utils.RecordConfig{})
	assert.Error(t, err)
}
