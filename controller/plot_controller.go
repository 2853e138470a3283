package controller

import (
	"errors"
	"image"
	"path/filepath"

	"imuplot/models"
	"imuplot/services/ingest"
	"imuplot/utils"
	"imuplot/views"
)

// ErrNoDisplay is returned when a window is requested but no display
// backend was configured.
var ErrNoDisplay = errors.New("no display backend")

// Display shows a rendered figure interactively. Show blocks until the
// viewer is closed.
type Display interface {
	Show(title string, img image.Image) error
}

// PlotController runs the load → render pipeline.
type PlotController struct {
	renderer *views.Renderer
	display  Display
}

// NewPlotController wires the renderer. display may be nil when no window
// will be requested.
func NewPlotController(opts views.ChartOptions, display Display) *PlotController {
	return &PlotController{
		renderer: views.NewRenderer(opts),
		display:  display,
	}
}

// PlotRequest names the input file and where the figure goes. An empty
// Output skips the image file.
type PlotRequest struct {
	Input  string
	Output string
	Show   bool
}

// Run loads the capture, builds the figure, then saves and/or shows it.
func (pc *PlotController) Run(req PlotRequest) (*views.Figure, error) {
	t, err := ingest.LoadSampleTable(req.Input)
	if err != nil {
		return nil, err
	}
	utils.L().Info("loaded %d samples from %s", t.Len(), req.Input)

	fig, err := pc.renderer.Build(t)
	if err != nil {
		return nil, err
	}

	if req.Output != "" {
		if err := fig.Save(req.Output); err != nil {
			return nil, err
		}
		utils.L().Info("figure written to %s", req.Output)
	}

	if req.Show {
		if pc.display == nil {
			return nil, &models.RenderError{Backend: "display", Err: ErrNoDisplay}
		}
		if err := pc.display.Show(filepath.Base(req.Input), fig.Image()); err != nil {
			var rerr *models.RenderError
			if errors.As(err, &rerr) {
				return nil, err
			}
			return nil, &models.RenderError{Backend: "display", Err: err}
		}
	}
	return fig, nil
}
