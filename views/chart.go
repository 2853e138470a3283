package views

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"imuplot/models"
	"imuplot/utils"
)

// Matplotlib's single-letter colors, which the capture tooling has always used.
var (
	colorRed     = color.RGBA{R: 255, A: 255}
	colorGreen   = color.RGBA{G: 128, A: 255}
	colorBlue    = color.RGBA{B: 255, A: 255}
	colorCyan    = color.RGBA{G: 191, B: 191, A: 255}
	colorMagenta = color.RGBA{R: 191, B: 191, A: 255}
	colorYellow  = color.RGBA{R: 191, G: 191, A: 255}
)

const sampleAxisLabel = "Número da Amostra"

type seriesLayout struct {
	name   string
	column string
	color  color.Color
}

type panelLayout struct {
	title  string
	yLabel string
	series []seriesLayout
}

// figureLayout is the fixed two-panel layout: acceleration on top,
// angular velocity below.
var figureLayout = []panelLayout{
	{
		title:  "Aceleração nos 3 Eixos",
		yLabel: "Aceleração (g)",
		series: []seriesLayout{
			{"Accel X", models.ColAccelX, colorRed},
			{"Accel Y", models.ColAccelY, colorGreen},
			{"Accel Z", models.ColAccelZ, colorBlue},
		},
	},
	{
		title:  "Velocidade Angular nos 3 Eixos",
		yLabel: "Velocidade Angular (°/s)",
		series: []seriesLayout{
			{"Giro X", models.ColGiroX, colorCyan},
			{"Giro Y", models.ColGiroY, colorMagenta},
			{"Giro Z", models.ColGiroZ, colorYellow},
		},
	},
}

// ChartOptions sizes the rendered figure.
type ChartOptions struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// ChartOptionsFrom converts the chart config section.
func ChartOptionsFrom(cfg utils.ChartConfig) ChartOptions {
	return ChartOptions{
		Width:  vg.Length(cfg.WidthIn) * vg.Inch,
		Height: vg.Length(cfg.HeightIn) * vg.Inch,
		DPI:    cfg.DPI,
	}
}

// Series describes one drawn line.
type Series struct {
	Name   string
	Column string
	Color  color.Color
	Points plotter.XYs
}

// Panel is one subplot of the figure.
type Panel struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
	Plot   *plot.Plot
}

// Figure is a built, not yet encoded, chart.
type Figure struct {
	Panels []*Panel
	opts   ChartOptions
}

// Renderer turns a SampleTable into the two-panel figure.
type Renderer struct {
	opts ChartOptions
}

func NewRenderer(opts ChartOptions) *Renderer {
	if opts.Width <= 0 {
		opts.Width = 12 * vg.Inch
	}
	if opts.Height <= 0 {
		opts.Height = 10 * vg.Inch
	}
	if opts.DPI <= 0 {
		opts.DPI = 100
	}
	return &Renderer{opts: opts}
}

// Build lays out both panels. An empty table yields panels with empty series.
func (r *Renderer) Build(t *models.SampleTable) (*Figure, error) {
	if t == nil {
		t = models.NewSampleTable(0)
	}
	xs, _ := t.Column(models.ColIndex)

	fig := &Figure{opts: r.opts}
	for _, layout := range figureLayout {
		panel, err := buildPanel(layout, xs, t)
		if err != nil {
			return nil, &models.RenderError{Backend: "plot", Err: err}
		}
		fig.Panels = append(fig.Panels, panel)
	}
	return fig, nil
}

// Render builds the figure and saves it to path.
func (r *Renderer) Render(t *models.SampleTable, path string) (*Figure, error) {
	fig, err := r.Build(t)
	if err != nil {
		return nil, err
	}
	if err := fig.Save(path); err != nil {
		return nil, err
	}
	return fig, nil
}

func buildPanel(layout panelLayout, xs []float64, t *models.SampleTable) (*Panel, error) {
	p := plot.New()
	p.Title.Text = layout.title
	p.X.Label.Text = sampleAxisLabel
	p.Y.Label.Text = layout.yLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	if len(xs) == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = -1, 1
	}

	panel := &Panel{
		Title:  layout.title,
		XLabel: sampleAxisLabel,
		YLabel: layout.yLabel,
		Plot:   p,
	}
	for _, s := range layout.series {
		ys, ok := t.Column(s.column)
		if !ok {
			return nil, fmt.Errorf("series %s: unknown column %q", s.name, s.column)
		}
		pts := make(plotter.XYs, len(ys))
		for i := range ys {
			pts[i].X = xs[i]
			pts[i].Y = ys[i]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.name, err)
		}
		line.LineStyle.Color = s.color
		line.LineStyle.Width = vg.Points(1.5)

		// Empty lines are kept out of the data area but still get a legend entry.
		if len(pts) > 0 {
			p.Add(line)
		}
		p.Legend.Add(s.name, line)

		panel.Series = append(panel.Series, Series{
			Name:   s.name,
			Column: s.column,
			Color:  s.color,
			Points: pts,
		})
	}
	return panel, nil
}

func (f *Figure) raster() *vgimg.Canvas {
	return vgimg.NewWith(
		vgimg.UseWH(f.opts.Width, f.opts.Height),
		vgimg.UseDPI(f.opts.DPI),
	)
}

func (f *Figure) drawOn(c vg.CanvasSizer) {
	plots := make([][]*plot.Plot, len(f.Panels))
	for i, p := range f.Panels {
		plots[i] = []*plot.Plot{p.Plot}
	}
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
		PadY:      6 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
}

var supportedFormats = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true,
	"svg": true, "pdf": true, "eps": true,
}

func (f *Figure) canvas(format string) (vg.CanvasWriterTo, error) {
	if !supportedFormats[format] {
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, format)
	}
	if format == "png" {
		return vgimg.PngCanvas{Canvas: f.raster()}, nil
	}
	c, err := draw.NewFormattedCanvas(f.opts.Width, f.opts.Height, format)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Encode draws the figure and writes it to w in the given image format
// (png, jpg, jpeg, tif, tiff, svg, pdf, eps).
func (f *Figure) Encode(w io.Writer, format string) error {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	c, err := f.canvas(format)
	if err != nil {
		return &models.RenderError{Backend: format, Err: err}
	}
	f.drawOn(c)
	if _, err := c.WriteTo(w); err != nil {
		return &models.RenderError{Backend: format, Err: err}
	}
	return nil
}

// Save writes the figure to path, choosing the format from its extension.
func (f *Figure) Save(path string) (err error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		return &models.RenderError{Backend: path, Err: fmt.Errorf("%w: no file extension", models.ErrUnsupportedFormat)}
	}
	if !supportedFormats[format] {
		return &models.RenderError{Backend: format, Err: fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, format)}
	}

	out, err := os.Create(path)
	if err != nil {
		return &models.RenderError{Backend: "file", Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &models.RenderError{Backend: "file", Err: cerr}
		}
	}()
	return f.Encode(out, format)
}

// Image rasterises the figure for on-screen display.
func (f *Figure) Image() image.Image {
	c := f.raster()
	f.drawOn(c)
	return c.Image()
}
