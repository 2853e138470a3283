// Package window shows a rendered figure in a desktop window.
package window

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"imuplot/models"
)

// Display implements the plot controller's display backend with ebiten.
type Display struct{}

// Show opens a resizable window with img and blocks until it is closed.
func (Display) Show(title string, img image.Image) (err error) {
	defer func() {
		// ebiten panics instead of returning when no graphics driver can start.
		if r := recover(); r != nil {
			err = &models.RenderError{Backend: "display", Err: panicError{r}}
		}
	}()

	b := img.Bounds()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)

	g := &figureWindow{src: img, w: b.Dx(), h: b.Dy()}
	if err := ebiten.RunGame(g); err != nil {
		return &models.RenderError{Backend: "display", Err: err}
	}
	return nil
}

type figureWindow struct {
	src  image.Image
	img  *ebiten.Image
	w, h int
}

func (g *figureWindow) Update() error { return nil }

func (g *figureWindow) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImageFromImage(g.src)
	}
	screen.DrawImage(g.img, nil)
}

// Layout keeps the logical screen at the figure's size; ebiten scales it to
// the window.
func (g *figureWindow) Layout(_, _ int) (int, int) {
	return g.w, g.h
}

type panicError struct{ v any }

func (e panicError) Error() string { return fmt.Sprintf("display backend unavailable: %v", e.v) }
