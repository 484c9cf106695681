package output

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"sort"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/wordlens/wordlens/internal/corpus"
)

const (
	figureWidth  = 640
	figureHeight = 360
	figureMargin = 40
)

var (
	figureBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	figureAxis       = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	figureBarColors  = []color.RGBA{
		{R: 0x2b, G: 0x8a, B: 0x3e, A: 0xff},
		{R: 0xc9, G: 0x2a, B: 0x2a, A: 0xff},
		{R: 0x1c, G: 0x7e, B: 0xd6, A: 0xff},
		{R: 0xe8, G: 0x59, B: 0x0c, A: 0xff},
	}
)

type figureBar struct {
	label string
	value int
}

// RenderUpdateFigure draws a bar chart of the last update's numbers and
// writes it as a PNG.
func RenderUpdateFigure(stats *corpus.UpdateStats, path string) error {
	bars := []figureBar{
		{label: "valid", value: stats.TotalValid},
		{label: "invalid", value: stats.TotalInvalid},
		{label: "new", value: len(stats.NewWords)},
		{label: "promoted", value: len(stats.Promoted)},
	}
	return renderBars("corpus update "+stats.LastUpdate, bars, path)
}

// RenderSourcesFigure draws discovery counts per source as a PNG.
func RenderSourcesFigure(stats *corpus.UpdateStats, path string) error {
	names := make([]string, 0, len(stats.Sources))
	for name := range stats.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	bars := make([]figureBar, 0, len(names))
	for _, name := range names {
		bars = append(bars, figureBar{label: name, value: stats.Sources[name]})
	}
	if len(bars) == 0 {
		bars = append(bars, figureBar{label: "none", value: 0})
	}
	return renderBars("discovery sources", bars, path)
}

func renderBars(title string, bars []figureBar, path string) error {
	// Draw at double size and scale down for smoother edges.
	canvas := image.NewRGBA(image.Rect(0, 0, figureWidth*2, figureHeight*2))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: figureBackground}, image.Point{}, draw.Src)

	maxValue := 1
	for _, b := range bars {
		if b.value > maxValue {
			maxValue = b.value
		}
	}

	plot := image.Rect(figureMargin*2, figureMargin*2, (figureWidth-figureMargin)*2, (figureHeight-figureMargin)*2)

	// Axes.
	draw.Draw(canvas, image.Rect(plot.Min.X, plot.Max.Y, plot.Max.X, plot.Max.Y+2), &image.Uniform{C: figureAxis}, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(plot.Min.X-2, plot.Min.Y, plot.Min.X, plot.Max.Y), &image.Uniform{C: figureAxis}, image.Point{}, draw.Src)

	slot := plot.Dx() / len(bars)
	barWidth := slot * 3 / 5
	for i, b := range bars {
		height := plot.Dy() * b.value / maxValue
		x0 := plot.Min.X + i*slot + (slot-barWidth)/2
		rect := image.Rect(x0, plot.Max.Y-height, x0+barWidth, plot.Max.Y)
		draw.Draw(canvas, rect, &image.Uniform{C: figureBarColors[i%len(figureBarColors)]}, image.Point{}, draw.Src)

		drawLabel(canvas, b.label, x0, plot.Max.Y+28)
		drawLabel(canvas, fmt.Sprintf("%d", b.value), x0, rect.Min.Y-10)
	}
	drawLabel(canvas, title, plot.Min.X, figureMargin)

	scaled := image.NewRGBA(image.Rect(0, 0, figureWidth, figureHeight))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), canvas, canvas.Bounds(), xdraw.Over, nil)

	f, err := os.Create(path) // #nosec G304 -- figure path comes from the CLI flag
	if err != nil {
		return fmt.Errorf("create figure: %w", err)
	}
	defer f.Close() // nolint:errcheck

	if err := png.Encode(f, scaled); err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}
	return f.Close()
}

func drawLabel(dst draw.Image, text string, x, y int) {
	d := font.Drawer{
		Dst:  dst,
		Src:  &image.Uniform{C: figureAxis},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
