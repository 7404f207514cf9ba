// Package layout composes dashboard panels into one figure and writes it out
// as a PNG.
package layout

import (
	"bytes"
	"context"
	"image"
	stddraw "image/draw"
	"math"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/iafilius/loadtestcharts/src/dataset"
	"github.com/iafilius/loadtestcharts/src/logging"
	"github.com/iafilius/loadtestcharts/src/panels"
	"github.com/iafilius/loadtestcharts/src/theme"
)

// Figure geometry.
const (
	Rows = 2
	Cols = 2

	FigureWidth  = 14 * vg.Inch
	FigureHeight = 10 * vg.Inch

	DefaultDPI = 150
)

// Fractions of the figure height reserved above and below the panel grid.
const (
	titleY    = 0.97
	gridTop   = 0.94
	gridBot   = 0.035
	footnoteY = 0.01
	titleSize = vg.Length(16)
	footSize  = vg.Length(8)
	cropPad   = 0.1 // inch
)

// Figure is one composed dashboard, rendered once and discarded.
type Figure struct {
	Title    string
	Footnote string
	Panels   [Rows * Cols]panels.Panel
	DPI      int

	th *theme.Theme
}

// Compose builds every panel the variant's grid names, in row-major order.
func Compose(v dataset.Variant, d *dataset.Dataset, th *theme.Theme, dpi int) (*Figure, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	f := &Figure{Title: v.Title, Footnote: v.Footnote, DPI: dpi, th: th}
	opts := panels.Options{ChaosNote: v.ChaosNote}
	for i, kind := range v.Grid {
		p, err := panels.Build(kind, d, th, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "compose %s: grid cell %d", v.Name, i)
		}
		f.Panels[i] = p
	}
	return f, nil
}

// pxRect converts a rectangle in figure coordinates (origin bottom-left) to
// pixel space (origin top-left).
func (f *Figure) pxRect(r vg.Rectangle) image.Rectangle {
	px := func(l vg.Length) int { return int(math.Round(float64(l/vg.Inch) * float64(f.DPI))) }
	h := px(FigureHeight)
	return image.Rect(px(r.Min.X), h-px(r.Max.Y), px(r.Max.X), h-px(r.Min.Y))
}

// tiles returns the pixel rectangle of every grid cell in row-major order.
func (f *Figure) tiles(c draw.Canvas) [Rows * Cols]image.Rectangle {
	grid := c
	grid.Min.Y = c.Min.Y + (c.Max.Y-c.Min.Y)*gridBot
	grid.Max.Y = c.Min.Y + (c.Max.Y-c.Min.Y)*gridTop
	ts := draw.Tiles{
		Rows: Rows, Cols: Cols,
		PadLeft: vg.Inch * 0.15, PadRight: vg.Inch * 0.15,
		PadX: vg.Inch * 0.35, PadY: vg.Inch * 0.4,
	}
	var out [Rows * Cols]image.Rectangle
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			out[row*Cols+col] = f.pxRect(ts.At(grid, col, row).Rectangle)
		}
	}
	return out
}

// renderTile draws one panel on its own canvas sized to rect.
func (f *Figure) renderTile(p panels.Panel, rect image.Rectangle) (image.Image, error) {
	w := vg.Length(rect.Dx()) / vg.Length(f.DPI) * vg.Inch
	h := vg.Length(rect.Dy()) / vg.Length(f.DPI) * vg.Inch
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(f.DPI),
		vgimg.UseBackgroundColor(f.th.Color(theme.Background)))
	if err := p.Draw(draw.New(img)); err != nil {
		return nil, err
	}
	return img.Image(), nil
}

// Image renders the figure. Panels are drawn concurrently, each on its own
// canvas, then pasted in grid order.
func (f *Figure) Image(ctx context.Context) (image.Image, error) {
	defer logging.TimeTrack(time.Now(), "render figure")
	bg := f.th.Color(theme.Background)
	canvas := vgimg.NewWith(vgimg.UseWH(FigureWidth, FigureHeight), vgimg.UseDPI(f.DPI),
		vgimg.UseBackgroundColor(bg))
	dc := draw.New(canvas)

	rects := f.tiles(dc)
	var tiles [Rows * Cols]image.Image
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range f.Panels {
		if p == nil {
			continue
		}
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			img, err := f.renderTile(p, rects[i])
			if err != nil {
				return errors.Wrapf(err, "draw %s panel", p.Kind())
			}
			tiles[i] = img
			logging.Debugf("panel %d (%s) rendered in %s", i, p.Kind(), time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	title := f.th.Text(theme.PrimaryText, titleSize, true)
	h := dc.Max.Y - dc.Min.Y
	dc.FillText(title, vg.Point{X: dc.Center().X, Y: dc.Min.Y + h*titleY}, f.Title)
	foot := f.th.Text(theme.MutedText, footSize, false)
	foot.YAlign = draw.YBottom
	dc.FillText(foot, vg.Point{X: dc.Center().X, Y: dc.Min.Y + h*footnoteY}, f.Footnote)

	dst := canvas.Image()
	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		stddraw.Draw(dst, rects[i], tile, tile.Bounds().Min, stddraw.Over)
	}
	out := cropToContent(dst, bg, int(math.Round(cropPad*float64(f.DPI))))
	logging.Debugf("crop %v of %v", out.Bounds(), dst.Bounds())
	return out, nil
}

// Render returns the encoded PNG. Identical inputs give identical bytes.
func (f *Figure) Render(ctx context.Context) ([]byte, error) {
	img, err := f.Image(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encodePNG(&buf, img, f.DPI); err != nil {
		return nil, errors.Wrap(err, "png encode")
	}
	logging.Debugf("encoded %dx%d figure, %d bytes", img.Bounds().Dx(), img.Bounds().Dy(), buf.Len())
	return buf.Bytes(), nil
}
