package layout

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafilius/loadtestcharts/src/dataset"
	"github.com/iafilius/loadtestcharts/src/theme"
)

// readDPI returns the DPI stored in a pHYs chunk, or 0 if there is none.
func readDPI(data []byte) int {
	for off := 8; off+12 <= len(data); {
		n := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		if typ == "pHYs" && n == 9 && data[off+16] == 1 {
			ppm := binary.BigEndian.Uint32(data[off+8 : off+12])
			return int(math.Round(float64(ppm) * 0.0254))
		}
		if typ == "IDAT" {
			break
		}
		off += 12 + n
	}
	return 0
}

func composeVariant(t *testing.T, name string, dpi int) *Figure {
	t.Helper()
	v, err := dataset.LookupVariant(name)
	if err != nil {
		t.Fatalf("LookupVariant: %v", err)
	}
	d, err := dataset.New(v.Spec)
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	f, err := Compose(v, d, theme.Default(), dpi)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return f
}

func TestRenderDeterministic(t *testing.T) {
	for _, name := range dataset.VariantNames() {
		f := composeVariant(t, name, 60)
		a, err := f.Render(context.Background())
		if err != nil {
			t.Fatalf("%s: Render: %v", name, err)
		}
		b, err := f.Render(context.Background())
		if err != nil {
			t.Fatalf("%s: Render: %v", name, err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("%s: two renders differ (%d vs %d bytes)", name, len(a), len(b))
		}
		g, err := composeVariant(t, name, 60).Render(context.Background())
		if err != nil {
			t.Fatalf("%s: Render: %v", name, err)
		}
		if !bytes.Equal(a, g) {
			t.Fatalf("%s: fresh figure renders differently", name)
		}
	}
}

func TestRenderDimensionsAndDPI(t *testing.T) {
	const dpi = 72
	data, err := composeVariant(t, "v1", dpi).Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := readDPI(data); got != dpi {
		t.Fatalf("pHYs dpi = %d, want %d", got, dpi)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w > 14*dpi || h > 10*dpi {
		t.Fatalf("image %dx%d larger than the figure", w, h)
	}
	// The grid spans nearly the full figure; cropping only trims margins.
	if w < 13*dpi || h < 9*dpi {
		t.Fatalf("image %dx%d cropped too much", w, h)
	}
}

func TestCropToContent(t *testing.T) {
	bg := color.RGBA{R: 13, G: 17, B: 23, A: 255}
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, bg)
		}
	}
	img.Set(30, 20, color.White)
	img.Set(60, 50, color.White)
	got := cropToContent(img, bg, 5).Bounds()
	if want := image.Rect(25, 15, 66, 56); got != want {
		t.Fatalf("crop = %v, want %v", got, want)
	}
	// padding is clamped to the image
	if got := cropToContent(img, bg, 500).Bounds(); got != img.Bounds() {
		t.Fatalf("crop = %v", got)
	}
	blank := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if got := cropToContent(blank, color.RGBA{}, 1).Bounds(); got != blank.Bounds() {
		t.Fatalf("blank crop = %v", got)
	}
}

func TestSaveWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "charts.png")
	if err := composeVariant(t, "breakpoint", 40).Save(context.Background(), out); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		t.Fatalf("not a png: %v", err)
	}
}

func TestWriteFileMissingDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "charts.png")
	err := WriteFile(out, []byte("x"))
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
	var we *WriteError
	if !errors.As(err, &we) || we.Path != out {
		t.Fatalf("error lacks attempted path: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("underlying cause lost: %v", err)
	}
	if !strings.Contains(err.Error(), out) {
		t.Fatalf("message lacks path: %v", err)
	}
}

func TestWriteFileLeavesNoPartialFile(t *testing.T) {
	dir := t.TempDir()
	// Renaming a file over a non-empty directory fails.
	target := filepath.Join(dir, "charts.png")
	if err := os.MkdirAll(filepath.Join(target, "keep"), 0o755); err != nil {
		t.Fatal(err)
	}
	err := WriteFile(target, []byte("data"))
	var we *WriteError
	if !errors.As(err, &we) || we.Op != "rename" {
		t.Fatalf("expected rename WriteError, got %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("leftover files: %v", names)
	}
}

func TestComposeRejectsMissingChaos(t *testing.T) {
	v, _ := dataset.LookupVariant("v1")
	d, err := dataset.New(v.Spec)
	if err != nil {
		t.Fatal(err)
	}
	v.Grid[3] = dataset.PanelChaos
	if _, err := Compose(v, d, theme.Default(), 0); err == nil {
		t.Fatalf("expected an error for a chaos panel without chaos data")
	}
}
