package theme

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	xfont "golang.org/x/image/font"
)

func TestParseRole(t *testing.T) {
	for i, name := range RoleNames() {
		r, err := ParseRole(name)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", name, err)
		}
		if int(r) != i || r.String() != name {
			t.Fatalf("ParseRole(%q) = %v", name, r)
		}
	}
	if r, err := ParseRole(" Critical-Red "); err != nil || r != CriticalRed {
		t.Fatalf("case/space-insensitive lookup failed: %v %v", r, err)
	}
	if _, err := ParseRole("orange"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestDefaultPalette(t *testing.T) {
	th := Default()
	got := map[string]string{}
	for _, n := range RoleNames() {
		r, _ := ParseRole(n)
		got[n] = th.Hex(r)
	}
	want := map[string]string{
		"background":    "#0d1117",
		"panel-surface": "#161b22",
		"border":        "#30363d",
		"primary-text":  "#e6edf3",
		"muted-text":    "#8b949e",
		"accent-blue":   "#58a6ff",
		"ok-green":      "#3fb950",
		"warn-yellow":   "#d29922",
		"critical-red":  "#f85149",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("palette (-want +got):\n%s", diff)
	}
}

func TestWithOverrides(t *testing.T) {
	base := Default()
	th, err := base.WithOverrides(map[string]string{"critical-red": "#ff0000", "ok-green": "0f0"})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}
	if th.Hex(CriticalRed) != "#ff0000" || th.Hex(OKGreen) != "#00ff00" {
		t.Fatalf("overrides not applied: %s %s", th.Hex(CriticalRed), th.Hex(OKGreen))
	}
	if base.Hex(CriticalRed) != "#f85149" {
		t.Fatalf("base theme mutated")
	}

	_, err = base.WithOverrides(map[string]string{"orange": "#ffa500", "border": "red", "muted-text": "#12345"})
	if !errors.Is(err, ErrUnknownRole) || !errors.Is(err, ErrBadColor) {
		t.Fatalf("expected both error kinds, got %v", err)
	}
}

func TestMix(t *testing.T) {
	th := Default()
	if got, want := th.Mix(PanelSurface, CriticalRed, 0), th.Color(PanelSurface); !sameRGBA(got, want) {
		t.Fatalf("w=0 should return base")
	}
	if got, want := th.Mix(PanelSurface, CriticalRed, 1), th.Color(CriticalRed); !sameRGBA(got, want) {
		t.Fatalf("w=1 should return over")
	}
	r, _, _, a := th.Mix(PanelSurface, CriticalRed, 0.5).RGBA()
	if a != 0xffff || r>>8 != (0x16+0xf8+1)/2 {
		t.Fatalf("unexpected mid shade r=%x a=%x", r>>8, a)
	}
}

func TestFontAndPlot(t *testing.T) {
	th := Default()
	if f := th.Font(9, true); f.Weight != xfont.WeightBold || f.Variant != "Mono" || f.Size != 9 {
		t.Fatalf("bold font = %+v", f)
	}
	p := th.NewPlot("x")
	if !sameRGBA(p.BackgroundColor, th.Color(PanelSurface)) {
		t.Fatalf("plot background not themed")
	}
	if !sameRGBA(p.Legend.TextStyle.Color, th.Color(PrimaryText)) {
		t.Fatalf("legend text not themed")
	}
}

func TestLegendRowsDoNotOverlap(t *testing.T) {
	sty := Default().NewPlot("x").Legend.TextStyle
	// gonum spaces legend rows by Rectangle(...).Max.Y.
	r := sty.Rectangle("p95")
	if h := sty.Height("p95"); r.Max.Y < h/2 {
		t.Fatalf("legend row height %v is under half the text height %v", r.Max.Y, h)
	}
	if r.Min.X < 0 {
		t.Fatalf("legend text extends %v left of its anchor", r.Min.X)
	}
}

func sameRGBA(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}
