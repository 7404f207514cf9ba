// Package theme is the registry of semantic colour roles and fonts shared by
// every dashboard panel. Panels ask for a Role, never for a literal colour, so
// the whole figure can be re-themed by changing the registry alone.
package theme

import (
	"fmt"
	"image/color"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2/drawing"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Role is a semantic colour slot.
type Role int

const (
	Background Role = iota
	PanelSurface
	Border
	PrimaryText
	MutedText
	AccentBlue
	OKGreen
	WarnYellow
	CriticalRed
	numRoles
)

var roleNames = [numRoles]string{
	Background:   "background",
	PanelSurface: "panel-surface",
	Border:       "border",
	PrimaryText:  "primary-text",
	MutedText:    "muted-text",
	AccentBlue:   "accent-blue",
	OKGreen:      "ok-green",
	WarnYellow:   "warn-yellow",
	CriticalRed:  "critical-red",
}

func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// ErrUnknownRole and ErrBadColor classify WithOverrides failures.
var (
	ErrUnknownRole = errors.New("unknown theme role")
	ErrBadColor    = errors.New("invalid colour")
)

// ParseRole maps a role name such as "critical-red" to its Role.
func ParseRole(name string) (Role, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for r, s := range roleNames {
		if s == n {
			return Role(r), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownRole, "%q", name)
}

// RoleNames returns every role name in declaration order.
func RoleNames() []string {
	return append([]string(nil), roleNames[:]...)
}

var defaultHex = [numRoles]string{
	Background:   "#0d1117",
	PanelSurface: "#161b22",
	Border:       "#30363d",
	PrimaryText:  "#e6edf3",
	MutedText:    "#8b949e",
	AccentBlue:   "#58a6ff",
	OKGreen:      "#3fb950",
	WarnYellow:   "#d29922",
	CriticalRed:  "#f85149",
}

// Theme resolves roles to colours and carries the dashboard typeface.
// A Theme is immutable once built and safe for concurrent use.
type Theme struct {
	colors [numRoles]drawing.Color
	face   font.Font
}

// Default returns the dark dashboard theme.
func Default() *Theme {
	t := &Theme{face: font.Font{Typeface: "Liberation", Variant: "Mono"}}
	for r, h := range defaultHex {
		t.colors[r] = drawing.ColorFromHex(h)
	}
	return t
}

var hexRe = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// WithOverrides returns a copy of t with the given role → "#rrggbb" overrides
// applied. Every bad entry is reported.
func (t *Theme) WithOverrides(overrides map[string]string) (*Theme, error) {
	out := *t
	var result *multierror.Error
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r, err := ParseRole(k)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		v := strings.TrimSpace(overrides[k])
		if !hexRe.MatchString(v) {
			result = multierror.Append(result, errors.Wrapf(ErrBadColor, "%s: %q is not a hex colour", k, v))
			continue
		}
		out.colors[r] = drawing.ColorFromHex(v)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Color returns the colour assigned to r.
func (t *Theme) Color(r Role) color.Color { return t.colors[r] }

// Hex returns r's colour as "#rrggbb".
func (t *Theme) Hex(r Role) string {
	c := t.colors[r]
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Mix blends w of over into base (w in [0,1]), producing an opaque shade
// derived from two roles.
func (t *Theme) Mix(base, over Role, w float64) color.Color {
	if w < 0 {
		w = 0
	} else if w > 1 {
		w = 1
	}
	a, b := t.colors[base], t.colors[over]
	lerp := func(x, y uint8) uint8 { return uint8(float64(x)*(1-w) + float64(y)*w + 0.5) }
	return drawing.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// Translucent returns r with alpha a.
func (t *Theme) Translucent(r Role, a uint8) color.Color {
	return t.colors[r].WithAlpha(a)
}

// Font returns the dashboard typeface at size, bold or regular.
func (t *Theme) Font(size vg.Length, bold bool) font.Font {
	f := t.face
	if bold {
		f.Weight = xfont.WeightBold
	}
	return font.From(f, size)
}

// Text returns a text style in role r. Alignment defaults to centred.
func (t *Theme) Text(r Role, size vg.Length, bold bool) text.Style {
	return text.Style{
		Color:   t.colors[r],
		Font:    t.Font(size, bold),
		XAlign:  draw.XCenter,
		YAlign:  draw.YCenter,
		Handler: plot.DefaultTextHandler,
	}
}
