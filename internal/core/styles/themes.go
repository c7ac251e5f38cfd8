package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "light"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"light": {
		Primary:    lipgloss.Color("#2563eb"),
		Secondary:  lipgloss.Color("#0891b2"),
		Foreground: lipgloss.Color("#111827"),
		Muted:      lipgloss.Color("#6b7280"),
		Background: lipgloss.Color("#ffffff"),
		Surface:    lipgloss.Color("#e5e7eb"),
		Success:    lipgloss.Color("#16a34a"),
		Warning:    lipgloss.Color("#d97706"),
		Error:      lipgloss.Color("#dc2626"),
	},
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}

// Blend mixes a toward b in Lab space; t=0 yields a, t=1 yields b.
// Colors that cannot be converted fall back to a.
func Blend(a, b color.Color, t float64) color.Color {
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return a
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return a
	}
	return ca.BlendLab(cb, t).Clamped()
}

// Hex returns c as a "#rrggbb" string, or "" for nil and transparent colors.
func Hex(c color.Color) string {
	if c == nil {
		return ""
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return cc.Hex()
}
