package core

import "strings"

// Color identifies the foreground color of a screen cell or a locked block.
// Values map onto ANSI 256-color codes in the platform layer.
type Color uint8

// Palette used by pieces, the board frame and the HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorPurple
	ColorGray
)

var colorNames = map[Color]string{
	ColorDefault: "default",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorBlue:    "blue",
	ColorMagenta: "magenta",
	ColorCyan:    "cyan",
	ColorWhite:   "white",
	ColorOrange:  "orange",
	ColorPurple:  "purple",
	ColorGray:    "gray",
}

// String returns the config name of the color.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor converts a config color name to a Color.
// Matching is case-insensitive; "grey" is accepted for gray.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "grey" {
		return ColorGray, true
	}
	for c, name := range colorNames {
		if name == s {
			return c, true
		}
	}
	return ColorDefault, false
}

// MarshalYAML encodes the color by name.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}
