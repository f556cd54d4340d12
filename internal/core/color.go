package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// colorblindSafe replaces red/green pairs with a blue/orange palette.
var colorblindSafe = map[Color]Color{
	ColorRed:         ColorOrange,
	ColorBrightRed:   ColorOrange,
	ColorGreen:       ColorBlue,
	ColorBrightGreen: ColorBrightBlue,
	ColorMagenta:     ColorBrightYellow,
}

// Colorblind returns the colorblind-friendly substitute for c.
func (c Color) Colorblind() Color {
	if sub, ok := colorblindSafe[c]; ok {
		return sub
	}
	return c
}
