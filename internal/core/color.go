package core

// Color is the foreground colour of a screen cell. The zero value leaves
// the terminal default.
type Color uint8

// Palette, in ANSI order where one exists.
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
	colorCount
)

// ansi256 holds the xterm-256 code of each colour. "" means default.
var ansi256 = [colorCount]string{
	"", "1", "2", "3", "4", "5", "6", "7",
	"9", "10", "11", "12", "13", "14", "15",
	"208", "245",
}

// ANSI returns the xterm-256 colour code, or "" for the terminal default
// and unknown values.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return ansi256[c]
}

// Colors returns every non-default colour.
func Colors() []Color {
	out := make([]Color, 0, colorCount-1)
	for c := ColorDefault + 1; c < colorCount; c++ {
		out = append(out, c)
	}
	return out
}
