package core

// Color is the foreground of a screen cell. The platform maps it to a
// terminal colour; ColorDefault keeps the terminal's own foreground.
type Color uint8

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
	numColors
)

// colorNames are the names used in sprite tables, indexed by Color.
var colorNames = [numColors]string{
	"default", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_red", "bright_green", "bright_yellow", "bright_blue",
	"bright_magenta", "bright_cyan", "bright_white", "orange", "gray",
}

func (c Color) String() string {
	if c < numColors {
		return colorNames[c]
	}
	return "default"
}

// ParseColor looks a colour up by its sprite-table name.
func ParseColor(name string) (Color, bool) {
	for c, n := range colorNames {
		if n == name {
			return Color(c), true
		}
	}
	return ColorDefault, false
}
