// Package console renders battle narration to a terminal and reads player
// choices from it.
package console

// ANSI escape code constants for terminal styling.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"

	BrightRed     = "\033[91m"
	BrightGreen   = "\033[92m"
	BrightYellow  = "\033[93m"
	BrightBlue    = "\033[94m"
	BrightMagenta = "\033[95m"
	BrightCyan    = "\033[96m"
)

// Colorize wraps text with the given ANSI color code and a reset suffix.
//
// Precondition: color must be a valid ANSI escape sequence.
// Postcondition: Returns text wrapped with the color code and Reset.
func Colorize(color, text string) string {
	return color + text + Reset
}

// Palette applies colors only when enabled, so piped output stays plain.
type Palette struct {
	Enabled bool
}

// Paint colorizes text when the palette is enabled; otherwise returns text unchanged.
func (p Palette) Paint(color, text string) string {
	if !p.Enabled || color == "" {
		return text
	}
	return Colorize(color, text)
}
