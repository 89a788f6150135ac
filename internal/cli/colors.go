package cli

import (
	"fmt"
	"os"
)

const (
	ResetCode = "\033[0m"
	BoldCode  = "\033[1m"
	DimCode   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
)

// RGB represents a TrueColor
type RGB struct {
	R, G, B uint8
}

var (
	Leaf   = RGB{46, 160, 67}
	Sprout = RGB{163, 230, 53}
)

var enabled = colorAllowed()

// colorAllowed honours NO_COLOR (https://no-color.org/) and an explicit
// LOG_COLOR=false.
func colorAllowed() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	if val := os.Getenv("LOG_COLOR"); val != "" {
		return val == "true" || val == "1"
	}
	return true
}

// Enabled reports whether ANSI colors are emitted.
func Enabled() bool {
	return enabled
}

// SetEnabled overrides color detection, e.g. for --no-color.
func SetEnabled(on bool) {
	enabled = on
}

// Stylize wraps text in a color code.
func Stylize(text string, code string) string {
	if !enabled {
		return text
	}
	return code + text + ResetCode
}

func Bold(text string) string {
	return Stylize(text, BoldCode)
}

func Dim(text string) string {
	return Stylize(text, DimCode)
}

// ColorizeRGB returns text wrapped in ANSI TrueColor escape codes
func ColorizeRGB(text string, c RGB) string {
	if !enabled {
		return text
	}
	return fmt.Sprintf("\033[38;2;%d;%d;%dm%s%s", c.R, c.G, c.B, text, ResetCode)
}

// Gradient colors text with a linear interpolation between start and end
// at progress (0.0 to 1.0).
func Gradient(text string, start, end RGB, progress float64) string {
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*progress)
	}
	return ColorizeRGB(text, RGB{lerp(start.R, end.R), lerp(start.G, end.G), lerp(start.B, end.B)})
}

// Banner renders a name in the leaf gradient, one step per rune.
func Banner(name string) string {
	runes := []rune(name)
	if len(runes) < 2 {
		return ColorizeRGB(name, Leaf)
	}
	out := ""
	for i, r := range runes {
		out += Gradient(string(r), Leaf, Sprout, float64(i)/float64(len(runes)-1))
	}
	return out
}

func CheckMark() string {
	return Stylize("✔", Green)
}

func Arrow() string {
	return Stylize("➜", Blue)
}

func CrossMark() string {
	return Stylize("✘", Red)
}

func WarningSign() string {
	return Stylize("⚠", Yellow)
}
