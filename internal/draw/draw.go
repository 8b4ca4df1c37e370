// Package draw renders game snapshots to ANSI terminals.
package draw

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/tetris/internal/game"
)

// Shade characters from lightest to darkest.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

// Block characters for drawing.
const (
	BlockFull  = '█'
	BlockLight = '░'
	BlockEmpty = ' '
	GridDot    = '·'
)

// Palette used for everything that is not a piece.
var (
	White    = colorful.Color{R: 1, G: 1, B: 1}
	Black    = colorful.Color{R: 0, G: 0, B: 0}
	DarkGray = colorful.Color{R: 0.25, G: 0.25, B: 0.25}
	Gray     = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	Red      = colorful.Color{R: 1, G: 0.2, B: 0.2}
)

// ToColorful converts a game color for blending.
func ToColorful(c game.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// FadeToWhite mixes c toward white; amount 0 keeps c and 1 is pure white.
func FadeToWhite(c colorful.Color, amount float64) colorful.Color {
	return c.BlendRgb(White, clamp01(amount)).Clamped()
}

// Dim mixes c toward black; amount 0 keeps c and 1 is black.
func Dim(c colorful.Color, amount float64) colorful.Color {
	return c.BlendRgb(Black, clamp01(amount)).Clamped()
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
