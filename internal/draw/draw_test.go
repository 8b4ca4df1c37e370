package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/tetris/internal/game"
)

func TestShadeLevel(t *testing.T) {
	assert.Equal(t, ' ', ShadeLevel(-1))
	assert.Equal(t, ' ', ShadeLevel(0))
	assert.Equal(t, '▒', ShadeLevel(0.5))
	assert.Equal(t, '█', ShadeLevel(1))
	assert.Equal(t, '█', ShadeLevel(2))
}

func TestToColorful(t *testing.T) {
	c := ToColorful(game.Color{R: 255, G: 0, B: 51})
	assert.InDelta(t, 1.0, c.R, 1e-9)
	assert.InDelta(t, 0.0, c.G, 1e-9)
	assert.InDelta(t, 0.2, c.B, 1e-9)
}

func TestBlending(t *testing.T) {
	c := ToColorful(game.KindT.Color())

	assert.Equal(t, c, FadeToWhite(c, 0))
	assert.InDelta(t, 0, FadeToWhite(c, 1).DistanceRgb(White), 1e-9)
	assert.InDelta(t, 0, FadeToWhite(c, 3).DistanceRgb(White), 1e-9)
	assert.Equal(t, Black, Dim(c, 1))

	half := Dim(c, 0.5)
	assert.Less(t, half.R, c.R)
	assert.Greater(t, half.R, 0.0)
}
