package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/qhabit/components"
)

func TestQubitColor(t *testing.T) {
	// hue 0 at saturation 0.8, value 0.9
	r, g, b := QubitColor(0, 8).RGB()
	assert.Equal(t, uint8(230), r)
	assert.InDelta(t, 46, int(g), 1)
	assert.InDelta(t, 46, int(b), 1)

	assert.Equal(t, QubitColor(0, 8), QubitColor(8, 8), "hue wraps around the wheel")
	assert.NotEqual(t, QubitColor(0, 8), QubitColor(1, 8))
	assert.Equal(t, uint32(0xFF), uint32(QubitColor(3, 8))>>24)
}

func TestBlendColors(t *testing.T) {
	c := BlendColors(components.RGB(200, 0, 100), components.RGB(100, 50, 0))
	r, g, b := c.RGB()
	assert.InDelta(t, 150, int(r), 1)
	assert.InDelta(t, 25, int(g), 1)
	assert.InDelta(t, 50, int(b), 1)
}
