package systems

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/qhabit/components"
)

// Qubit palette: hues spread evenly around the wheel.
const (
	qubitSaturation = 0.8
	qubitValue      = 0.9
)

// QubitColor returns the color assigned to qubit index i of a vector with
// the given capacity.
func QubitColor(i, capacity int) components.Color {
	if capacity <= 0 {
		capacity = 1
	}
	hue := math.Mod(float64(i)*360/float64(capacity), 360)
	return fromColorful(colorful.Hsv(hue, qubitSaturation, qubitValue))
}

// BlendColors mixes two colors evenly in RGB space.
func BlendColors(a, b components.Color) components.Color {
	return fromColorful(toColorful(a).BlendRgb(toColorful(b), 0.5))
}

func toColorful(c components.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) components.Color {
	r, g, b := c.Clamped().RGB255()
	return components.RGB(r, g, b)
}
