// Package components holds the ECS component types for visualization particles.
package components

// Color is a packed 0xAARRGGBB color.
type Color uint32

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color {
	return Color(0xFF)<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// RGB unpacks the red, green and blue channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Appearance holds render-only particle properties.
type Appearance struct {
	Color Color
	Size  float32
}
