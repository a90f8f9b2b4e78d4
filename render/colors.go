package render

import "github.com/gdamore/tcell/v2"

// RGB palette for bodies and overlays
var (
	RgbBackground = tcell.NewRGBColor(0, 0, 0)       // Black sky
	RgbGroundRed  = tcell.NewRGBColor(255, 0, 0)     // Floor and ceiling
	RgbGroundWall = tcell.NewRGBColor(255, 255, 0)   // Side walls
	RgbPlatform   = tcell.NewRGBColor(255, 255, 255) // Floating platform
	RgbBall       = tcell.NewRGBColor(230, 80, 80)   // Red ball
	RgbBlueBall   = tcell.NewRGBColor(90, 140, 255)  // Blue ball
	RgbRock       = tcell.NewRGBColor(140, 130, 120) // Gray rock
	RgbWalker     = tcell.NewRGBColor(255, 165, 0)   // Orange walker
	RgbWalker2D   = tcell.NewRGBColor(144, 238, 144) // Light green top-down walker
	RgbTreeLeaves = tcell.NewRGBColor(34, 139, 34)   // Forest green
	RgbTreeTrunk  = tcell.NewRGBColor(101, 67, 33)   // Dark brown

	RgbStatusText = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbStatusBg   = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
)

// RGB converts an 8-bit triple into a tcell color
func RGB(c [3]uint8) tcell.Color {
	return tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2]))
}

// Dim scales a color toward black by factor in [0,1]
func Dim(c tcell.Color, factor float64) tcell.Color {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	r, g, b := c.RGB()
	return tcell.NewRGBColor(
		int32(float64(r)*factor),
		int32(float64(g)*factor),
		int32(float64(b)*factor),
	)
}
