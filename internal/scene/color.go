package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// LinearFromHex parses an sRGB hex colour and converts it to linear RGB.
func LinearFromHex(hex string) (mgl64.Vec3, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := c.LinearRgb()
	return mgl64.Vec3{r, g, b}, nil
}

// Linearize applies the sRGB to linear transfer function to an already
// decoded colour. Applying it to a linear colour darkens it further.
func Linearize(c mgl64.Vec3) mgl64.Vec3 {
	r, g, b := colorful.Color{R: c[0], G: c[1], B: c[2]}.LinearRgb()
	return mgl64.Vec3{r, g, b}
}

// mustLinear is for the fixed palette below; inputs are compile-time constants.
func mustLinear(hex string) mgl64.Vec3 {
	c, err := LinearFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}
