package render

// palette256RGB resolves a 256-color palette index to an approximate RGB
// triple: 0-15 use VGA-style ANSI colors, 16-231 a 6x6x6 color cube with
// evenly spaced steps of 51, and 232-255 a grayscale ramp from 8 to 238.
// The 0-15 and cube values differ from xterm's default palette. Used as a fallback when the outer terminal's capability table
// (SGRCap.Indexed256) says it cannot take an indexed color directly, so
// the delta has to be sent as RGB instead.
func palette256RGB(idx int) (r, g, b uint8) {
	if idx < 0 {
		idx = 0
	} else if idx > 255 {
		idx = 255
	}
	switch {
	case idx < 16:
		rgb := ansi16RGB[idx]
		return rgb.r, rgb.g, rgb.b
	case idx < 232:
		idx -= 16
		bl := idx % 6
		gr := (idx / 6) % 6
		rd := idx / 36
		return uint8(rd * 51), uint8(gr * 51), uint8(bl * 51)
	default:
		gray := uint8((idx-232)*10 + 8)
		return gray, gray, gray
	}
}

type rgb8 struct{ r, g, b uint8 }

var ansi16RGB = []rgb8{
	{0, 0, 0}, {170, 0, 0}, {0, 170, 0}, {170, 85, 0},
	{0, 0, 170}, {170, 0, 170}, {0, 170, 170}, {170, 170, 170},
	{85, 85, 85}, {255, 85, 85}, {85, 255, 85}, {255, 255, 85},
	{85, 85, 255}, {255, 85, 255}, {85, 255, 255}, {255, 255, 255},
}
