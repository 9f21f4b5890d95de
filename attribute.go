package contra

// ColorSpace identifies how a ColorSpec's value should be interpreted,
// per spec.md §3/§4.4.
type ColorSpace uint8

const (
	ColorDefault ColorSpace = iota
	ColorTransparent
	ColorIndexed
	ColorRGB
	ColorCMY
	ColorCMYK
)

// ColorSpec is one foreground or background color value as used by an
// Attribute. Value components are only meaningful for the color spaces
// that use them (RGB uses V0-V2, CMY uses V0-V2, CMYK uses V0-V3, Indexed
// uses Index).
type ColorSpec struct {
	Space ColorSpace
	Index int
	V0    uint8
	V1    uint8
	V2    uint8
	V3    uint8
}

// IsDefault reports whether this color is the ground's default (SGR 39/49).
func (c ColorSpec) IsDefault() bool { return c.Space == ColorDefault }

// AFlags holds the bold/faint/italic/underline/blink/inverse/strike bits
// of spec.md §3 "Attribute".
type AFlags uint32

const (
	AFBold AFlags = 1 << iota
	AFFaint
	AFItalic
	AFFraktur
	AFUnderline
	AFDoubleUnderline
	AFSlowBlink
	AFRapidBlink
	AFInverse
	AFInvisible
	AFStrike
	// AFGuarded marks a cell inside an SPA...EPA guarded area (GLOSSARY;
	// SPEC_FULL.md supplemented feature #1). Guarded cells are skipped by
	// ECH/EL erase operators.
	AFGuarded
)

// XFlags holds the frame/circle/overline/proportional/ideogram-decoration
// and stress bits of spec.md §3 "Attribute".
type XFlags uint32

const (
	XFFrame XFlags = 1 << iota
	XFCircle
	XFOverline
	XFProportional
	// Nine ideogram decoration line positions (CSI 60-69 m), stored as a
	// contiguous bitfield; applySGR treats them as mutually exclusive by
	// default per spec.md §4.4.
	XFIdeogramUnderline
	XFIdeogramUnderlineDouble
	XFIdeogramOverline
	XFIdeogramOverlineDouble
	XFIdeogramStressMarking
	XFIdeogramReserved1
	XFIdeogramReserved2
	XFIdeogramReserved3
	XFIdeogramReserved4
	XFStress
)

var ideogramFlags = []XFlags{
	XFIdeogramUnderline, XFIdeogramUnderlineDouble,
	XFIdeogramOverline, XFIdeogramOverlineDouble,
	XFIdeogramStressMarking,
}

// Attribute is the pair (aflags, xflags) plus foreground/background color
// specs of spec.md §3. The zero value is the default attribute, and
// IsDefault must hold iff every field is zero (spec.md invariant).
type Attribute struct {
	AFlags AFlags
	XFlags XFlags
	Fg     ColorSpec
	Bg     ColorSpec
}

// IsDefault reports whether a equals the zero-value default attribute.
func (a Attribute) IsDefault() bool {
	return a.AFlags == 0 && a.XFlags == 0 && a.Fg == (ColorSpec{}) && a.Bg == (ColorSpec{})
}

// Equal reports field-wise equality, used by the wide-pair integrity
// invariant (spec.md invariant 1).
func (a Attribute) Equal(b Attribute) bool {
	return a == b
}
