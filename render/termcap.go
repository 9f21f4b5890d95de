package render

import "github.com/contra-emu/contra"

// SGRCap describes what an outer terminal supports for a given attribute
// dimension, per spec.md §4.5 step 4 ("apply_attr... using a
// termcap_sgr_type capability table"). The zero value is the most
// conservative set (no off-codes, no colon sub-parameters, no 256-color,
// RGB or bright codes); DefaultSGRCap enables all of them.
type SGRCap struct {
	// HasOffCode reports whether aflag f has a dedicated reset code
	// (e.g. 24 for underline); if false, clearing it forces a full
	// "CSI 0 m" reset-and-replay.
	HasOffCode map[uint32]bool

	// SubParamColons reports whether the terminal accepts ISO 8613-6
	// ':'-separated sub-parameters for 38/48 (if false, ';'-separated
	// legacy form is emitted instead).
	SubParamColons bool

	// Indexed256 reports 256-color indexed support; if false, indexed
	// colors that do not fit the 30-37/90-97 codes are converted with
	// palette256RGB and sent in the direct-color (38;2/48;2) form.
	Indexed256 bool

	// RGB reports direct-color (24-bit) support.
	RGB bool

	// AIXBright reports support for the 90-97/100-107 bright aixterm
	// color codes; if false, indexed colors 8-15 are sent in the 256-color
	// (38;5/48;5) form, or as RGB when Indexed256 is also false.
	AIXBright bool
}

// DefaultSGRCap is a conservative xterm-compatible capability set: every
// aflag this package sets has a dedicated off-code, sub-parameter colons
// are accepted, and 256-color/RGB/aixterm-bright are all supported. This
// matches the terminal the renderer targets per spec.md §4.5 ("The
// renderer assumes its output lands on a terminal that itself honors...
// the chosen SGR subset").
func DefaultSGRCap() SGRCap {
	return SGRCap{
		HasOffCode: map[uint32]bool{
			uint32(contra.AFBold): true, uint32(contra.AFFaint): true,
			uint32(contra.AFItalic): true, uint32(contra.AFFraktur): true,
			uint32(contra.AFUnderline): true, uint32(contra.AFDoubleUnderline): true,
			uint32(contra.AFSlowBlink): true, uint32(contra.AFRapidBlink): true,
			uint32(contra.AFInverse): true, uint32(contra.AFInvisible): true,
			uint32(contra.AFStrike): true,
		},
		SubParamColons: true,
		Indexed256:     true,
		RGB:            true,
		AIXBright:      true,
	}
}
