package contra

// applySGR implements spec.md §4.4: parameters are applied left to right
// against the cursor's pending attribute.
func (t *Term) applySGR(seq *Sequence) {
	params := seq.CSIParams()
	if len(params) == 0 {
		t.Board.Cursor.Attr = Attribute{AFlags: t.Board.Cursor.Attr.AFlags & AFGuarded}
		return
	}
	a := &t.Board.Cursor.Attr
	i := 0
	for i < len(params) {
		p := params[i]
		code := 0
		if len(p) > 0 && p[0] >= 0 {
			code = p[0]
		}
		switch {
		case code == 0:
			// SPA/EPA's guarded bit is a distinct ECMA-48 control pair from
			// SGR and survives a reset; only an explicit EPA clears it.
			*a = Attribute{AFlags: a.AFlags & AFGuarded}
		case code == 1:
			a.AFlags |= AFBold
		case code == 2:
			a.AFlags |= AFFaint
		case code == 3:
			a.AFlags |= AFItalic
		case code == 4:
			a.AFlags |= AFUnderline
		case code == 5:
			a.AFlags |= AFSlowBlink
		case code == 6:
			a.AFlags |= AFRapidBlink
		case code == 7:
			a.AFlags |= AFInverse
		case code == 8:
			a.AFlags |= AFInvisible
		case code == 9:
			a.AFlags |= AFStrike
		case code == 20:
			a.AFlags |= AFFraktur
		case code == 21:
			a.AFlags |= AFDoubleUnderline
		case code == 22:
			a.AFlags &^= AFBold | AFFaint
		case code == 23:
			a.AFlags &^= AFItalic | AFFraktur
		case code == 24:
			a.AFlags &^= AFUnderline | AFDoubleUnderline
		case code == 25:
			a.AFlags &^= AFSlowBlink | AFRapidBlink
		case code == 27:
			a.AFlags &^= AFInverse
		case code == 28:
			a.AFlags &^= AFInvisible
		case code == 29:
			a.AFlags &^= AFStrike
		case code >= 30 && code <= 37:
			a.Fg = ColorSpec{Space: ColorIndexed, Index: code - 30}
		case code == 38:
			consumed := t.parseExtendedColor(params, i, &a.Fg)
			i += consumed
			continue
		case code == 39:
			a.Fg = ColorSpec{}
		case code >= 40 && code <= 47:
			a.Bg = ColorSpec{Space: ColorIndexed, Index: code - 40}
		case code == 48:
			consumed := t.parseExtendedColor(params, i, &a.Bg)
			i += consumed
			continue
		case code == 49:
			a.Bg = ColorSpec{}
		case code >= 90 && code <= 97:
			a.Fg = ColorSpec{Space: ColorIndexed, Index: code - 90 + 8}
		case code >= 100 && code <= 107:
			a.Bg = ColorSpec{Space: ColorIndexed, Index: code - 100 + 8}
		case code == 51:
			a.XFlags |= XFFrame
		case code == 52:
			a.XFlags |= XFCircle
		case code == 53:
			a.XFlags |= XFOverline
		case code == 54:
			a.XFlags &^= XFFrame | XFCircle
		case code == 55:
			a.XFlags &^= XFOverline
		case code == 73:
			a.XFlags |= XFProportional
		case code == 74:
			a.XFlags &^= XFProportional
		case code >= 60 && code <= 64:
			setIdeogram(a, ideogramFlags[code-60])
		case code == 65:
			for _, f := range ideogramFlags {
				a.XFlags &^= f
			}
		case code == 10, code == 11:
			// SGR font selection: unsupported, no attribute field models it.
		default:
			t.logf("contra: unhandled SGR %d", code)
		}
		i++
	}
}

// setIdeogram sets f exclusively among the ideogram decoration flags
// (spec.md §4.4: "exclusive among themselves by default").
func setIdeogram(a *Attribute, f XFlags) {
	for _, other := range ideogramFlags {
		a.XFlags &^= other
	}
	a.XFlags |= f
}

// parseExtendedColor parses the 38/48 indexed or RGB forms, accepting
// both ':'-delimited sub-parameters (ISO 8613-6) and ';'-delimited
// legacy forms, and returns how many top-level params it consumed
// (spec.md §4.4).
func (t *Term) parseExtendedColor(params [][]int, i int, dst *ColorSpec) int {
	cur := params[i]
	if len(cur) >= 2 {
		// Sub-parameter form: 38:5:n or 38:2:r:g:b (colon-joined into one field).
		applyColorFields(cur[1:], dst)
		return 1
	}
	// Legacy ';'-separated form: 38;5;n or 38;2;r;g;b across following fields.
	if i+1 >= len(params) {
		return 1
	}
	mode := 0
	if len(params[i+1]) > 0 {
		mode = params[i+1][0]
	}
	switch mode {
	case 5:
		if i+2 < len(params) && len(params[i+2]) > 0 {
			dst.Space = ColorIndexed
			dst.Index = params[i+2][0]
		}
		return 3
	case 2:
		var r, g, bch int
		if i+2 < len(params) && len(params[i+2]) > 0 {
			r = params[i+2][0]
		}
		if i+3 < len(params) && len(params[i+3]) > 0 {
			g = params[i+3][0]
		}
		if i+4 < len(params) && len(params[i+4]) > 0 {
			bch = params[i+4][0]
		}
		dst.Space = ColorRGB
		dst.V0, dst.V1, dst.V2 = uint8(r), uint8(g), uint8(bch)
		return 5
	default:
		return 2
	}
}

// applyColorFields handles the ':'-joined sub-parameter form where fields
// is everything after the 38/48 itself, all packed as sub-parameters of
// a single top-level CSIParams() entry.
func applyColorFields(fields []int, dst *ColorSpec) {
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case 5:
		if len(fields) >= 2 {
			dst.Space = ColorIndexed
			dst.Index = fields[1]
		}
	case 2:
		// ISO 8613-6 allows an optional color-space-id before r;g;b; we
		// accept both 38:2:r:g:b and 38:2:cs:r:g:b by taking the last 3.
		vals := fields[1:]
		if len(vals) > 3 {
			vals = vals[len(vals)-3:]
		}
		dst.Space = ColorRGB
		if len(vals) > 0 {
			dst.V0 = uint8(vals[0])
		}
		if len(vals) > 1 {
			dst.V1 = uint8(vals[1])
		}
		if len(vals) > 2 {
			dst.V2 = uint8(vals[2])
		}
	}
}
