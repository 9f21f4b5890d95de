package contra

import "fmt"

// dispatchCSI implements the CSI row of spec.md §4.3's control table, plus
// SM/RM/DECSET/DECRST and the supplemented DECSTBM/alt-screen/DSR
// features.
func (t *Term) dispatchCSI(seq *Sequence) {
	b := t.Board
	c := &b.Cursor

	if len(seq.Inter) == 1 && seq.Inter[0] == ' ' {
		switch seq.Final {
		case 'U': // SLH
			t.setLineHome(seq.Param(0, 1))
		case 'V': // SLL
			t.setLineLimit(seq.Param(0, 1))
		}
		return
	}

	switch seq.Final {
	case 'A': // CUU
		c.Y -= max1(seq.Param(0, 0))
		t.clampCursorY()
	case 'B': // CUD
		c.Y += max1(seq.Param(0, 0))
		t.clampCursorY()
	case 'C': // CUF
		c.X += max1(seq.Param(0, 0))
		t.clampCursorX()
	case 'D': // CUB
		c.X -= max1(seq.Param(0, 0))
		t.clampCursorX()
	case 'E': // CNL
		c.Y += max1(seq.Param(0, 0))
		t.clampCursorY()
		t.carriageReturn()
	case 'F': // CPL
		c.Y -= max1(seq.Param(0, 0))
		t.clampCursorY()
		t.carriageReturn()
	case 'G', '`': // CHA / HPA
		c.X = seq.Param(0, 1) - 1
		t.clampCursorX()
	case 'd': // VPA
		c.Y = seq.Param(0, 1) - 1
		t.clampCursorY()
	case 'H', 'f': // CUP / HVP
		c.Y = seq.Param(0, 1) - 1
		c.X = seq.Param(1, 1) - 1
		t.clampCursorX()
		t.clampCursorY()
	case 'X': // ECH
		n := max1(seq.Param(0, 0))
		t.echRanges(c.Y, c.X, n)
	case '@': // ICH
		n := max1(seq.Param(0, 0))
		t.ichRanges(c.Y, c.X, n)
	case 'P': // DCH
		n := max1(seq.Param(0, 0))
		t.dchRanges(c.Y, c.X, n)
	case 'L': // IL
		t.insertLines(max1(seq.Param(0, 0)))
	case 'M': // DL
		t.deleteLines(max1(seq.Param(0, 0)))
	case 'S': // SU (scroll up the scroll region)
		b.RotateRegion(b.State.PageHome, b.effPageLimit(), max1(seq.Param(0, 0)))
	case 'T': // SD (scroll down)
		b.RotateRegion(b.State.PageHome, b.effPageLimit(), -max1(seq.Param(0, 0)))
	case 'J': // ED
		t.eraseInDisplay(seq.Param(0, 0))
	case 'K': // EL
		t.eraseInLine(seq.Param(0, 0))
	case 'r': // DECSTBM
		top := seq.Param(0, 1) - 1
		bot := seq.Param(1, b.Height)
		if bot > b.Height {
			bot = b.Height
		}
		if top < 0 {
			top = 0
		}
		if top < bot {
			b.State.PageHome, b.State.PageLimit = top, bot
		}
		c.X, c.Y = 0, b.State.PageHome
	case 'm': // SGR
		t.applySGR(seq)
	case 'n': // DSR
		t.deviceStatusReport(seq)
	case 'h':
		t.setModes(seq, true)
	case 'l':
		t.setModes(seq, false)
	case ']': // SDS: Start Directed String
		switch seq.Param(0, 0) {
		case 0:
			t.insertMarker(MarkerStringEnd)
		case 1:
			t.insertMarker(MarkerSDSLTR)
		case 2:
			t.insertMarker(MarkerSDSRTL)
		}
	case '[': // SRS: Start Reversed String
		switch seq.Param(0, 0) {
		case 0:
			t.insertMarker(MarkerStringEnd)
		case 1:
			t.insertMarker(MarkerSRS)
		}
	default:
		t.logf("contra: unhandled CSI %s%c", seq.ParamString(), seq.Final)
	}
}

func max1(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func (t *Term) clampCursorX() {
	c := &t.Board.Cursor
	max := t.Board.Width - 1
	if t.Board.State.DECAWM && t.Board.State.Xenl {
		max = t.Board.Width
	}
	if c.X < 0 {
		c.X = 0
	}
	if c.X > max {
		c.X = max
	}
}

func (t *Term) clampCursorY() {
	c := &t.Board.Cursor
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y >= t.Board.Height {
		c.Y = t.Board.Height - 1
	}
}

func (b *Board) effPageLimit() int {
	if b.State.PageLimit == 0 {
		return b.Height
	}
	return b.State.PageLimit
}

// xenlECHColumn clamps x onto the last real column when the cursor sits
// in the xenl pending-wrap slot and xenl-ECH is enabled, so ECH/ICH/DCH
// act on the last character of the line instead of a no-op past the
// right edge (spec.md §9 open question, original implementation's
// mode_xenl_ech).
func (t *Term) xenlECHColumn(x int) int {
	b := t.Board
	if b.State.XenlECH && x >= b.Width {
		return b.Width - 1
	}
	return x
}

// echRanges/ichRanges/dchRanges route through the presentation->data
// range mapping when DCSM=PRESENTATION (spec.md §4.2
// calculate_data_ranges_from_presentation_range).
func (t *Term) echRanges(y, x, n int) {
	b := t.Board
	x = t.xenlECHColumn(x)
	for _, r := range b.CalculateDataRangesFromPresentationRange(y, x, x+n) {
		b.EraseChars(y, r[0], r[1]-r[0], t.eraseAttr())
	}
}

func (t *Term) ichRanges(y, x, n int) {
	b := t.Board
	x = t.xenlECHColumn(x)
	ranges := b.CalculateDataRangesFromPresentationRange(y, x, x+n)
	if len(ranges) == 0 {
		return
	}
	r := ranges[0]
	b.InsertBlank(y, r[0], r[1]-r[0], b.Cursor.Attr)
}

func (t *Term) dchRanges(y, x, n int) {
	b := t.Board
	x = t.xenlECHColumn(x)
	ranges := b.CalculateDataRangesFromPresentationRange(y, x, x+n)
	if len(ranges) == 0 {
		return
	}
	r := ranges[0]
	b.DeleteCells(y, r[0], r[1]-r[0])
}

// eraseAttr returns the attribute erase operations paint with: the
// current background only (bce), matching xterm's default-erase
// behavior (spec.md GLOSSARY "bce").
func (t *Term) eraseAttr() Attribute {
	a := Attribute{}
	a.Bg = t.Board.Cursor.Attr.Bg
	return a
}

func (t *Term) insertLines(n int) {
	b := t.Board
	top, bot := b.State.PageHome, b.effPageLimit()
	y := b.Cursor.Y
	if y < top || y >= bot {
		return
	}
	if b.State.HomeIL {
		b.Cursor.X = 0
	}
	b.RotateRegion(y, bot, -n)
}

func (t *Term) deleteLines(n int) {
	b := t.Board
	top, bot := b.State.PageHome, b.effPageLimit()
	y := b.Cursor.Y
	if y < top || y >= bot {
		return
	}
	if b.State.HomeIL {
		b.Cursor.X = 0
	}
	b.RotateRegion(y, bot, n)
}

func (t *Term) eraseInDisplay(mode int) {
	b := t.Board
	c := b.Cursor
	switch mode {
	case 0: // cursor to end
		b.EraseChars(c.Y, c.X, b.Width-c.X, t.eraseAttr())
		for y := c.Y + 1; y < b.Height; y++ {
			b.clearLine(y)
		}
	case 1: // start to cursor
		b.EraseChars(c.Y, 0, c.X+1, t.eraseAttr())
		for y := 0; y < c.Y; y++ {
			b.clearLine(y)
		}
	case 2, 3: // whole screen
		for y := 0; y < b.Height; y++ {
			b.clearLine(y)
		}
	}
}

func (t *Term) eraseInLine(mode int) {
	b := t.Board
	c := b.Cursor
	switch mode {
	case 0:
		b.EraseChars(c.Y, c.X, b.Width-c.X, t.eraseAttr())
	case 1:
		b.EraseChars(c.Y, 0, c.X+1, t.eraseAttr())
	case 2:
		b.EraseChars(c.Y, 0, b.Width, t.eraseAttr())
	}
}

// deviceStatusReport implements DSR/CPR (SPEC_FULL.md supplemented
// feature #5): CSI 6n gets CSI row;col R written back to the PTY.
func (t *Term) deviceStatusReport(seq *Sequence) {
	if seq.Param(0, 0) != 6 {
		return
	}
	if t.onOutput == nil {
		return
	}
	c := t.Board.Cursor
	reply := fmt.Sprintf("\x1b[%d;%dR", c.Y+1, c.X+1)
	t.onOutput([]byte(reply))
}

// setModes implements SM/RM (ANSI) and DECSET/DECRST (CSI ? ... h/l).
func (t *Term) setModes(seq *Sequence, set bool) {
	b := t.Board
	if seq.Private != '?' {
		for _, p := range seq.CSIParams() {
			if len(p) == 0 {
				continue
			}
			switch p[0] {
			case 9: // DCSM: set (SM) selects DATA order, reset (RM) selects PRESENTATION
				b.State.DCSMPresentation = !set
			case 20: // LNM
				b.State.LNM = set
			case 5: // SIMD (ANSI "replacement character" mode number varies by source; modeled per spec.md glossary)
				b.State.SIMD = set
			}
		}
		return
	}
	for _, p := range seq.CSIParams() {
		if len(p) == 0 {
			continue
		}
		switch p[0] {
		case 1049: // alternate screen buffer
			b.SwapAlternate(set)
		case 6: // DECOM / origin mode reuses page_home as origin reference
			// no separate field; page_home already anchors vertical motion.
		case 7: // DECAWM
			b.State.DECAWM = set
		case 25: // DECTCEM
			b.State.DECTCEM = set
		case 5: // DECSCNM
			b.State.DECSCNM = set
		case 45: // reverse wraparound / xenl toggle (vendor-specific; modeled as xenl)
			b.State.Xenl = set
		case 9203: // xenl-ECH: ECH/ICH/DCH act on the last column when the cursor sits there
			b.State.XenlECH = set
		case 9204: // home-IL: IL/DL move the cursor to column 0
			b.State.HomeIL = set
		case 2004: // bracketed paste
			b.State.BracketedPaste = set
		}
	}
}
