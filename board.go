package contra

// TState holds the terminal mode flags, tab stops, and scroll region that
// spec.md §3 "Board" groups under tstate.
type TState struct {
	LNM                bool // Line Feed/New Line Mode
	SIMD               bool // Select Implicit Movement Direction: true = reverse (leftward)
	DCSMPresentation   bool // Device Component Select Mode: true = act on presentation order
	DECAWM             bool // autowrap
	DECTCEM            bool // cursor visible
	DECSCNM            bool // reverse video
	Xenl               bool // cursor may sit one past the last column before wrapping
	XenlECH            bool // ECH/ICH/DCH act on the last column when the cursor sits in the xenl pending-wrap slot
	HomeIL             bool // IL/DL move the cursor to column 0
	FFClearingScreen   bool // FF clears the screen (else behaves like LF)
	VTAffectedByLNM    bool // VT honors LNM like LF does
	VTAppendingNewline bool // VT behaves like LF at all (vs. ignored)
	BracketedPaste     bool

	PageHome, PageLimit int // scroll region, in rows [PageHome, PageLimit)

	TabStops []bool
}

// NewTState returns the default mode state for a board of the given width.
func NewTState(width, height int) TState {
	t := TState{
		DECAWM:             true,
		DECTCEM:            true,
		Xenl:               true,
		XenlECH:            true,
		VTAffectedByLNM:    true,
		VTAppendingNewline: true,
		FFClearingScreen:   false,
		PageHome:           0,
		PageLimit:          height,
	}
	t.ResetTabStops(width)
	return t
}

// ResetTabStops restores default tab stops every 8 columns (spec.md §4.2).
func (t *TState) ResetTabStops(width int) {
	t.TabStops = make([]bool, width)
	for i := 0; i < width; i += 8 {
		t.TabStops[i] = true
	}
}

// Board is the fixed width x height grid of styled lines, implemented as
// a ring buffer so vertical scroll is O(1) via a rotation offset
// (spec.md §3/§4.2/§9).
type Board struct {
	Width, Height int

	lines    []*Line
	rotation int
	nextID   int64

	Cursor Cursor
	State  TState

	DefaultFg, DefaultBg ColorSpec

	saved savedCursor

	// Alternate screen buffer (SPEC_FULL.md supplemented feature #4).
	altLines    []*Line
	altRotation int
	altCursor   Cursor
	usingAlt    bool
}

// NewBoard creates a board of the given size with all lines empty/unused.
func NewBoard(width, height int) *Board {
	b := &Board{
		Width:  width,
		Height: height,
		lines:  make([]*Line, height),
		State:  NewTState(width, height),
	}
	for i := range b.lines {
		b.lines[i] = NewLine()
	}
	b.Cursor.Attr = Attribute{}
	return b
}

func (b *Board) allocLineID() int64 {
	b.nextID++
	return b.nextID
}

// Row returns the Line backing logical row y (0 = top of the visible
// page), accounting for the ring's rotation offset. It marks the line
// used (assigning an id on first use) so callers may safely write to it.
func (b *Board) Row(y int) *Line {
	idx := (b.rotation + y) % b.Height
	if idx < 0 {
		idx += b.Height
	}
	l := b.lines[idx]
	l.markUsed(b.allocLineID)
	return l
}

// PeekRow returns the Line backing row y without marking it used; for
// read-only observers (the renderer) that must not allocate an id for an
// otherwise-untouched line.
func (b *Board) PeekRow(y int) *Line {
	idx := (b.rotation + y) % b.Height
	if idx < 0 {
		idx += b.Height
	}
	return b.lines[idx]
}

// Rotate moves the top delta rows off the page (delta>0 scrolls the page
// up, bringing new blank rows in at the bottom; delta<0 scrolls down).
// Line identities and contents of the remaining rows are preserved in
// order; the rows rotated out are recycled and reinitialized so that the
// next write to them reinitializes the slot (spec.md invariant 5, §4.2
// "Ring rotation").
func (b *Board) Rotate(delta int) {
	if delta == 0 || b.Height == 0 {
		return
	}
	if delta > 0 {
		for i := 0; i < delta && i < b.Height; i++ {
			idx := (b.rotation + i) % b.Height
			b.lines[idx].reinit()
		}
		b.rotation = ((b.rotation+delta)%b.Height + b.Height) % b.Height
	} else {
		n := -delta
		for i := 0; i < n && i < b.Height; i++ {
			idx := (b.rotation - 1 - i%b.Height + b.Height*2) % b.Height
			b.lines[idx].reinit()
		}
		b.rotation = ((b.rotation-n)%b.Height + b.Height) % b.Height
	}
}

// RotateRegion scrolls only the [top,bottom) row range by delta, used by
// DECSTBM-qualified IND/RI/LF/scroll (SPEC_FULL.md supplemented feature
// #3). When the region spans the whole board this degenerates to Rotate.
func (b *Board) RotateRegion(top, bottom, delta int) {
	if top <= 0 && bottom >= b.Height {
		b.Rotate(delta)
		return
	}
	if delta == 0 || delta >= bottom-top || -delta >= bottom-top {
		for y := top; y < bottom; y++ {
			b.clearLine(y)
		}
		return
	}
	if delta > 0 {
		for y := top; y < bottom-delta; y++ {
			src := b.Row(y + delta)
			dst := b.Row(y)
			*dst = *src
			dst.touch()
		}
		for y := bottom - delta; y < bottom; y++ {
			b.clearLine(y)
		}
	} else {
		n := -delta
		for y := bottom - 1; y >= top+n; y-- {
			src := b.Row(y - n)
			dst := b.Row(y)
			*dst = *src
			dst.touch()
		}
		for y := top; y < top+n; y++ {
			b.clearLine(y)
		}
	}
}

func (b *Board) clearLine(y int) {
	l := b.Row(y)
	id := l.ID
	l.Cells = l.Cells[:0]
	l.Home, l.Limit = 0, 0
	l.ID = id
	l.touch()
}

// Resize changes the board's dimensions. Existing content is preserved
// top-left-anchored; new rows are blank, new tab stops follow the
// default every-8-columns rule.
func (b *Board) Resize(width, height int) {
	if width == b.Width && height == b.Height {
		return
	}
	rows := make([]*Line, height)
	for y := 0; y < height; y++ {
		if y < b.Height {
			rows[y] = b.PeekRow(y)
		} else {
			rows[y] = NewLine()
		}
	}
	b.lines = rows
	b.rotation = 0
	b.Width = width
	b.Height = height
	if b.Cursor.X > width {
		b.Cursor.X = width
	}
	if b.Cursor.Y >= height {
		b.Cursor.Y = height - 1
	}
	if b.State.PageLimit > height || b.State.PageLimit == 0 {
		b.State.PageLimit = height
	}
	if b.State.PageHome > height {
		b.State.PageHome = 0
	}
	b.State.ResetTabStops(width)
}

// SwapAlternate switches between the primary and alternate screen buffers
// (DECSET/DECRST 1049, SPEC_FULL.md supplemented feature #4).
func (b *Board) SwapAlternate(toAlt bool) {
	if toAlt == b.usingAlt {
		return
	}
	if b.altLines == nil {
		b.altLines = make([]*Line, b.Height)
		for i := range b.altLines {
			b.altLines[i] = NewLine()
		}
	}
	b.lines, b.altLines = b.altLines, b.lines
	b.rotation, b.altRotation = b.altRotation, b.rotation
	b.Cursor, b.altCursor = b.altCursor, b.Cursor
	b.usingAlt = toAlt
}

// RIS resets the board to its initial state: clears the screen, resets
// the cursor, tab stops, scroll region, and mode flags.
func (b *Board) RIS() {
	for i := range b.lines {
		b.lines[i] = NewLine()
	}
	b.rotation = 0
	b.Cursor.Reset()
	b.State = NewTState(b.Width, b.Height)
	b.saved = savedCursor{}
}
