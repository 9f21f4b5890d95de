package contra

// Cursor is created with the Board, reset on RIS, has its attribute
// mutated by SGR, and its position mutated by every printing, movement,
// and scroll operation (spec.md §3 "Cursor lifecycle"). X is always in
// [0,width]; X==width is reached only when DECAWM/xenl is active and
// means "pending wrap" — the next graphic write wraps before writing.
type Cursor struct {
	X, Y        int
	Attr        Attribute
	PendingWrap bool
}

// Reset restores the cursor to the home position with the default
// attribute and no pending wrap (spec.md RIS).
func (c *Cursor) Reset() {
	c.X, c.Y = 0, 0
	c.Attr = Attribute{}
	c.PendingWrap = false
}

// savedCursor is the DECSC/DECRC payload (SPEC_FULL.md supplemented
// feature #2): position, pending-wrap flag, attribute, and the SIMD/DCSM
// mode bits active at save time.
type savedCursor struct {
	valid       bool
	x, y        int
	pendingWrap bool
	attr        Attribute
	simd        bool
	dcsmData    bool
}
