package contra

// This file adapts Board to the render package's TermView capability
// interface (spec.md §4.5), exposing only what a renderer needs as
// methods so Board's own field names stay literal everywhere else.

// ViewWidth returns the board's column count.
func (b *Board) ViewWidth() int { return b.Width }

// ViewHeight returns the board's row count.
func (b *Board) ViewHeight() int { return b.Height }

// RowIdentity returns row y's (id, version) pair, used by the renderer's
// change-detection and scroll-trace passes without marking the row used.
func (b *Board) RowIdentity(y int) (int64, uint64) {
	l := b.PeekRow(y)
	return l.ID, l.Version
}

// CursorPos returns the cursor's data-order column and row.
func (b *Board) CursorPos() (x, y int) {
	return b.Cursor.X, b.Cursor.Y
}

// CursorVisible reports DECTCEM.
func (b *Board) CursorVisible() bool {
	return b.State.DECTCEM
}

// ReverseVideo reports DECSCNM.
func (b *Board) ReverseVideo() bool {
	return b.State.DECSCNM
}

// DefaultColors returns the ground default foreground/background used to
// resolve default-attributed cells (spec.md §4.5 step 3).
func (b *Board) DefaultColors() (fg, bg ColorSpec) {
	return b.DefaultFg, b.DefaultBg
}
