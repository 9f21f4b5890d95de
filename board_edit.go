package contra

// This file implements the per-line cell-editing operators of spec.md
// §4.2 ("Cell write with wide-character integrity") and the ECH/ICH/DCH
// operators of §4.3, all expressed directly against Line.Cells in data
// (array) order. Zero-width marker/cluster-extension cells are never
// touched by these operators except where explicitly noted; since they
// carry no column of their own, leaving them at their current array
// index is exactly "stays attached to whichever side it was on".

// fixWideBoundary ensures data column x does not sit in the middle of a
// wide-body/wide-extension pair; if it does, the pair is split into two
// single-width space cells carrying the original attribute (spec.md
// §4.2 step 1).
func (l *Line) fixWideBoundary(x int) {
	ci := l.columnIndex()
	if x <= 0 || x >= len(ci) {
		return
	}
	idx := ci[x]
	if idx <= 0 || idx >= len(l.Cells) {
		return
	}
	if !l.Cells[idx].IsWideExtension() {
		return
	}
	body := idx - 1
	attr := l.Cells[body].Attr
	l.Cells[body] = SpaceCell(attr)
	l.Cells[idx] = SpaceCell(attr)
}

// extendTo pads the line with NUL, width-1, default-attribute cells
// until it has at least n data columns (spec.md §4.2 step 2).
func (l *Line) extendTo(n int) {
	for l.ColumnCount() < n {
		l.Cells = append(l.Cells, NULCell())
	}
}

// cellIndexForColumn returns the array index at which column x's content
// begins, treating x == ColumnCount() as "append at end".
func (l *Line) cellIndexForColumn(x int) int {
	ci := l.columnIndex()
	if x < len(ci) {
		return ci[x]
	}
	return len(l.Cells)
}

// WriteCells implements write_cells(x, cells, count, dir): it writes the
// given cells (whose combined width is W) at data column x, anchored on
// the left if dir>=0 or on the right if dir<0, fixing any wide-pair
// straddle at either edge and extending the line as needed.
func (l *Line) WriteCells(x int, cells []Cell, dir int) {
	w := 0
	for _, c := range cells {
		w += c.Width
	}
	left := x
	if dir < 0 {
		left = x - w + 1
	}
	if left < 0 {
		left = 0
	}
	l.fixWideBoundary(left)
	l.fixWideBoundary(left + w)
	l.extendTo(left + w)
	l.fixWideBoundary(left) // extension may have shifted the column map
	l.fixWideBoundary(left + w)

	start := l.cellIndexForColumn(left)
	end := l.cellIndexForColumn(left + w)
	out := make([]Cell, 0, len(l.Cells)-(end-start)+len(cells))
	out = append(out, l.Cells[:start]...)
	out = append(out, cells...)
	out = append(out, l.Cells[end:]...)
	l.Cells = out
	l.touch()
}

// InsertBlank implements ICH: insert n single-width blank cells at data
// column x, shifting existing content at and after x to the right. The
// line grows by n columns: nothing is dropped, even content shifted past
// the board width.
func (l *Line) InsertBlank(x, n int, attr Attribute) {
	if n <= 0 {
		return
	}
	l.fixWideBoundary(x)
	idx := l.cellIndexForColumn(x)
	blanks := make([]Cell, n)
	for i := range blanks {
		blanks[i] = SpaceCell(attr)
	}
	out := make([]Cell, 0, len(l.Cells)+n)
	out = append(out, l.Cells[:idx]...)
	out = append(out, blanks...)
	out = append(out, l.Cells[idx:]...)
	l.Cells = out
	l.touch()
}

// DeleteCells implements DCH: delete n data columns starting at x,
// shifting content after them left; the line is left shorter (callers
// that need to keep a fixed width re-pad with ECH at the vacated tail).
func (l *Line) DeleteCells(x, n int) {
	if n <= 0 {
		return
	}
	l.fixWideBoundary(x)
	total := l.ColumnCount()
	if x+n > total {
		n = total - x
	}
	if n <= 0 {
		return
	}
	l.fixWideBoundary(x + n)
	start := l.cellIndexForColumn(x)
	end := l.cellIndexForColumn(x + n)
	out := make([]Cell, 0, len(l.Cells)-(end-start))
	out = append(out, l.Cells[:start]...)
	out = append(out, l.Cells[end:]...)
	l.Cells = out
	l.touch()
}

// EraseChars implements ECH: replace n data columns starting at x with
// blanks carrying attr, in place (no shifting). Columns past the
// current line length are appended to the stored line as blanks.
// Cells inside an SPA...EPA guarded area are left untouched
// (SPEC_FULL.md supplemented feature #1).
func (l *Line) EraseChars(x, n int, attr Attribute) {
	if n <= 0 {
		return
	}
	l.fixWideBoundary(x)
	total := l.ColumnCount()
	clip := n
	if x+clip > total {
		clip = total - x
		if clip < 0 {
			clip = 0
		}
	}
	if clip > 0 {
		l.fixWideBoundary(x + clip)
		start := l.cellIndexForColumn(x)
		end := l.cellIndexForColumn(x + clip)
		for i := start; i < end; i++ {
			if l.Cells[i].Attr.AFlags&AFGuarded != 0 || l.Cells[i].IsZeroWidthMark() {
				continue
			}
			l.Cells[i] = SpaceCell(attr)
		}
	}
	if n > clip {
		l.extendTo(x + n)
		start := l.cellIndexForColumn(x + clip)
		end := l.cellIndexForColumn(x + n)
		for i := start; i < end; i++ {
			l.Cells[i] = SpaceCell(attr)
		}
	}
	l.touch()
}

// NextTabStop returns the next set tab stop strictly after x, clipped to
// width-1 if none remain (spec.md §4.2 "Tab stops").
func (t *TState) NextTabStop(x int) int {
	width := len(t.TabStops)
	for i := x + 1; i < width; i++ {
		if t.TabStops[i] {
			return i
		}
	}
	if width == 0 {
		return x
	}
	return width - 1
}

// --- Board-level wrappers dispatching to the addressed row ---

// WriteCells writes cells at data column x on row y.
func (b *Board) WriteCells(y, x int, cells []Cell, dir int) {
	b.Row(y).WriteCells(x, cells, dir)
}

// InsertBlank performs ICH on row y.
func (b *Board) InsertBlank(y, x, n int, attr Attribute) {
	b.Row(y).InsertBlank(x, n, attr)
}

// DeleteCells performs DCH on row y.
func (b *Board) DeleteCells(y, x, n int) {
	b.Row(y).DeleteCells(x, n)
}

// EraseChars performs ECH on row y.
func (b *Board) EraseChars(y, x, n int, attr Attribute) {
	b.Row(y).EraseChars(x, n, attr)
}
