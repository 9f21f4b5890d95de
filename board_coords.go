package contra

// ToDataPosition converts a presentation column on row y to a data
// column, delegating to that row's directed-string mapping (spec.md
// §4.2). Mutual inverse of ToPresentationPosition on in-bounds positions
// (spec.md invariants 3-4).
func (b *Board) ToDataPosition(y, pPres int) int {
	return b.PeekRow(y).ToDataPosition(pPres)
}

// ToPresentationPosition converts a data column on row y to a
// presentation column.
func (b *Board) ToPresentationPosition(y, xData int) int {
	return b.PeekRow(y).ToPresentationPosition(xData)
}

// FindInnermostString identifies the directed string enclosing a given
// position on row y. When edgeIsRight is set, the data column just left
// of pos's data column is looked up instead, so at a span boundary the
// right edge belongs to the string ending there rather than the one
// starting. No width parameter is taken.
func (b *Board) FindInnermostString(y, pos int, edgeIsRight bool) int {
	l := b.PeekRow(y)
	x := l.ToDataPosition(pos)
	if edgeIsRight && x > 0 {
		x--
	}
	return l.FindInnermostString(x)
}

// CalculateDataRangesFromPresentationRange converts a presentation range
// on row y into data ranges, honoring DCSM: when DCSM is DATA rather than
// PRESENTATION, the range is already in data order and is returned as a
// single span unchanged.
func (b *Board) CalculateDataRangesFromPresentationRange(y, lo, hi int) [][2]int {
	if !b.State.DCSMPresentation {
		return [][2]int{{lo, hi}}
	}
	return b.PeekRow(y).CalculateDataRangesFromPresentationRange(lo, hi)
}

// GetCellsInPresentation returns row y's cells in presentation (visual)
// order, one entry per presentation column in [0,Width), filling any
// uncovered trailing columns with the line's default-attributed blank.
// This is what the differential renderer diffs against (spec.md §4.5,
// TermView.get_cells_in_presentation).
func (b *Board) GetCellsInPresentation(y int) []Cell {
	l := b.PeekRow(y)
	out := make([]Cell, b.Width)
	def := SpaceCell(Attribute{})
	for p := 0; p < b.Width; p++ {
		x := l.ToDataPosition(p)
		idx, ok := l.columnCellIndex(x)
		if !ok || idx >= len(l.Cells) {
			out[p] = def
			continue
		}
		out[p] = l.Cells[idx]
	}
	return out
}

// presentationToDataIfNeeded resolves the data column that presentation
// column x on row y maps to when DCSM=PRESENTATION, and returns x
// unchanged otherwise.
func (b *Board) presentationToDataIfNeeded(y, x int) int {
	if !b.State.DCSMPresentation {
		return x
	}
	return b.ToDataPosition(y, x)
}
