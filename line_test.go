package contra

import "testing"

func writeWide(l *Line, r rune) {
	l.Cells = append(l.Cells, Cell{Char: NewCharacter(r), Width: 2})
	l.Cells = append(l.Cells, wideExtensionCell(Attribute{}))
}

func TestColumnIndexWideGlyph(t *testing.T) {
	l := NewLine()
	l.Cells = append(l.Cells, SpaceCell(Attribute{}))
	writeWide(l, '日')
	l.Cells = append(l.Cells, SpaceCell(Attribute{}))

	ci := l.columnIndex()
	if len(ci) != 4 {
		t.Fatalf("columnIndex len = %d, want 4: %v", len(ci), ci)
	}
	// column 1 and 2 must both resolve into the wide glyph's two cells.
	if ci[1] != 1 || ci[2] != 2 {
		t.Errorf("columnIndex = %v, want [0 1 2 3]", ci)
	}
	if l.ColumnCount() != 4 {
		t.Errorf("ColumnCount() = %d, want 4", l.ColumnCount())
	}
}

func TestFixWideBoundarySplitsPair(t *testing.T) {
	l := NewLine()
	writeWide(l, '日')

	l.fixWideBoundary(1) // straddles the pair
	if l.Cells[0].Width != 1 || l.Cells[1].Width != 1 {
		t.Fatalf("expected pair split into two width-1 cells, got %+v", l.Cells)
	}
	if l.Cells[0].Char.Rune() != ' ' || l.Cells[1].Char.Rune() != ' ' {
		t.Errorf("expected split cells to be blanks, got %+v", l.Cells)
	}
}

func TestWriteCellsExtendsAndSplices(t *testing.T) {
	l := NewLine()
	l.WriteCells(3, []Cell{SpaceCell(Attribute{})}, 1)
	if l.ColumnCount() != 4 {
		t.Fatalf("ColumnCount() = %d, want 4 after extend+write", l.ColumnCount())
	}
}

func TestInsertAndDeleteCells(t *testing.T) {
	l := NewLine()
	for _, r := range "ABCDE" {
		l.Cells = append(l.Cells, Cell{Char: NewCharacter(r), Width: 1})
	}
	l.InsertBlank(1, 2, Attribute{})
	if l.ColumnCount() != 7 {
		t.Fatalf("ColumnCount() = %d, want 7 after ICH", l.ColumnCount())
	}
	if l.Cells[1].Char.Rune() != ' ' || l.Cells[2].Char.Rune() != ' ' {
		t.Errorf("expected two blanks at [1:3], got %+v", l.Cells[1:3])
	}
	if l.Cells[3].Char.Rune() != 'B' {
		t.Errorf("expected 'B' shifted to index 3, got %q", l.Cells[3].Char.Rune())
	}

	l2 := NewLine()
	for _, r := range "0123456789" {
		l2.Cells = append(l2.Cells, Cell{Char: NewCharacter(r), Width: 1})
	}
	l2.DeleteCells(3, 3)
	if l2.ColumnCount() != 7 {
		t.Fatalf("ColumnCount() = %d, want 7 after DCH", l2.ColumnCount())
	}
	if l2.Cells[3].Char.Rune() != '6' {
		t.Errorf("expected '6' shifted to index 3 after DCH, got %q", l2.Cells[3].Char.Rune())
	}
}

func TestEraseCharsSkipsGuarded(t *testing.T) {
	l := NewLine()
	guarded := Attribute{AFlags: AFGuarded}
	l.Cells = append(l.Cells,
		Cell{Char: NewCharacter('A'), Width: 1, Attr: guarded},
		Cell{Char: NewCharacter('B'), Width: 1},
	)
	l.EraseChars(0, 2, Attribute{})
	if l.Cells[0].Char.Rune() != 'A' {
		t.Errorf("guarded cell was erased: %+v", l.Cells[0])
	}
	if l.Cells[1].Char.Rune() != ' ' {
		t.Errorf("unguarded cell not erased: %+v", l.Cells[1])
	}
}

// TestDirectedStringRTLPreservesWidePair checks that a wide glyph inside an
// RTL (SRS) span keeps its two columns adjacent under presentation-order
// reversal instead of being torn apart.
func TestDirectedStringRTLPreservesWidePair(t *testing.T) {
	l := NewLine()
	l.Cells = append(l.Cells, Cell{Char: NewCharacter('A'), Width: 1})
	l.Cells = append(l.Cells, markerCell(MarkerSRS))
	writeWide(l, '日')
	l.Cells = append(l.Cells, Cell{Char: NewCharacter('B'), Width: 1})
	l.Cells = append(l.Cells, markerCell(MarkerStringEnd))
	l.Cells = append(l.Cells, Cell{Char: NewCharacter('C'), Width: 1})

	l.ensureDirMapping()
	// data columns: 0='A', 1-2='日' pair, 3='B', 4='C'.
	// Inside the reversed SRS span ['日','B'] becomes ['B','日'] in
	// presentation order, but the wide pair's two data columns (1,2) must
	// stay adjacent and in their original internal order.
	p1 := l.ToPresentationPosition(1)
	p2 := l.ToPresentationPosition(2)
	if p2 != p1+1 {
		t.Fatalf("wide glyph pair split apart under RTL: col1->%d col2->%d", p1, p2)
	}
}

func TestCalculateDataRangesFromPresentationRange(t *testing.T) {
	l := NewLine()
	for _, r := range "ABCDE" {
		l.Cells = append(l.Cells, Cell{Char: NewCharacter(r), Width: 1})
	}
	ranges := l.CalculateDataRangesFromPresentationRange(1, 4)
	if len(ranges) != 1 || ranges[0] != ([2]int{1, 4}) {
		t.Fatalf("got %v, want [[1 4]] for a plain LTR line", ranges)
	}
}
