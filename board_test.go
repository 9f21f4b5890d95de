package contra

import "testing"

func TestBoardRotatePreservesLineIdentity(t *testing.T) {
	b := NewBoard(5, 3)
	ids := make([]int64, 3)
	for y := 0; y < 3; y++ {
		l := b.Row(y)
		ids[y] = l.ID
	}

	b.Rotate(1)

	// After scrolling up by one, what was row 1 is now row 0, etc.; the
	// bottom row is recycled and gets a fresh id on next use.
	if got := b.PeekRow(0).ID; got != ids[1] {
		t.Errorf("row 0 id = %d, want %d (old row 1)", got, ids[1])
	}
	if got := b.PeekRow(1).ID; got != ids[2] {
		t.Errorf("row 1 id = %d, want %d (old row 2)", got, ids[2])
	}
	newBottom := b.Row(2)
	if newBottom.ID == ids[0] {
		t.Errorf("recycled bottom row kept the old id %d", ids[0])
	}
}

func TestBoardResizePreservesTopLeftContent(t *testing.T) {
	b := NewBoard(5, 3)
	b.Row(0).Cells = []Cell{{Char: NewCharacter('X'), Width: 1}}
	b.Resize(10, 5)
	if b.Width != 10 || b.Height != 5 {
		t.Fatalf("Resize did not apply: %dx%d", b.Width, b.Height)
	}
	if got := b.PeekRow(0).Cells[0].Char.Rune(); got != 'X' {
		t.Errorf("content lost on resize: row0 cell0 = %q", got)
	}
}

// TestPresentationDataRoundTripLTR checks spec.md invariants 3/4: on a
// plain (non-directed-string) line, ToPresentationPosition and
// ToDataPosition are mutual inverses for every in-bounds column.
func TestPresentationDataRoundTripLTR(t *testing.T) {
	l := NewLine()
	for _, r := range "hello" {
		l.Cells = append(l.Cells, Cell{Char: NewCharacter(r), Width: 1})
	}
	for x := 0; x < l.ColumnCount(); x++ {
		p := l.ToPresentationPosition(x)
		back := l.ToDataPosition(p)
		if back != x {
			t.Errorf("round trip failed at x=%d: pres=%d back=%d", x, p, back)
		}
	}
}

func TestWriteCellsOnBoard(t *testing.T) {
	b := NewBoard(5, 1)
	cells := []Cell{
		{Char: NewCharacter('h'), Width: 1},
		{Char: NewCharacter('i'), Width: 1},
	}
	b.WriteCells(0, 0, cells, 1)
	row := b.PeekRow(0)
	if row.Cells[0].Char.Rune() != 'h' || row.Cells[1].Char.Rune() != 'i' {
		t.Fatalf("got %+v", row.Cells)
	}
}
