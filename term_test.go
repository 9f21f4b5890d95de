package contra

import "testing"

func rowText(b *Board, y int) string {
	l := b.PeekRow(y)
	out := make([]rune, 0, l.ColumnCount())
	for _, c := range l.Cells {
		if c.IsWideExtension() || c.Char.Has(CharMarker) || c.Char.Has(CharClusterExtension) {
			continue
		}
		out = append(out, c.Char.Rune())
	}
	return string(out)
}

func newTestTerm(w, h int) (*Board, *SequenceDecoder) {
	board := NewBoard(w, h)
	term := NewTerm(board)
	dec := NewSequenceDecoder(DefaultDecoderConfig(), term)
	return board, dec
}

// TestScenarioHelloWideCharWrap exercises the xenl deferred-wrap path: a
// wide glyph arriving right after the last column fills exactly forces a
// wrap to the next row before it is written (spec.md §4.3 "Insertion of
// graphic character u").
func TestScenarioHelloWideCharWrap(t *testing.T) {
	board, dec := newTestTerm(5, 3)
	dec.ProcessString([]rune("hello日"))

	if got := rowText(board, 0); got != "hello" {
		t.Errorf("row0 = %q, want %q", got, "hello")
	}
	if got := rowText(board, 1); got != "日" {
		t.Errorf("row1 = %q, want %q", got, "日")
	}
	if board.Cursor.Y != 1 || board.Cursor.X != 2 {
		t.Errorf("cursor = (%d,%d), want (2,1)", board.Cursor.X, board.Cursor.Y)
	}
}

func TestScenarioSGRExtendedColor(t *testing.T) {
	board, dec := newTestTerm(10, 1)
	dec.ProcessString([]rune("\x1b[38:5:196;4mABCDE"))

	row := board.PeekRow(0)
	a := row.Cells[0].Attr
	if a.Fg.Space != ColorIndexed || a.Fg.Index != 196 {
		t.Errorf("fg = %+v, want indexed 196", a.Fg)
	}
	if a.AFlags&AFUnderline == 0 {
		t.Errorf("expected underline set, got AFlags=%x", a.AFlags)
	}
	if got := rowText(board, 0); got != "ABCDE" {
		t.Errorf("row0 = %q, want %q", got, "ABCDE")
	}
}

func TestScenarioDCH(t *testing.T) {
	board, dec := newTestTerm(10, 1)
	dec.ProcessString([]rune("\x1b[H0123456789\x1b[1;3H\x1b[3P"))

	// DCH at column 3 (1-based) deletes "234" and shifts "56789" left;
	// DeleteCells shortens the line rather than padding the vacated
	// columns, so the stored row is simply "0156789".
	want := "0156789"
	if got := rowText(board, 0); got != want {
		t.Errorf("row0 = %q, want %q", got, want)
	}
}

func TestScenarioCursorPositioning(t *testing.T) {
	board, dec := newTestTerm(10, 5)
	dec.ProcessString([]rune("\x1b[3;5H"))
	if board.Cursor.X != 4 || board.Cursor.Y != 2 {
		t.Errorf("cursor = (%d,%d), want (4,2) for CUP row3 col5 (1-based)", board.Cursor.X, board.Cursor.Y)
	}
}

func TestScenarioSGRReset(t *testing.T) {
	board, dec := newTestTerm(10, 1)
	dec.ProcessString([]rune("\x1b[1;31mX\x1b[0mY"))

	row := board.PeekRow(0)
	if row.Cells[0].Attr.AFlags&AFBold == 0 {
		t.Errorf("expected bold on first cell")
	}
	if !row.Cells[1].Attr.IsDefault() {
		t.Errorf("expected default attribute after SGR reset, got %+v", row.Cells[1].Attr)
	}
}

// TestScenarioDCSMMode exercises SM/RM mode 9 (spec.md §4.2 DCSM): SM
// selects DATA order, RM selects PRESENTATION order, per the original
// implementation's "\x1b[9h" -> DCSM(DATA) / "\x1b[9l" -> DCSM(PRESENTATION).
func TestScenarioDCSMMode(t *testing.T) {
	board, dec := newTestTerm(10, 1)
	if board.State.DCSMPresentation {
		t.Fatalf("DCSM should default to DATA order")
	}
	dec.ProcessString([]rune("\x1b[9l"))
	if !board.State.DCSMPresentation {
		t.Errorf("CSI 9 l should select PRESENTATION order")
	}
	dec.ProcessString([]rune("\x1b[9h"))
	if board.State.DCSMPresentation {
		t.Errorf("CSI 9 h should select DATA order")
	}
}

// TestScenarioSDSRTLPresentationOrder reproduces spec.md §8 scenario 3:
// SDS(2) opens an RTL string over "cdef"; SDS(1) closes it and opens an
// LTR string over "gh" (a fresh SDS/SRS supersedes the open string rather
// than nesting inside it); Ps=0 closes that, and "ij" continues at the top
// level in data order.
func TestScenarioSDSRTLPresentationOrder(t *testing.T) {
	board, dec := newTestTerm(10, 1)
	dec.ProcessString([]rune("ab\x1b[2]cdef\x1b[1]gh\x1b[0]ij"))

	if got := rowText(board, 0); got != "abcdefghij" {
		t.Errorf("data order = %q, want %q", got, "abcdefghij")
	}

	pres := board.GetCellsInPresentation(0)
	out := make([]rune, len(pres))
	for i, c := range pres {
		out[i] = c.Char.Rune()
	}
	if got := string(out); got != "abfedcghij" {
		t.Errorf("presentation order = %q, want %q", got, "abfedcghij")
	}
	if got := board.ToDataPosition(0, 2); got != 5 {
		t.Errorf("to_data_position(0,2) = %d, want 5", got)
	}
}

// TestScenarioSPAEPAGuardsCells exercises SPA/EPA (ESC V / ESC W): cells
// written between them carry AFGuarded and are skipped by a later ECH,
// while cells outside the guarded span are erased normally.
func TestScenarioSPAEPAGuardsCells(t *testing.T) {
	board, dec := newTestTerm(10, 1)
	dec.ProcessString([]rune("AB\x1bVCD\x1bWEF"))

	row := board.PeekRow(0)
	guarded := func(x int) bool {
		idx, ok := row.columnCellIndex(x)
		return ok && row.Cells[idx].Attr.AFlags&AFGuarded != 0
	}
	if guarded(1) {
		t.Errorf("B (before SPA) should not be guarded")
	}
	if !guarded(2) || !guarded(3) {
		t.Errorf("C,D (inside SPA..EPA) should be guarded")
	}
	if guarded(4) {
		t.Errorf("E (after EPA) should not be guarded")
	}

	// ECH at column 3 (1-based), 3 cells: covers guarded C,D and
	// unguarded E; only E should be erased.
	dec.ProcessString([]rune("\x1b[1;3H\x1b[3X"))
	if got := rowText(board, 0); got != "ABCD F" {
		t.Errorf("row0 after guarded ECH = %q, want %q", got, "ABCD F")
	}
}

// TestScenarioSLHSLL exercises SLH/SLL (CSI Pn SP U / CSI Pn SP V), the
// real ECMA-48 wire form (a space intermediate byte, distinct from the
// plain-ESC SPA/EPA pair).
func TestScenarioSLHSLL(t *testing.T) {
	board, dec := newTestTerm(10, 1)
	dec.ProcessString([]rune("\x1b[3 U\x1b[8 V"))

	row := board.PeekRow(0)
	if row.Home != 2 {
		t.Errorf("Home = %d, want 2", row.Home)
	}
	if row.Limit != 7 {
		t.Errorf("Limit = %d, want 7", row.Limit)
	}
}

// TestScenarioXenlECHClampsToLastColumn exercises DECSET/DECRST 9203: at
// the xenl pending-wrap slot (one column past the last real column), ECH
// acts on the last real column when xenl-ECH is enabled (the default),
// and otherwise just extends the line with a blank past the edge.
func TestScenarioXenlECHClampsToLastColumn(t *testing.T) {
	board, dec := newTestTerm(5, 1)
	dec.ProcessString([]rune("hello"))
	if board.Cursor.X != 5 || board.Cursor.Y != 0 {
		t.Fatalf("cursor = (%d,%d), want (5,0) xenl pending-wrap slot", board.Cursor.X, board.Cursor.Y)
	}
	dec.ProcessString([]rune("\x1b[1X"))
	if got := rowText(board, 0); got != "hell " {
		t.Errorf("row0 (xenl-ECH on) = %q, want %q", got, "hell ")
	}

	board2, dec2 := newTestTerm(5, 1)
	dec2.ProcessString([]rune("hello\x1b[?9203l\x1b[1X"))
	if got := rowText(board2, 0); got != "hello " {
		t.Errorf("row0 (xenl-ECH off) = %q, want %q", got, "hello ")
	}
}

// TestScenarioHomeILMovesCursorColumn exercises DECSET/DECRST 9204:
// IL/DL home the cursor's column to 0 when home-IL is enabled.
func TestScenarioHomeILMovesCursorColumn(t *testing.T) {
	board, dec := newTestTerm(10, 3)
	dec.ProcessString([]rune("\x1b[?9204h\x1b[2;5H\x1b[L"))
	if board.Cursor.X != 0 {
		t.Errorf("home-IL: cursor X = %d, want 0 after IL", board.Cursor.X)
	}

	board2, dec2 := newTestTerm(10, 3)
	dec2.ProcessString([]rune("\x1b[2;5H\x1b[L"))
	if board2.Cursor.X != 4 {
		t.Errorf("without home-IL: cursor X = %d, want 4 (unchanged) after IL", board2.Cursor.X)
	}
}
