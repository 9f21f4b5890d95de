package contra

// This file implements cursor motion, the graphic-character insertion
// algorithm, and DECSC/DECRC/SLH/SLL, per spec.md §4.2 "CR goes to
// line_home..." and §4.3 "Insertion of graphic character u" /
// "Coordinate adjustment on vertical motion".

// dir returns +1 normally, -1 under SIMD (reverse implicit movement).
func (t *Term) dir() int {
	if t.Board.State.SIMD {
		return -1
	}
	return 1
}

// lineHomeLimit returns (slh, sll) for row y, swapped under SIMD per
// spec.md §4.3 step 2.
func (t *Term) lineHomeLimit(y int) (slh, sll int) {
	l := t.Board.PeekRow(y)
	home, limit := l.Home, l.Limit
	if limit == 0 {
		limit = t.Board.Width
	}
	if t.Board.State.SIMD {
		return limit, home
	}
	return home, limit
}

// setLineHome implements SLH (CSI Pn SP U): col1 is the 1-based column,
// defaulting to 1 when omitted.
func (t *Term) setLineHome(col1 int) {
	if col1 < 1 {
		col1 = 1
	}
	l := t.Board.Row(t.Board.Cursor.Y)
	l.Home = col1 - 1
	l.touch()
}

// setLineLimit implements SLL (CSI Pn SP V).
func (t *Term) setLineLimit(col1 int) {
	if col1 < 1 {
		col1 = 1
	}
	l := t.Board.Row(t.Board.Cursor.Y)
	l.Limit = col1 - 1
	l.touch()
}

// startGuardedArea implements SPA (ESC V): cells written from here on
// carry AFGuarded until endGuardedArea, protecting them from ECH/EL
// (spec.md GLOSSARY "SPA/EPA").
func (t *Term) startGuardedArea() {
	t.insertMarker(MarkerSPA)
	t.Board.Cursor.Attr.AFlags |= AFGuarded
}

// endGuardedArea implements EPA (ESC W).
func (t *Term) endGuardedArea() {
	t.insertMarker(MarkerEPA)
	t.Board.Cursor.Attr.AFlags &^= AFGuarded
}

// insertGraphic implements spec.md §4.3 "Insertion of graphic character u".
func (t *Term) insertGraphic(u rune) {
	w := CharWidth(u)
	if w < 0 {
		panic("contra: negative character width (corrupt width table)")
	}
	if w == 0 {
		t.insertMarker(u)
		return
	}
	d := t.dir()
	c := &t.Board.Cursor
	_, sll := t.lineHomeLimit(c.Y)

	if d > 0 && c.X+w > sll {
		t.nextLine()
	} else if d < 0 && c.X-w < 0 {
		t.nextLine()
	}

	cell := Cell{Char: NewCharacter(u), Attr: c.Attr, Width: w}
	cells := []Cell{cell}
	if w == 2 {
		cells = append(cells, Cell{Char: Character(0).With(CharWideExtension), Attr: c.Attr, Width: 0})
	}
	anchor := c.X
	if d < 0 {
		anchor = c.X - w + 1
	}
	t.Board.Row(c.Y).WriteCells(anchor, cells, d)

	c.X += d * w
	_, sll = t.lineHomeLimit(c.Y)
	atXenlSlot := t.Board.State.Xenl && ((d > 0 && c.X == sll) || (d < 0 && c.X == -1))
	if !atXenlSlot {
		if d > 0 && c.X >= sll {
			t.nextLine()
		} else if d < 0 && c.X < 0 {
			t.nextLine()
		}
	}
}

// insertMarker inserts a zero-width marker cell (SDS/SRS/SPA/EPA or a
// bidi control) at the cursor without advancing it.
func (t *Term) insertMarker(u rune) {
	c := &t.Board.Cursor
	cell := Cell{Char: NewCharacter(u).With(CharMarker), Width: 0}
	t.Board.Row(c.Y).WriteCells(c.X, []Cell{cell}, t.dir())
}

func (t *Term) backspace() {
	c := &t.Board.Cursor
	d := t.dir()
	if d > 0 {
		if c.X > 0 {
			c.X--
		}
	} else {
		_, sll := t.lineHomeLimit(c.Y)
		if c.X < sll || (t.Board.State.Xenl && c.X <= sll) {
			c.X++
		}
	}
	c.PendingWrap = false
}

func (t *Term) tab() {
	c := &t.Board.Cursor
	next := t.Board.State.NextTabStop(c.X)
	attr := c.Attr
	row := t.Board.Row(c.Y)
	for x := c.X; x < next; x++ {
		row.WriteCells(x, []Cell{SpaceCell(attr)}, 1)
	}
	c.X = next
}

func (t *Term) setTabStop() {
	c := t.Board.Cursor
	if c.X >= 0 && c.X < len(t.Board.State.TabStops) {
		t.Board.State.TabStops[c.X] = true
	}
}

func (t *Term) carriageReturn() {
	c := &t.Board.Cursor
	slh, sll := t.lineHomeLimit(c.Y)
	if t.Board.State.SIMD {
		c.X = sll
	} else {
		c.X = slh
	}
	c.PendingWrap = false
}

// lineFeedLike handles LF/VT/FF per spec.md §4.3.
func (t *Term) lineFeedLike(c rune) {
	switch c {
	case 0x0A: // LF
		t.index(1)
		if t.Board.State.LNM {
			t.carriageReturn()
		}
	case 0x0B: // VT
		if !t.Board.State.VTAppendingNewline {
			return
		}
		t.index(1)
		if t.Board.State.VTAffectedByLNM && t.Board.State.LNM {
			t.carriageReturn()
		}
	case 0x0C: // FF
		if t.Board.State.FFClearingScreen {
			for y := 0; y < t.Board.Height; y++ {
				t.Board.clearLine(y)
			}
			t.Board.Cursor.X, t.Board.Cursor.Y = 0, t.Board.State.PageHome
			return
		}
		t.index(1)
		if t.Board.State.LNM {
			t.carriageReturn()
		}
	}
}

func (t *Term) nextLine() {
	t.index(1)
	t.carriageReturn()
}

// index moves the cursor vertically by dy (+1 IND, -1 RI), scrolling the
// scroll region when it would leave [page_home,page_limit), and
// adjusting the cursor's data column across the bidi coordinate map if
// DCSM=PRESENTATION (spec.md §4.3 "Coordinate adjustment on vertical
// motion").
func (t *Term) index(dy int) {
	b := t.Board
	c := &b.Cursor

	var presX int
	if b.State.DCSMPresentation {
		presX = b.ToPresentationPosition(c.Y, c.X)
	}

	top, bottom := b.State.PageHome, b.State.PageLimit
	if bottom == 0 {
		bottom = b.Height
	}
	newY := c.Y + dy
	if newY < top {
		b.RotateRegion(top, bottom, -1)
		newY = top
	} else if newY >= bottom {
		b.RotateRegion(top, bottom, 1)
		newY = bottom - 1
	}
	c.Y = newY
	c.PendingWrap = false

	if b.State.DCSMPresentation {
		c.X = b.ToDataPosition(c.Y, presX)
	}
}

// saveCursor implements DECSC (SPEC_FULL.md supplemented feature #2).
func (t *Term) saveCursor() {
	c := t.Board.Cursor
	t.Board.saved = savedCursor{
		valid:       true,
		x:           c.X,
		y:           c.Y,
		pendingWrap: c.PendingWrap,
		attr:        c.Attr,
		simd:        t.Board.State.SIMD,
		dcsmData:    !t.Board.State.DCSMPresentation,
	}
}

// restoreCursor implements DECRC.
func (t *Term) restoreCursor() {
	s := t.Board.saved
	if !s.valid {
		t.Board.Cursor.Reset()
		return
	}
	t.Board.Cursor.X = s.x
	t.Board.Cursor.Y = s.y
	t.Board.Cursor.PendingWrap = s.pendingWrap
	t.Board.Cursor.Attr = s.attr
	t.Board.State.SIMD = s.simd
	t.Board.State.DCSMPresentation = !s.dcsmData
}
