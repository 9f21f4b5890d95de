// Package render implements the differential renderer of spec.md §4.5:
// it owns a remembered copy of what was last written to an outer
// terminal and emits the minimal CSI sequence set to bring that terminal
// to match a TermView's current state.
package render

import (
	"fmt"
	"io"

	"github.com/contra-emu/contra"
)

// TermView is the read-only capability a Board exposes to the renderer
// (spec.md §4.5: "owns a screen_buffer... representing what was last
// shown"). contra.Board satisfies this via board_view.go.
type TermView interface {
	ViewWidth() int
	ViewHeight() int
	RowIdentity(y int) (id int64, version uint64)
	GetCellsInPresentation(y int) []contra.Cell
	CursorPos() (x, y int)
	CursorVisible() bool
	ReverseVideo() bool
	DefaultColors() (fg, bg contra.ColorSpec)
}

// lineBuffer is the renderer's memory of one outer-terminal row
// (spec.md §4.5 "line_buffer{id,version,content,delta}").
type lineBuffer struct {
	id      int64
	version uint64
	content []contra.Cell
}

// Renderer drives an io.Writer with the minimal sequence set needed to
// bring it to match a TermView on each Update call.
type Renderer struct {
	out io.Writer
	cap SGRCap

	width, height int
	rows          []lineBuffer

	remoteX, remoteY int
	remoteCursorSet  bool
	remoteDECTCEM    bool
	remoteReverse    bool

	attr contra.Attribute // m_attr: the outer terminal's current SGR state

	// IsTerminalBottom reports whether the outer terminal's cursor is
	// currently pinned at its own last row, letting the scroll-trace omit
	// a final IL (spec.md §4.5 step 2). Defaults to a function that
	// always returns false (conservative: never omit).
	IsTerminalBottom func() bool
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:              out,
		cap:              DefaultSGRCap(),
		IsTerminalBottom: func() bool { return false },
	}
}

// SetCapability overrides the SGR capability table (spec.md §4.5 step 4).
func (r *Renderer) SetCapability(c SGRCap) { r.cap = c }

func (r *Renderer) write(s string) {
	io.WriteString(r.out, s)
}

// Update brings the outer terminal to match view, per spec.md §4.5.
func (r *Renderer) Update(view TermView) {
	w, h := view.ViewWidth(), view.ViewHeight()
	reverse := view.ReverseVideo()
	sizeChanged := w != r.width || h != r.height
	reverseChanged := reverse != r.remoteReverse

	if sizeChanged {
		r.resizeBuffer(w, h)
	}

	r.scrollTrace(view)

	for y := 0; y < h; y++ {
		id, version := view.RowIdentity(y)
		row := &r.rows[y]
		if !sizeChanged && !reverseChanged && row.id == id && row.version == version {
			continue
		}
		r.diffRow(view, y, row)
		row.id, row.version = id, version
	}

	if reverseChanged {
		if reverse {
			r.write("\x1b[?5h")
		} else {
			r.write("\x1b[?5l")
		}
		r.remoteReverse = reverse
	}

	x, y := view.CursorPos()
	r.moveCursor(x, y)
	visible := view.CursorVisible()
	if !r.remoteCursorSet || visible != r.remoteDECTCEM {
		if visible {
			r.write("\x1b[?25h")
		} else {
			r.write("\x1b[?25l")
		}
		r.remoteDECTCEM = visible
		r.remoteCursorSet = true
	}
}

func (r *Renderer) resizeBuffer(w, h int) {
	r.width, r.height = w, h
	r.rows = make([]lineBuffer, h)
	r.remoteX, r.remoteY = -1, -1
}

// scrollTrace implements spec.md §4.5 step 2: for each remembered id,
// locate its new row and emit a minimal DL/IL set, shifting r.rows in
// place with copy so subsequent per-row diffing lines up.
func (r *Renderer) scrollTrace(view TermView) {
	h := view.ViewHeight()
	if len(r.rows) != h {
		return
	}
	newRowOf := make(map[int64]int, h)
	for y := 0; y < h; y++ {
		id, _ := view.RowIdentity(y)
		if id != 0 {
			newRowOf[id] = y
		}
	}

	// Determine the minimal shift by finding the dominant contiguous run
	// that simply moved by a constant delta (the common vertical-scroll
	// case); anything else emits no DL/IL and is left to the per-row diff.
	delta, ok := r.detectUniformShift(newRowOf, h)
	if !ok {
		return
	}
	if delta == 0 {
		return
	}
	if delta > 0 {
		r.emitDL(0, delta)
		if !r.IsTerminalBottom() {
			// Re-open the vacated rows at the bottom; a terminal pinned at
			// its last row already shows them blank, so the IL is omitted.
			r.emitIL(h-delta, delta)
		}
		copy(r.rows, r.rows[delta:])
		for y := h - delta; y < h; y++ {
			r.rows[y] = lineBuffer{}
		}
	} else {
		n := -delta
		r.emitIL(0, n)
		copy(r.rows[n:], r.rows[:h-n])
		for y := 0; y < n; y++ {
			r.rows[y] = lineBuffer{}
		}
	}
}

// detectUniformShift reports whether every row with a remembered
// nonzero id that still exists in the new frame moved by the same
// delta, which is the only shift shape the scroll-trace optimizes;
// anything else is left to the per-row diff (content will differ,
// row-by-row, which is still correct, just not minimal).
func (r *Renderer) detectUniformShift(newRowOf map[int64]int, h int) (int, bool) {
	delta := 0
	haveDelta := false
	for oldY := 0; oldY < h; oldY++ {
		if r.rows[oldY].id == 0 {
			continue
		}
		newY, ok := newRowOf[r.rows[oldY].id]
		if !ok {
			continue
		}
		d := oldY - newY
		if !haveDelta {
			delta = d
			haveDelta = true
		} else if d != delta {
			return 0, false
		}
	}
	if !haveDelta {
		return 0, false
	}
	return delta, true
}

func (r *Renderer) emitDL(y, n int) {
	r.moveCursor(0, y)
	r.write(fmt.Sprintf("\x1b[%dM", n))
}

func (r *Renderer) emitIL(y, n int) {
	r.moveCursor(0, y)
	r.write(fmt.Sprintf("\x1b[%dL", n))
}

// diffRow implements spec.md §4.5 step 3.
func (r *Renderer) diffRow(view TermView, y int, row *lineBuffer) {
	cur := view.GetCellsInPresentation(y)
	old := row.content

	prefix := 0
	for prefix < len(cur) && prefix < len(old) &&
		!cur[prefix].IsZeroWidthMark() && cellsEqual(cur[prefix], old[prefix]) {
		prefix++
	}

	suffix := 0
	for suffix < len(cur)-prefix && suffix < len(old)-prefix &&
		!cur[len(cur)-1-suffix].IsZeroWidthMark() &&
		cellsEqual(cur[len(cur)-1-suffix], old[len(old)-1-suffix]) {
		suffix++
	}

	oldMidLen := len(old) - prefix - suffix
	newMidLen := len(cur) - prefix - suffix
	if oldMidLen < 0 {
		oldMidLen = 0
	}
	if newMidLen < 0 {
		newMidLen = 0
	}

	r.moveCursor(prefix, y)
	if newMidLen != oldMidLen {
		if newMidLen > oldMidLen {
			r.write(fmt.Sprintf("\x1b[%d@", newMidLen-oldMidLen))
		} else {
			r.write(fmt.Sprintf("\x1b[%dP", oldMidLen-newMidLen))
		}
	}

	fg, bg := view.DefaultColors()
	for i := 0; i < newMidLen; i++ {
		cell := cur[prefix+i]
		if cell.IsWideExtension() {
			// Already accounted for by the preceding wide body's 2-column
			// advance; the outer terminal does not get a glyph of its own.
			continue
		}
		r.applyAttr(resolveDefaults(cell.Attr, fg, bg))
		if cell.Width == 0 {
			continue // zero-width marker: nothing to paint
		}
		r.write(string(cell.Char.Rune()))
		r.remoteX += cell.Width
	}

	// Clear to end of line if the new row is shorter than what was shown.
	if len(cur) < len(old) || (suffix == 0 && newMidLen == 0 && len(cur) < r.width) {
		tail := r.width - (prefix + newMidLen)
		if tail > 0 {
			r.write(fmt.Sprintf("\x1b[%dX", tail))
		}
	}

	row.content = append([]contra.Cell(nil), cur...)
}

func resolveDefaults(a contra.Attribute, fg, bg contra.ColorSpec) contra.Attribute {
	if a.Fg.IsDefault() {
		a.Fg = fg
	}
	if a.Bg.IsDefault() {
		a.Bg = bg
	}
	return a
}

func cellsEqual(a, b contra.Cell) bool {
	return a.Char == b.Char && a.Width == b.Width && a.Attr.Equal(b.Attr)
}

// applyAttr implements spec.md §4.5 step 4: compare new against r.attr
// and emit the minimal delta using r.cap, falling back to a full reset
// when a flag needs clearing but has no dedicated off-code.
func (r *Renderer) applyAttr(new contra.Attribute) {
	old := r.attr
	if new.IsDefault() && !old.IsDefault() {
		r.write("\x1b[m")
		r.attr = contra.Attribute{}
		return
	}
	if new.Equal(old) {
		return
	}

	removed := old.AFlags &^ new.AFlags
	if r.hasUnclearable(removed) {
		r.write("\x1b[0m")
		old = contra.Attribute{}
	}

	r.emitAFlagDeltas(old.AFlags, new.AFlags)
	r.emitColorDeltas(old, new)
	r.emitXFlagDeltas(old.XFlags, new.XFlags)

	r.attr = new
}

func (r *Renderer) hasUnclearable(removed contra.AFlags) bool {
	for _, f := range aflagTable {
		if removed&f.flag != 0 && !r.cap.HasOffCode[uint32(f.flag)] {
			return true
		}
	}
	return false
}

type aflagCode struct {
	flag       contra.AFlags
	on, off    int
}

var aflagTable = []aflagCode{
	{contra.AFBold, 1, 22},
	{contra.AFFaint, 2, 22},
	{contra.AFItalic, 3, 23},
	{contra.AFFraktur, 20, 23},
	{contra.AFUnderline, 4, 24},
	{contra.AFDoubleUnderline, 21, 24},
	{contra.AFSlowBlink, 5, 25},
	{contra.AFRapidBlink, 6, 25},
	{contra.AFInverse, 7, 27},
	{contra.AFInvisible, 8, 28},
	{contra.AFStrike, 9, 29},
}

func (r *Renderer) emitAFlagDeltas(old, new contra.AFlags) {
	for _, f := range aflagTable {
		wasSet := old&f.flag != 0
		isSet := new&f.flag != 0
		if wasSet == isSet {
			continue
		}
		if isSet {
			r.write(fmt.Sprintf("\x1b[%dm", f.on))
		} else if r.cap.HasOffCode[uint32(f.flag)] {
			r.write(fmt.Sprintf("\x1b[%dm", f.off))
		}
	}
}

type xflagCode struct {
	flag    contra.XFlags
	on, off int
}

var xflagTable = []xflagCode{
	{contra.XFFrame, 51, 54},
	{contra.XFCircle, 52, 54},
	{contra.XFOverline, 53, 55},
	{contra.XFProportional, 73, 74},
}

func (r *Renderer) emitXFlagDeltas(old, new contra.XFlags) {
	for _, f := range xflagTable {
		wasSet := old&f.flag != 0
		isSet := new&f.flag != 0
		if wasSet == isSet {
			continue
		}
		if isSet {
			r.write(fmt.Sprintf("\x1b[%dm", f.on))
		} else {
			r.write(fmt.Sprintf("\x1b[%dm", f.off))
		}
	}
}

func (r *Renderer) emitColorDeltas(old, new contra.Attribute) {
	if new.Fg != old.Fg {
		r.write(r.colorCode(new.Fg, false))
	}
	if new.Bg != old.Bg {
		r.write(r.colorCode(new.Bg, true))
	}
}

// colorCode renders a ColorSpec as the minimal SGR sequence r.cap allows.
func (r *Renderer) colorCode(c contra.ColorSpec, bg bool) string {
	base := 30
	if bg {
		base = 40
	}
	switch c.Space {
	case contra.ColorDefault, contra.ColorTransparent:
		if bg {
			return "\x1b[49m"
		}
		return "\x1b[39m"
	case contra.ColorIndexed:
		if c.Index < 8 {
			return fmt.Sprintf("\x1b[%dm", base+c.Index)
		}
		if c.Index < 16 && r.cap.AIXBright {
			brightBase := 90
			if bg {
				brightBase = 100
			}
			return fmt.Sprintf("\x1b[%dm", brightBase+c.Index-8)
		}
		if !r.cap.Indexed256 {
			rr, gg, bb := palette256RGB(c.Index)
			if r.cap.SubParamColons {
				return fmt.Sprintf("\x1b[%d:2::%d:%d:%dm", base+8, rr, gg, bb)
			}
			return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", base+8, rr, gg, bb)
		}
		if r.cap.SubParamColons {
			return fmt.Sprintf("\x1b[%d:5:%dm", base+8, c.Index)
		}
		return fmt.Sprintf("\x1b[%d;5;%dm", base+8, c.Index)
	case contra.ColorRGB:
		if !r.cap.RGB {
			return ""
		}
		if r.cap.SubParamColons {
			return fmt.Sprintf("\x1b[%d:2::%d:%d:%dm", base+8, c.V0, c.V1, c.V2)
		}
		return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", base+8, c.V0, c.V1, c.V2)
	default:
		return ""
	}
}

func (r *Renderer) moveCursor(x, y int) {
	if r.remoteX == x && r.remoteY == y {
		return
	}
	r.write(fmt.Sprintf("\x1b[%d;%dH", y+1, x+1))
	r.remoteX, r.remoteY = x, y
}
