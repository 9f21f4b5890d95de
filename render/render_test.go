package render

import (
	"strings"
	"testing"

	"github.com/contra-emu/contra"
)

// fakeView is a minimal, hand-fed TermView for exercising the renderer
// without a full Board.
type fakeView struct {
	w, h     int
	rows     [][]contra.Cell
	ids      []int64
	versions []uint64
	cx, cy   int
	visible  bool
	reverse  bool
}

func newFakeView(w, h int) *fakeView {
	v := &fakeView{w: w, h: h, visible: true}
	v.rows = make([][]contra.Cell, h)
	v.ids = make([]int64, h)
	v.versions = make([]uint64, h)
	for y := 0; y < h; y++ {
		row := make([]contra.Cell, w)
		for x := range row {
			row[x] = contra.SpaceCell(contra.Attribute{})
		}
		v.rows[y] = row
		v.ids[y] = int64(y + 1)
		v.versions[y] = 1
	}
	return v
}

func (v *fakeView) ViewWidth() int  { return v.w }
func (v *fakeView) ViewHeight() int { return v.h }
func (v *fakeView) RowIdentity(y int) (int64, uint64) {
	return v.ids[y], v.versions[y]
}
func (v *fakeView) GetCellsInPresentation(y int) []contra.Cell { return v.rows[y] }
func (v *fakeView) CursorPos() (int, int)                     { return v.cx, v.cy }
func (v *fakeView) CursorVisible() bool                        { return v.visible }
func (v *fakeView) ReverseVideo() bool                         { return v.reverse }
func (v *fakeView) DefaultColors() (contra.ColorSpec, contra.ColorSpec) {
	return contra.ColorSpec{}, contra.ColorSpec{}
}

func (v *fakeView) setText(y int, s string) {
	for x, r := range s {
		v.rows[y][x] = contra.Cell{Char: contra.NewCharacter(r), Width: 1}
	}
	v.versions[y]++
}

func TestRendererDiffRowWritesChangedText(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out)
	v := newFakeView(10, 2)

	r.Update(v)
	out.Reset()

	v.setText(0, "hi")
	r.Update(v)

	if !strings.Contains(out.String(), "hi") {
		t.Errorf("expected output to contain the changed text, got %q", out.String())
	}
}

func TestRendererSkipsUnchangedRows(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out)
	v := newFakeView(10, 2)
	v.setText(0, "hi")
	r.Update(v)
	out.Reset()

	// Nothing changed: no row content should be rewritten, only (at most)
	// a cursor-position sync.
	r.Update(v)
	if strings.ContainsAny(out.String(), "hi") {
		t.Errorf("expected no content re-emitted for unchanged rows, got %q", out.String())
	}
}

func TestRendererScrollTraceEmitsDL(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out)
	v := newFakeView(5, 3)
	v.setText(0, "a")
	v.setText(1, "b")
	v.setText(2, "c")
	r.Update(v)
	out.Reset()

	// Simulate a one-line scroll: row0 recycled, old row1->row0, old
	// row2->row1, new blank row2. Stable ids carry over except the
	// recycled slot, which gets a fresh id (mirrors contra.Board.Rotate).
	v.ids[0], v.versions[0] = v.ids[1], v.versions[1]
	v.rows[0] = v.rows[1]
	v.ids[1], v.versions[1] = v.ids[2], v.versions[2]
	v.rows[1] = v.rows[2]
	v.ids[2] = 99
	v.versions[2] = 1
	v.rows[2] = make([]contra.Cell, 5)
	for x := range v.rows[2] {
		v.rows[2][x] = contra.SpaceCell(contra.Attribute{})
	}

	r.Update(v)
	if !strings.Contains(out.String(), "M") {
		t.Errorf("expected a DL (M) sequence for the uniform upward shift, got %q", out.String())
	}
}

func TestRendererSGRMinimization(t *testing.T) {
	var out strings.Builder
	r := NewRenderer(&out)
	v := newFakeView(10, 1)
	r.Update(v)
	out.Reset()

	bold := contra.Attribute{AFlags: contra.AFBold}
	v.rows[0][0] = contra.Cell{Char: contra.NewCharacter('x'), Width: 1, Attr: bold}
	v.versions[0]++
	r.Update(v)

	if !strings.Contains(out.String(), "\x1b[1m") {
		t.Errorf("expected bold SGR code 1 in output, got %q", out.String())
	}
}
