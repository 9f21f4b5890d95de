package contra

// Marker code points used for the internal SDS/SRS/SPA/EPA controls that
// Line embeds as zero-width CharMarker cells (spec.md §3 "marker", §4.2
// "directed strings"). These sit above the valid Unicode range (which
// CharWidth never resolves to a graphic), so they never collide with a
// real code point.
const (
	MarkerSDSLTR     rune = 0x110000 + iota // SDS(1): open an LTR directed string
	MarkerSDSRTL                            // SDS(2): open an RTL directed string
	MarkerSRS                               // SRS(1): open a string reversed from the current direction
	MarkerStringEnd                         // SDS(0)/SRS(0): close the innermost directed string
	MarkerSPA                               // Start of Guarded Area
	MarkerEPA                               // End of Guarded Area
)

func markerCell(m rune) Cell {
	return Cell{Char: NewCharacter(m).With(CharMarker), Width: 0}
}

// LFlags are per-line flags, per spec.md §3 "Line".
type LFlags uint32

const (
	LineUsed LFlags = 1 << iota // is_line_used: set once the line has been written to
	LineR2L                     // physical right-to-left presentation
	LineDoubleWidth
	LineDoubleHeightTop
	LineDoubleHeightBottom
)

// Line is an ordered sequence of cells plus identity/versioning/scroll
// fields, per spec.md §3. Cells may include zero-width marker entries
// that do not contribute to the column count (invariant 2).
type Line struct {
	Cells   []Cell
	ID      int64
	Version uint64
	Flags   LFlags
	Home    int // SLH: horizontal scroll left margin (data column)
	Limit   int // SLL: horizontal scroll right margin, 0 = unset (use board width)

	dirDirty  bool
	presOrder []int // presentation-order list of data column indices
	dataOfPres []int // inverse of presOrder
}

// NewLine returns an empty, unused line.
func NewLine() *Line {
	return &Line{}
}

// touch bumps the version counter; must be called after every mutation
// (spec.md invariant 6).
func (l *Line) touch() {
	l.Version++
	l.dirDirty = true
}

// MarkUsed sets LineUsed and assigns id if this is the line's first use.
func (l *Line) markUsed(allocID func() int64) {
	if l.Flags&LineUsed == 0 {
		l.Flags |= LineUsed
		l.ID = allocID()
	}
}

// reinit clears a line's content when it is recycled by Board.rotate,
// preserving nothing but its identity slot (spec.md §4.2 "Ring rotation").
func (l *Line) reinit() {
	l.Cells = l.Cells[:0]
	l.Flags &^= LineUsed
	l.Home = 0
	l.Limit = 0
	l.Version++
	l.dirDirty = true
	l.presOrder = nil
	l.dataOfPres = nil
}

// ColumnCount returns the number of data columns currently occupied,
// i.e. the sum of cell widths (invariant 2).
func (l *Line) ColumnCount() int {
	n := 0
	for _, c := range l.Cells {
		n += c.Width
	}
	return n
}

// columnIndex returns, for each occupied data column, the index into
// l.Cells of the cell storing that column: the body cell for the first
// column of a wide glyph, and its wide_extension cell for the second.
// Zero-width marker/cluster-extension cells do not appear here.
func (l *Line) columnIndex() []int {
	out := make([]int, 0, len(l.Cells))
	i := 0
	for i < len(l.Cells) {
		c := l.Cells[i]
		switch {
		case c.Width == 2:
			out = append(out, i)
			if i+1 < len(l.Cells) && l.Cells[i+1].IsWideExtension() {
				out = append(out, i+1)
				i += 2
				continue
			}
			i++
		case c.Width == 1:
			out = append(out, i)
			i++
		default:
			// zero-width marker/cluster-extension/orphan extension: no column of its own.
			i++
		}
	}
	return out
}

// columnCellIndex returns the index into l.Cells of the cell at data
// column x, and ok=false if x is beyond the occupied prefix.
func (l *Line) columnCellIndex(x int) (idx int, ok bool) {
	ci := l.columnIndex()
	if x < 0 || x >= len(ci) {
		return len(l.Cells), false
	}
	return ci[x], true
}

// --- Directed-string (SDS/SRS) coordinate mapping, spec.md §4.2 ---

type dirNode struct {
	dir      int // +1 LTR, -1 RTL
	children []dirItem
}

type dirItem struct {
	leaf  bool
	col   int
	width int // occupied data columns for a leaf (1, or 2 for a wide glyph's pair)
	sub   *dirNode
}

func (l *Line) buildDirTree() *dirNode {
	rootDir := 1
	if l.Flags&LineR2L != 0 {
		rootDir = -1
	}
	root := &dirNode{dir: rootDir}
	stack := []*dirNode{root}
	col := 0
	closeTop := func() {
		if len(stack) > 1 {
			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, dirItem{sub: closed})
		}
	}
	for _, c := range l.Cells {
		if c.Char.Has(CharMarker) {
			switch c.Char.Rune() {
			case MarkerSDSLTR:
				closeTop()
				stack = append(stack, &dirNode{dir: 1})
			case MarkerSDSRTL:
				closeTop()
				stack = append(stack, &dirNode{dir: -1})
			case MarkerSRS:
				closeTop()
				cur := stack[len(stack)-1]
				stack = append(stack, &dirNode{dir: -cur.dir})
			case MarkerStringEnd:
				closeTop()
			default:
				// SPA/EPA and other markers do not affect direction nesting.
			}
			continue
		}
		if c.Width == 0 {
			continue
		}
		cur := stack[len(stack)-1]
		cur.children = append(cur.children, dirItem{leaf: true, col: col, width: c.Width})
		col += c.Width
	}
	// Auto-close any string left open at end of line.
	closeTop()
	return root
}

func flattenDir(n *dirNode, out []int) []int {
	items := n.children
	if n.dir < 0 {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	for _, it := range items {
		if it.leaf {
			w := it.width
			if w < 1 {
				w = 1
			}
			for k := 0; k < w; k++ {
				out = append(out, it.col+k)
			}
		} else {
			out = flattenDir(it.sub, out)
		}
	}
	return out
}

func (l *Line) ensureDirMapping() {
	if !l.dirDirty && l.presOrder != nil {
		return
	}
	root := l.buildDirTree()
	n := root
	cnt := countLeaves(n)
	order := flattenDir(n, make([]int, 0, cnt))
	inv := make([]int, len(order))
	for p, d := range order {
		inv[d] = p
	}
	l.presOrder = order
	l.dataOfPres = inv
	l.dirDirty = false
}

func countLeaves(n *dirNode) int {
	c := 0
	for _, it := range n.children {
		if it.leaf {
			w := it.width
			if w < 1 {
				w = 1
			}
			c += w
		} else {
			c += countLeaves(it.sub)
		}
	}
	return c
}

// ToDataPosition maps a presentation column to its data column (spec.md
// §4.2). p==width (one past the last column) maps to the data-side
// equivalent of "end of line".
func (l *Line) ToDataPosition(p int) int {
	l.ensureDirMapping()
	if p < 0 {
		return p
	}
	if p >= len(l.presOrder) {
		return l.ColumnCount() + (p - len(l.presOrder))
	}
	return l.presOrder[p]
}

// ToPresentationPosition maps a data column to its presentation column.
func (l *Line) ToPresentationPosition(x int) int {
	l.ensureDirMapping()
	if x < 0 {
		return x
	}
	if x >= len(l.dataOfPres) {
		return len(l.dataOfPres) + (x - len(l.dataOfPres))
	}
	return l.dataOfPres[x]
}

// FindInnermostString returns a synthetic identifier for the innermost
// directed string enclosing data column x (0 if the top-level scope).
// Two columns share an id iff they are governed by the same SDS/SRS span.
func (l *Line) FindInnermostString(x int) int {
	l.ensureDirMapping()
	root := l.buildDirTree()
	id := 0
	var walk func(n *dirNode, myID int) int
	next := 1
	walk = func(n *dirNode, myID int) int {
		for _, it := range n.children {
			if it.leaf {
				w := it.width
				if w < 1 {
					w = 1
				}
				if x >= it.col && x < it.col+w {
					id = myID
				}
			} else {
				next++
				walk(it.sub, next)
			}
		}
		return id
	}
	return walk(root, 0)
}

// CalculateDataRangesFromPresentationRange converts a presentation-order
// half-open range [lo,hi) into one or more data-order half-open ranges,
// used when ECH/ICH/DCH act under DCSM=PRESENTATION (spec.md §4.2).
// Because RTL spans reverse order locally, a contiguous presentation
// range can correspond to several disjoint data ranges.
func (l *Line) CalculateDataRangesFromPresentationRange(lo, hi int) [][2]int {
	l.ensureDirMapping()
	if lo >= hi {
		return nil
	}
	var ranges [][2]int
	start := -1
	prev := -1
	flush := func(end int) {
		if start >= 0 {
			ranges = append(ranges, [2]int{start, end})
			start = -1
		}
	}
	for p := lo; p < hi && p < len(l.presOrder); p++ {
		d := l.presOrder[p]
		if start < 0 {
			start = d
			prev = d
			continue
		}
		if d == prev+1 {
			prev = d
			continue
		}
		flush(prev + 1)
		start = d
		prev = d
	}
	flush(prev + 1)
	return ranges
}
