package contra

import "github.com/unilibs/uniwidth"

// CharWidth is the c2w contract of spec.md §1/§9: it maps a code point to
// its presentation width in cells. 0 means zero-width (combining marks,
// most C0/C1 controls); 1 and 2 are the ordinary narrow/wide cases.
//
// A negative result would indicate a corrupt width table and is fatal per
// spec.md §7 ("negative widths from c2w for a graphic are fatal"); the
// backing library never returns negative values for code points in the
// Unicode range, so callers that see one should treat it as a programming
// error rather than a recoverable condition.
func CharWidth(r rune) int {
	if r < 0x20 {
		return 0
	}
	return uniwidth.RuneWidth(r)
}
