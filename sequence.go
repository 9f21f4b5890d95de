package contra

// SequenceType classifies a decoded sequence per spec.md §3/§4.1.
type SequenceType int

const (
	SeqCSI   SequenceType = iota // Control Sequence Introducer
	SeqESC                       // plain ESC sequence (ESC F)
	SeqDCS                       // Device Control String
	SeqOSC                       // Operating System Command
	SeqSOS                       // Start of String
	SeqPM                        // Privacy Message
	SeqAPC                       // Application Program Command
	SeqTITLE                     // ESC k ... ST (GNU Screen title-definition string)
)

func (t SequenceType) String() string {
	switch t {
	case SeqCSI:
		return "CSI"
	case SeqESC:
		return "ESC"
	case SeqDCS:
		return "DCS"
	case SeqOSC:
		return "OSC"
	case SeqSOS:
		return "SOS"
	case SeqPM:
		return "PM"
	case SeqAPC:
		return "APC"
	case SeqTITLE:
		return "TITLE"
	default:
		return "?"
	}
}

// Sequence is an immutable value carrying one decoded sequence: its type,
// the parameter and intermediate code points collected before the final
// byte, and the final byte itself. The decoder keeps one Sequence buffer
// and resets it when the next sequence begins (spec.md §4.1): there is no
// aliasing between successive events.
type Sequence struct {
	Type    SequenceType
	Params  []rune // parameter code points (CSI: 0x30-0x3F region; string types: whole payload)
	Inter   []rune // intermediate code points (CSI/ESC: 0x20-0x2F region)
	Final   rune   // final byte / dispatching character
	Private byte   // CSI private marker (0x3C-0x3F), 0 if none
}

func (s *Sequence) reset(t SequenceType) {
	s.Type = t
	s.Params = s.Params[:0]
	s.Inter = s.Inter[:0]
	s.Final = 0
	s.Private = 0
}

// ParamString returns the parameter code points as a string, e.g. for CSI
// "38;5;196" or for an OSC payload.
func (s *Sequence) ParamString() string {
	return string(s.Params)
}

// CSIParams splits the CSI parameter string on ';' and parses each field
// as an integer, honoring ':' sub-parameters within one field (spec.md
// §4.1: "':' is a sub-parameter separator permitted inside one
// parameter"). Each returned entry's first element is the parameter value
// (defaulting to -1, i.e. "omitted", when blank); remaining elements are
// its sub-parameters.
func (s *Sequence) CSIParams() [][]int {
	if len(s.Params) == 0 {
		return nil
	}
	var out [][]int
	var cur []int
	var digits []rune
	flush := func() {
		cur = append(cur, parseIntOrDefault(digits, -1))
		digits = digits[:0]
	}
	for _, r := range s.Params {
		switch r {
		case ';':
			flush()
			out = append(out, cur)
			cur = nil
		case ':':
			flush()
		default:
			if r >= '0' && r <= '9' {
				digits = append(digits, r)
			}
		}
	}
	flush()
	out = append(out, cur)
	return out
}

func parseIntOrDefault(digits []rune, def int) int {
	if len(digits) == 0 {
		return def
	}
	n := 0
	for _, d := range digits {
		n = n*10 + int(d-'0')
	}
	return n
}

// Param returns the i-th top-level CSI parameter's base value, or def if
// absent/omitted. Missing parameters default to 0 per spec.md §8; callers
// that need the movement-operator default of 1 should pass def=1 and then
// treat a returned 0 as 1 themselves (spec.md: "Pn=0 for movement defaults
// to 1").
func (s *Sequence) Param(i, def int) int {
	params := s.CSIParams()
	if i < 0 || i >= len(params) || len(params[i]) == 0 {
		return def
	}
	v := params[i][0]
	if v < 0 {
		return def
	}
	return v
}
