package contra

// SequenceHandler is the callback contract driven by SequenceDecoder
// (spec.md §4.1, §9 "the sequence-consumer contract becomes a set of
// methods on a SequenceHandler capability"). Exactly one event fires per
// logically completed unit. Implementations must not retain the Sequence
// pointer past the call: the decoder reuses its buffer on the next event.
type SequenceHandler interface {
	InsertChar(r rune)
	ControlCharacter(c rune)
	EscapeSequence(seq *Sequence)
	ControlSequence(seq *Sequence)
	CommandString(seq *Sequence)
	CharacterString(seq *Sequence)
	InvalidSequence(seq *Sequence)
}

// DecoderConfig carries the configuration flags named in spec.md §4.1.
type DecoderConfig struct {
	Accept8BitC1                 bool // treat 0x80-0x9F as C1 introducers
	AcceptBELForOSC               bool // BEL terminates OSC specifically
	AcceptBELForAnyCommandString  bool // BEL terminates DCS/OSC/PM/APC
	AcceptBELForCharacterStrings  bool // BEL terminates SOS/TITLE
	EnableTitleStrings            bool // recognize ESC k ... ST
}

// DefaultDecoderConfig matches the permissive configuration exercised by
// the test suite in spec.md §8: 8-bit C1 accepted, BEL accepted as an OSC
// terminator (the common xterm behavior), title strings enabled.
func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{
		Accept8BitC1:       true,
		AcceptBELForOSC:    true,
		EnableTitleStrings: true,
	}
}

type decoderState int

const (
	decGround decoderState = iota
	decEscape
	decCSI
	decCmdString
	decCharString
)

// SequenceDecoder is the byte-level (code-point-level) state machine of
// spec.md §4.1. It carries no allocation across events beyond its own
// Sequence buffer, which is reset whenever a new sequence begins.
type SequenceDecoder struct {
	Config  DecoderConfig
	Handler SequenceHandler

	state      decoderState
	pendingESC bool
	seq        Sequence
	stringType SequenceType // which command/character-string kind is open

	csiSeenParamOrInter bool // whether we've left the private-marker slot
}

// NewSequenceDecoder creates a decoder driving handler with cfg.
func NewSequenceDecoder(cfg DecoderConfig, handler SequenceHandler) *SequenceDecoder {
	return &SequenceDecoder{Config: cfg, Handler: handler}
}

// Process feeds one decoded Unicode code point into the machine.
func (d *SequenceDecoder) Process(u rune) {
	switch d.state {
	case decGround:
		d.processGround(u)
	case decEscape:
		d.processEscape(u)
	case decCSI:
		d.processCSI(u)
	case decCmdString:
		d.processCmdString(u)
	case decCharString:
		d.processCharString(u)
	}
}

// ProcessString feeds a whole string of runes. Per spec.md §8 invariant 7,
// the concatenation of events from feeding a stream rune-by-rune equals
// that from feeding it all at once — callers may use either.
func (d *SequenceDecoder) ProcessString(s []rune) {
	for _, r := range s {
		d.Process(r)
	}
}

// ProcessEnd flushes any in-progress non-Ground sequence as invalid on EOF.
func (d *SequenceDecoder) ProcessEnd() {
	if d.state != decGround {
		d.dispatchInvalid()
	}
}

func (d *SequenceDecoder) c1Dispatch(c1 rune) {
	switch c1 {
	case 0x9B: // CSI
		d.seq.reset(SeqCSI)
		d.state = decCSI
		d.csiSeenParamOrInter = false
	case 0x90: // DCS
		d.enterCmdString(SeqDCS)
	case 0x9D: // OSC
		d.enterCmdString(SeqOSC)
	case 0x9E: // PM
		d.enterCmdString(SeqPM)
	case 0x9F: // APC
		d.enterCmdString(SeqAPC)
	case 0x98: // SOS
		d.enterCharString(SeqSOS)
	default:
		d.Handler.ControlCharacter(c1)
	}
}

func (d *SequenceDecoder) enterCmdString(t SequenceType) {
	d.seq.reset(t)
	d.stringType = t
	d.state = decCmdString
	d.pendingESC = false
}

func (d *SequenceDecoder) enterCharString(t SequenceType) {
	d.seq.reset(t)
	d.stringType = t
	d.state = decCharString
	d.pendingESC = false
}

func (d *SequenceDecoder) processGround(u rune) {
	switch {
	case u == 0x1B:
		d.seq.reset(SeqESC)
		d.state = decEscape
	case u < 0x20:
		d.Handler.ControlCharacter(u)
	case u >= 0x80 && u <= 0x9F && d.Config.Accept8BitC1:
		d.c1Dispatch(u)
	default:
		d.Handler.InsertChar(u)
	}
}

func (d *SequenceDecoder) processEscape(u rune) {
	switch {
	case u >= 0x20 && u <= 0x2F:
		d.seq.Inter = append(d.seq.Inter, u)
	case u >= 0x30 && u <= 0x7E:
		if u >= 0x40 && u <= 0x5F {
			d.state = decGround
			d.c1Dispatch((u & 0x1F) | 0x80)
			return
		}
		if u == 'k' && d.Config.EnableTitleStrings {
			d.enterCharString(SeqTITLE)
			return
		}
		d.seq.Final = u
		d.state = decGround
		d.Handler.EscapeSequence(&d.seq)
	default:
		d.dispatchInvalid()
		d.state = decGround
		d.Process(u)
	}
}

func (d *SequenceDecoder) processCSI(u rune) {
	switch {
	case u == 0x1B:
		// ESC mid-CSI aborts as invalid and reprocesses.
		d.dispatchInvalid()
		d.state = decGround
		d.Process(u)
	case u < 0x20:
		// vttest-compatible: dispatch immediately, keep collecting CSI.
		d.Handler.ControlCharacter(u)
	case u >= 0x3C && u <= 0x3F && !d.csiSeenParamOrInter:
		d.seq.Private = byte(u)
		d.csiSeenParamOrInter = true
	case u >= 0x30 && u <= 0x3F:
		d.seq.Params = append(d.seq.Params, u)
		d.csiSeenParamOrInter = true
	case u >= 0x20 && u <= 0x2F:
		d.seq.Inter = append(d.seq.Inter, u)
		d.csiSeenParamOrInter = true
	case u >= 0x40 && u <= 0x7E:
		d.seq.Final = u
		d.state = decGround
		d.Handler.ControlSequence(&d.seq)
	default:
		d.dispatchInvalid()
		d.state = decGround
	}
}

func (d *SequenceDecoder) isST(u rune) bool {
	return u == 0x9C // 8-bit String Terminator
}

func (d *SequenceDecoder) processCmdString(u rune) {
	if d.pendingESC {
		d.pendingESC = false
		if u == '\\' {
			d.state = decGround
			d.Handler.CommandString(&d.seq)
			return
		}
		// Escape followed by something other than '\': invalid, but the
		// new ESC may itself start a fresh sequence.
		d.dispatchInvalid()
		d.state = decGround
		d.Process(0x1B)
		d.Process(u)
		return
	}
	switch {
	case u == 0x1B:
		d.pendingESC = true
	case d.Config.Accept8BitC1 && d.isST(u):
		d.state = decGround
		d.Handler.CommandString(&d.seq)
	case u == 0x07 && d.belTerminatesCmdString():
		d.state = decGround
		d.Handler.CommandString(&d.seq)
	case (u >= 0x08 && u <= 0x0D) || (u >= 0x20 && u <= 0x7E):
		d.seq.Params = append(d.seq.Params, u)
	default:
		d.dispatchInvalid()
		d.state = decGround
	}
}

func (d *SequenceDecoder) belTerminatesCmdString() bool {
	if d.Config.AcceptBELForAnyCommandString {
		return true
	}
	return d.stringType == SeqOSC && d.Config.AcceptBELForOSC
}

func (d *SequenceDecoder) processCharString(u rune) {
	if d.pendingESC {
		d.pendingESC = false
		if u == '\\' {
			d.state = decGround
			d.Handler.CharacterString(&d.seq)
			return
		}
		if u == 'X' && d.stringType == SeqSOS {
			d.dispatchInvalid()
			d.state = decGround
			return
		}
		d.dispatchInvalid()
		d.state = decGround
		d.Process(0x1B)
		d.Process(u)
		return
	}
	switch {
	case u == 0x1B:
		d.pendingESC = true
	case d.Config.Accept8BitC1 && u == 0x98 && d.stringType == SeqSOS:
		d.dispatchInvalid()
		d.state = decGround
	case d.Config.Accept8BitC1 && d.isST(u):
		d.state = decGround
		d.Handler.CharacterString(&d.seq)
	case u == 0x07 && d.Config.AcceptBELForCharacterStrings:
		d.state = decGround
		d.Handler.CharacterString(&d.seq)
	default:
		d.seq.Params = append(d.seq.Params, u)
	}
}

func (d *SequenceDecoder) dispatchInvalid() {
	d.Handler.InvalidSequence(&d.seq)
}
