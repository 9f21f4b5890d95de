package cli

import (
	"os"
	"strings"

	"github.com/phroun/direct-key-handler/keyboard"
)

// InputHandler translates host keystrokes into the byte sequences the
// interpreter expects on the PTY, using direct-key-handler for named-key
// recognition (spec.md §6 "input_key"/"input_mouse" generation).
type InputHandler struct {
	term     *Terminal
	keyboard *keyboard.Handler
}

// NewInputHandler creates an input handler bound to term.
func NewInputHandler(term *Terminal) *InputHandler {
	return &InputHandler{term: term}
}

// InputLoop reads from stdin until the terminal is stopped.
func (h *InputHandler) InputLoop() {
	manageTerminal := false
	h.keyboard = keyboard.New(keyboard.Options{
		InputReader:    os.Stdin,
		ManageTerminal: &manageTerminal,
	})
	h.keyboard.OnKey = func(key string) {
		h.handleKey(key)
	}
	if err := h.keyboard.Start(); err != nil {
		return
	}
	<-h.term.stopInput
	h.keyboard.Stop()
}

func (h *InputHandler) handleKey(key string) {
	b := keyToBytes(key)
	if len(b) == 0 {
		return
	}
	h.term.sendToPTY(b)
}

// keyToBytes converts a direct-key-handler key name into the ECMA-48 /
// xterm byte sequence sent on the wire.
func keyToBytes(key string) []byte {
	if b, ok := keyToBytesMap[key]; ok {
		return b
	}
	if len(key) == 1 {
		return []byte(key)
	}
	if len(key) == 2 && key[0] == '^' {
		ch := key[1]
		switch {
		case ch >= 'A' && ch <= 'Z':
			return []byte{ch - 'A' + 1}
		case ch >= 'a' && ch <= 'z':
			return []byte{ch - 'a' + 1}
		case ch == '@':
			return []byte{0}
		case ch == '[':
			return []byte{27}
		case ch == '\\':
			return []byte{28}
		case ch == ']':
			return []byte{29}
		case ch == '^':
			return []byte{30}
		case ch == '_':
			return []byte{31}
		}
	}
	if strings.HasPrefix(key, "M-") && len(key) == 3 {
		return []byte{0x1b, key[2]}
	}
	if len(key) > 1 && key[0] != '^' && !strings.Contains(key, "-") {
		return []byte(key)
	}
	return nil
}

var keyToBytesMap = map[string][]byte{
	"Enter":     {13},
	"Tab":       {9},
	"Backspace": {127},
	"Escape":    {27},

	"Up":    {0x1b, '[', 'A'},
	"Down":  {0x1b, '[', 'B'},
	"Right": {0x1b, '[', 'C'},
	"Left":  {0x1b, '[', 'D'},

	"C-Up":    {0x1b, '[', '1', ';', '5', 'A'},
	"C-Down":  {0x1b, '[', '1', ';', '5', 'B'},
	"C-Right": {0x1b, '[', '1', ';', '5', 'C'},
	"C-Left":  {0x1b, '[', '1', ';', '5', 'D'},

	"Home":     {0x1b, '[', 'H'},
	"End":      {0x1b, '[', 'F'},
	"Insert":   {0x1b, '[', '2', '~'},
	"Delete":   {0x1b, '[', '3', '~'},
	"PageUp":   {0x1b, '[', '5', '~'},
	"PageDown": {0x1b, '[', '6', '~'},

	"F1": {0x1b, 'O', 'P'},
	"F2": {0x1b, 'O', 'Q'},
	"F3": {0x1b, 'O', 'R'},
	"F4": {0x1b, 'O', 'S'},
	"F5": {0x1b, '[', '1', '5', '~'},
	"F6": {0x1b, '[', '1', '7', '~'},
	"F7": {0x1b, '[', '1', '8', '~'},
	"F8": {0x1b, '[', '1', '9', '~'},
	"F9": {0x1b, '[', '2', '0', '~'},
	"F10": {0x1b, '[', '2', '1', '~'},
	"F11": {0x1b, '[', '2', '3', '~'},
	"F12": {0x1b, '[', '2', '4', '~'},
}
