package input

import "github.com/gdamore/tcell/v2"

// Machine parses tcell events into intents
type Machine struct {
	keyTable *KeyTable
}

// NewMachine creates a machine with the default bindings
func NewMachine() *Machine {
	return &Machine{keyTable: DefaultKeyTable()}
}

// Translate converts an event, ok is false for non-key events with no meaning
// Unbound keys yield IntentNone so the loop can count them
func (m *Machine) Translate(ev tcell.Event) (Intent, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if in, ok := m.keyTable.Lookup(ev); ok {
			return in, true
		}
		return Intent{Type: IntentNone}, true
	case *tcell.EventResize:
		return Intent{Type: IntentResize}, true
	default:
		return Intent{}, false
	}
}
