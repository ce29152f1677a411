package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pi-catcher/engine"
)

// KeyTable maps special keys to engine input kinds
type KeyTable struct {
	Keys map[tcell.Key]engine.InputKind
}

// DefaultKeyTable returns the standard bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]engine.InputKind{
			tcell.KeyEnter:  engine.InputConfirm,
			tcell.KeyEscape: engine.InputCancel,
			tcell.KeyCtrlC:  engine.InputQuit,
			tcell.KeyCtrlQ:  engine.InputQuit,
		},
	}
}

// Lookup returns the bound kind for k
func (t *KeyTable) Lookup(k tcell.Key) (engine.InputKind, bool) {
	kind, ok := t.Keys[k]
	return kind, ok
}
