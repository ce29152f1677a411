package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/pi-catcher/engine"
	"github.com/lixenwraith/pi-catcher/render"
)

// Translator turns terminal events into engine inputs
type Translator struct {
	table *KeyTable
}

// NewTranslator uses DefaultKeyTable when table is nil
func NewTranslator(table *KeyTable) *Translator {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Translator{table: table}
}

// Translate maps ev to an engine input
// Mouse events of any kind move the plate to the pointer column
func (t *Translator) Translate(ev tcell.Event, layout render.Layout) (engine.Input, bool) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, _ := ev.Position()
		return engine.Pointer(layout.WorldX(x)), true

	case *tcell.EventKey:
		kind, ok := t.table.Lookup(ev.Key())
		if !ok {
			return engine.Input{}, false
		}
		return engine.Input{Kind: kind}, true
	}
	return engine.Input{}, false
}
