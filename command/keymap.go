package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned for key chords which cannot be parsed or which
// are not bound to an intent.
var ErrUnknownKey = errors.New("unknown key")

// Modifiers is a set of modifier keys.
type Modifiers uint8

// Modifier keys.
const (
	Ctrl Modifiers = 1 << iota
	Alt
	Shift
	Meta
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{Ctrl, "Ctrl"},
	{Alt, "Alt"},
	{Shift, "Shift"},
	{Meta, "Meta"},
}

// Key is a key chord: a named key plus modifiers.
type Key struct {
	Name string
	Mods Modifiers
}

// String returns the canonical notation of a key chord, e.g. "Ctrl+Shift+Enter".
func (k Key) String() string {
	var b strings.Builder
	for _, m := range modifierNames {
		if k.Mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(k.Name)
	return b.String()
}

var keyNames = map[string]string{
	"enter":     "Enter",
	"return":    "Enter",
	"backspace": "Backspace",
	"delete":    "Delete",
	"del":       "Delete",
	"tab":       "Tab",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"escape":    "Escape",
	"esc":       "Escape",
	"space":     "Space",
	"f2":        "F2",
}

var modifierAliases = map[string]Modifiers{
	"ctrl":    Ctrl,
	"control": Ctrl,
	"alt":     Alt,
	"option":  Alt,
	"shift":   Shift,
	"meta":    Meta,
	"cmd":     Meta,
}

// ParseKey parses a key chord like "Ctrl+Shift+Enter". Names are case
// insensitive; single characters denote character keys.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	var k Key
	for i, part := range parts {
		part = strings.TrimSpace(part)
		lower := strings.ToLower(part)
		if i < len(parts)-1 {
			m, ok := modifierAliases[lower]
			if !ok {
				return Key{}, fmt.Errorf("%w: modifier %q in %q", ErrUnknownKey, part, s)
			}
			k.Mods |= m
			continue
		}
		if name, ok := keyNames[lower]; ok {
			k.Name = name
		} else if len([]rune(part)) == 1 {
			k.Name = strings.ToUpper(part)
		} else {
			return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, s)
		}
	}
	return k, nil
}

// KeyMap binds key chords to intents.
type KeyMap map[Key]IntentKind

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{}
	for chord, intent := range map[string]IntentKind{
		"Enter":                Break,
		"Backspace":            DeleteBackward,
		"Delete":               DeleteForward,
		"Tab":                  Tab,
		"Shift+Tab":            ShiftTab,
		"Up":                   Up,
		"Down":                 Down,
		"Alt+Up":               MoveDeclUp,
		"Alt+Down":             MoveDeclDown,
		"Alt+Shift+Up":         MoveRuleUp,
		"Alt+Shift+Down":       MoveRuleDown,
		"Ctrl+Up":              RotatePrev,
		"Ctrl+Down":            RotateNext,
		"Ctrl+Alt+Up":          PrevSelector,
		"Ctrl+Alt+Down":        NextSelector,
		"Shift+Enter":          InsertRule,
		"Ctrl+Shift+Enter":     InsertAtRule,
		"Shift+Backspace":      DeleteUnit,
		"Ctrl+Shift+Backspace": UnwrapAtRule,
		"Escape":               Escape,
		"Ctrl+A":               SelectAll,
		"Meta+A":               SelectAll,
		"F2":                   EnterEdit,
		"Ctrl+Space":           Accept,
		"Ctrl+Z":               Undo,
		"Meta+Z":               Undo,
		"Ctrl+Shift+Z":         Redo,
		"Meta+Shift+Z":         Redo,
		"Ctrl+Y":               Redo,
	} {
		if err := km.Bind(chord, intent); err != nil {
			panic(err)
		}
	}
	return km
}

// Bind binds a key chord to an intent, replacing an existing binding.
func (km KeyMap) Bind(chord string, intent IntentKind) error {
	k, err := ParseKey(chord)
	if err != nil {
		return err
	}
	km[k] = intent
	return nil
}

// Lookup finds the intent bound to a key.
func (km KeyMap) Lookup(k Key) (IntentKind, bool) {
	intent, ok := km[k]
	return intent, ok
}

// Translate parses a key chord and returns the intent bound to it.
func (km KeyMap) Translate(chord string) (Intent, error) {
	k, err := ParseKey(chord)
	if err != nil {
		return Intent{}, err
	}
	intent, ok := km.Lookup(k)
	if !ok {
		return Intent{}, fmt.Errorf("%w: %s is not bound", ErrUnknownKey, k)
	}
	return Intent{Kind: intent}, nil
}
