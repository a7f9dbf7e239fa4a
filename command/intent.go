package command

import (
	"fmt"

	"github.com/npillmayer/cssed/cssdoc"
)

// IntentKind enumerates the editing intents a host may dispatch.
type IntentKind uint8

// Intents. The comments name the default key binding, if any.
const (
	NoIntent       IntentKind = iota
	InsertText                // typed characters
	Break                     // Enter
	DeleteBackward            // Backspace
	DeleteForward             // Delete
	Tab                       // Tab
	ShiftTab                  // Shift+Tab
	Up                        // Up
	Down                      // Down
	MoveDeclUp                // Alt+Up
	MoveDeclDown              // Alt+Down
	MoveRuleUp                // Alt+Shift+Up
	MoveRuleDown              // Alt+Shift+Down
	RotatePrev                // Ctrl+Up
	RotateNext                // Ctrl+Down
	PrevSelector              // Ctrl+Alt+Up
	NextSelector              // Ctrl+Alt+Down
	InsertRule                // Shift+Enter
	InsertAtRule              // Ctrl+Shift+Enter
	DeleteUnit                // Shift+Backspace
	UnwrapAtRule              // Ctrl+Shift+Backspace
	Escape                    // Escape
	SelectAll                 // Ctrl+A, Meta+A
	EnterEdit                 // F2
	Accept                    // Ctrl+Space
	Pick                      // pointer pick of a suggestion
	Select                    // pointer placement of the selection
	Undo                      // Ctrl+Z
	Redo                      // Ctrl+Shift+Z, Ctrl+Y
)

var intentNames = [...]string{
	NoIntent:       "none",
	InsertText:     "insert-text",
	Break:          "break",
	DeleteBackward: "delete-backward",
	DeleteForward:  "delete-forward",
	Tab:            "tab",
	ShiftTab:       "shift-tab",
	Up:             "up",
	Down:           "down",
	MoveDeclUp:     "move-decl-up",
	MoveDeclDown:   "move-decl-down",
	MoveRuleUp:     "move-rule-up",
	MoveRuleDown:   "move-rule-down",
	RotatePrev:     "rotate-prev",
	RotateNext:     "rotate-next",
	PrevSelector:   "prev-selector",
	NextSelector:   "next-selector",
	InsertRule:     "insert-rule",
	InsertAtRule:   "insert-at-rule",
	DeleteUnit:     "delete-unit",
	UnwrapAtRule:   "unwrap-at-rule",
	Escape:         "escape",
	SelectAll:      "select-all",
	EnterEdit:      "enter-edit",
	Accept:         "accept",
	Pick:           "pick",
	Select:         "select",
	Undo:           "undo",
	Redo:           "redo",
}

func (k IntentKind) String() string {
	if int(k) < len(intentNames) {
		return intentNames[k]
	}
	return fmt.Sprintf("intent(%d)", k)
}

// Intent is a user intent. Text is used by InsertText, Index by Pick and
// Selection by Select.
type Intent struct {
	Kind      IntentKind
	Text      string
	Index     int
	Selection cssdoc.Selection
}

func (in Intent) String() string {
	switch in.Kind {
	case InsertText:
		return fmt.Sprintf("%s %q", in.Kind, in.Text)
	case Pick:
		return fmt.Sprintf("%s %d", in.Kind, in.Index)
	case Select:
		return fmt.Sprintf("%s %v", in.Kind, in.Selection)
	}
	return in.Kind.String()
}

// Type creates an intent to insert text at the cursor.
func Type(text string) Intent {
	return Intent{Kind: InsertText, Text: text}
}

// Do creates an intent without arguments.
func Do(k IntentKind) Intent {
	return Intent{Kind: k}
}

// Place creates an intent to place a collapsed cursor.
func Place(p cssdoc.Path, offset int) Intent {
	return Intent{Kind: Select, Selection: cssdoc.Cursor(p, offset)}
}
