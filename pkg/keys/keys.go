// Package keys describes configurable key bindings and renders them as help
// columns.
package keys

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Ellipsis marks truncated help text.
const Ellipsis = "…"

// ErrDuplicateKey is returned by [ValidateBinds] when a key code is bound to
// more than one action.
var ErrDuplicateKey = errors.New("duplicate key binding")

// Key is a single key that can trigger a [KeyBind].
type Key struct {
	// Code is the key as reported by Bubble Tea, e.g. "ctrl+c" or "pgdown".
	Code string `json:"code" jsonschema:"title=Code,minLength=1"`
	// Alias replaces the code in help output.
	Alias string `json:"alias,omitempty" jsonschema:"title=Alias"`
	// Hidden keeps the key out of help output.
	Hidden bool `json:"hidden,omitempty" jsonschema:"title=Hidden"`
}

type KeyOpt func(k *Key)

func New(code string, opts ...KeyOpt) Key {
	k := Key{Code: code}
	for _, opt := range opts {
		opt(&k)
	}

	return k
}

func WithAlias(alias string) KeyOpt {
	return func(k *Key) {
		k.Alias = alias
	}
}

func Hidden() KeyOpt {
	return func(k *Key) {
		k.Hidden = true
	}
}

func (k Key) String() string {
	if k.Alias != "" {
		return k.Alias
	}

	return k.Code
}

// KeyBind is an action and the keys that trigger it.
type KeyBind struct {
	// Description is shown next to the keys in help output.
	Description string `json:"description,omitempty" jsonschema:"title=Description"`
	// Keys trigger the action.
	Keys []Key `json:"keys" jsonschema:"title=Keys"`
}

func NewBind(description string, keys ...Key) KeyBind {
	return KeyBind{
		Description: description,
		Keys:        keys,
	}
}

// String joins the visible keys with "/".
func (kb *KeyBind) String() string {
	var names []string
	for _, k := range kb.Keys {
		if !k.Hidden {
			names = append(names, k.String())
		}
	}

	return strings.Join(names, "/")
}

// Match reports whether key is one of the bound key codes.
func (kb *KeyBind) Match(key string) bool {
	if kb == nil {
		return false
	}

	return slices.ContainsFunc(kb.Keys, func(k Key) bool {
		return k.Code == key
	})
}

// AddKey binds key unless its code is already bound.
func (kb *KeyBind) AddKey(key Key) {
	if kb == nil || kb.Match(key.Code) {
		return
	}

	kb.Keys = append(kb.Keys, key)
}

// row renders the bind padded to keyWidth and descWidth. It returns "" when
// every key is hidden.
func (kb *KeyBind) row(keyWidth, descWidth int) string {
	names := kb.String()
	if names == "" {
		return ""
	}

	desc := truncate.StringWithTail(kb.Description, uint(max(0, descWidth)), Ellipsis) //nolint:gosec // G115: clamped.

	return pad(names, keyWidth) + "  " + pad(desc, descWidth)
}

// IsTextInput reports whether key should be forwarded to a focused text
// input rather than treated as navigation.
func IsTextInput(key string) bool {
	return !slices.Contains([]string{"esc", "enter", "up", "down", "pgup", "pgdown", "ctrl+c"}, key)
}

// ValidateBinds reports every key code bound more than once across binds.
func ValidateBinds(binds ...[]KeyBind) error {
	var errs []error

	owner := map[string]string{}
	for _, group := range binds {
		for _, kb := range group {
			for _, k := range kb.Keys {
				if prev, ok := owner[k.Code]; ok {
					errs = append(errs, fmt.Errorf("%w: %q used by %q and %q",
						ErrDuplicateKey, k.Code, prev, kb.Description))

					continue
				}

				owner[k.Code] = kb.Description
			}
		}
	}

	return errors.Join(errs...)
}

// SetDefaultBind fills *kb from def. A nil bind is replaced; a bind with no
// keys or no description takes the missing parts from def.
func SetDefaultBind(kb **KeyBind, def KeyBind) {
	if *kb == nil {
		*kb = &def
		return
	}

	if len((*kb).Keys) == 0 {
		(*kb).Keys = def.Keys
	}

	if (*kb).Description == "" {
		(*kb).Description = def.Description
	}
}

// KeyBindRenderer lays out key binds in side-by-side columns.
type KeyBindRenderer struct {
	columns [][]KeyBind
}

func (r *KeyBindRenderer) AddColumn(kbs ...KeyBind) {
	if len(kbs) > 0 {
		r.columns = append(r.columns, kbs)
	}
}

// Render returns the columns split evenly across width. Descriptions that do
// not fit are truncated with [Ellipsis].
func (r *KeyBindRenderer) Render(width int) string {
	if len(r.columns) == 0 {
		return ""
	}

	colWidth := max(6, width/len(r.columns)-2)

	cols := make([][]string, len(r.columns))
	rows := 0

	for i, col := range r.columns {
		cols[i] = renderColumn(colWidth, col)
		rows = max(rows, len(cols[i]))
	}

	lines := make([]string, rows)
	for row := range rows {
		var sb strings.Builder
		for _, col := range cols {
			cell := strings.Repeat(" ", colWidth)
			if row < len(col) {
				cell = col[row]
			}

			sb.WriteString(" " + cell + " ")
		}

		lines[row] = strings.TrimRight(sb.String(), " ")
	}

	return strings.Join(lines, "\n")
}

func renderColumn(width int, kbs []KeyBind) []string {
	keyWidth := 0
	for _, kb := range kbs {
		keyWidth = max(keyWidth, ansi.PrintableRuneWidth(kb.String()))
	}

	var rows []string
	for _, kb := range kbs {
		if row := kb.row(keyWidth, width-keyWidth-2); row != "" {
			rows = append(rows, row)
		}
	}

	return rows
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-ansi.PrintableRuneWidth(s)))
}
