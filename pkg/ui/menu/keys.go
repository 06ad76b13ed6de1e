package menu

import (
	"github.com/macropower/pagewin/pkg/keys"
)

// KeyBinds defines the menu key bindings. Nil bindings take their defaults
// in [KeyBinds.EnsureDefaults].
type KeyBinds struct {
	// Navigation.
	Up       *keys.KeyBind `json:"up,omitempty" jsonschema:"title=Up"`
	Down     *keys.KeyBind `json:"down,omitempty" jsonschema:"title=Down"`
	PageUp   *keys.KeyBind `json:"pageUp,omitempty" jsonschema:"title=Page Up"`
	PageDown *keys.KeyBind `json:"pageDown,omitempty" jsonschema:"title=Page Down"`
	Home     *keys.KeyBind `json:"home,omitempty" jsonschema:"title=Home"`
	End      *keys.KeyBind `json:"end,omitempty" jsonschema:"title=End"`

	// Actions.
	Select   *keys.KeyBind `json:"select,omitempty" jsonschema:"title=Select"`
	Filter   *keys.KeyBind `json:"filter,omitempty" jsonschema:"title=Filter"`
	Escape   *keys.KeyBind `json:"escape,omitempty" jsonschema:"title=Escape"`
	Strategy *keys.KeyBind `json:"strategy,omitempty" jsonschema:"title=Cycle Strategy"`
	Help     *keys.KeyBind `json:"help,omitempty" jsonschema:"title=Help"`
	Quit     *keys.KeyBind `json:"quit,omitempty" jsonschema:"title=Quit"`
}

func NewKeyBinds() *KeyBinds {
	kb := &KeyBinds{}
	kb.EnsureDefaults()

	return kb
}

func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Up,
		keys.NewBind("up",
			keys.New("up", keys.WithAlias("↑")),
			keys.New("k"),
		))
	keys.SetDefaultBind(&kb.Down,
		keys.NewBind("down",
			keys.New("down", keys.WithAlias("↓")),
			keys.New("j"),
		))
	keys.SetDefaultBind(&kb.PageUp,
		keys.NewBind("page up",
			keys.New("pgup"),
			keys.New("b"),
		))
	keys.SetDefaultBind(&kb.PageDown,
		keys.NewBind("page down",
			keys.New("pgdown", keys.WithAlias("pgdn")),
			keys.New("f"),
		))
	keys.SetDefaultBind(&kb.Home,
		keys.NewBind("go to top",
			keys.New("home"),
			keys.New("g"),
		))
	keys.SetDefaultBind(&kb.End,
		keys.NewBind("go to bottom",
			keys.New("end"),
			keys.New("G"),
		))
	keys.SetDefaultBind(&kb.Select,
		keys.NewBind("select",
			keys.New("enter", keys.WithAlias("↵")),
		))
	keys.SetDefaultBind(&kb.Filter,
		keys.NewBind("filter",
			keys.New("/"),
		))
	keys.SetDefaultBind(&kb.Escape,
		keys.NewBind("clear filter",
			keys.New("esc"),
		))
	keys.SetDefaultBind(&kb.Strategy,
		keys.NewBind("cycle strategy",
			keys.New("s"),
		))
	keys.SetDefaultBind(&kb.Help,
		keys.NewBind("toggle help",
			keys.New("?"),
		))
	keys.SetDefaultBind(&kb.Quit,
		keys.NewBind("quit",
			keys.New("q"),
			keys.New("ctrl+c", keys.Hidden()),
		))
}

// GetKeyBinds returns all key bindings.
func (kb *KeyBinds) GetKeyBinds() []keys.KeyBind {
	return []keys.KeyBind{
		*kb.Up,
		*kb.Down,
		*kb.PageUp,
		*kb.PageDown,
		*kb.Home,
		*kb.End,
		*kb.Select,
		*kb.Filter,
		*kb.Escape,
		*kb.Strategy,
		*kb.Help,
		*kb.Quit,
	}
}

// Validate reports keys bound to more than one action.
func (kb *KeyBinds) Validate() error {
	return keys.ValidateBinds(kb.GetKeyBinds()) //nolint:wrapcheck // Already descriptive.
}

func (kb *KeyBinds) helpRenderer() *keys.KeyBindRenderer {
	r := &keys.KeyBindRenderer{}
	r.AddColumn(*kb.Up, *kb.Down, *kb.PageUp, *kb.PageDown)
	r.AddColumn(*kb.Home, *kb.End, *kb.Filter, *kb.Escape)
	r.AddColumn(*kb.Select, *kb.Strategy, *kb.Help, *kb.Quit)

	return r
}
