package config

import (
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/macropower/pagewin/pkg/pagination"
	"github.com/macropower/pagewin/pkg/ui/menu"
)

const (
	APIVersion = "pagewin.jacobcolvin.com/v1beta1"
	Kind       = "Configuration"

	DefaultItemsPerPage = 10
	DefaultStrategy     = "classic"
	DefaultTheme        = "auto"
)

var ErrInvalidConfig = errors.New("invalid config")

//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	// Menu configures the visible window.
	Menu *MenuConfig `json:"menu,omitempty" jsonschema:"title=Menu"`
	// UI configures the theme and key bindings.
	UI *UIConfig `json:"ui,omitempty" jsonschema:"title=UI"`
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind"`
	// Items are shown when no input file is given.
	Items []string `json:"items,omitempty" jsonschema:"title=Items"`
}

type MenuConfig struct {
	// ItemsPerPage is the number of rows in the visible window.
	ItemsPerPage *int `json:"itemsPerPage,omitempty" jsonschema:"title=Items Per Page,minimum=1,default=10"`
	// Strategy decides how the window moves when the selection leaves it.
	Strategy *string `json:"strategy,omitempty" jsonschema:"title=Strategy,enum=classic,enum=infinite,enum=paginated,default=classic"`
}

type UIConfig struct {
	// KeyBinds overrides the default key bindings.
	KeyBinds *menu.KeyBinds `json:"keybinds,omitempty" jsonschema:"title=Key Bindings"`
	// Theme is "auto", "dark", "light" or any chroma style name.
	Theme *string `json:"theme,omitempty" jsonschema:"title=Theme,default=auto"`
}

// New returns a [Config] with every default applied.
func New() *Config {
	c := &Config{
		APIVersion: APIVersion,
		Kind:       Kind,
	}
	c.EnsureDefaults()

	return c
}

func (c *Config) EnsureDefaults() {
	if c.Menu == nil {
		c.Menu = &MenuConfig{}
	}

	c.Menu.EnsureDefaults()

	if c.UI == nil {
		c.UI = &UIConfig{}
	}

	c.UI.EnsureDefaults()
}

// Validate runs the checks the schema cannot express.
func (c *Config) Validate() error {
	_, err := pagination.New(*c.Menu.ItemsPerPage, c.Menu.ParsedStrategy())
	if err != nil {
		return fmt.Errorf("%w: menu: %w", ErrInvalidConfig, err)
	}

	_, err = pagination.ParseStrategy(*c.Menu.Strategy)
	if err != nil {
		return fmt.Errorf("%w: menu: %w", ErrInvalidConfig, err)
	}

	err = c.UI.KeyBinds.Validate()
	if err != nil {
		return fmt.Errorf("%w: ui.keybinds: %w", ErrInvalidConfig, err)
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	for key, value := range map[string]string{"apiVersion": APIVersion, "kind": Kind} {
		prop, ok := jss.Properties.Get(key)
		if !ok {
			continue
		}

		prop.Const = value
		_, _ = jss.Properties.Set(key, prop)
	}
}

func (mc *MenuConfig) EnsureDefaults() {
	if mc.ItemsPerPage == nil {
		n := DefaultItemsPerPage
		mc.ItemsPerPage = &n
	}

	if mc.Strategy == nil {
		s := DefaultStrategy
		mc.Strategy = &s
	}
}

// ParsedStrategy returns the configured strategy, or [pagination.Classic]
// when it does not parse. [Config.Validate] reports the parse error.
func (mc *MenuConfig) ParsedStrategy() pagination.Strategy {
	if mc.Strategy == nil {
		return pagination.Classic
	}

	s, err := pagination.ParseStrategy(*mc.Strategy)
	if err != nil {
		return pagination.Classic
	}

	return s
}

func (uc *UIConfig) EnsureDefaults() {
	if uc.Theme == nil {
		t := DefaultTheme
		uc.Theme = &t
	}

	if uc.KeyBinds == nil {
		uc.KeyBinds = &menu.KeyBinds{}
	}

	uc.KeyBinds.EnsureDefaults()
}
