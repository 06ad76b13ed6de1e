package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/macropower/pagewin/pkg/yaml"
)

// SchemaURL identifies the configuration schema.
const SchemaURL = "https://pagewin.jacobcolvin.com/schemas/config.v1beta1.json"

// Schema reflects the JSON schema of [Config].
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}

	s := r.Reflect(&Config{})
	s.ID = jsonschema.ID(SchemaURL)
	s.Title = "pagewin configuration"

	return s
}

// SchemaJSON returns [Schema] as indented JSON.
func SchemaJSON() ([]byte, error) {
	b, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(b, '\n'), nil
}

// DefaultValidator compiles [Schema] once and returns the validator.
var DefaultValidator = sync.OnceValues(func() (*yaml.Validator, error) {
	b, err := SchemaJSON()
	if err != nil {
		return nil, err
	}

	v, err := yaml.NewValidator(SchemaURL, b)
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	return v, nil
})
