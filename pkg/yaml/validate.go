package yaml

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator checks decoded YAML against a compiled JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schemaData, registered under url.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	var doc any

	err := json.Unmarshal(schemaData, &doc)
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()

	err = c.AddResource(url, doc)
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: s}, nil
}

// Validate returns an [*Error] pointing at the most specific failing
// location in data.
func (v *Validator) Validate(data any) error {
	err := v.schema.Validate(normalize(data))
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	return &Error{
		Err:  verr,
		Path: pathFromLocation(deepestLocation(verr)),
	}
}

func deepestLocation(err *jsonschema.ValidationError) []string {
	loc := err.InstanceLocation
	for _, cause := range err.Causes {
		if c := deepestLocation(cause); len(c) > len(loc) {
			loc = c
		}
	}

	return loc
}

func pathFromLocation(location []string) *yaml.Path {
	p := NewPathBuilder().Root()

	for _, part := range location {
		if i, err := strconv.ParseUint(part, 10, 0); err == nil {
			p = p.Index(uint(i))
			continue
		}

		p = p.Child(part)
	}

	return p.Build()
}

// normalize converts the integer and map types produced by the YAML decoder
// into the JSON-compatible forms the schema validator expects.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}

		return out

	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}

		return out

	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}

		return out

	case int:
		return json.Number(strconv.Itoa(t))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case uint64:
		return json.Number(strconv.FormatUint(t, 10))
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64))
	}

	return v
}
