// Package yaml wraps [github.com/goccy/go-yaml] with the options pagewin
// uses everywhere, and reports decode and schema errors against the source
// document.
package yaml

import (
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

type Decoder struct {
	d *yaml.Decoder
}

// NewDecoder returns a [Decoder] that honours json struct tags and allows
// duplicate map keys, with the last one winning.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r, yaml.AllowDuplicateMapKey(), yaml.UseJSONUnmarshaler()),
	}
}

// Decode decodes the next document into v. Syntax and type errors are
// returned as [*Error] carrying the offending token.
func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return &Error{
			Err:   errors.New(yamlErr.GetMessage()),
			Token: yamlErr.GetToken(),
		}
	}

	return err //nolint:wrapcheck // io.EOF must stay comparable.
}
