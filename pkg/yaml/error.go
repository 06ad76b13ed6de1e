package yaml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/token"
)

func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// Error is a decode or validation error located in a YAML document, either
// by [yaml.Path] or by [token.Token]. When Source is set, Error renders the
// surrounding lines with the location marked.
type Error struct {
	Err    error
	Path   *yaml.Path
	Token  *token.Token
	Source []byte
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}

	loc := e.location()
	if loc == "" {
		return e.Err.Error()
	}

	if len(e.Source) > 0 && e.Path != nil {
		src, err := e.Path.AnnotateSource(e.Source, false)
		if err == nil {
			return fmt.Sprintf("%s: %v\n%s", loc, e.Err, strings.TrimRight(string(src), "\n"))
		}
	}

	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *Error) location() string {
	switch {
	case e.Token != nil && e.Token.Position != nil:
		return fmt.Sprintf("line %d, column %d", e.Token.Position.Line, e.Token.Position.Column)
	case e.Path != nil:
		return "error at " + e.Path.String()
	}

	return ""
}

// WithSource attaches source to err when it is an [*Error], so that it can
// be annotated. Other errors are returned unchanged.
func WithSource(err error, source []byte) error {
	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		yamlErr.Source = source
	}

	return err
}
