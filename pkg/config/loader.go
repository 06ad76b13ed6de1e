package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/macropower/pagewin/pkg/yaml"
)

// Validator validates decoded YAML data.
type Validator interface {
	Validate(data any) error
}

type LoaderOpt func(*Loader)

// WithValidator replaces the schema validator.
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// Loader validates and decodes one configuration document.
type Loader struct {
	validator Validator
	data      []byte
}

func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) (*Loader, error) {
	l := &Loader{data: data}
	for _, opt := range opts {
		opt(l)
	}

	if l.validator == nil {
		v, err := DefaultValidator()
		if err != nil {
			return nil, err
		}

		l.validator = v
	}

	return l, nil
}

func NewLoaderFromFile(path string, opts ...LoaderOpt) (*Loader, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	return NewLoaderFromBytes(data, opts...)
}

// Validate checks the raw document against the schema without decoding it
// into a [Config].
func (l *Loader) Validate() error {
	var doc any

	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(&doc)
	if err != nil {
		return yaml.WithSource(fmt.Errorf("decode config: %w", err), l.data)
	}

	err = l.validator.Validate(doc)
	if err != nil {
		return yaml.WithSource(fmt.Errorf("validate config: %w", err), l.data)
	}

	return nil
}

// Load validates the document, decodes it, applies defaults and runs the Go
// side validation.
func (l *Loader) Load() (*Config, error) {
	err := l.Validate()
	if err != nil {
		return nil, err
	}

	c := &Config{}

	err = yaml.NewDecoder(bytes.NewReader(l.data)).Decode(c)
	if err != nil {
		return nil, yaml.WithSource(fmt.Errorf("decode config: %w", err), l.data)
	}

	c.EnsureDefaults()

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Load reads, validates and decodes the configuration at path.
func Load(path string) (*Config, error) {
	l, err := NewLoaderFromFile(path)
	if err != nil {
		return nil, err
	}

	return l.Load()
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s: path is a directory", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: user-provided path.
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return data, nil
}
