// Package config loads, validates and writes the pagewin YAML configuration.
//
// A configuration is validated twice: first against the JSON schema derived
// from [Config], then in Go for rules the schema cannot express, such as
// duplicate key bindings.
package config
