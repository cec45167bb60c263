// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// FormatYAML is the native config file format.
	FormatYAML Format = "yaml"
	// FormatTOML renders the configuration as TOML.
	FormatTOML Format = "toml"
	// FormatJSON renders the configuration as indented JSON.
	FormatJSON Format = "json"
)

// ErrInvalidFormat is returned when a Format value is not recognized.
var ErrInvalidFormat = errors.New("invalid output format")

type (
	// Format is an output encoding for `config dump`.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	InvalidFormatError struct {
		Value Format
	}
)

// Validate returns nil if the Format is yaml, toml or json.
func (f Format) Validate() error {
	switch f {
	case FormatYAML, FormatTOML, FormatJSON:
		return nil
	default:
		return &InvalidFormatError{Value: f}
	}
}

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: yaml, toml, json)", e.Value)
}

// Unwrap returns ErrInvalidFormat so callers can use errors.Is for programmatic detection.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// Marshal encodes cfg in the requested format.
func Marshal(cfg *Config, format Format) ([]byte, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	var (
		out []byte
		err error
	)
	switch format {
	case FormatTOML:
		out, err = toml.Marshal(cfg)
	case FormatJSON:
		out, err = json.MarshalIndent(cfg, "", "  ")
		out = append(out, '\n')
	default:
		out, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode config as %s: %w", format, err)
	}
	return out, nil
}
