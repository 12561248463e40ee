package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format identifies a settings file syntax.
type Format string

// Supported settings formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
}

// Load returns the defaults overlaid with the settings file at path. A missing
// file is not an error. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // File doesn't exist, not an error
		}
		return cfg, errors.Wrapf(err, "reading config file %s", path)
	}

	if err := Decode(&cfg, path, data, format); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overlays the settings in data onto cfg. Keys that do not match a
// setting are rejected. source names the input in errors.
func Decode(cfg *Config, source string, data []byte, format Format) error {
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return tomlParseError(source, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			// An empty document leaves cfg untouched.
			if errors.Is(err, io.EOF) {
				return nil
			}
			return &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	return nil
}

func tomlParseError(source string, err error) error {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &derr):
		pe.Line, pe.Column = derr.Position()
	case errors.As(err, &serr):
		pe.Message = serr.String()
		if len(serr.Errors) > 0 {
			pe.Line, pe.Column = serr.Errors[0].Position()
		}
	}
	return pe
}
