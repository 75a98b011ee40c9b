/*
Package config holds the conversion settings shared by the CLI and the watcher.
*/
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	IndentTab   = "tab"
	IndentSpace = "space"
)

// Indent is the unit the Markdown printer repeats per list level.
type Indent struct {
	Type string `yaml:"type" validate:"oneof=tab space"`
	Size int    `yaml:"size" validate:"required_if=Type space,gte=0"`
}

// Unit returns the literal indent string.
func (i Indent) Unit() string {
	if i.Type == IndentTab {
		return "\t"
	}
	return strings.Repeat(" ", i.Size)
}

type Config struct {
	// Heading1Mapping is the number of bold markers that maps to a level 1 heading.
	Heading1Mapping int    `yaml:"heading1_mapping" validate:"min=1"`
	BoldToHeading   bool   `yaml:"bold_to_heading"`
	Indent          Indent `yaml:"indent"`
}

func Default() Config {
	return Config{
		Heading1Mapping: 3,
		BoldToHeading:   false,
		Indent:          Indent{Type: IndentSpace, Size: 2},
	}
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// Load reads a YAML file on top of the defaults. Missing keys keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

// ParseIndent reads the CLI form of an indent: "tab" or a number of spaces.
func ParseIndent(s string) (Indent, error) {
	s = strings.TrimSpace(s)
	if s == IndentTab || s == "\\t" {
		return Indent{Type: IndentTab}, nil
	}
	size, err := strconv.Atoi(s)
	if err != nil || size < 1 {
		return Indent{}, errors.Errorf("invalid indent %q", s)
	}
	return Indent{Type: IndentSpace, Size: size}, nil
}
