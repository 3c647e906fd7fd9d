// Package config loads the regexlint configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = ".regexlint.yaml"

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Config struct {
	// Extensions selects the files visited when walking a directory.
	Extensions []string `yaml:"extensions"`
	// SkipConstructorCalls ignores RegExp(...) calls and checks literals only.
	SkipConstructorCalls bool   `yaml:"skipConstructorCalls"`
	Format               string `yaml:"format"`
	// FailFast stops at the first file with a diagnostic.
	FailFast bool `yaml:"failFast"`
}

// Default returns the configuration used when no file is present. Module
// files (.mjs) are left out since discovery parses scripts only.
func Default() *Config {
	return &Config{
		Extensions: []string{".js", ".cjs"},
		Format:     FormatText,
	}
}

// Load reads the file at path over the defaults. A missing DefaultFile is
// not an error; a missing explicitly named file is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	return Parse(content)
}

func Parse(content []byte) (*Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(content, c); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid config: unknown format %q", c.Format)
	}
	if len(c.Extensions) == 0 {
		return errors.New("invalid config: extensions must not be empty")
	}
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	return nil
}

// Matches reports whether name has one of the configured extensions.
func (c *Config) Matches(name string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
