package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nevisdale/boii/internal/cart"
)

// Config is the file based configuration. Every field is optional,
// missing fields keep their default value.
//
//	validation:
//	  check_rom_size: true
//	  check_nintento_logo: true
//	  check_header_checksum: true
//	  check_global_checksum: false
//	viewer:
//	  scale: 2
//	  start_addr: 0x0100
type Config struct {
	Validation cart.ValidationSettings `yaml:"validation"`
	Viewer     ViewerConfig            `yaml:"viewer"`
}

type ViewerConfig struct {
	Scale     int    `yaml:"scale"`
	StartAddr uint16 `yaml:"start_addr"`
}

func Default() Config {
	return Config{
		Validation: cart.DefaultValidationSettings(),
		Viewer: ViewerConfig{
			Scale: 2,
			// entry point
			StartAddr: 0x0100,
		},
	}
}

// Load reads the config at path over the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("couldn't read the config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// a file without a document, comments only included, overrides nothing
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("couldn't parse the config: %w", err)
	}
	if cfg.Viewer.Scale < 1 {
		return Config{}, fmt.Errorf("invalid viewer scale: %d", cfg.Viewer.Scale)
	}
	return cfg, nil
}
