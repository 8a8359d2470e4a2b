package dist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// Config is a business object holding the packaging values that are not
// derived from the project descriptor.
type Config struct {
	// AppName is the display name written into the desktop entry.
	AppName string
	// Bin is the binary file name expected under target/release.
	Bin string
	// Icon is the icon file name expected under ui.
	Icon string
	// Maintainer is the control file maintainer line.
	Maintainer string
	// Categories is the semicolon-separated desktop entry category list.
	Categories string
	// SignKey is the path to an ASCII-armored PGP private key used to
	// clearsign the checksum index. Empty disables signing.
	SignKey string
}

// DefaultConfig returns the built-in packaging values.
func DefaultConfig() Config {
	return Config{
		AppName:    "AstraLite",
		Bin:        "astra_lite",
		Icon:       "astra_lite48x48.png",
		Maintainer: "Denis Artemov (denis.artyomov@gmail.com)",
		Categories: "Graphics;Astronomy",
	}
}

// LoadConfig reads the optional tool configuration at path. A missing file
// yields the defaults unchanged, non-empty fields override their default and
// unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	// Internal DTO for YAML deserialization.
	type yamlConfig struct {
		AppName    string `yaml:"app_name"`
		Bin        string `yaml:"bin"`
		Icon       string `yaml:"icon"`
		Maintainer string `yaml:"maintainer"`
		Categories string `yaml:"categories"`
		SignKey    string `yaml:"sign_key"`
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("%w: reading config %s: %v", ErrIO, path, err)
	}

	var dto yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil {
		// An empty config file carries no overrides.
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Map DTO to business object, keeping defaults for absent fields.
	if dto.AppName != "" {
		cfg.AppName = dto.AppName
	}
	if dto.Bin != "" {
		cfg.Bin = dto.Bin
	}
	if dto.Icon != "" {
		cfg.Icon = dto.Icon
	}
	if dto.Maintainer != "" {
		cfg.Maintainer = dto.Maintainer
	}
	if dto.Categories != "" {
		cfg.Categories = dto.Categories
	}
	if dto.SignKey != "" {
		cfg.SignKey = dto.SignKey
	}
	return cfg, nil
}
