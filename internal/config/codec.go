package config

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// codec converts Config to and from a file format.
type codec struct {
	marshal   func(cfg *Config) ([]byte, error)
	unmarshal func(data []byte, cfg *Config) error
}

//nolint:gochecknoglobals // Immutable lookup tables.
var (
	tomlCodec = codec{
		marshal: func(cfg *Config) ([]byte, error) {
			var buffer bytes.Buffer
			if err := toml.NewEncoder(&buffer).Encode(cfg); err != nil {
				return nil, err
			}

			return buffer.Bytes(), nil
		},
		unmarshal: func(data []byte, cfg *Config) error {
			return toml.Unmarshal(data, cfg)
		},
	}

	yamlCodec = codec{
		marshal: func(cfg *Config) ([]byte, error) {
			return yaml.Marshal(cfg)
		},
		unmarshal: func(data []byte, cfg *Config) error {
			return yaml.Unmarshal(data, cfg)
		},
	}
)

// codecFor picks YAML for .yaml/.yml files and TOML for everything else.
func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec
	default:
		return tomlCodec
	}
}
