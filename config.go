package ell

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the TOML-loadable form of an EventLoop's Options, read from the
// [loop] section of a coop.toml file by LoadConfig. cmd/coopctl does not
// load a coop.toml; it builds its options from command-line flags.
type Config struct {
	Loop struct {
		MaxTasks int    `toml:"max_tasks"`
		Fuzz     bool   `toml:"fuzz"`
		Seed     uint64 `toml:"seed"`
	} `toml:"loop"`
}

// LoadConfig parses a coop.toml file into a Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}

// Options converts a Config into EventLoop options.
func (c Config) Options() []Option {
	opts := []Option{WithMaxTasks(c.Loop.MaxTasks)}
	if c.Loop.Fuzz {
		opts = append(opts, WithFuzz(c.Loop.Seed))
	}
	return opts
}
