/*
Package config loads server configuration from TOML.

PURPOSE:
  One place for the knobs the server and CLI share: where the database
  lives, where the HTTP server listens, which origins may call it, and
  whether metrics are exposed. Defaults are usable without any file at
  all; a config file overrides them; flags override the file.

EXAMPLE (tally.toml):
  [server]
  addr = ":8080"
  cors_origins = ["http://localhost:5173"]
  metrics = true

  [storage]
  path = "./data/tally.db"
*/
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration tree.
type Config struct {
	Server  Server  `toml:"server"`
	Storage Storage `toml:"storage"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr        string   `toml:"addr"`
	CORSOrigins []string `toml:"cors_origins"`
	Metrics     bool     `toml:"metrics"`
}

// Storage configures persistence.
type Storage struct {
	// Path is the SQLite database file. ":memory:" is accepted for
	// throwaway runs.
	Path string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: Server{
			Addr:    ":8080",
			Metrics: true,
		},
		Storage: Storage{
			Path: "tally.db",
		},
	}
}

// Load reads a TOML file over the defaults. A missing path ("") returns
// the defaults unchanged; a missing file is an error, since the user
// asked for that file explicitly.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config file %s not found", path)
		}
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}
