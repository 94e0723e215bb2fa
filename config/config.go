// Package config loads server configuration from defaults, an optional
// YAML file, OBSREMOTE_* environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sKeLeTr0n/OBSRemote/internal/model"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "OBSREMOTE"

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
	Store     StoreConfig     `mapstructure:"store"`
	Studio    StudioConfig    `mapstructure:"studio"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr            string   `mapstructure:"addr"`
	ReadBufferSize  int      `mapstructure:"read_buffer_size"`
	WriteBufferSize int      `mapstructure:"write_buffer_size"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"` // empty allows every origin
}

// WebSocketConfig holds per-connection settings.
type WebSocketConfig struct {
	PingInterval  time.Duration `mapstructure:"ping_interval"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	ReadLimit     int64         `mapstructure:"read_limit"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

// StoreConfig points at the SQLite file. An empty path keeps state in memory.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// StudioConfig seeds the scene collection and the stream engine.
type StudioConfig struct {
	StatusInterval time.Duration `mapstructure:"status_interval"`
	FPS            int           `mapstructure:"fps"`
	BitrateKbps    int           `mapstructure:"bitrate_kbps"`
	Scenes         []model.Scene `mapstructure:"scenes"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"addr":       "server.addr",
	"db":         "store.path",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// Loader reads configuration through a single viper instance so the file
// can be watched after the first load.
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader prepares a loader. path may be empty; flags may be nil.
func NewLoader(path string, flags *pflag.FlagSet) (*Loader, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return &Loader{v: v, path: path}, nil
}

// Load decodes and validates the current configuration.
func (l *Loader) Load() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Watch calls onChange with the reloaded configuration each time the
// config file changes. Invalid edits are passed to onError and otherwise
// ignored. It does nothing when no file was given.
func (l *Loader) Watch(onChange func(*Config), onError func(error)) {
	if l.path == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.Load()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	l.v.WatchConfig()
}
