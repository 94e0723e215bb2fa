package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.ReadBufferSize < 0 {
		return errors.New("server.read_buffer_size must be >= 0")
	}
	if c.Server.WriteBufferSize < 0 {
		return errors.New("server.write_buffer_size must be >= 0")
	}

	if c.WebSocket.PingInterval <= 0 {
		return errors.New("websocket.ping_interval must be > 0")
	}
	if c.WebSocket.WriteTimeout <= 0 {
		return errors.New("websocket.write_timeout must be > 0")
	}
	if c.WebSocket.ReadLimit < 1 {
		return errors.New("websocket.read_limit must be >= 1")
	}
	if c.WebSocket.FlushInterval <= 0 {
		return errors.New("websocket.flush_interval must be > 0")
	}

	if c.Studio.StatusInterval <= 0 {
		return errors.New("studio.status_interval must be > 0")
	}
	if c.Studio.FPS < 1 {
		return fmt.Errorf("studio.fps must be >= 1, got %d", c.Studio.FPS)
	}
	if c.Studio.BitrateKbps < 0 {
		return fmt.Errorf("studio.bitrate_kbps must be >= 0, got %d", c.Studio.BitrateKbps)
	}
	seen := make(map[string]bool, len(c.Studio.Scenes))
	for i, sc := range c.Studio.Scenes {
		if err := validateScene(fmt.Sprintf("studio.scenes[%d]", i), sc.Name, sc.SourceNames()); err != nil {
			return err
		}
		if seen[sc.Name] {
			return fmt.Errorf("studio.scenes[%d].name %q is duplicated", i, sc.Name)
		}
		seen[sc.Name] = true
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func validateScene(prefix, name string, sources []string) error {
	if name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	seen := make(map[string]bool, len(sources))
	for j, src := range sources {
		if src == "" {
			return fmt.Errorf("%s.sources[%d].name is required", prefix, j)
		}
		if seen[src] {
			return fmt.Errorf("%s.sources[%d].name %q is duplicated", prefix, j, src)
		}
		seen[src] = true
	}
	return nil
}
