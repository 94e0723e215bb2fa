package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for optional configuration fields.
const (
	DefaultAddr            = ":4444"
	DefaultReadBufferSize  = 4096
	DefaultWriteBufferSize = 4096
	DefaultPingInterval    = 30 * time.Second
	DefaultWriteTimeout    = 5 * time.Second
	DefaultReadLimit       = 64 << 10
	DefaultFlushInterval   = 50 * time.Millisecond
	DefaultStorePath       = "obsremote.db"
	DefaultStatusInterval  = 2 * time.Second
	DefaultFPS             = 30
	DefaultBitrateKbps     = 2500
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.read_buffer_size", DefaultReadBufferSize)
	v.SetDefault("server.write_buffer_size", DefaultWriteBufferSize)
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("websocket.ping_interval", DefaultPingInterval)
	v.SetDefault("websocket.write_timeout", DefaultWriteTimeout)
	v.SetDefault("websocket.read_limit", DefaultReadLimit)
	v.SetDefault("websocket.flush_interval", DefaultFlushInterval)

	v.SetDefault("store.path", DefaultStorePath)

	v.SetDefault("studio.status_interval", DefaultStatusInterval)
	v.SetDefault("studio.fps", DefaultFPS)
	v.SetDefault("studio.bitrate_kbps", DefaultBitrateKbps)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}
