package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultServerAddr      = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultStorePath       = "auction_data.json"
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultBatchSize       = 100
	DefaultFlushInterval   = 1 * time.Second
	DefaultBufferSize      = 1000
	DefaultSendBuffer      = 64
)

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}

	if c.Database.Enabled() {
		applyDBDefaults(&c.Database)
	}

	if c.Archive.BatchSize == 0 {
		c.Archive.BatchSize = DefaultBatchSize
	}
	if c.Archive.FlushInterval == 0 {
		c.Archive.FlushInterval = DefaultFlushInterval
	}
	if c.Archive.BufferSize == 0 {
		c.Archive.BufferSize = DefaultBufferSize
	}

	if c.Stream.SendBuffer == 0 {
		c.Stream.SendBuffer = DefaultSendBuffer
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
