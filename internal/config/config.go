package config

import "time"

// Config is the root configuration for an auctioneer instance.
type Config struct {
	Instance InstanceConfig `yaml:"instance"`
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Auction  AuctionConfig  `yaml:"auction"`
	Database DBConfig       `yaml:"database"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Stream   StreamConfig   `yaml:"stream"`
}

// InstanceConfig identifies this auctioneer.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig locates the durable snapshot file.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// AuctionConfig holds session policy.
type AuctionConfig struct {
	// AuthorizedActors is the fixed allow-list for privileged operations
	// (skip, finalize, team deletion, purse assignment).
	AuthorizedActors []string `yaml:"authorized_actors"`
}

// DBConfig holds the optional Postgres connection for event archival.
// Archival is disabled when Host is empty.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// Enabled reports whether an archive database is configured.
func (db DBConfig) Enabled() bool {
	return db.Host != ""
}

// ArchiveConfig holds event writer batching settings.
type ArchiveConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	BufferSize    int           `yaml:"buffer_size"`
}

// StreamConfig holds WebSocket hub settings.
type StreamConfig struct {
	SendBuffer int `yaml:"send_buffer"`
}
