package configs

import "time"

const (
	DatabaseDriverFile     = "file"
	DatabaseDriverPostgres = "postgres"

	ViewModeDirect   = "direct"
	ViewModeBuffered = "buffered"
)

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Views       ViewsConfig       `mapstructure:"views" validate:"required"`
	Uploads     UploadsConfig     `mapstructure:"uploads" validate:"required"`
	CORS        CORSConfig        `mapstructure:"cors"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
	ShutdownTimeout   int `mapstructure:"shutdown_timeout" validate:"required,min=1"`    // seconds (server stop + final flush)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=json console"`
}

// FileStorageConfig holds file storage configuration. Uploads always live
// here; portfolios too when the database driver is "file".
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// DatabaseConfig selects the portfolio store.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver" validate:"required,oneof=file postgres"`
	DSN          string `mapstructure:"dsn" validate:"required_if=Driver postgres"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"min=0"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// ViewsConfig controls how views are counted.
type ViewsConfig struct {
	Mode            string `mapstructure:"mode" validate:"required,oneof=direct buffered"`
	FlushIntervalMs int    `mapstructure:"flush_interval_ms" validate:"min=1"`
	MaxBatchSize    int    `mapstructure:"max_batch_size" validate:"min=1"`
	FlushTimeoutMs  int    `mapstructure:"flush_timeout_ms" validate:"min=0"` // 0 disables the timeout
	IgnoreBots      bool   `mapstructure:"ignore_bots"`
}

func (c ViewsConfig) FlushInterval() time.Duration {
	return time.Duration(c.FlushIntervalMs) * time.Millisecond
}

func (c ViewsConfig) FlushTimeout() time.Duration {
	return time.Duration(c.FlushTimeoutMs) * time.Millisecond
}

// UploadsConfig bounds uploaded files.
type UploadsConfig struct {
	MaxFileBytes     int64 `mapstructure:"max_file_bytes" validate:"min=1"`
	MaxProjectImages int   `mapstructure:"max_project_images" validate:"min=1"`
}

// CORSConfig is the cross-origin policy applied to every route.
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins" validate:"min=1"`
	AllowedMethods   []string `mapstructure:"allowed_methods" validate:"min=1"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" validate:"min=0"` // seconds
}
