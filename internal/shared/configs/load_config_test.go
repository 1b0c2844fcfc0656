package configs

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "test_config_*.yml")
	require.NoError(t, err)
	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	path := writeConfigFile(t, `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: debug
  format: console
file_storage:
  root_dir: ./data
database:
  driver: postgres
  dsn: postgres://localhost:5432/portfolio?sslmode=disable
  max_open_conns: 20
views:
  mode: buffered
  flush_interval_ms: 2000
  max_batch_size: 50
  flush_timeout_ms: 1500
  ignore_bots: true
uploads:
  max_file_bytes: 1024
  max_project_images: 3
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 10, cfg.Server.WriteTimeout)
	assert.Equal(t, 60, cfg.Server.IdleTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "./data", cfg.FileStorage.RootDir)

	assert.Equal(t, DatabaseDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost:5432/portfolio?sslmode=disable", cfg.Database.DSN)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)

	assert.Equal(t, ViewModeBuffered, cfg.Views.Mode)
	assert.Equal(t, 2*time.Second, cfg.Views.FlushInterval())
	assert.Equal(t, 50, cfg.Views.MaxBatchSize)
	assert.Equal(t, 1500*time.Millisecond, cfg.Views.FlushTimeout())
	assert.True(t, cfg.Views.IgnoreBots)

	assert.Equal(t, int64(1024), cfg.Uploads.MaxFileBytes)
	assert.Equal(t, 3, cfg.Uploads.MaxProjectImages)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `file_storage:
  root_dir: ./data
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DatabaseDriverFile, cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, ViewModeBuffered, cfg.Views.Mode)
	assert.Equal(t, 5*time.Second, cfg.Views.FlushInterval())
	assert.Equal(t, 1000, cfg.Views.MaxBatchSize)
	assert.Zero(t, cfg.Views.FlushTimeout())
	assert.False(t, cfg.Views.IgnoreBots)
	assert.Equal(t, int64(5*1024*1024), cfg.Uploads.MaxFileBytes)
	assert.Equal(t, 10, cfg.Uploads.MaxProjectImages)

	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET", "POST", "PUT", "PATCH", "DELETE"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"Content-Type", "Authorization"}, cfg.CORS.AllowedHeaders)
	assert.True(t, cfg.CORS.AllowCredentials)
	assert.Equal(t, 300, cfg.CORS.MaxAge)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORTFOLIO_VIEWS_MODE", "direct")
	t.Setenv("PORTFOLIO_SERVER_PORT", "9090")
	t.Setenv("PORTFOLIO_FILE_STORAGE_ROOT_DIR", "/var/lib/portfolio")
	t.Setenv("PORTFOLIO_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	path := writeConfigFile(t, `views:
  mode: buffered
file_storage:
  root_dir: ./data
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ViewModeDirect, cfg.Views.Mode)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/var/lib/portfolio", cfg.FileStorage.RootDir)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	path := writeConfigFile(t, `log:
  level: invalid
file_storage:
  root_dir: ./data
`)

	// the level is checked when the logger is built, not here
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "invalid", cfg.Log.Level)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{
			name: "port out of range",
			content: `server:
  port: 70000
file_storage:
  root_dir: ./data
`,
			wantField: "server.port (max=65535)",
		},
		{
			name:      "missing file storage root dir",
			content:   "file_storage: {}\n",
			wantField: "filestorage.rootdir (required)",
		},
		{
			name: "unknown view mode",
			content: `views:
  mode: eventually
file_storage:
  root_dir: ./data
`,
			wantField: "views.mode (oneof=direct buffered)",
		},
		{
			name: "postgres without dsn",
			content: `database:
  driver: postgres
file_storage:
  root_dir: ./data
`,
			wantField: "database.dsn (required when Driver postgres)",
		},
		{
			name: "unknown driver",
			content: `database:
  driver: sqlite
file_storage:
  root_dir: ./data
`,
			wantField: "database.driver (oneof=file postgres)",
		},
		{
			name: "zero batch size",
			content: `views:
  max_batch_size: 0
file_storage:
  root_dir: ./data
`,
			wantField: "views.maxbatchsize (min=1)",
		},
		{
			name: "empty cors origins",
			content: `cors:
  allowed_origins: []
file_storage:
  root_dir: ./data
`,
			wantField: "cors.allowedorigins (min=1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfigFile(t, tt.content))
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig("./does-not-exist.yml")
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
