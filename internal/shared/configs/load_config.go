package configs

import (
	"errors"
	"fmt"
	"strings"

	"portfolio-views/internal/shared/validators"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PORTFOLIO_VIEWS_MODE=direct.
const EnvPrefix = "PORTFOLIO"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.driver", DatabaseDriverFile)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("views.mode", ViewModeBuffered)
	v.SetDefault("views.flush_interval_ms", 5000)
	v.SetDefault("views.max_batch_size", 1000)
	v.SetDefault("views.flush_timeout_ms", 0)
	v.SetDefault("views.ignore_bots", false)

	v.SetDefault("uploads.max_file_bytes", 5*1024*1024)
	v.SetDefault("uploads.max_project_images", 10)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 300)
}

// LoadConfig reads configuration from file, applies defaults and environment
// overrides, and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// keys without a default are only visible to Unmarshal once bound
	_ = v.BindEnv("file_storage.root_dir")

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		var ve validators.ValidationErrors
		if errors.As(err, &ve) {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// "Config.Views.Mode" -> "views.mode"
	if e.StructNamespace() != "" {
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			field = strings.ToLower(strings.Join(parts[1:], "."))
		}
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "required_if":
		return fmt.Sprintf("%s (required when %s)", field, e.Param())
	case "min":
		return fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		return fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, tag)
	}
}
