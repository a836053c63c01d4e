// config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// CORSConfig groups all CORS behavior and lists.
type CORSConfig struct {
	EnableCORS           bool     `mapstructure:"enable_cors"`
	CORSAllowedOrigin    string   `mapstructure:"cors_allowed_origin"`
	CORSAllowedMethods   []string `mapstructure:"cors_allowed_methods"`
	CORSAllowedHeaders   []string `mapstructure:"cors_allowed_headers"`
	CORSExposedHeaders   []string `mapstructure:"cors_exposed_headers"`
	CORSAllowCredentials bool     `mapstructure:"cors_allow_credentials"`
	CORSMaxAge           int      `mapstructure:"cors_max_age"`

	// CORSPreflightStatus is the status code written for preflight responses.
	// Supported values: 200 and 204.
	CORSPreflightStatus int `mapstructure:"cors_preflight_status"`
}

// CoreConfig holds the core configuration shared by crumpet-based services.
type CoreConfig struct {
	// runtime
	Env      string `mapstructure:"env"`       // "dev" | "prod"
	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error …

	HTTPPort int `mapstructure:"http_port"`

	CORS CORSConfig `mapstructure:",squash"`
}

// Dump returns a pretty, redacted JSON string of the config for debugging.
// Never logs secrets; use at debug level only.
func (c CoreConfig) Dump() string {
	s := c.redactedCopy()
	b, _ := json.MarshalIndent(s, "", "  ")
	return string(b)
}

func (c CoreConfig) redactedCopy() CoreConfig {
	cp := c
	// Nothing sensitive yet in CoreConfig (no API keys, no URIs).
	// If later we add secrets to core, redact them here.
	return cp
}

// Load merges defaults → config.* file(s) → env vars → explicit flags into one CoreConfig.
// Final precedence (highest wins): flags(explicit) > env > config > defaults.
func Load(logger *zap.Logger) (*CoreConfig, error) {
	// 0) Optionally load .env (safe: real env still wins over .env)
	if err := godotenv.Load(); err == nil && logger != nil {
		logger.Info("Loaded .env file")
	}

	// 1) Define flags (only *explicitly set* flags will override)
	pflag.String("env", "dev", `Runtime environment "dev"|"prod"`)
	pflag.String("log_level", "debug", "Log level")

	pflag.Int("http_port", 8080, "HTTP port")

	pflag.Bool("enable_cors", false, "Enable CORS")
	pflag.String("cors_allowed_origin", "*", `CORS: allowed origin or "*"`)

	// CORS lists as JSON strings or arrays
	pflag.String("cors_allowed_methods", "", `JSON array of methods, e.g. '["GET","POST"]'`)
	pflag.String("cors_allowed_headers", "", `JSON array of headers, e.g. '["Accept","Authorization"]'`)
	pflag.String("cors_exposed_headers", "", `JSON array of headers, e.g. '["Link"]'`)
	pflag.Bool("cors_allow_credentials", false, "CORS: allow credentials")
	pflag.Int("cors_max_age", 0, "CORS: max age seconds (0 omits the header)")
	pflag.Int("cors_preflight_status", 200, "CORS: preflight response status (200 or 204)")
	pflag.Parse()

	// 2) Viper + env
	v := viper.New()
	v.SetEnvPrefix("CRUMPET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Bind env for all keys so Unmarshal sees them.
	for _, k := range allKeys() {
		_ = v.BindEnv(k)
	}

	// 3) Optional config.* files (yaml|yml|json|toml)
	for _, ext := range [...]string{"yaml", "yml", "json", "toml"} {
		file := "config." + ext
		if _, err := os.Stat(file); err != nil {
			continue
		}
		b, err := os.ReadFile(file)
		if err != nil {
			if logger != nil {
				logger.Warn("cannot read config file", zap.String("file", file), zap.Error(err))
			}
			continue
		}
		v.SetConfigType(ext)
		if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
			if logger != nil {
				logger.Warn("cannot decode config file", zap.String("file", file), zap.Error(err))
			}
			continue
		}
		if logger != nil {
			logger.Info("Loaded config file", zap.String("file", file))
		}
	}

	// 4) Defaults (lowest precedence)
	setDefaults(v)

	// 5) Apply *explicit* flags (highest precedence)
	pflag.CommandLine.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = v.BindPFlag(f.Name, f)
		}
	})

	// 6) Normalize list keys (accept JSON strings → []string)
	if err := normalizeListKeys(logger, v,
		"cors_allowed_methods",
		"cors_allowed_headers",
		"cors_exposed_headers",
	); err != nil {
		return nil, err
	}

	// 7) Build struct
	var cfg CoreConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode core config: %w", err)
	}

	// 8) Validate
	if err := validateCoreConfig(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func allKeys() []string {
	return []string{
		"env", "log_level",
		"http_port",
		"enable_cors",
		"cors_allowed_origin",
		"cors_allowed_methods", "cors_allowed_headers", "cors_exposed_headers",
		"cors_allow_credentials", "cors_max_age", "cors_preflight_status",
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "debug")

	v.SetDefault("http_port", 8080)

	// Neutral CORS defaults
	v.SetDefault("enable_cors", false)
	v.SetDefault("cors_allowed_origin", "*")
	v.SetDefault("cors_allowed_methods", []string{})
	v.SetDefault("cors_allowed_headers", []string{})
	v.SetDefault("cors_exposed_headers", []string{})
	v.SetDefault("cors_allow_credentials", false)
	v.SetDefault("cors_max_age", 0)
	v.SetDefault("cors_preflight_status", http.StatusOK)
}

// normalizeListKeys coerces JSON-string values into []string for the given keys.
func normalizeListKeys(logger *zap.Logger, v *viper.Viper, keys ...string) error {
	for _, key := range keys {
		val := v.Get(key)
		switch t := val.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				continue
			}
			var arr []string
			if err := json.Unmarshal([]byte(s), &arr); err != nil {
				return fmt.Errorf("config key %q expects a JSON array string, got %q: %w", key, s, err)
			}
			v.Set(key, arr)
		case []interface{}:
			arr := make([]string, 0, len(t))
			for _, e := range t {
				arr = append(arr, fmt.Sprint(e))
			}
			v.Set(key, arr)
		case []string, nil:
			// already correct or unset
		default:
			if logger != nil {
				logger.Warn("unexpected type for list key; expected JSON array/string",
					zap.String("key", key), zap.Any("value", t))
			}
		}
	}
	return nil
}

func validateCoreConfig(cfg CoreConfig) error {
	var missing []string
	var invalid []string

	// Port sanity
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		invalid = append(invalid, "http_port must be in 1..65535")
	}

	// CORS sanity
	if cfg.CORS.EnableCORS {
		if strings.TrimSpace(cfg.CORS.CORSAllowedOrigin) == "" {
			missing = append(missing, "CORS: cors_allowed_origin required when enable_cors=true")
		}
		if len(cfg.CORS.CORSAllowedMethods) == 0 {
			missing = append(missing, "CORS: cors_allowed_methods (JSON array) required when enable_cors=true")
		}
		if cfg.CORS.CORSAllowedOrigin == "*" && cfg.CORS.CORSAllowCredentials {
			invalid = append(invalid, `CORS: cannot use "*" as cors_allowed_origin when cors_allow_credentials=true`)
		}
		if cfg.CORS.CORSMaxAge < 0 {
			invalid = append(invalid, "CORS: cors_max_age must be >= 0")
		}
		if s := cfg.CORS.CORSPreflightStatus; s != 0 && s != http.StatusOK && s != http.StatusNoContent {
			invalid = append(invalid, "CORS: cors_preflight_status must be 200 or 204")
		}
	}

	if len(missing) == 0 && len(invalid) == 0 {
		return nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid: "+strings.Join(invalid, ", "))
	}
	return fmt.Errorf("core configuration errors: %s", strings.Join(parts, " | "))
}
