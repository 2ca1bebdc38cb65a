package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/groupguard/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	TelegramBotToken   string        `koanf:"telegram_bot_token"`
	OwnerID            int64         `koanf:"owner_id"`
	SudoUsers          []int64       `koanf:"-"`
	StorageDriver      StorageDriver `koanf:"-"`
	StoragePath        string        `koanf:"storage_path"`
	DatabaseDSN        string        `koanf:"database_dsn"`
	HTTPPort           string        `koanf:"http_port"`
	AdminLookupTimeout int           `koanf:"admin_lookup_timeout"`
	AdminCacheTTL      int           `koanf:"admin_cache_ttl"`
	ActionTimeout      int           `koanf:"action_timeout"`
	DeleteCommands     bool          `koanf:"del_cmds"`
	SupportChat        string        `koanf:"support_chat"`
	AppEnv             AppEnv        `koanf:"-"`
}

// Search order for the optional config file
var configFiles = []string{
	"config.yaml",
	"config.yml",
	"config.json",
	"config.toml",
}

func Load() (*Config, error) {
	return load(configFiles)
}

func load(candidates []string) (*Config, error) {
	k := koanf.New(".")

	configFile, found := lo.Find(candidates, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Environment variables override config file values
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	defaults := map[string]any{
		"storage_driver":       string(StorageDriverFile),
		"storage_path":         "./data",
		"http_port":            "8080",
		"admin_lookup_timeout": 5,
		"admin_cache_ttl":      0,
		"action_timeout":       10,
		"del_cmds":             true,
		"support_chat":         "",
		"app_env":              string(AppEnvProduction),
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	cfg.SudoUsers = parseIDList(k.Get("sudo_users"))

	driver, err := ParseStorageDriver(k.String("storage_driver"))
	if err != nil {
		return nil, oops.With("storage_driver", k.String("storage_driver")).Wrap(err)
	}
	cfg.StorageDriver = driver

	if appEnv, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = appEnv
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	if cfg.TelegramBotToken == "" {
		return nil, errors.ErrMissingBotToken
	}
	if cfg.StorageDriver == StorageDriverPostgres && cfg.DatabaseDSN == "" {
		return nil, oops.With("storage_driver", cfg.StorageDriver).Errorf("database_dsn is required for the postgres driver")
	}

	return &cfg, nil
}

// AdminLookupTimeoutDuration returns the platform admin lookup timeout
func (c *Config) AdminLookupTimeoutDuration() time.Duration {
	return time.Duration(c.AdminLookupTimeout) * time.Second
}

// AdminCacheTTLDuration returns how long admin lookups are cached, zero disables the cache
func (c *Config) AdminCacheTTLDuration() time.Duration {
	return time.Duration(c.AdminCacheTTL) * time.Second
}

// ActionTimeoutDuration returns the timeout applied to each platform action
func (c *Config) ActionTimeoutDuration() time.Duration {
	return time.Duration(c.ActionTimeout) * time.Second
}

func parseIDList(raw any) []int64 {
	switch v := raw.(type) {
	case string:
		return ParseIDs(v)
	case []any:
		return lo.FilterMap(v, func(item any, _ int) (int64, bool) {
			switch val := item.(type) {
			case int64:
				return val, true
			case int:
				return int64(val), true
			case float64:
				return int64(val), true
			case string:
				ids := ParseIDs(val)
				if len(ids) == 1 {
					return ids[0], true
				}
				return 0, false
			default:
				return 0, false
			}
		})
	case int64:
		return []int64{v}
	case int:
		return []int64{int64(v)}
	case float64:
		return []int64{int64(v)}
	default:
		return []int64{}
	}
}

// ParseIDs parses comma-separated user IDs string into []int64
func ParseIDs(s string) []int64 {
	if s == "" {
		return []int64{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (int64, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return 0, false
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err == nil {
			return id, true
		}
		return 0, false
	})
}
