package configs

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "STOREFRONT_"

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	Catalog struct {
		SeedFile string `koanf:"seed_file"`
	} `koanf:"catalog"`

	Orders struct {
		FirstID      int  `koanf:"first_id"`
		StrictStatus bool `koanf:"strict_status"`
	} `koanf:"orders"`

	OrderLog struct {
		Enabled bool   `koanf:"enabled"`
		DSN     string `koanf:"dsn"`
	} `koanf:"orderlog"`

	Metrics struct {
		Textfile string `koanf:"textfile"`
	} `koanf:"metrics"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/test). Optional: missing files are ignored.
	if envName != "" {
		_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())
	}

	// 3) environment variables override (prefix STOREFRONT_, nested with __)
	// e.g. STOREFRONT_ORDERS__STRICT_STATUS, STOREFRONT_APP__LOG_FILE
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name required")
	}
	if c.Orders.FirstID <= 0 {
		return fmt.Errorf("orders.first_id must be positive, got %d", c.Orders.FirstID)
	}
	if c.OrderLog.Enabled && c.OrderLog.DSN == "" {
		return fmt.Errorf("orderlog.dsn required when orderlog is enabled")
	}
	return nil
}
