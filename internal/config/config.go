// Package config loads the shardcost configuration from YAML files with
// environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/shardcost/internal/costmodel"
	"github.com/kailas-cloud/shardcost/internal/domain/stats"
)

// Config holds the shardcost service configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Logging    LoggingConfig    `yaml:"logging"`
	Cost       costmodel.Params `yaml:"cost"`
	Statistics StatisticsConfig `yaml:"statistics"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// StatisticsConfig overrides workload cardinalities. Zero fields keep the
// built-in defaults.
type StatisticsConfig struct {
	NumClients            int64            `yaml:"num_clients"`
	NumProducts           int64            `yaml:"num_products"`
	NumOrderLines         int64            `yaml:"num_order_lines"`
	NumWarehouses         int64            `yaml:"num_warehouses"`
	OrdersPerCustomer     int64            `yaml:"orders_per_customer"`
	ProductsPerCustomer   int64            `yaml:"products_per_customer"`
	CategoriesPerProduct  int64            `yaml:"categories_per_product"`
	NumBrands             int64            `yaml:"num_brands"`
	ProductsPerBrandApple int64            `yaml:"products_per_brand_apple"`
	NumDates              int64            `yaml:"num_dates"`
	NumServers            int64            `yaml:"num_servers"`
	Custom                map[string]int64 `yaml:"custom"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	defaults := costmodel.DefaultParams()
	if c.Cost.BandwidthBytesPerMS <= 0 {
		c.Cost.BandwidthBytesPerMS = defaults.BandwidthBytesPerMS
	}
	if c.Cost.CarbonPerGBTransfer <= 0 {
		c.Cost.CarbonPerGBTransfer = defaults.CarbonPerGBTransfer
	}
	if c.Cost.PricePerGBTransfer <= 0 {
		c.Cost.PricePerGBTransfer = defaults.PricePerGBTransfer
	}
	if c.Cost.CarbonPerServerMS <= 0 {
		c.Cost.CarbonPerServerMS = defaults.CarbonPerServerMS
	}
	if c.Cost.PricePerServerMS <= 0 {
		c.Cost.PricePerServerMS = defaults.PricePerServerMS
	}
	if c.Cost.IndexAccessTimeMS <= 0 {
		c.Cost.IndexAccessTimeMS = defaults.IndexAccessTimeMS
	}
	if c.Cost.FullScanTimePerDocMS <= 0 {
		c.Cost.FullScanTimePerDocMS = defaults.FullScanTimePerDocMS
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if err := c.Cost.Validate(); err != nil {
		return fmt.Errorf("cost: %w", err)
	}
	for name, value := range map[string]int64{
		"statistics.num_clients":     c.Statistics.NumClients,
		"statistics.num_products":    c.Statistics.NumProducts,
		"statistics.num_order_lines": c.Statistics.NumOrderLines,
		"statistics.num_warehouses":  c.Statistics.NumWarehouses,
		"statistics.num_servers":     c.Statistics.NumServers,
	} {
		if value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, value)
		}
	}
	return nil
}

// BuildStatistics applies the configured overrides to the default workload
// statistics and recomputes the derived counts.
func (c *Config) BuildStatistics() stats.Statistics {
	s := stats.Default()
	if v := c.Statistics.NumClients; v > 0 {
		s.NumClients = v
	}
	if v := c.Statistics.NumProducts; v > 0 {
		s.NumProducts = v
	}
	if v := c.Statistics.NumOrderLines; v > 0 {
		s.NumOrderLines = v
	}
	if v := c.Statistics.NumWarehouses; v > 0 {
		s.NumWarehouses = v
	}
	if v := c.Statistics.OrdersPerCustomer; v > 0 {
		s.OrdersPerCustomer = v
	}
	if v := c.Statistics.ProductsPerCustomer; v > 0 {
		s.ProductsPerCustomer = v
	}
	if v := c.Statistics.CategoriesPerProduct; v > 0 {
		s.CategoriesPerProduct = v
	}
	if v := c.Statistics.NumBrands; v > 0 {
		s.NumBrands = v
	}
	if v := c.Statistics.ProductsPerBrandApple; v > 0 {
		s.ProductsPerBrandApple = v
	}
	if v := c.Statistics.NumDates; v > 0 {
		s.NumDates = v
	}
	if v := c.Statistics.NumServers; v > 0 {
		s.NumServers = v
	}
	if len(c.Statistics.Custom) > 0 {
		s = s.WithCustom(c.Statistics.Custom)
	}
	return s.Normalize()
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
