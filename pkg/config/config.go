// Package config loads service settings from an optional YAML file and the
// environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"flowershop/pkg/flower"
)

const (
	ServiceName  = "flowershop"
	DefaultAddr  = ":8080"
	DefaultTopic = "OrderFinalized"
)

// CatalogEntry is a flower seeded into the store at startup.
type CatalogEntry struct {
	Name     string  `yaml:"name"`
	Price    float64 `yaml:"price"`
	Quantity int     `yaml:"quantity"`
}

// Config holds the service settings. Empty DatabaseURL and RedisAddr fall
// back to in-memory orders and sessions; an empty KafkaBroker disables order
// events.
type Config struct {
	Addr              string         `yaml:"addr"`
	DatabaseURL       string         `yaml:"database_url"`
	RedisAddr         string         `yaml:"redis_addr"`
	KafkaBroker       string         `yaml:"kafka_broker"`
	KafkaTopic        string         `yaml:"kafka_topic"`
	OtelHost          string         `yaml:"otel_host"`
	SampleProbability float64        `yaml:"sample_probability"`
	LowStockThreshold int            `yaml:"low_stock_threshold"`
	FreshnessDays     int            `yaml:"freshness_days"`
	TLSCert           string         `yaml:"tls_cert"`
	TLSKey            string         `yaml:"tls_key"`
	Catalog           []CatalogEntry `yaml:"catalog"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:              DefaultAddr,
		KafkaTopic:        DefaultTopic,
		SampleProbability: 1.0,
		LowStockThreshold: 5,
		FreshnessDays:     7,
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	for key, dst := range map[string]*string{
		"FLOWERSHOP_ADDR":    &c.Addr,
		"DATABASE_URL":       &c.DatabaseURL,
		"REDIS_ADDR":         &c.RedisAddr,
		"KAFKA_BROKER":       &c.KafkaBroker,
		"KAFKA_ORDERS_TOPIC": &c.KafkaTopic,
		"OTEL_HOST":          &c.OtelHost,
		"TLS_CERT":           &c.TLSCert,
		"TLS_KEY":            &c.TLSKey,
	} {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	for key, dst := range map[string]*int{
		"LOW_STOCK_THRESHOLD": &c.LowStockThreshold,
		"FRESHNESS_DAYS":      &c.FreshnessDays,
	} {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}
	if v := os.Getenv("OTEL_SAMPLE_PROBABILITY"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("OTEL_SAMPLE_PROBABILITY: %w", err)
		}
		c.SampleProbability = p
	}
	return nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr cannot be empty"))
	}
	if c.SampleProbability < 0 || c.SampleProbability > 1 {
		errs = append(errs, fmt.Errorf("sample_probability must be within [0, 1], got %g", c.SampleProbability))
	}
	if c.LowStockThreshold <= 0 {
		errs = append(errs, fmt.Errorf("low_stock_threshold must be positive, got %d", c.LowStockThreshold))
	}
	if c.FreshnessDays <= 0 {
		errs = append(errs, fmt.Errorf("freshness_days must be positive, got %d", c.FreshnessDays))
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		errs = append(errs, errors.New("tls_cert and tls_key must be set together"))
	}
	if c.KafkaBroker != "" && c.KafkaTopic == "" {
		errs = append(errs, errors.New("kafka_topic is required with kafka_broker"))
	}
	for i, e := range c.Catalog {
		if _, err := flower.New(e.Name, e.Price, e.Quantity); err != nil {
			errs = append(errs, fmt.Errorf("catalog[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Adder receives seeded flowers.
type Adder interface {
	AddFlower(ctx context.Context, f flower.Flower) (flower.Flower, error)
}

// Seed adds every catalog entry to store with the configured freshness
// window, measured from now.
func (c Config) Seed(ctx context.Context, store Adder, now func() time.Time) error {
	if now == nil {
		now = time.Now
	}
	for _, e := range c.Catalog {
		f, err := flower.New(e.Name, e.Price, e.Quantity,
			flower.WithFreshnessDays(c.FreshnessDays), flower.WithClock(now))
		if err != nil {
			return fmt.Errorf("seeding %q: %w", e.Name, err)
		}
		if _, err := store.AddFlower(ctx, f); err != nil {
			return fmt.Errorf("seeding %q: %w", e.Name, err)
		}
	}
	return nil
}
