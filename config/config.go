// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/sprintertech/sprinter-gateway/tokens"
)

const (
	MEMORY_STORE = "memory"
	REDIS_STORE  = "redis"
)

var DefaultProducts = map[string]ProductConfig{
	"arbitrage": {
		PriceUsd:    0.05,
		Description: "Ranked arbitrage strategies",
		Category:    "arbitrage",
	},
	"yield": {
		PriceUsd:    0.05,
		Description: "Ranked yield strategies",
		Category:    "yield",
	},
	"premium": {
		PriceUsd:    0.10,
		Description: "Top strategies across all categories",
	},
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Admission  AdmissionConfig  `mapstructure:"admission"`
	Upstream   UpstreamConfig   `mapstructure:"upstream"`
	Payment    PaymentConfig    `mapstructure:"payment"`
	Scanner    ScannerConfig    `mapstructure:"scanner"`
	Price      PriceConfig      `mapstructure:"price"`
	Tokens     TokensConfig     `mapstructure:"tokens"`
	Strategies StrategiesConfig `mapstructure:"strategies"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type ServerConfig struct {
	Addr       string `mapstructure:"addr" default:":8080"`
	HealthPort uint16 `mapstructure:"healthPort" default:"9001"`
	LogLevel   string `mapstructure:"logLevel" default:"info"`
	Env        string `mapstructure:"env" default:"dev"`
	Id         string `mapstructure:"id" default:"gateway"`
}

type AdmissionConfig struct {
	ApiKey       string          `mapstructure:"apiKey"`
	ApiKeyHeader string          `mapstructure:"apiKeyHeader" default:"X-API-Key"`
	RateLimit    RateLimitConfig `mapstructure:"rateLimit"`
}

type RateLimitConfig struct {
	Window           time.Duration `mapstructure:"window" default:"1m"`
	Max              int           `mapstructure:"max" default:"60"`
	CleanupThreshold int           `mapstructure:"cleanupThreshold" default:"10000"`
}

type UpstreamConfig struct {
	Url     string        `mapstructure:"url"`
	ApiKey  string        `mapstructure:"apiKey"`
	Timeout time.Duration `mapstructure:"timeout" default:"30s"`
}

type PaymentConfig struct {
	PayTo             string                   `mapstructure:"payTo"`
	Network           string                   `mapstructure:"network" default:"base"`
	Asset             string                   `mapstructure:"asset" default:"USDC"`
	FacilitatorUrl    string                   `mapstructure:"facilitatorUrl" default:"https://x402.org/facilitator"`
	VerifyTimeout     time.Duration            `mapstructure:"verifyTimeout" default:"10s"`
	RequirementTtl    time.Duration            `mapstructure:"requirementTtl" default:"5m"`
	MaxPending        uint64                   `mapstructure:"maxPendingRequirements" default:"100000"`
	MaxTimeoutSeconds int                      `mapstructure:"maxTimeoutSeconds" default:"60"`
	PriceUsd          float64                  `mapstructure:"priceUsd" default:"0.01"`
	Products          map[string]ProductConfig `mapstructure:"products"`
}

type ProductConfig struct {
	PriceUsd    float64 `mapstructure:"priceUsd"`
	Description string  `mapstructure:"description"`
	Category    string  `mapstructure:"category"`
}

type ScannerConfig struct {
	Url          string        `mapstructure:"url"`
	PollInterval time.Duration `mapstructure:"pollInterval" default:"5s"`
}

type PriceConfig struct {
	Url    string `mapstructure:"url" default:"https://pro-api.coinmarketcap.com"`
	ApiKey string `mapstructure:"apiKey"`
}

type TokensConfig struct {
	Path string `mapstructure:"path"`
}

type StrategiesConfig struct {
	Store string      `mapstructure:"store" default:"memory"`
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" default:"localhost:6379"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix" default:"gateway"`
}

type MetricsConfig struct {
	CollectorUrl string `mapstructure:"collectorUrl"`
}

// SetDefaults fills every unset field with its default value.
func (c *Config) SetDefaults() error {
	err := defaults.Set(c)
	if err != nil {
		return err
	}

	if len(c.Payment.Products) == 0 {
		c.Payment.Products = make(map[string]ProductConfig, len(DefaultProducts))
		for name, p := range DefaultProducts {
			c.Payment.Products[name] = p
		}
	}
	for name, p := range c.Payment.Products {
		if p.PriceUsd == 0 {
			p.PriceUsd = c.Payment.PriceUsd
			c.Payment.Products[name] = p
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid server.logLevel %s", c.Server.LogLevel)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("required field server.addr empty")
	}
	if c.Admission.RateLimit.Window <= 0 {
		return fmt.Errorf("admission.rateLimit.window must be positive")
	}
	if c.Admission.RateLimit.Max <= 0 {
		return fmt.Errorf("admission.rateLimit.max must be positive")
	}
	if !common.IsHexAddress(c.Payment.PayTo) {
		return fmt.Errorf("payment.payTo %s is not a valid address", c.Payment.PayTo)
	}
	if c.Payment.Network == "" {
		return fmt.Errorf("required field payment.network empty")
	}
	if c.Payment.FacilitatorUrl == "" {
		return fmt.Errorf("required field payment.facilitatorUrl empty")
	}
	if c.Payment.PriceUsd < 0 {
		return fmt.Errorf("payment.priceUsd must not be negative")
	}
	if c.Payment.MaxPending == 0 {
		return fmt.Errorf("payment.maxPendingRequirements must be positive")
	}
	for name, p := range c.Payment.Products {
		if p.PriceUsd < 0 {
			return fmt.Errorf("payment.products.%s.priceUsd must not be negative", name)
		}
	}

	switch c.Strategies.Store {
	case MEMORY_STORE, REDIS_STORE:
	default:
		return fmt.Errorf("unsupported strategies.store %s", c.Strategies.Store)
	}
	return nil
}

// FormatPrice renders a USD price the way it is quoted to callers.
func FormatPrice(priceUsd float64) string {
	return strconv.FormatFloat(priceUsd, 'f', -1, 64)
}

// ValidatePrices checks that every product price can be expressed in base
// units of the payment asset.
func (c PaymentConfig) ValidatePrices(decimals uint8) error {
	if _, err := tokens.ToBaseUnits(FormatPrice(c.PriceUsd), decimals); err != nil {
		return fmt.Errorf("payment.priceUsd: %w", err)
	}
	for name, p := range c.Products {
		if _, err := tokens.ToBaseUnits(FormatPrice(p.PriceUsd), decimals); err != nil {
			return fmt.Errorf("payment.products.%s.priceUsd: %w", name, err)
		}
	}
	return nil
}
