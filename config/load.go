package config

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	ENV_PREFIX            = "GATEWAY"
	SHARED_CONFIG_RETRIES = 3
)

// envKeys lists the keys that can be set through GATEWAY_ prefixed
// environment variables, e.g. GATEWAY_PAYMENT_PAYTO.
var envKeys = []string{
	"server.addr", "server.healthPort", "server.logLevel", "server.env", "server.id",
	"admission.apiKey", "admission.apiKeyHeader",
	"admission.rateLimit.window", "admission.rateLimit.max", "admission.rateLimit.cleanupThreshold",
	"upstream.url", "upstream.apiKey", "upstream.timeout",
	"payment.payTo", "payment.network", "payment.asset", "payment.facilitatorUrl",
	"payment.verifyTimeout", "payment.requirementTtl", "payment.maxPendingRequirements",
	"payment.maxTimeoutSeconds", "payment.priceUsd",
	"scanner.url", "scanner.pollInterval",
	"price.url", "price.apiKey",
	"tokens.path",
	"strategies.store", "strategies.redis.addr", "strategies.redis.password",
	"strategies.redis.db", "strategies.redis.prefix",
	"metrics.collectorUrl",
}

func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// GetConfigFromFile reads the configuration file at path. Fields missing from
// the file are taken from base when base is provided.
func GetConfigFromFile(path string, base *Config) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed reading config file %s: %w", path, err)
	}
	return process(v, base)
}

// GetConfigFromENV reads the configuration from GATEWAY_ environment variables.
func GetConfigFromENV(base *Config) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	return process(v, base)
}

// GetSharedConfigFromNetwork fetches a JSON or YAML configuration document
// that is used as the base for the local configuration.
func GetSharedConfigFromNetwork(url string) (*Config, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = SHARED_CONFIG_RETRIES
	client.RetryWaitMax = 5 * time.Second
	client.Logger = nil

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed fetching shared config: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed fetching shared config: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if strings.Contains(resp.Header.Get("Content-Type"), "json") {
		v.SetConfigType("json")
	}
	if err := v.ReadConfig(bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("failed parsing shared config: %w", err)
	}

	c := &Config{}
	if err := v.Unmarshal(c, decodeHook()); err != nil {
		return nil, err
	}
	return c, nil
}

func process(v *viper.Viper, base *Config) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c, decodeHook()); err != nil {
		return nil, err
	}

	if base != nil {
		if err := mergo.Merge(c, base); err != nil {
			return nil, err
		}
	}

	if err := c.SetDefaults(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
