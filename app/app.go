// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/sprintertech/sprinter-gateway/admission"
	"github.com/sprintertech/sprinter-gateway/api"
	"github.com/sprintertech/sprinter-gateway/api/handlers"
	"github.com/sprintertech/sprinter-gateway/cache"
	"github.com/sprintertech/sprinter-gateway/config"
	"github.com/sprintertech/sprinter-gateway/health"
	"github.com/sprintertech/sprinter-gateway/intent"
	"github.com/sprintertech/sprinter-gateway/metrics"
	"github.com/sprintertech/sprinter-gateway/observability"
	"github.com/sprintertech/sprinter-gateway/payment"
	"github.com/sprintertech/sprinter-gateway/price"
	"github.com/sprintertech/sprinter-gateway/scanner"
	"github.com/sprintertech/sprinter-gateway/strategy"
	"github.com/sprintertech/sprinter-gateway/stream"
	"github.com/sprintertech/sprinter-gateway/tokens"
	"github.com/sprintertech/sprinter-gateway/upstream"
)

var Version string

var errTerminated = errors.New("terminated by signal")

func Run() error {
	configuration, err := loadConfig()
	panicOnError(err)

	level, err := zerolog.ParseLevel(configuration.Server.LogLevel)
	panicOnError(err)
	observability.ConfigureLogger(level, os.Stdout, configuration.Server.Env == "dev")

	log.Info().Msg("Successfully loaded configuration")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokenRegistry, err := tokens.LoadRegistry(configuration.Tokens.Path)
	panicOnError(err)
	asset, err := tokenRegistry.Lookup(configuration.Payment.Asset)
	panicOnError(err)
	panicOnError(configuration.Payment.ValidatePrices(asset.Decimals))
	log.Info().Msgf("Loaded %d tokens", len(tokenRegistry.Tokens()))

	mp, err := observability.InitMetricProvider(ctx, configuration.Metrics.CollectorUrl)
	panicOnError(err)
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Error().Msgf("Error shutting down meter provider: %v", err)
		}
	}()

	requirements := cache.NewRequirementCache(
		ctx,
		configuration.Payment.RequirementTtl,
		configuration.Payment.MaxPending)
	gatewayMetrics, err := metrics.NewGatewayMetrics(
		ctx,
		mp.Meter("gateway-metric-provider"),
		configuration.Server.Env,
		configuration.Server.Id,
		Version,
		requirements.Len)
	panicOnError(err)

	gate := payment.NewGate(
		payment.GateConfig{
			PayTo:             common.HexToAddress(configuration.Payment.PayTo),
			Network:           configuration.Payment.Network,
			Asset:             asset,
			VerifyTimeout:     configuration.Payment.VerifyTimeout,
			MaxTimeoutSeconds: configuration.Payment.MaxTimeoutSeconds,
		},
		map[string]payment.SchemeVerifier{
			payment.SCHEME_EXACT: payment.NewFacilitatorVerifier(configuration.Payment.FacilitatorUrl),
		},
		requirements,
		gatewayMetrics)

	checks := make(map[string]health.Check)
	store, err := newStore(configuration.Strategies, checks)
	panicOnError(err)
	strategies := strategy.NewRegistry(store)

	var pricer stream.TokenPricer
	if configuration.Price.ApiKey != "" {
		pricer = price.NewCoinmarketcapAPI(configuration.Price.Url, configuration.Price.ApiKey)
	}
	reporter := stream.NewReporter(intent.NewParser(tokenRegistry), tokenRegistry, pricer)

	var monitor handlers.OpportunityMonitor
	if configuration.Scanner.Url != "" {
		monitor = stream.NewMonitor(scanner.NewHTTPScanner(configuration.Scanner.Url), configuration.Scanner.PollInterval)
	}
	var executor handlers.UpstreamOpener
	if configuration.Upstream.Url != "" {
		executor = upstream.NewClient(
			configuration.Upstream.Url,
			configuration.Upstream.ApiKey,
			configuration.Upstream.Timeout)
	}

	if configuration.Admission.ApiKey == "" {
		log.Warn().Msg("No API key configured, private endpoints accept every caller")
	}
	controller := admission.NewController(
		admission.NewAuthenticator(configuration.Admission.ApiKey, configuration.Admission.ApiKeyHeader),
		admission.NewRateLimiter(
			configuration.Admission.RateLimit.Window,
			configuration.Admission.RateLimit.Max,
			configuration.Admission.RateLimit.CleanupThreshold),
		gatewayMetrics)

	router := api.NewRouter(controller, api.Handlers{
		Agent:      handlers.NewAgentHandler(reporter, gatewayMetrics),
		Monitor:    handlers.NewMonitorHandler(monitor, gatewayMetrics),
		Paid:       handlers.NewPaidHandler(executor, gatewayMetrics),
		Strategies: handlers.NewStrategiesHandler(gate, strategies, products(configuration.Payment)),
		Listings:   handlers.NewListingsHandler(strategies),
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Serve(ctx, configuration.Server.Addr, router)
	})
	g.Go(func() error {
		health.StartHealthEndpoint(ctx, configuration.Server.HealthPort, checks)
		return nil
	})
	g.Go(func() error {
		sysErr := make(chan os.Signal, 1)
		signal.Notify(sysErr,
			syscall.SIGTERM,
			syscall.SIGINT,
			syscall.SIGHUP,
			syscall.SIGQUIT)
		defer signal.Stop(sysErr)

		select {
		case sig := <-sysErr:
			log.Info().Msgf("terminating got ` [%v] signal", sig)
			return errTerminated
		case <-ctx.Done():
			return nil
		}
	})

	log.Info().Msgf("Started gateway %s on %s. Version: v%s", configuration.Server.Id, configuration.Server.Addr, Version)

	err = g.Wait()
	if errors.Is(err, errTerminated) {
		return nil
	}
	return err
}

func loadConfig() (*config.Config, error) {
	var err error
	var base *config.Config

	configURL := viper.GetString(config.ConfigURLFlagName)
	if configURL != "" {
		base, err = config.GetSharedConfigFromNetwork(configURL)
		if err != nil {
			return nil, err
		}
	}

	configFlag := viper.GetString(config.ConfigFlagName)
	if strings.ToLower(configFlag) == "env" {
		return config.GetConfigFromENV(base)
	}
	return config.GetConfigFromFile(configFlag, base)
}

func newStore(c config.StrategiesConfig, checks map[string]health.Check) (strategy.Store, error) {
	switch c.Store {
	case config.REDIS_STORE:
		{
			client := redis.NewClient(&redis.Options{
				Addr:     c.Redis.Addr,
				Password: c.Redis.Password,
				DB:       c.Redis.DB,
			})
			checks["redis"] = func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			}
			log.Info().Str("addr", c.Redis.Addr).Msg("Using redis strategy store")
			return strategy.NewRedisStore(client, c.Redis.Prefix), nil
		}
	case config.MEMORY_STORE:
		return strategy.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported strategy store %s", c.Store)
	}
}

func products(c config.PaymentConfig) map[string]handlers.Product {
	products := make(map[string]handlers.Product, len(c.Products))
	for name, p := range c.Products {
		products[name] = handlers.Product{
			Pricing: payment.Pricing{
				PriceUsd:    config.FormatPrice(p.PriceUsd),
				Description: p.Description,
			},
			Category: p.Category,
		}
	}
	return products
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
