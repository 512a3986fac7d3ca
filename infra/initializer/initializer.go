package initializer

import (
	"fmt"
	"net/http"
	"os"

	"github.com/amirasaad/paycore/infra/metrics"
	infra_provider "github.com/amirasaad/paycore/infra/provider"
	"github.com/amirasaad/paycore/pkg/app"
	"github.com/amirasaad/paycore/pkg/config"
	"github.com/amirasaad/paycore/pkg/currency"
	"github.com/amirasaad/paycore/pkg/paymenterror"
	"github.com/amirasaad/paycore/pkg/paymentlog"
	"github.com/sony/gobreaker"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	if cfg == nil || cfg.Log == nil || cfg.Payout == nil || cfg.Breaker == nil || cfg.Metrics == nil {
		return nil, fmt.Errorf("incomplete configuration")
	}

	deps = &app.Deps{}
	logger := setupLogger(cfg.Log, os.Stdout)
	deps.Logger = logger

	var opts []paymentlog.Option
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace)
		deps.Metrics = collector
		opts = append(opts, paymentlog.WithRecorder(collector))
	} else {
		logger.Info("Metrics disabled")
	}
	deps.PaymentLog = paymentlog.New(logger, opts...)
	deps.Classifier = paymenterror.New(deps.PaymentLog)

	if currency.SupportedCurrencies(cfg.Payout.Provider) == nil {
		return nil, fmt.Errorf("unknown payout provider %q", cfg.Payout.Provider)
	}

	gatewayOpts := []infra_provider.Option{
		infra_provider.WithHTTPClient(&http.Client{Timeout: cfg.Payout.HTTPTimeout}),
		infra_provider.WithAPIKey(cfg.Payout.ApiKey),
		infra_provider.WithBreaker(*cfg.Breaker),
	}
	if collector != nil {
		gatewayOpts = append(gatewayOpts, infra_provider.WithStateListener(
			func(name string, to gobreaker.State) {
				collector.RecordCircuitState(name, circuitState(to))
			},
		))
	}
	deps.Payout = infra_provider.NewGateway(
		cfg.Payout.BaseURL,
		cfg.Payout.Provider,
		deps.PaymentLog,
		deps.Classifier,
		gatewayOpts...,
	)

	logger.Info("Payout gateway ready",
		"provider", cfg.Payout.Provider,
		"base_url", cfg.Payout.BaseURL,
		"breaker_failures", cfg.Breaker.ConsecutiveFailures,
	)
	return deps, nil
}

func circuitState(s gobreaker.State) metrics.CircuitState {
	switch s {
	case gobreaker.StateOpen:
		return metrics.CircuitOpen
	case gobreaker.StateHalfOpen:
		return metrics.CircuitHalfOpen
	default:
		return metrics.CircuitClosed
	}
}

