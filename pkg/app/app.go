package app

import (
	"log/slog"
	"net/http"

	"github.com/amirasaad/paycore/pkg/config"
	"github.com/amirasaad/paycore/pkg/paymenterror"
	"github.com/amirasaad/paycore/pkg/paymentlog"
	"github.com/amirasaad/paycore/pkg/provider/payment"
)

// Metrics is the metrics sink used by the HTTP layer and the payment logger.
type Metrics interface {
	paymentlog.Recorder
	ObserveValidation(country string, valid bool)
	Handler() http.Handler
}

// Deps contains all the dependencies built at startup
type Deps struct {
	Logger     *slog.Logger
	PaymentLog *paymentlog.Logger
	Classifier *paymenterror.Classifier
	Payout     payment.Payout
	Metrics    Metrics
}

type App struct {
	Deps   *Deps
	Config *config.App
}

func New(deps *Deps, cfg *config.App) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.PaymentLog == nil {
		deps.PaymentLog = paymentlog.New(deps.Logger)
	}
	if deps.Classifier == nil {
		deps.Classifier = paymenterror.New(deps.PaymentLog)
	}
	return &App{
		Deps:   deps,
		Config: cfg,
	}
}
