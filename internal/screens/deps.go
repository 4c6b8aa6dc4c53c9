package screens

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/diewo77/invoicedesk/i18n"
	"github.com/diewo77/invoicedesk/internal/clock"
	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/notify"
)

// Deps holds what every screen shares besides its store.
type Deps struct {
	Notifier  notify.Notifier
	Confirmer Confirmer
	Log       zerolog.Logger
	Clock     clock.Clock
	Lang      string

	// Draft defaults; zero values fall back to the model defaults.
	DefaultVATRate decimal.Decimal
	DefaultCountry string
	Currency       string
	PaymentDays    int
}

func (d Deps) withDefaults() Deps {
	if d.Notifier == nil {
		d.Notifier = notify.NewLog(d.Log)
	}
	if d.Confirmer == nil {
		d.Confirmer = AlwaysConfirm
	}
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	if !i18n.Supported(d.Lang) {
		d.Lang = i18n.DefaultLang
	}
	if d.DefaultVATRate.IsZero() {
		d.DefaultVATRate = models.DefaultVATRate
	}
	if d.DefaultCountry == "" {
		d.DefaultCountry = models.DefaultCountry
	}
	if d.Currency == "" {
		d.Currency = models.DefaultCurrency
	}
	if d.PaymentDays == 0 {
		d.PaymentDays = 14
	}
	return d
}

func (d Deps) t(code string) string { return i18n.T(d.Lang, code) }

func (d Deps) tf(code string, args ...any) string { return i18n.Tf(d.Lang, code, args...) }
