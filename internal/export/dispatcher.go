package export

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/diewo77/invoicedesk/i18n"
	"github.com/diewo77/invoicedesk/internal/metrics"
	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/notify"
)

// Dispatcher resolves an invoice's client and issuing company from loaded
// collections, then runs an exporter or composes an e-mail. Every call
// emits exactly one notification.
type Dispatcher struct {
	registry *Registry
	notifier notify.Notifier
	log      zerolog.Logger

	// Opener receives composed e-mails; nil disables Email's hand-off.
	Opener Opener
	// Lang selects document labels and messages.
	Lang string
	// Template is passed to exporters in Document.Template.
	Template string
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// NewDispatcher returns a dispatcher over registry.
func NewDispatcher(registry *Registry, notifier notify.Notifier, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		notifier: notifier,
		log:      log,
		Lang:     i18n.DefaultLang,
		Template: TemplateStandard,
	}
}

func (d *Dispatcher) tf(code string, args ...any) string { return i18n.Tf(d.Lang, code, args...) }

// resolve builds the document or reports which party is missing.
func (d *Dispatcher) resolve(inv models.Invoice, clients []models.Client, companies []models.CompanySettings) (Document, error) {
	var client *models.Client
	for i := range clients {
		if clients[i].ID == inv.ClientID {
			client = &clients[i]
			break
		}
	}
	if client == nil {
		d.log.Warn().Str("invoice", inv.Number).Uint("client_id", inv.ClientID).Msg("invoice client not found")
		d.notifier.Error(d.tf("notify.missing_client", inv.Number))
		return Document{}, fmt.Errorf("invoice %s client %d: %w", inv.Number, inv.ClientID, ErrUnresolved)
	}
	company, ok := models.IssuingCompany(companies)
	if !ok {
		d.log.Warn().Str("invoice", inv.Number).Msg("no company settings")
		d.notifier.Error(d.tf("notify.missing_company"))
		return Document{}, fmt.Errorf("invoice %s company: %w", inv.Number, ErrUnresolved)
	}
	return Document{
		Invoice:  inv,
		Company:  company,
		Client:   *client,
		Lines:    inv.Items,
		Locale:   d.Lang,
		Template: d.Template,
	}, nil
}

// Export renders inv in format.
func (d *Dispatcher) Export(ctx context.Context, inv models.Invoice, clients []models.Client, companies []models.CompanySettings, format Format) (Artifact, error) {
	log := d.log.With().Str("invoice", inv.Number).Str("format", string(format)).Logger()

	// Unregistered formats are counted under UnknownFormatLabel.
	exporter, ok := d.registry.Get(format)
	label := string(format)
	if !ok {
		label = UnknownFormatLabel
	}

	doc, err := d.resolve(inv, clients, companies)
	if err != nil {
		d.Metrics.ObserveExport(label, metrics.OutcomeUnresolved)
		return Artifact{}, err
	}
	if !ok {
		log.Warn().Msg("no exporter registered")
		d.notifier.Error(d.tf("notify.unknown_format", format))
		d.Metrics.ObserveExport(label, metrics.OutcomeUnknownFormat)
		return Artifact{}, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	artifact, err := exporter.Export(ctx, doc)
	if err != nil {
		log.Error().Err(err).Msg("export failed")
		d.notifier.Error(d.tf("notify.export_failed", inv.Number))
		d.Metrics.ObserveExport(label, metrics.OutcomeError)
		return Artifact{}, fmt.Errorf("export invoice %s as %s: %w", inv.Number, format, err)
	}
	log.Info().Str("file", artifact.Filename).Int("bytes", len(artifact.Data)).Msg("invoice exported")
	d.notifier.Success(d.tf("notify.exported", inv.Number, format))
	d.Metrics.ObserveExport(label, metrics.OutcomeOK)
	return artifact, nil
}

// Email composes the invoice message for the client and passes its mailto:
// link to the Opener.
func (d *Dispatcher) Email(ctx context.Context, inv models.Invoice, clients []models.Client, companies []models.CompanySettings) (Mail, error) {
	log := d.log.With().Str("invoice", inv.Number).Logger()

	doc, err := d.resolve(inv, clients, companies)
	if err != nil {
		d.Metrics.ObserveEmail(metrics.OutcomeUnresolved)
		return Mail{}, err
	}
	if doc.Client.Email == "" {
		log.Warn().Uint("client_id", doc.Client.ID).Msg("client has no e-mail")
		d.notifier.Error(d.tf("notify.missing_email", doc.Client.Name))
		d.Metrics.ObserveEmail(metrics.OutcomeUnresolved)
		return Mail{}, fmt.Errorf("client %d: %w", doc.Client.ID, ErrNoEmail)
	}

	mail := composeMail(doc)
	if d.Opener != nil {
		if err := d.Opener.Open(ctx, mail.URL()); err != nil {
			log.Error().Err(err).Msg("open mail failed")
			d.notifier.Error(d.tf("notify.email_failed", inv.Number))
			d.Metrics.ObserveEmail(metrics.OutcomeError)
			return Mail{}, fmt.Errorf("open mail for invoice %s: %w", inv.Number, err)
		}
	}
	log.Info().Str("to", mail.To).Msg("invoice e-mail prepared")
	d.notifier.Success(d.tf("notify.email_opened", inv.Number))
	d.Metrics.ObserveEmail(metrics.OutcomeOK)
	return mail, nil
}
