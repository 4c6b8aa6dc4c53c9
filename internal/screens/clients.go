package screens

import (
	"context"
	"fmt"

	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/search"
	"github.com/diewo77/invoicedesk/internal/store"
	"github.com/diewo77/invoicedesk/validation"
)

const entityClient = "entity.client"

// ClientRow is a client with its list identifier column resolved.
type ClientRow struct {
	models.Client
	TaxID string `json:"tax_id"`
}

// ClientScreen is the client list with its search box and edit dialog.
type ClientScreen struct {
	deps  Deps
	store store.ClientStore

	items []models.Client
	query string

	Editor *Editor[models.Client]
}

// NewClientScreen returns an empty screen; call Refresh to load it.
func NewClientScreen(s store.ClientStore, deps Deps) *ClientScreen {
	deps = deps.withDefaults()
	cs := &ClientScreen{deps: deps, store: s}
	cs.Editor = NewEditor(deps, EditorHooks[models.Client]{
		Entity: entityClient,
		New: func() models.Client {
			return models.Client{
				Country:       deps.DefaultCountry,
				Type:          models.ClientTypeCompany,
				SchemaVersion: models.ClientSchemaVersion,
			}
		},
		Copy: func(c models.Client) models.Client {
			models.UpgradeClient(&c)
			return c
		},
		Validate: ValidateClient,
		Create:   s.CreateClient,
		Update:   s.UpdateClient,
		Saved:    func(ctx context.Context) { _ = cs.Refresh(ctx) },
	})
	return cs
}

// ValidateClient checks a client draft, including the identifier formats of
// its jurisdiction.
func ValidateClient(c models.Client) validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", c.Name, v)
	c.TaxIdentity().Validate(v)
	return v
}

// Refresh reloads the list. On failure the previous items are kept.
func (s *ClientScreen) Refresh(ctx context.Context) error {
	items, err := s.store.ListClients(ctx)
	if err != nil {
		return loadFailed(s.deps, entityClient, err)
	}
	s.items = items
	return nil
}

// Items returns every loaded client.
func (s *ClientScreen) Items() []models.Client { return s.items }

// SetQuery changes the search text.
func (s *ClientScreen) SetQuery(q string) { s.query = q }

// Query returns the search text.
func (s *ClientScreen) Query() string { return s.query }

// Visible returns the clients matching the search text.
func (s *ClientScreen) Visible() []models.Client {
	return search.Clients(s.items, s.query)
}

// Rows returns the visible clients with their identifier column.
func (s *ClientScreen) Rows() []ClientRow {
	visible := s.Visible()
	rows := make([]ClientRow, len(visible))
	for i, c := range visible {
		rows[i] = ClientRow{Client: c, TaxID: c.TaxIDDisplay()}
	}
	return rows
}

// TaxFields returns the identifier inputs to show for the draft's country.
func (s *ClientScreen) TaxFields() []models.TaxField {
	return models.TaxFieldsFor(s.Editor.Draft().Country)
}

// Find returns the loaded client with id.
func (s *ClientScreen) Find(id uint) (models.Client, bool) {
	for _, c := range s.items {
		if c.ID == id {
			return c, true
		}
	}
	return models.Client{}, false
}

// Edit opens the dialog for the loaded client with id.
func (s *ClientScreen) Edit(id uint) error {
	c, ok := s.Find(id)
	if !ok {
		s.deps.Notifier.Error(s.deps.tf("notify.not_found", s.deps.t(entityClient)))
		return fmt.Errorf("client %d: %w", id, store.ErrNotFound)
	}
	s.Editor.OpenEdit(id, c)
	return nil
}

// Delete removes a client after confirmation and refreshes the list.
func (s *ClientScreen) Delete(ctx context.Context, id uint) (bool, error) {
	c, _ := s.Find(id)
	deleted, err := confirmDelete(ctx, s.deps, entityClient, c.Name, id, s.store.DeleteClient)
	if deleted {
		_ = s.Refresh(ctx)
	}
	return deleted, err
}
