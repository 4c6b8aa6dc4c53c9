package screens

import (
	"context"

	"github.com/diewo77/invoicedesk/internal/models"
	"github.com/diewo77/invoicedesk/internal/store"
	"github.com/diewo77/invoicedesk/validation"
)

const entityCompany = "entity.company"

// CompanyScreen edits the issuing company.
type CompanyScreen struct {
	deps  Deps
	store store.CompanyStore

	companies []models.CompanySettings

	Editor *Editor[models.CompanySettings]
}

// NewCompanyScreen returns an empty screen; call Refresh to load it.
func NewCompanyScreen(s store.CompanyStore, deps Deps) *CompanyScreen {
	deps = deps.withDefaults()
	cs := &CompanyScreen{deps: deps, store: s}
	cs.Editor = NewEditor(deps, EditorHooks[models.CompanySettings]{
		Entity: entityCompany,
		New: func() models.CompanySettings {
			return models.CompanySettings{Country: deps.DefaultCountry, IsDefault: true}
		},
		Validate: ValidateCompany,
		Create:   s.SaveCompany,
		Update: func(ctx context.Context, id uint, c models.CompanySettings) (models.CompanySettings, error) {
			c.ID = id
			return s.SaveCompany(ctx, c)
		},
		Saved: func(ctx context.Context) { _ = cs.Refresh(ctx) },
	})
	return cs
}

// ValidateCompany checks a company draft.
func ValidateCompany(c models.CompanySettings) validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", c.Name, v)
	return v
}

// Refresh reloads the company profiles.
func (s *CompanyScreen) Refresh(ctx context.Context) error {
	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		return loadFailed(s.deps, entityCompany, err)
	}
	s.companies = companies
	return nil
}

// Current returns the issuing company.
func (s *CompanyScreen) Current() (models.CompanySettings, bool) {
	return models.IssuingCompany(s.companies)
}

// Open starts editing the issuing company, or a new one when none exists.
func (s *CompanyScreen) Open() {
	if c, ok := s.Current(); ok {
		s.Editor.OpenEdit(c.ID, c)
		return
	}
	s.Editor.OpenNew()
}
