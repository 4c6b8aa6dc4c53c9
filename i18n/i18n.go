// Package i18n holds the short message catalog used for notifications and
// confirmation prompts.
package i18n

import (
	"context"
	"fmt"
	"strings"
)

// DefaultLang is used when no supported language is requested.
const DefaultLang = "en"

type langKey struct{}

var catalog = map[string]map[string]string{
	"en": {
		"required":               "Required",
		"negative":               "Must not be negative",
		"invalid_nip":            "Invalid NIP",
		"invalid_ico":            "Invalid IČO",
		"invalid_vat":            "Invalid VAT number",
		"field.nip":              "NIP",
		"field.ico":              "IČO",
		"field.dic":              "DIČ",
		"field.vat":              "VAT number",
		"entity.product":         "Product",
		"entity.client":          "Client",
		"entity.invoice":         "Invoice",
		"entity.company":         "Company",
		"notify.validation":      "%s: please fill in the required fields",
		"notify.created":         "%s created",
		"notify.updated":         "%s updated",
		"notify.deleted":         "%s deleted",
		"notify.save_failed":     "%s could not be saved",
		"notify.delete_failed":   "%s could not be deleted",
		"notify.load_failed":     "%s list could not be loaded",
		"notify.not_found":       "%s not found",
		"notify.marked_paid":     "Invoice %s marked as paid",
		"notify.paid_failed":     "Invoice %s could not be marked as paid",
		"notify.exported":        "Invoice %s exported as %s",
		"notify.export_failed":   "Invoice %s could not be exported",
		"notify.missing_client":  "Client of invoice %s not found",
		"notify.missing_company": "Company settings are missing",
		"notify.missing_email":   "Client %s has no e-mail address",
		"notify.unknown_format":  "Unknown export format %s",
		"notify.email_opened":    "E-mail for invoice %s prepared",
		"notify.email_failed":    "E-mail for invoice %s could not be prepared",
		"confirm.delete":         "Delete %s \"%s\"? This cannot be undone.",
		"email.subject":          "Invoice %s",
		"email.greeting":         "Hello %s,",
		"email.body":             "please find invoice %s for %s %s, due on %s.",
		"email.closing":          "Kind regards,",
		"doc.invoice":            "Invoice",
		"doc.number":             "Number",
		"doc.issue_date":         "Issue date",
		"doc.due_date":           "Due date",
		"doc.supplier":           "Supplier",
		"doc.customer":           "Customer",
		"doc.description":        "Description",
		"doc.quantity":           "Qty",
		"doc.unit_price":         "Unit price",
		"doc.vat_rate":           "VAT %",
		"doc.net":                "Net",
		"doc.vat":                "VAT",
		"doc.gross":              "Total",
		"doc.status":             "Status",
		"doc.bank_account":       "Bank account",
	},
	"cs": {
		"required":               "Povinné",
		"negative":               "Nesmí být záporné",
		"invalid_nip":            "Neplatné NIP",
		"invalid_ico":            "Neplatné IČO",
		"invalid_vat":            "Neplatné DIČ",
		"field.nip":              "NIP",
		"field.ico":              "IČO",
		"field.dic":              "DIČ",
		"field.vat":              "DIČ",
		"entity.product":         "Produkt",
		"entity.client":          "Klient",
		"entity.invoice":         "Faktura",
		"entity.company":         "Firma",
		"notify.validation":      "%s: vyplňte povinná pole",
		"notify.created":         "%s vytvořen",
		"notify.updated":         "%s upraven",
		"notify.deleted":         "%s smazán",
		"notify.save_failed":     "%s se nepodařilo uložit",
		"notify.delete_failed":   "%s se nepodařilo smazat",
		"notify.load_failed":     "%s: seznam se nepodařilo načíst",
		"notify.not_found":       "%s nenalezen",
		"notify.marked_paid":     "Faktura %s označena jako zaplacená",
		"notify.paid_failed":     "Fakturu %s se nepodařilo označit jako zaplacenou",
		"notify.exported":        "Faktura %s exportována jako %s",
		"notify.export_failed":   "Fakturu %s se nepodařilo exportovat",
		"notify.missing_client":  "Klient faktury %s nenalezen",
		"notify.missing_company": "Chybí údaje o firmě",
		"notify.missing_email":   "Klient %s nemá e-mailovou adresu",
		"notify.unknown_format":  "Neznámý formát exportu %s",
		"notify.email_opened":    "E-mail k faktuře %s připraven",
		"notify.email_failed":    "E-mail k faktuře %s se nepodařilo připravit",
		"confirm.delete":         "Smazat %s \"%s\"? Akci nelze vrátit.",
		"email.subject":          "Faktura %s",
		"email.greeting":         "Dobrý den, %s,",
		"email.body":             "v příloze zasíláme fakturu %s na částku %s %s se splatností %s.",
		"email.closing":          "S pozdravem,",
		"doc.invoice":            "Faktura",
		"doc.number":             "Číslo",
		"doc.issue_date":         "Datum vystavení",
		"doc.due_date":           "Datum splatnosti",
		"doc.supplier":           "Dodavatel",
		"doc.customer":           "Odběratel",
		"doc.description":        "Popis",
		"doc.quantity":           "Množství",
		"doc.unit_price":         "Cena za MJ",
		"doc.vat_rate":           "DPH %",
		"doc.net":                "Základ",
		"doc.vat":                "DPH",
		"doc.gross":              "Celkem",
		"doc.status":             "Stav",
		"doc.bank_account":       "Bankovní účet",
	},
	"pl": {
		"required":        "Wymagane",
		"negative":        "Nie może być ujemne",
		"invalid_nip":     "Nieprawidłowy NIP",
		"field.nip":       "NIP",
		"entity.product":  "Produkt",
		"entity.client":   "Klient",
		"entity.invoice":  "Faktura",
		"notify.created":  "%s utworzony",
		"notify.updated":  "%s zaktualizowany",
		"notify.deleted":  "%s usunięty",
		"confirm.delete":  "Usunąć %s \"%s\"? Tej operacji nie można cofnąć.",
		"email.subject":   "Faktura %s",
		"email.greeting":  "Dzień dobry %s,",
		"email.closing":   "Z poważaniem,",
		"doc.invoice":     "Faktura",
		"doc.issue_date":  "Data wystawienia",
		"doc.due_date":    "Termin płatności",
		"doc.supplier":    "Sprzedawca",
		"doc.customer":    "Nabywca",
		"doc.description": "Opis",
		"doc.quantity":    "Ilość",
		"doc.gross":       "Razem",
	},
}

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := catalog[strings.ToLower(lang)]
	return ok
}

// T translates code into lang. Missing entries fall back to the default
// language, then to the code itself.
func T(lang, code string) string {
	if m, ok := catalog[strings.ToLower(lang)]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalog[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Tf translates code and formats it with args.
func Tf(lang, code string, args ...any) string {
	return fmt.Sprintf(T(lang, code), args...)
}

// DetectLanguage picks the first supported language of an Accept-Language
// header (or a LANG-style locale such as cs_CZ.UTF-8).
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		tag = strings.SplitN(tag, ".", 2)[0]
		if i := strings.IndexAny(tag, "-_"); i >= 0 {
			tag = tag[:i]
		}
		if tag = strings.ToLower(tag); Supported(tag) {
			return tag
		}
	}
	return DefaultLang
}

// WithLang stores the language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the language stored in ctx or DefaultLang.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && Supported(lang) {
		return strings.ToLower(lang)
	}
	return DefaultLang
}
