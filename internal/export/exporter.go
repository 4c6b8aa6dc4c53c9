// Package export renders invoices into files and composes invoice e-mails.
package export

import (
	"context"
	"errors"
	"sort"
)

var (
	// ErrUnknownFormat is returned for a format without a registered exporter.
	ErrUnknownFormat = errors.New("unknown export format")
	// ErrUnresolved is returned when the invoice's client or the issuing
	// company cannot be found.
	ErrUnresolved = errors.New("invoice client or company not found")
	// ErrNoEmail is returned when the client has no e-mail address.
	ErrNoEmail = errors.New("client has no e-mail address")
)

// Exporter renders a document in one format.
type Exporter interface {
	Export(ctx context.Context, doc Document) (Artifact, error)
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(ctx context.Context, doc Document) (Artifact, error)

func (f ExporterFunc) Export(ctx context.Context, doc Document) (Artifact, error) {
	return f(ctx, doc)
}

// Registry maps formats to exporters.
type Registry struct {
	exporters map[Format]Exporter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{exporters: make(map[Format]Exporter)}
}

// DefaultRegistry returns a registry with every built-in format.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(FormatPDF, PDFExporter{})
	r.Register(FormatXLSX, XLSXExporter{})
	r.Register(FormatCSV, CSVExporter{})
	r.Register(FormatJSON, JSONExporter{})
	r.Register(FormatXML, XMLExporter{})
	return r
}

// Register adds or replaces the exporter for f.
func (r *Registry) Register(f Format, e Exporter) {
	r.exporters[f] = e
}

// Get returns the exporter for f.
func (r *Registry) Get(f Format) (Exporter, bool) {
	e, ok := r.exporters[f]
	return e, ok
}

// Formats lists the registered formats in name order.
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.exporters))
	for f := range r.exporters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
