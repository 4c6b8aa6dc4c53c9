package export

import (
	"fmt"
	"strings"
)

// Format identifies an export encoding.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// UnknownFormatLabel is the metrics label for formats without an exporter.
const UnknownFormatLabel = "unknown"

var aliases = map[string]Format{
	"pdf":         FormatPDF,
	"xlsx":        FormatXLSX,
	"excel":       FormatXLSX,
	"spreadsheet": FormatXLSX,
	"csv":         FormatCSV,
	"json":        FormatJSON,
	"xml":         FormatXML,
}

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	if f, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string { return string(f) }

// ContentType returns the MIME type of artifacts in this format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatXML:
		return "application/xml"
	}
	return "application/octet-stream"
}
