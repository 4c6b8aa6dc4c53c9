package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diewo77/invoicedesk/i18n"
	"github.com/diewo77/invoicedesk/internal/metrics"
)

func TestPrefs(t *testing.T) {
	var got string
	h := Prefs(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.LangFromContext(r.Context())
	}))

	cases := []struct {
		name   string
		query  string
		cookie string
		header string
		want   string
	}{
		{"default", "", "", "", "en"},
		{"header", "", "", "cs-CZ,cs;q=0.9", "cs"},
		{"cookie beats header", "", "pl", "cs", "pl"},
		{"query beats cookie", "?lang=cs", "pl", "", "cs"},
		{"unsupported query ignored", "?lang=xx", "", "pl", "pl"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "lang", Value: tc.cookie})
			}
			if tc.header != "" {
				req.Header.Set("Accept-Language", tc.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if got != tc.want {
				t.Fatalf("expected %s got %s", tc.want, got)
			}
		})
	}
}

func TestRequestIDAndLogging(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	m := metrics.New()

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}), RequestID(base), Logging(m))

	req := httptest.NewRequest(http.MethodPost, "/api/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected request id to be echoed, got %q", w.Header().Get(RequestIDHeader))
	}
	line := buf.String()
	for _, want := range []string{`"request_id":"abc-123"`, `"status":418`, `"path":"/api/x"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %s missing %s", line, want)
		}
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get(RequestIDHeader)) != 36 {
		t.Fatalf("expected a generated uuid, got %q", w.Header().Get(RequestIDHeader))
	}
}
