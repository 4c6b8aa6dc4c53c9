package validation

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Fields returns the violated field names in sorted order.
func (v Violations) Fields() []string {
	out := make([]string, 0, len(v))
	for f := range v {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Pattern records code when a non-empty value does not match re.
// Empty values are left to Required.
func Pattern(field, value string, re *regexp.Regexp, code string, v Violations) {
	if value == "" {
		return
	}
	if !re.MatchString(value) {
		v[field] = code
	}
}

// NonZero flags unset references such as a missing client ID.
func NonZero(field string, id uint, v Violations) {
	if id == 0 {
		v[field] = "required"
	}
}

// NotEmpty flags empty collections such as an invoice without lines.
func NotEmpty(field string, n int, v Violations) {
	if n == 0 {
		v[field] = "required"
	}
}

// NonNegative flags amounts below zero.
func NonNegative(field string, d decimal.Decimal, v Violations) {
	if d.IsNegative() {
		v[field] = "negative"
	}
}
