// AngelaMos | 2026
// language.go

// Package i18n holds the three site languages, their text direction, the
// preference cookie and the small message tables used outside page layout.
package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

type Language string

const (
	English Language = "en"
	French  Language = "fr"
	Arabic  Language = "ar"
)

// Supported is ordered by matcher preference; English comes first so that it
// wins ties.
var Supported = []Language{English, French, Arabic}

type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

func (l Language) Dir() Direction {
	if l == Arabic {
		return RTL
	}
	return LTR
}

func (l Language) String() string {
	return string(l)
}

func (l Language) Valid() bool {
	switch l {
	case English, French, Arabic:
		return true
	}
	return false
}

// Parse returns the language named by s, or ok=false when s is not one of
// the supported codes.
func Parse(s string) (Language, bool) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", false
	}
	return l, true
}

// ParseOr returns the language named by s or fallback.
func ParseOr(s string, fallback Language) Language {
	if l, ok := Parse(s); ok {
		return l
	}
	return fallback
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.French,
	language.Arabic,
})

// Negotiate picks the best supported language for an Accept-Language header.
// ok is false when the header names nothing we serve.
func Negotiate(acceptLanguage string) (Language, bool) {
	if strings.TrimSpace(acceptLanguage) == "" {
		return "", false
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "", false
	}

	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}

	return Supported[idx], true
}

// Pick returns the value for lang, falling back to English when the
// localized value is empty.
func Pick(lang Language, en, fr, ar string) string {
	var v string
	switch lang {
	case French:
		v = fr
	case Arabic:
		v = ar
	default:
		v = en
	}
	if v == "" {
		return en
	}
	return v
}

// PickPtr is Pick for nullable columns.
func PickPtr(lang Language, en, fr, ar *string) string {
	return Pick(lang, deref(en), deref(fr), deref(ar))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type ctxKey struct{}

func WithLanguage(ctx context.Context, l Language) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the request language, English when none was resolved.
func FromContext(ctx context.Context) Language {
	if l, ok := ctx.Value(ctxKey{}).(Language); ok {
		return l
	}
	return English
}
