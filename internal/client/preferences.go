// AngelaMos | 2026
// preferences.go

package client

import (
	"fmt"

	"github.com/rossoverde/supporters/internal/core"
	"github.com/rossoverde/supporters/internal/i18n"
)

// LanguageKey matches the cookie the web pages use.
const LanguageKey = "rossoverde-language"

type Preferences struct {
	store    Storage
	fallback i18n.Language
}

func NewPreferences(store Storage, fallback i18n.Language) *Preferences {
	if !fallback.Valid() {
		fallback = i18n.English
	}
	return &Preferences{store: store, fallback: fallback}
}

func (p *Preferences) Language() i18n.Language {
	v, ok, err := p.store.Load(LanguageKey)
	if err != nil || !ok {
		return p.fallback
	}
	return i18n.ParseOr(v, p.fallback)
}

func (p *Preferences) Dir() i18n.Direction {
	return p.Language().Dir()
}

func (p *Preferences) SetLanguage(code string) (i18n.Language, error) {
	l, ok := i18n.Parse(code)
	if !ok {
		return "", fmt.Errorf("language %q: %w", code, core.ErrInvalidInput)
	}
	if err := p.store.Save(LanguageKey, l.String()); err != nil {
		return "", fmt.Errorf("save language: %w", err)
	}
	return l, nil
}
