// Package locale translates the weekday titles of the grid header.
// Annotation labels are not translated.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-almanac/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves message ids for one language.
type Translator struct {
	Lang      string
	localizer *i18n.Localizer
}

// New loads the embedded bundle and returns a translator for lang.
func New(lang string) (*Translator, error) {
	if !slices.Contains(config.SupportedLanguages, lang) {
		return nil, config.Invalid("language", lang, config.ErrLanguage)
	}
	bundle, err := loadBundle()
	if err != nil {
		return nil, err
	}
	return &Translator{
		Lang:      lang,
		localizer: i18n.NewLocalizer(bundle, lang),
	}, nil
}

func loadBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.Chinese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, name,
		)
	}
	return bundle, nil
}

// Msg translates key, returning fallback when the key is missing.
func (t *Translator) Msg(key, fallback string) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyLang, t.Lang,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}

// WeekdayTitles returns the seven titles, Monday first.
func (t *Translator) WeekdayTitles() []string {
	titles := make([]string, config.DaysPerWeek)
	for i, key := range config.TKeyWeekdays {
		titles[i] = t.Msg(key, config.CanonicalWeekdayTitles[i])
	}
	return titles
}
