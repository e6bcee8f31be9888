// Package i18n holds the English and Arabic message catalogue served by the
// API and picks a language for each request.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Message IDs. Every ID must exist in each locales/active.*.json file.
const (
	MsgInvalidGregorianDate = "InvalidGregorianDate"
	MsgInvalidHijriDate     = "InvalidHijriDate"
	MsgInvalidYear          = "InvalidYear"
	MsgInvalidMonth         = "InvalidMonth"
	MsgInvalidDay           = "InvalidDay"
	MsgInvalidLimit         = "InvalidLimit"
	MsgMissingParameters    = "MissingParameters"
	MsgNotFound             = "NotFound"
	MsgRateLimited          = "RateLimited"
	MsgInternalError        = "InternalError"
	MsgRamadanActive        = "RamadanActive"
	MsgRamadanAwaited       = "RamadanAwaited"
	MsgFeedTitle            = "FeedTitle"
	MsgFeedDescription      = "FeedDescription"
)

// Supported lists the languages with a catalogue, default first.
var Supported = []language.Tag{language.English, language.Arabic}

var matcher = language.NewMatcher(Supported)

// Match returns the first supported language named by prefs. Each entry is
// either a plain tag ("ar") or a full Accept-Language header value; empty
// and unparsable entries are skipped. English is the fallback.
func Match(prefs ...string) language.Tag {
	for _, p := range prefs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := matcher.Match(tags...)
		if conf != language.No {
			return Supported[idx]
		}
	}
	return language.English
}

// IsArabic reports whether tag selects Arabic display names.
func IsArabic(tag language.Tag) bool {
	base, _ := tag.Base()
	return base.String() == "ar"
}

// Catalogue is the loaded message bundle. It is safe for concurrent use.
type Catalogue struct {
	bundle *goi18n.Bundle
}

// Load reads every embedded locales/active.<lang>.json file.
func Load() (*Catalogue, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
	}
	return &Catalogue{bundle: bundle}, nil
}

// MustLoad is Load that panics on error. The catalogue is embedded, so a
// failure means a broken build.
func MustLoad() *Catalogue {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Localizer translates messages into one language.
type Localizer struct {
	tag       language.Tag
	localizer *goi18n.Localizer
}

// For returns a Localizer for tag.
func (c *Catalogue) For(tag language.Tag) *Localizer {
	return &Localizer{tag: tag, localizer: goi18n.NewLocalizer(c.bundle, tag.String())}
}

// Tag returns the localizer's language.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Arabic reports whether the localizer renders Arabic.
func (l *Localizer) Arabic() bool {
	return IsArabic(l.tag)
}

// T renders message id with data. A missing message renders as its ID.
func (l *Localizer) T(id string, data map[string]any) string {
	msg, err := l.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
