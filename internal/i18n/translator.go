package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message IDs used by the views.
const (
	MsgHomeTitle    = "HomeTitle"
	MsgLoading      = "Loading"
	MsgNoCountries  = "NoCountries"
	MsgBackToHome   = "BackToHome"
	MsgPopulation   = "Population"
	MsgCapital      = "Capital"
	MsgPageNotFound = "PageNotFound"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Translator resolves message IDs and formats numbers for one locale.
// It is immutable after construction and safe for concurrent use.
type Translator struct {
	tag       language.Tag
	localizer *goi18n.Localizer
	printer   *message.Printer
}

// NewTranslator creates a Translator for locale (a BCP 47 tag such as "en",
// "es" or "ja-JP"). An empty locale means English.
func NewTranslator(locale string) (*Translator, error) {
	tag := language.English
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
		tag = parsed
	}

	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(localeFS, "locales/*.toml")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, f); err != nil {
			return nil, fmt.Errorf("failed to load message file %s: %w", path.Base(f), err)
		}
	}

	return &Translator{
		tag:       tag,
		localizer: goi18n.NewLocalizer(bundle, tag.String(), language.English.String()),
		printer:   message.NewPrinter(tag),
	}, nil
}

// Tag returns the locale this Translator was built for.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// Text returns the localized message for id, or id itself if no catalog
// defines it.
func (t *Translator) Text(id string) string {
	s, err := t.localizer.Localize(&goi18n.LocalizeConfig{MessageID: id})
	if err != nil || s == "" {
		return id
	}
	return s
}

// FormatInt formats n with the locale's digit grouping, e.g. 331,002,651
// for English.
func (t *Translator) FormatInt(n int64) string {
	return t.printer.Sprintf("%d", n)
}
