package i18n

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Locale is a two-letter interface language code.
type Locale string

// Supported locales.
const (
	LocaleEN Locale = "en"
	LocaleRU Locale = "ru"
	LocaleUK Locale = "uk"

	// DefaultLocale is used when the OS locale is unknown or unsupported.
	DefaultLocale = LocaleEN
)

// placeholder is the positional slot in message templates.
const placeholder = "{}"

// ErrUnsupportedLocale is returned for language codes outside en, ru, uk.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// localeEnvVars are consulted in order by DetectLocale, following the
// POSIX precedence for message catalogs.
var localeEnvVars = []string{"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE"}

// Locales returns the supported locales in display order.
func Locales() []Locale {
	return []Locale{LocaleEN, LocaleRU, LocaleUK}
}

// ParseLocale validates a user-supplied language code.
// Surrounding space and case are ignored.
func ParseLocale(code string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(code)))
	if _, ok := catalog[l]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, code)
	}
	return l, nil
}

// Translator resolves message keys in its active locale.
// It is not safe for concurrent use; a browsing session owns one.
type Translator struct {
	locale Locale
}

// NewTranslator creates a Translator. An unsupported locale falls back
// to DefaultLocale.
func NewTranslator(l Locale) *Translator {
	if _, ok := catalog[l]; !ok {
		l = DefaultLocale
	}
	return &Translator{locale: l}
}

// Locale returns the active locale.
func (t *Translator) Locale() Locale {
	return t.locale
}

// SetLocale switches the active locale. Unsupported codes return
// ErrUnsupportedLocale and leave the locale unchanged.
func (t *Translator) SetLocale(code string) error {
	l, err := ParseLocale(code)
	if err != nil {
		return err
	}
	t.locale = l
	return nil
}

// T returns the message for key in the active locale with args substituted
// into its "{}" placeholders. A key missing from the catalog yields the key
// itself.
func (t *Translator) T(key Key, args ...any) string {
	tmpl, ok := catalog[t.locale][key]
	if !ok {
		tmpl = string(key)
	}
	return Format(tmpl, args...)
}

// Format fills "{}" placeholders in tmpl from left to right.
// Surplus arguments are ignored; surplus placeholders are kept verbatim.
func Format(tmpl string, args ...any) string {
	if len(args) == 0 {
		return tmpl
	}

	var b strings.Builder
	rest := tmpl
	for _, arg := range args {
		before, after, found := strings.Cut(rest, placeholder)
		if !found {
			break
		}
		b.WriteString(before)
		b.WriteString(fmt.Sprint(arg))
		rest = after
	}
	b.WriteString(rest)
	return b.String()
}

// DetectLocale picks the interface locale from the process environment.
func DetectLocale() Locale {
	return detectLocale(os.Getenv)
}

// detectLocale reads the first non-empty locale variable and maps its
// language to a supported Locale, defaulting to DefaultLocale.
func detectLocale(getenv func(string) string) Locale {
	for _, name := range localeEnvVars {
		value := getenv(name)
		if value == "" || isNeutralLocale(value) {
			continue
		}
		return LocaleFromPOSIX(value)
	}
	return DefaultLocale
}

// isNeutralLocale reports whether value is the C/POSIX locale, which
// carries no language preference.
func isNeutralLocale(value string) bool {
	name, _, _ := strings.Cut(value, ".")
	return name == "C" || name == "POSIX"
}

// LocaleFromPOSIX maps a POSIX locale string such as "uk_UA.UTF-8" or a
// LANGUAGE list such as "ru:en" to a supported Locale.
func LocaleFromPOSIX(value string) Locale {
	value, _, _ = strings.Cut(value, ":")
	value, _, _ = strings.Cut(value, ".")
	value, _, _ = strings.Cut(value, "@")
	if value == "" || isNeutralLocale(value) {
		return DefaultLocale
	}

	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil {
		return DefaultLocale
	}
	base, _ := tag.Base()

	l := Locale(base.String())
	if _, ok := catalog[l]; !ok {
		return DefaultLocale
	}
	return l
}
