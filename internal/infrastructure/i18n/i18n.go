// Package i18n loads the storefront message catalogs and formats
// locale-dependent text such as prices.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tlsy/handicrafts/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// supportedTags is indexed like shared.SupportedLocales
var supportedTags = []language.Tag{
	language.English,
	language.MustParse("tl"),
}

// Translator renders catalog messages for a locale.
// Missing Tagalog messages fall back to English.
type Translator struct {
	builder  *catalog.Builder
	matcher  language.Matcher
	printers map[shared.Locale]*message.Printer
	keys     map[string]struct{}
}

// New loads the embedded en.yaml and tl.yaml catalogs
func New() (*Translator, error) {
	return NewFromFS(localeFS, "locales")
}

// NewFromFS loads <dir>/<locale>.yaml for every supported locale from fsys.
// Nested YAML maps become dotted keys ("nav.home").
func NewFromFS(fsys fs.FS, dir string) (*Translator, error) {
	messages := make(map[shared.Locale]map[string]string, len(shared.SupportedLocales))
	for _, loc := range shared.SupportedLocales {
		data, err := fs.ReadFile(fsys, path.Join(dir, loc.String()+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s catalog: %w", loc, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse %s catalog: %w", loc, err)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		messages[loc] = flat
	}

	english := messages[shared.LocaleEnglish]
	if len(english) == 0 {
		return nil, fmt.Errorf("english catalog is empty")
	}

	t := &Translator{
		builder:  catalog.NewBuilder(catalog.Fallback(language.English)),
		matcher:  language.NewMatcher(supportedTags),
		printers: make(map[shared.Locale]*message.Printer),
		keys:     make(map[string]struct{}, len(english)),
	}

	for _, loc := range shared.SupportedLocales {
		tag := tagOf(loc)
		for key, msg := range english {
			if translated, ok := messages[loc][key]; ok && strings.TrimSpace(translated) != "" {
				msg = translated
			}
			if err := t.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("failed to register %s message %q: %w", loc, key, err)
			}
			t.keys[key] = struct{}{}
		}
		t.printers[loc] = message.NewPrinter(tag, message.Catalog(t.builder))
	}

	return t, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

func tagOf(loc shared.Locale) language.Tag {
	if loc == shared.LocaleTagalog {
		return supportedTags[1]
	}
	return supportedTags[0]
}

func (t *Translator) printer(loc shared.Locale) *message.Printer {
	if p, ok := t.printers[loc]; ok {
		return p
	}
	return t.printers[shared.DefaultLocale]
}

// T renders the message for key. Unknown keys are returned as-is.
func (t *Translator) T(loc shared.Locale, key string, args ...any) string {
	if _, ok := t.keys[key]; !ok {
		return key
	}
	return t.printer(loc).Sprintf(key, args...)
}

// Has reports whether key exists in the catalog
func (t *Translator) Has(key string) bool {
	_, ok := t.keys[key]
	return ok
}

// Keys returns all message keys in sorted order
func (t *Translator) Keys() []string {
	keys := make([]string, 0, len(t.keys))
	for k := range t.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Match picks the best storefront locale for an Accept-Language header.
// Unparseable or unsupported input yields the default locale.
func (t *Translator) Match(acceptLanguage string) shared.Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return shared.DefaultLocale
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return shared.DefaultLocale
	}
	_, idx, conf := t.matcher.Match(desired...)
	if conf == language.No {
		return shared.DefaultLocale
	}
	return shared.SupportedLocales[idx]
}

// FormatPrice renders amount with the narrow currency symbol and the
// currency's standard scale, e.g. "₱1,250.00".
// An unknown currency code is printed verbatim before the amount.
func (t *Translator) FormatPrice(loc shared.Locale, amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code + " " + amount.StringFixed(2)
	}
	scale, _ := currency.Standard.Rounding(unit)
	p := t.printer(loc)
	symbol := p.Sprint(currency.NarrowSymbol(unit))
	value, _ := amount.Round(int32(scale)).Float64()
	return symbol + p.Sprintf("%.*f", scale, value)
}

// Title title-cases s using the locale's casing rules
func (t *Translator) Title(loc shared.Locale, s string) string {
	return cases.Title(tagOf(loc)).String(s)
}
