// Package locale resolves field labels from a host catalog with a
// per-panel fallback catalog.
package locale

import (
	"sort"

	"golang.org/x/text/language"
)

// Key prefixes.
const (
	GenericPrefix = "ui.panel.lovelace.editor.card.generic."
	CardPrefix    = "editor.form.card."
	EntityPrefix  = "editor.form.entity."
)

// Localizer returns the translation for key, or "" when it has none.
type Localizer interface {
	Localize(key string) string
}

// Catalog is a flat key -> string table.
type Catalog map[string]string

// Localize implements Localizer.
func (c Catalog) Localize(key string) string {
	return c[key]
}

// Label resolves a field label: the host's generic translation when it
// has one, else the panel translation under panelPrefix.
func Label(host, panel Localizer, panelPrefix, field string) string {
	if host != nil {
		if s := host.Localize(GenericPrefix + field); s != "" {
			return s
		}
	}
	if panel == nil {
		return ""
	}
	return panel.Localize(panelPrefix + field)
}

// Bundle holds catalogs for several languages.
type Bundle struct {
	tags     []language.Tag
	catalogs map[language.Tag]Catalog
	matcher  language.Matcher
}

// NewBundle builds a bundle. The first language in langs is the fallback.
func NewBundle(catalogs map[string]Catalog, fallback string) *Bundle {
	b := &Bundle{catalogs: make(map[language.Tag]Catalog, len(catalogs))}
	base := language.Make(fallback)
	b.tags = append(b.tags, base)
	b.catalogs[base] = catalogs[fallback]

	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		if name != fallback {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		tag := language.Make(name)
		b.tags = append(b.tags, tag)
		b.catalogs[tag] = catalogs[name]
	}
	b.matcher = language.NewMatcher(b.tags)
	return b
}

// Catalog returns the best catalog for the requested language. Keys the
// chosen catalog lacks fall back to the bundle's fallback language.
func (b *Bundle) Catalog(lang string) Localizer {
	_, idx := language.MatchStrings(b.matcher, lang)
	chosen := b.catalogs[b.tags[idx]]
	if idx == 0 {
		return chosen
	}
	return layered{chosen, b.catalogs[b.tags[0]]}
}

// Languages lists the bundle's languages, fallback first.
func (b *Bundle) Languages() []string {
	out := make([]string, len(b.tags))
	for i, t := range b.tags {
		out[i] = t.String()
	}
	return out
}

type layered []Catalog

func (l layered) Localize(key string) string {
	for _, c := range l {
		if s := c[key]; s != "" {
			return s
		}
	}
	return ""
}
