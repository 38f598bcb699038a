package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a Base16 palette. Base00-Base07 run from background to
// foreground; Base08-Base0F are the accents (red, orange, yellow, green,
// cyan, blue, magenta, brown).
type Theme struct {
	Name                           string
	Base00, Base01, Base02, Base03 lipgloss.Color
	Base04, Base05, Base06, Base07 lipgloss.Color
	Base08, Base09, Base0A, Base0B lipgloss.Color
	Base0C, Base0D, Base0E, Base0F lipgloss.Color
}

const defaultSlug = "solarized-dark"

// DefaultTheme is used when the configured slug is unknown.
var DefaultTheme = Themes[defaultSlug]

// Lookup returns the theme for slug.
func Lookup(slug string) (Theme, bool) {
	t, ok := Themes[slug]
	return t, ok
}

// Resolve returns the theme for slug, or DefaultTheme when unknown.
func Resolve(slug string) Theme {
	if t, ok := Lookup(slug); ok {
		return t
	}
	return DefaultTheme
}

// Slugs returns the theme slugs in lexical order.
func Slugs() []string {
	out := make([]string, 0, len(Themes))
	for slug := range Themes {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

// Next returns the slug after slug in lexical order, wrapping around. An
// unknown slug yields the first one.
func Next(slug string) string {
	slugs := Slugs()
	i := sort.SearchStrings(slugs, slug)
	if i < len(slugs) && slugs[i] == slug {
		i++
	}
	return slugs[i%len(slugs)]
}
