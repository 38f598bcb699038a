package styles

import "testing"

func TestResolve(t *testing.T) {
	if got := Resolve("nord").Name; got != "Nord" {
		t.Errorf("expected Nord, got %q", got)
	}
	if got := Resolve("nonexistent").Name; got != "Solarized Dark" {
		t.Errorf("expected fallback Solarized Dark, got %q", got)
	}
	if _, ok := Lookup("nonexistent"); ok {
		t.Error("expected no theme for an unknown slug")
	}
}

func TestSlugsSorted(t *testing.T) {
	slugs := Slugs()
	if len(slugs) != len(Themes) {
		t.Errorf("expected %d slugs, got %d", len(Themes), len(slugs))
	}
	for i := 1; i < len(slugs); i++ {
		if slugs[i-1] > slugs[i] {
			t.Errorf("slugs not sorted: %q before %q", slugs[i-1], slugs[i])
		}
	}
}

func TestNextCyclesAllThemes(t *testing.T) {
	seen := map[string]bool{}
	slug := defaultSlug
	for range Themes {
		slug = Next(slug)
		seen[slug] = true
	}
	if len(seen) != len(Themes) {
		t.Errorf("expected to visit %d themes, visited %d", len(Themes), len(seen))
	}
	if slug != defaultSlug {
		t.Errorf("expected to wrap back to %s, got %s", defaultSlug, slug)
	}
	if Next("nonexistent") == "" {
		t.Error("expected a slug for an unknown start")
	}
}

func TestThemesHaveColors(t *testing.T) {
	for slug, theme := range Themes {
		if theme.Base00 == "" || theme.Base0D == "" || theme.Base08 == "" {
			t.Errorf("theme %s is missing colors", slug)
		}
	}
}
