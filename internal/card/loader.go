package card

import (
	"os"
	"path/filepath"
	"strings"
)

// LoadCard reads a YAML file at path and returns a normalized Configuration.
// A missing type key is filled in with the mini-graph-card type.
func LoadCard(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if _, ok := cfg.Fields[KeyType]; !ok {
		cfg.Fields[KeyType] = Type
	}
	return cfg, nil
}

// SaveCard writes a Configuration to a YAML file at path.
func SaveCard(cfg *Configuration, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ListCards returns the base names (without extension) of all YAML files
// found in dir.
func ListCards(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, strings.TrimSuffix(e.Name(), ext))
		}
	}
	return names, nil
}

// ResolveCardPath finds the file for a card name in dir, preferring .yaml.
func ResolveCardPath(dir, name string) string {
	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(dir, name+".yaml")
}
