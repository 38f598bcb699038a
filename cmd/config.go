package cmd

import (
	"fmt"
	"os"

	"github.com/tonhe/mgce/internal/config"
	"github.com/tonhe/mgce/internal/locale"
	"github.com/tonhe/mgce/tui/styles"
)

func configCmd(args []string) {
	usage := "Usage: mgce config <path|theme|broker|lang>"
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	if args[0] == "path" {
		configPath()
		return
	}
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: mgce config %s NAME\n", args[0])
		os.Exit(1)
	}
	switch args[0] {
	case "theme":
		configSetTheme(args[1])
	case "broker":
		configSetBroker(args[1])
	case "lang":
		configSetLanguage(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
}

func configPath() {
	path, err := config.GetConfigPath()
	if err != nil {
		fatalf("Error: %v", err)
	}
	fmt.Println(path)
}

func configSetTheme(name string) {
	if _, ok := styles.Lookup(name); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'mgce themes' to see available themes.")
		os.Exit(1)
	}
	cfg := loadFileConfig()
	cfg.Theme = name
	saveConfig(cfg)
	fmt.Printf("Default theme set to %q.\n", name)
}

func configSetBroker(name string) {
	cfg := loadFileConfig()
	if name == "none" {
		name = ""
	}
	cfg.DefaultBroker = name
	saveConfig(cfg)
	fmt.Printf("Default broker set to %q.\n", name)
}

func configSetLanguage(tag string) {
	known := false
	for _, l := range locale.Languages() {
		if l == tag {
			known = true
		}
	}
	if !known {
		fmt.Fprintf(os.Stderr, "Warning: no catalog for %q, labels fall back to %s.\n", tag, locale.Fallback)
	}
	cfg := loadFileConfig()
	cfg.Language = tag
	saveConfig(cfg)
	fmt.Printf("Language set to %q.\n", tag)
}

func themesCmd() {
	for _, name := range styles.Slugs() {
		fmt.Println(name)
	}
}

// loadOrDefaultConfig loads the config and environment, falling back to
// defaults.
func loadOrDefaultConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// loadFileConfig loads only the config file, so env overrides are not
// written back by the setters.
func loadFileConfig() *config.Config {
	path, err := config.GetConfigPath()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// saveConfig writes the config to disk, creating directories as needed.
func saveConfig(cfg *config.Config) {
	path, err := config.GetConfigPath()
	if err != nil {
		fatalf("Error: %v", err)
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		fatalf("Error saving config: %v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
