package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/config"
	"github.com/tonhe/mgce/internal/editor"
	"github.com/tonhe/mgce/internal/form"
	"github.com/tonhe/mgce/internal/locale"
	"github.com/tonhe/mgce/internal/logging"
	"github.com/tonhe/mgce/internal/schema"
	"github.com/tonhe/mgce/tui/styles"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// resolveCard accepts a path or a card name in the cards directory.
func resolveCard(cfg *config.Config, arg string) string {
	if strings.ContainsRune(arg, filepath.Separator) || filepath.Ext(arg) != "" {
		return arg
	}
	dir, err := cfg.ResolveCardsDir()
	if err != nil {
		return arg
	}
	return card.ResolveCardPath(dir, arg)
}

// ResolveCard is resolveCard with the user's config, for main.
func ResolveCard(arg string) string {
	return resolveCard(loadOrDefaultConfig(), arg)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func listCmd() {
	cfg := loadOrDefaultConfig()
	dir, err := cfg.ResolveCardsDir()
	if err != nil {
		fatalf("Error: %v", err)
	}
	names, err := card.ListCards(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fatalf("Error listing cards: %v", err)
	}
	if len(names) == 0 {
		fmt.Printf("No cards in %s.\n", dir)
		return
	}
	for _, name := range names {
		path := card.ResolveCardPath(dir, name)
		c, err := card.LoadCard(path)
		if err != nil {
			fmt.Printf("%-28s  invalid: %v\n", name, err)
			continue
		}
		title, _ := c.Fields["name"].(string)
		fmt.Printf("%-28s  %2d entities  %2d thresholds  %s\n", name, len(c.Entities), len(c.ColorThresholds), title)
	}
}

func showCmd(args []string) {
	if len(args) < 1 {
		fatalf("Usage: mgce show CARD")
	}
	path := resolveCard(loadOrDefaultConfig(), args[0])
	c, err := card.LoadCard(path)
	if err != nil {
		fatalf("Error loading card: %v", err)
	}
	data, err := card.Marshal(c)
	if err != nil {
		fatalf("Error: %v", err)
	}
	if !isTerminal() {
		os.Stdout.Write(data)
		return
	}
	if err := quick.Highlight(os.Stdout, string(data), "yaml", "terminal256", "monokai"); err != nil {
		os.Stdout.Write(data)
	}
}

func diffCmd(args []string) {
	if len(args) < 2 {
		fatalf("Usage: mgce diff CARD_A CARD_B")
	}
	cfg := loadOrDefaultConfig()
	a, err := card.LoadCard(resolveCard(cfg, args[0]))
	if err != nil {
		fatalf("Error loading %s: %v", args[0], err)
	}
	b, err := card.LoadCard(resolveCard(cfg, args[1]))
	if err != nil {
		fatalf("Error loading %s: %v", args[1], err)
	}
	lines, err := card.DiffConfigs(a, b)
	if err != nil {
		fatalf("Error: %v", err)
	}

	theme := styles.Resolve(cfg.Theme)
	sty := styles.NewStyles(theme)
	color := isTerminal()
	for _, l := range lines {
		out := l.String()
		if color {
			switch l.Op {
			case card.DiffInsert:
				out = sty.DiffInsert.Render(out)
			case card.DiffDelete:
				out = sty.DiffDelete.Render(out)
			default:
				out = sty.DiffEqual.Render(out)
			}
		}
		fmt.Println(out)
	}
	if !card.Changed(lines) {
		os.Exit(0)
	}
	os.Exit(1)
}

func newCmd(args []string) {
	if len(args) < 1 {
		fatalf("Usage: mgce new NAME [ENTITY...]")
	}
	cfg := loadOrDefaultConfig()
	path := resolveCard(cfg, args[0])
	if _, err := os.Stat(path); err == nil {
		fatalf("Error: %s already exists", path)
	}
	c := card.New()
	for _, id := range args[1:] {
		c.Entities = append(c.Entities, card.EntityConfig{card.KeyEntity: id})
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fatalf("Error: %v", err)
	}
	if err := card.SaveCard(c, path); err != nil {
		fatalf("Error saving card: %v", err)
	}
	fmt.Println(path)
}

// headless runs the editor without a terminal UI: every configuration it
// publishes is written back to path.
type headless struct {
	path  string
	root  *editor.Root
	saves int
	err   error
}

func newHeadless(cfg *config.Config, path string) *headless {
	c, err := card.LoadCard(path)
	if err != nil {
		fatalf("Error loading card: %v", err)
	}
	level := "warn"
	if os.Getenv(config.EnvLogLevel) != "" {
		level = cfg.LogLevel
	}
	log, err := logging.New(level, "console", "")
	if err != nil {
		log = zap.NewNop()
	}
	h := &headless{path: path}
	h.root = editor.NewRoot(editor.Options{
		Publish: func(next card.Configuration) {
			if err := card.SaveCard(&next, h.path); err != nil {
				h.err = err
				return
			}
			h.saves++
		},
		Host:   locale.Host(cfg.Language),
		Panel:  locale.Panel(cfg.Language),
		Logger: log,
	})
	h.root.SetConfiguration(*c)
	return h
}

func (h *headless) finish() {
	if h.err != nil {
		fatalf("Error saving card: %v", h.err)
	}
	fmt.Printf("%s: %d change(s) saved.\n", h.path, h.saves)
}

// setCmd edits top-level card fields: mgce set CARD key=value...
func setCmd(args []string) {
	if len(args) < 2 {
		fatalf("Usage: mgce set CARD key=value...")
	}
	cfg := loadOrDefaultConfig()
	h := newHeadless(cfg, resolveCard(cfg, args[0]))
	for _, arg := range args[1:] {
		cur, _ := h.root.Configuration()
		change, err := form.Assign(schema.Card, cur.Fields, arg)
		if err != nil {
			fatalf("Error: %v", err)
		}
		h.root.OnFieldsChanged(form.Apply(cur.Fields, change))
	}
	h.finish()
}

// entityCmd edits one entity through the entity panel:
// mgce entity CARD INDEX key=value...
func entityCmd(args []string) {
	if len(args) < 3 {
		fatalf("Usage: mgce entity CARD INDEX key=value...")
	}
	cfg := loadOrDefaultConfig()
	h := newHeadless(cfg, resolveCard(cfg, args[0]))

	idx, err := strconv.Atoi(args[1])
	if err != nil {
		fatalf("Error: index %q is not a number", args[1])
	}
	// Indexes on the command line are 1-based like the TUI list.
	if err := h.root.OnOpenEntity(idx - 1); err != nil {
		fatalf("Error: entity %d: %v", idx, err)
	}
	panel := h.root.EntityPanel()
	for _, arg := range args[2:] {
		change, err := form.Assign(schema.Entity, panel.Data(), arg)
		if err != nil {
			fatalf("Error: %v", err)
		}
		panel.OnValueChanged(change)
	}
	panel.GoBack()
	h.finish()
}

func schemaCmd(args []string) {
	fields, label := schema.Card, locale.CardPrefix
	if len(args) > 0 && args[0] == "entity" {
		fields, label = schema.Entity, locale.EntityPrefix
	}
	cfg := loadOrDefaultConfig()
	host, panel := locale.Host(cfg.Language), locale.Panel(cfg.Language)
	keyStyle := lipgloss.NewStyle().Bold(true)
	section := ""
	for _, l := range schema.Leaves(fields) {
		if l.Section != section && l.Section != "" && isTerminal() {
			fmt.Println(keyStyle.Render(l.Section))
		}
		section = l.Section
		fmt.Printf("  %-32s %-10s %s\n", strings.Join(l.Path, "."), l.Field.Selector.Kind,
			locale.Label(host, panel, label, l.Field.Name))
	}
}
