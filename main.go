package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/mgce/cmd"
	"github.com/tonhe/mgce/internal/config"
	"github.com/tonhe/mgce/internal/logging"
	"github.com/tonhe/mgce/tui"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 && cmd.IsSubcommand(os.Args[1]) {
		cmd.Execute(os.Args[1:])
		return
	}

	theme := flag.String("theme", "", "theme override")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directories: %v\n", err)
		os.Exit(1)
	}

	log := zap.NewNop()
	if path, err := config.GetLogPath(); err == nil {
		if l, err := logging.New(cfg.LogLevel, cfg.LogFormat, path); err == nil {
			log = l
		}
	}
	defer log.Sync()

	path := ""
	if flag.NArg() > 0 {
		path = cmd.ResolveCard(flag.Arg(0))
	}

	model := tui.NewAppModel(tui.Deps{
		Config:  cfg,
		Logger:  log,
		Brokers: cmd.OpenBrokerStore(),
		Version: cmd.Version,
		Build:   cmd.Build,
	}, path)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("tui exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
