package cmd

import (
	"fmt"
	"os"
)

// Version is set at build time.
var (
	Version = "0.1.0"
	Build   = ""
)

// knownSubcommands is the set of CLI subcommands that bypass the TUI.
var knownSubcommands = map[string]bool{
	"list":    true,
	"show":    true,
	"diff":    true,
	"new":     true,
	"set":     true,
	"entity":  true,
	"schema":  true,
	"broker":  true,
	"config":  true,
	"themes":  true,
	"version": true,
	"help":    true,
}

// IsSubcommand returns true if the argument is a known CLI subcommand.
func IsSubcommand(arg string) bool {
	return knownSubcommands[arg]
}

// Execute dispatches to the appropriate CLI subcommand handler.
func Execute(args []string) {
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "list":
		listCmd()
	case "show":
		showCmd(args[1:])
	case "diff":
		diffCmd(args[1:])
	case "new":
		newCmd(args[1:])
	case "set":
		setCmd(args[1:])
	case "entity":
		entityCmd(args[1:])
	case "schema":
		schemaCmd(args[1:])
	case "broker":
		brokerCmd(args[1:])
	case "config":
		configCmd(args[1:])
	case "themes":
		themesCmd()
	case "version":
		fmt.Printf("mgce v%s %s\n", Version, Build)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mgce - mini-graph-card configuration editor

Usage:
  mgce [CARD]                    Launch the editor, optionally on CARD
  mgce --theme NAME [CARD]       Launch with theme override
  mgce list                      List cards in the cards directory
  mgce show CARD                 Print a card as YAML
  mgce diff CARD_A CARD_B        Diff two cards (exit 1 when they differ)
  mgce new NAME [ENTITY...]      Create a card
  mgce set CARD key=value...     Set card fields (dotted paths, empty clears)
  mgce entity CARD N key=value...  Set fields of entity N (1-based)
  mgce schema [card|entity]      List editable fields
  mgce broker <cmd>              Manage MQTT brokers
  mgce config <cmd>              Manage configuration
  mgce themes                    List available themes
  mgce version                   Show version
  mgce help                      Show this help

CARD is a path or a name in the cards directory.

Broker Commands:
  mgce broker list               List brokers
  mgce broker add                Add a broker (interactive)
  mgce broker remove NAME        Remove a broker
  mgce broker test NAME CARD     Publish CARD once through NAME

Config Commands:
  mgce config path               Show config file path
  mgce config theme NAME         Set default theme
  mgce config broker NAME|none   Set the broker connected at startup
  mgce config lang TAG           Set label language`)
}
