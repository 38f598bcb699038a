package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tonhe/mgce/internal/broker"
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/config"
	"github.com/tonhe/mgce/internal/publish"
	"golang.org/x/term"
)

func brokerCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: mgce broker <list|add|remove|test>")
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		brokerList()
	case "add":
		brokerAdd()
	case "remove":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: mgce broker remove NAME")
			os.Exit(1)
		}
		brokerRemove(args[1])
	case "test":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: mgce broker test NAME CARD")
			os.Exit(1)
		}
		brokerTest(args[1], args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown broker command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: mgce broker <list|add|remove|test>")
		os.Exit(1)
	}
}

// OpenBrokerStore opens the broker store with the master key from the
// environment, or an empty key for a store that has none. It returns nil
// when neither unlocks it.
func OpenBrokerStore() broker.Provider {
	path, err := config.GetBrokerStorePath()
	if err != nil {
		return nil
	}
	if err := config.EnsureDirs(); err != nil {
		return nil
	}
	if key, ok := config.MasterKey(); ok {
		if s, err := broker.OpenFileStore(path, key); err == nil {
			return s
		}
	}
	if s, err := broker.OpenFileStore(path, nil); err == nil {
		return s
	}
	return nil
}

// openStore opens the broker store, prompting for the master password if
// needed. Tries an empty password first to support no-password stores.
func openStore() *broker.FileStore {
	path, err := config.GetBrokerStorePath()
	if err != nil {
		fatalf("Error: %v", err)
	}
	if err := config.EnsureDirs(); err != nil {
		fatalf("Error creating config directories: %v", err)
	}

	if s, err := broker.OpenFileStore(path, nil); err == nil {
		return s
	}
	s, err := broker.OpenFileStore(path, masterPassword())
	if err != nil {
		fatalf("Error opening broker store: %v", err)
	}
	return s
}

// masterPassword reads the master password from MGCE_MASTER_KEY or prompts.
func masterPassword() []byte {
	if key, ok := config.MasterKey(); ok {
		return key
	}
	fmt.Fprint(os.Stderr, "Master password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fatalf("Error reading password: %v", err)
	}
	return password
}

func brokerList() {
	summaries, err := openStore().List()
	if err != nil {
		fatalf("Error listing brokers: %v", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No brokers configured.")
		return
	}
	for _, s := range summaries {
		line := fmt.Sprintf("%-20s  %s", s.Name, s.URL)
		if s.Username != "" {
			line += fmt.Sprintf("  user=%s", s.Username)
		}
		if s.Topic != "" {
			line += fmt.Sprintf("  topic=%s", s.Topic)
		}
		fmt.Println(line)
	}
}

func brokerAdd() {
	reader := bufio.NewReader(os.Stdin)
	prompt := func(label string) string {
		fmt.Print(label)
		s, _ := reader.ReadString('\n')
		return strings.TrimSpace(s)
	}

	b := broker.Broker{
		Name:     prompt("Broker name: "),
		URL:      prompt("URL (tcp://host:1883): "),
		Username: prompt("Username (optional): "),
	}
	if b.Username != "" {
		fmt.Print("Password: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			fatalf("Error reading password: %v", err)
		}
		b.Password = string(pw)
	}
	b.Topic = prompt("Topic (optional, default per card): ")

	if err := openStore().Add(b); err != nil {
		fatalf("Error adding broker: %v", err)
	}
	fmt.Printf("Broker %q added.\n", b.Name)
}

func brokerRemove(name string) {
	if err := openStore().Remove(name); err != nil {
		fatalf("Error removing broker: %v", err)
	}
	fmt.Printf("Broker %q removed.\n", name)
}

// brokerTest connects and publishes a card once.
func brokerTest(name, cardArg string) {
	b, err := openStore().Get(name)
	if err != nil {
		fatalf("Error: %v", err)
	}
	cfg := loadOrDefaultConfig()
	path := resolveCard(cfg, cardArg)
	c, err := card.LoadCard(path)
	if err != nil {
		fatalf("Error loading card: %v", err)
	}

	topic := cfg.MQTTTopic
	if topic == "" {
		topic = publish.DefaultTopic(path)
	}
	fmt.Fprintf(os.Stderr, "Connecting to %s...\n", b.URL)
	sink, err := publish.DialMQTT(b.Options(topic, cfg.PublishTimeout), nil)
	if err != nil {
		fatalf("Error: %v", err)
	}
	defer sink.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PublishTimeout)
	defer cancel()
	if err := sink.Publish(ctx, *c); err != nil {
		fatalf("Error publishing: %v", err)
	}
	fmt.Printf("Published %s to %s on %s.\n", path, sink.Topic(), name)
}
