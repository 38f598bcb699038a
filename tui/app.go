package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/mgce/internal/broker"
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/config"
	"github.com/tonhe/mgce/internal/editor"
	"github.com/tonhe/mgce/internal/history"
	"github.com/tonhe/mgce/internal/locale"
	"github.com/tonhe/mgce/internal/publish"
	"github.com/tonhe/mgce/internal/watch"
	"github.com/tonhe/mgce/tui/components"
	"github.com/tonhe/mgce/tui/keys"
	"github.com/tonhe/mgce/tui/styles"
	"github.com/tonhe/mgce/tui/views"
	"go.uber.org/zap"
)

// AppState represents the current screen of the application.
type AppState int

const (
	StatePicker AppState = iota
	StateEditor
)

type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayDiff
	overlayBroker
	overlayPicker
)

// Deps is what the app needs from main.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Brokers broker.Provider // nil when the store is locked
	Version string
	Build   string
}

// fileChangedMsg carries a watcher event for the open card.
type fileChangedMsg struct {
	watcher *watch.Watcher
	event   watch.Event
}

// brokerMsg reports the result of connecting to a broker.
type brokerMsg struct {
	name string
	sink *publish.MQTT
	err  error
}

// publishedMsg reports the result of an MQTT publish.
type publishedMsg struct {
	err error
}

// session is one open card. The editor's callbacks write into it, so it
// lives behind a pointer shared by every copy of the model.
type session struct {
	path     string
	root     *editor.Root
	history  *history.History
	baseline card.Configuration
	file     publish.FileSink
	watcher  *watch.Watcher

	pending   []card.Configuration
	left      bool
	lastSaved []byte
	savedAt   time.Time
}

func (s *session) close() {
	if s.watcher != nil {
		s.watcher.Close()
	}
}

// AppModel is the root Bubble Tea model. It hosts the editor: it loads
// the card, persists every configuration the editor publishes, and feeds
// external changes back in.
type AppModel struct {
	state   AppState
	overlay overlay
	theme   styles.Theme
	deps    Deps
	log     *zap.Logger
	width   int
	height  int

	sess     *session
	mqtt     *publish.MQTT
	mqttName string

	picker     views.PickerView
	composite  views.CompositeView
	entity     views.EntityView
	thresholds views.ThresholdsView
	diff       views.DiffView
	help       views.HelpView
	brokers    components.BrokerPicker

	status components.Status
}

// NewAppModel creates the app. When path is empty the card picker opens
// first.
func NewAppModel(deps Deps, path string) AppModel {
	if deps.Config == nil {
		deps.Config = config.DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := AppModel{
		state: StatePicker,
		theme: styles.Resolve(deps.Config.Theme),
		deps:  deps,
		log:   log.Named("tui"),
	}
	m.buildViews()

	if path != "" {
		if err := m.open(path); err != nil {
			m.setError(err)
		}
	}
	return m
}

func (m *AppModel) buildViews() {
	dir, err := m.deps.Config.ResolveCardsDir()
	if err != nil {
		dir = "."
	}
	m.picker = views.NewPickerView(m.theme, dir)
	m.picker.Refresh()
	m.entity = views.NewEntityView(m.theme)
	m.thresholds = views.NewThresholdsView(m.theme)
	m.diff = views.NewDiffView(m.theme)
	m.help = views.NewHelpView(m.theme)
	if m.sess != nil {
		m.composite = views.NewCompositeView(m.theme, m.sess.root)
	}
	m.resize()
}

// open loads path into a fresh session. A missing file starts a new card.
func (m *AppModel) open(path string) error {
	cfg, err := card.LoadCard(path)
	created := false
	if errors.Is(err, os.ErrNotExist) {
		cfg, created = card.New(), true
	} else if err != nil {
		return fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}

	if m.sess != nil {
		m.sess.close()
	}
	s := &session{
		path:    path,
		history: history.New(m.deps.Config.HistorySize),
		file:    publish.FileSink{Path: path},
	}
	s.root = editor.NewRoot(editor.Options{
		Publish: func(c card.Configuration) { s.pending = append(s.pending, c) },
		Leave:   func() { s.left = true },
		Host:    locale.Host(m.deps.Config.Language),
		Panel:   locale.Panel(m.deps.Config.Language),
		Logger:  m.log,
	})
	s.root.SetConfiguration(*cfg)
	s.baseline = cfg.Clone()
	s.history.Reset(*cfg, "load")
	m.sess = s

	if created {
		if err := m.save(*cfg); err != nil {
			return err
		}
		m.setStatus("created " + filepath.Base(path))
	} else {
		m.setStatus("opened " + filepath.Base(path))
	}

	if m.deps.Config.WatchFile {
		w, err := watch.New(path, watch.DefaultDebounce, m.log)
		if err != nil {
			m.log.Warn("file watch disabled", zap.String("path", path), zap.Error(err))
		} else {
			s.watcher = w
		}
	}

	m.composite = views.NewCompositeView(m.theme, s.root)
	m.state = StateEditor
	m.overlay = overlayNone
	m.resize()
	m.sync()
	m.log.Info("card opened", zap.String("path", path), zap.Bool("created", created),
		zap.Int("entities", len(cfg.Entities)))
	return nil
}

// Init starts the file watcher loop and connects the default broker.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.watchCmd()}
	if name := m.deps.Config.DefaultBroker; name != "" {
		cmds = append(cmds, m.connectCmd(name))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) watchCmd() tea.Cmd {
	if m.sess == nil || m.sess.watcher == nil {
		return nil
	}
	w := m.sess.watcher
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return nil
		}
		return fileChangedMsg{watcher: w, event: ev}
	}
}

func (m AppModel) connectCmd(name string) tea.Cmd {
	provider := m.deps.Brokers
	timeout := m.deps.Config.PublishTimeout
	topic := m.deps.Config.MQTTTopic
	if topic == "" && m.sess != nil {
		topic = publish.DefaultTopic(m.sess.path)
	}
	if topic == "" {
		topic = "mgce/config"
	}
	log := m.log
	return func() tea.Msg {
		if provider == nil {
			return brokerMsg{name: name, err: errors.New("broker store is locked")}
		}
		b, err := provider.Get(name)
		if err != nil {
			return brokerMsg{name: name, err: err}
		}
		sink, err := publish.DialMQTT(b.Options(topic, timeout), log)
		return brokerMsg{name: name, sink: sink, err: err}
	}
}

func (m AppModel) publishCmd(cfg card.Configuration) tea.Cmd {
	sink := m.mqtt
	if sink == nil {
		return nil
	}
	timeout := m.deps.Config.PublishTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return publishedMsg{err: sink.Publish(ctx, cfg)}
	}
}

// save writes cfg to the card file and remembers the bytes so the watcher
// can tell our own write from an external one.
func (m *AppModel) save(cfg card.Configuration) error {
	data, err := card.Marshal(&cfg)
	if err != nil {
		return err
	}
	if err := m.sess.file.Publish(context.Background(), cfg); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	m.sess.lastSaved = data
	m.sess.savedAt = time.Now()
	return nil
}

// flush persists everything the editor published during the last update
// and handles a leave request.
func (m *AppModel) flush() tea.Cmd {
	if m.sess == nil {
		return nil
	}
	var cmds []tea.Cmd
	pending := m.sess.pending
	m.sess.pending = nil
	for _, cfg := range pending {
		if err := m.save(cfg); err != nil {
			m.setError(err)
			continue
		}
		m.sess.history.Record(cfg, "edit")
		cmds = append(cmds, m.publishCmd(cfg))
	}
	if m.sess.left {
		m.sess.left = false
		m.log.Info("editor closed", zap.String("path", m.sess.path))
		m.sess.close()
		m.sess = nil
		m.state = StatePicker
		m.picker.Refresh()
	}
	m.sync()
	return tea.Batch(cmds...)
}

func (m *AppModel) sync() {
	if m.sess == nil {
		return
	}
	r := m.sess.root.Render()
	switch r.Kind {
	case editor.RenderComposite:
		m.composite.Sync(r)
	case editor.RenderEntity:
		m.entity.Sync(m.sess.root)
	case editor.RenderThresholds:
		m.thresholds.Sync(m.sess.root)
	}
}

func (m *AppModel) undo() tea.Cmd {
	if m.sess == nil {
		return nil
	}
	rev, ok := m.sess.history.Undo()
	if !ok {
		m.setStatus("nothing to undo")
		return nil
	}
	m.sess.root.SetConfiguration(rev.Config)
	if err := m.save(rev.Config); err != nil {
		m.setError(err)
		return nil
	}
	m.sync()
	m.setStatus(fmt.Sprintf("undone to %s", rev.At.Format("15:04:05")))
	return m.publishCmd(rev.Config)
}

func (m *AppModel) reload(ev watch.Event) {
	if ev.Removed {
		m.setError(fmt.Errorf("%s was removed; the next edit recreates it", filepath.Base(ev.Path)))
		return
	}
	data, err := os.ReadFile(ev.Path)
	if err != nil {
		m.setError(err)
		return
	}
	if bytes.Equal(data, m.sess.lastSaved) {
		return
	}
	cfg, err := card.Parse(data)
	if err != nil {
		m.setError(fmt.Errorf("external edit ignored: %w", err))
		return
	}
	if _, ok := cfg.Fields[card.KeyType]; !ok {
		cfg.Fields[card.KeyType] = card.Type
	}
	m.sess.root.SetConfiguration(*cfg)
	m.sess.history.Record(*cfg, "external")
	m.sess.lastSaved = data
	m.sync()
	m.setStatus("reloaded external change")
	m.log.Info("card reloaded", zap.String("path", ev.Path))
}

func (m *AppModel) nextTheme() {
	slug := styles.Next(m.deps.Config.Theme)
	t := styles.Resolve(slug)
	m.deps.Config.Theme = slug
	m.theme = t
	m.buildViews()
	m.sync()
	if path, err := config.GetConfigPath(); err == nil {
		if err := config.SaveConfig(m.deps.Config, path); err != nil {
			m.log.Warn("save config", zap.Error(err))
		}
	}
	m.setStatus("theme " + t.Name)
}

func (m *AppModel) setStatus(msg string) {
	m.status.Message = msg
	m.status.IsError = false
}

func (m *AppModel) setError(err error) {
	m.status.Message = err.Error()
	m.status.IsError = true
	m.log.Warn("status error", zap.Error(err))
}

func (m *AppModel) resize() {
	body := m.height - 3 // 1 header line, 2 status bar lines
	m.picker.SetSize(m.width, m.height)
	m.composite.SetSize(m.width, body)
	m.entity.SetSize(m.width, body)
	m.thresholds.SetSize(m.width, body)
	m.diff.SetSize(m.width, m.height)
	m.help.SetSize(m.width, m.height)
	m.brokers.SetSize(m.width, m.height)
}

func (m AppModel) capturing() bool {
	if m.overlay == overlayPicker || m.state == StatePicker {
		return m.picker.Capturing()
	}
	if m.overlay != overlayNone || m.sess == nil {
		return false
	}
	switch m.sess.root.Render().Kind {
	case editor.RenderEntity:
		return m.entity.Capturing()
	case editor.RenderThresholds:
		return m.thresholds.Capturing()
	}
	return m.composite.Capturing()
}

func (m *AppModel) shutdown() {
	if m.sess != nil {
		m.sess.close()
	}
	if m.mqtt != nil {
		m.mqtt.Close()
	}
}

// Update handles messages and dispatches to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case fileChangedMsg:
		if m.sess == nil || m.sess.watcher != msg.watcher {
			return m, nil
		}
		m.reload(msg.event)
		return m, m.watchCmd()

	case brokerMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("mqtt %s: %w", msg.name, msg.err))
			return m, nil
		}
		if m.mqtt != nil {
			m.mqtt.Close()
		}
		m.mqtt, m.mqttName = msg.sink, msg.name
		m.setStatus("mqtt connected to " + msg.name)
		if cfg, ok := m.currentConfig(); ok {
			return m, m.publishCmd(cfg)
		}
		return m, nil

	case publishedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("mqtt publish: %w", msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.DefaultKeyMap.Quit) {
			m.shutdown()
			return m, tea.Quit
		}
		return m.updateKey(msg)
	}
	return m.routeToView(msg)
}

func (m AppModel) currentConfig() (card.Configuration, bool) {
	if m.sess == nil {
		return card.Configuration{}, false
	}
	return m.sess.root.Configuration()
}

func (m AppModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayHelp:
		if key.Matches(msg, keys.DefaultKeyMap.Help) || key.Matches(msg, keys.DefaultKeyMap.Escape) {
			m.help.Toggle()
			m.overlay = overlayNone
		}
		return m, nil
	case overlayDiff:
		var done bool
		m.diff, done = m.diff.Update(msg)
		if done {
			m.overlay = overlayNone
		}
		return m, nil
	case overlayBroker:
		var cmd tea.Cmd
		var action components.PickerAction
		m.brokers, cmd, action = m.brokers.Update(msg)
		switch action {
		case components.PickerCancelled:
			m.overlay = overlayNone
		case components.PickerSelected:
			m.overlay = overlayNone
			cmd = m.selectBroker(m.brokers.Selected())
		}
		return m, cmd
	case overlayPicker:
		return m.updatePicker(msg)
	}

	if m.state == StatePicker {
		return m.updatePicker(msg)
	}

	if !m.capturing() {
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Help):
			m.help.Toggle()
			m.overlay = overlayHelp
			return m, nil
		case key.Matches(msg, keys.DefaultKeyMap.Undo):
			cmd := m.undo()
			return m, cmd
		case key.Matches(msg, keys.DefaultKeyMap.Diff):
			cfg, _ := m.currentConfig()
			lines, err := card.DiffConfigs(&m.sess.baseline, &cfg)
			if err != nil {
				m.setError(err)
				return m, nil
			}
			m.diff.SetLines(lines)
			m.overlay = overlayDiff
			return m, nil
		case key.Matches(msg, keys.DefaultKeyMap.Broker):
			m.brokers = components.NewBrokerPicker(m.theme, m.deps.Brokers, m.mqttName)
			m.brokers.SetSize(m.width, m.height)
			m.overlay = overlayBroker
			return m, nil
		case key.Matches(msg, keys.DefaultKeyMap.Theme):
			m.nextTheme()
			return m, nil
		case key.Matches(msg, keys.DefaultKeyMap.Open):
			m.picker.Refresh()
			m.overlay = overlayPicker
			return m, nil
		}
	}
	return m.routeToView(msg)
}

func (m *AppModel) selectBroker(name string) tea.Cmd {
	if name == "" {
		if m.mqtt != nil {
			m.mqtt.Close()
		}
		m.mqtt, m.mqttName = nil, ""
		m.setStatus("mqtt off")
		return nil
	}
	m.setStatus("connecting to " + name + "...")
	return m.connectCmd(name)
}

func (m AppModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action views.PickerAction
	m.picker, cmd, action = m.picker.Update(msg)
	switch action {
	case views.ActionClose:
		if m.sess == nil {
			m.shutdown()
			return m, tea.Quit
		}
		m.overlay = overlayNone
	case views.ActionOpen, views.ActionNew:
		if action == views.ActionNew {
			if err := os.MkdirAll(filepath.Dir(m.picker.Path()), 0755); err != nil {
				m.setError(err)
				return m, nil
			}
		}
		if err := m.open(m.picker.Path()); err != nil {
			m.setError(err)
			return m, nil
		}
		return m, m.watchCmd()
	}
	return m, cmd
}

// routeToView hands msg to the panel the editor currently shows, then
// flushes what the editor published.
func (m AppModel) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.state == StatePicker || m.overlay == overlayPicker:
		return m.updatePicker(msg)
	case m.overlay == overlayBroker:
		var cmd tea.Cmd
		m.brokers, cmd, _ = m.brokers.Update(msg)
		return m, cmd
	case m.sess == nil || m.overlay != overlayNone:
		return m, nil
	}
	var cmd tea.Cmd
	switch m.sess.root.Render().Kind {
	case editor.RenderEntity:
		m.entity, cmd = m.entity.Update(msg)
	case editor.RenderThresholds:
		m.thresholds, cmd = m.thresholds.Update(msg)
	case editor.RenderComposite:
		m.composite, cmd = m.composite.Update(msg)
	}
	flushed := m.flush()
	return m, tea.Batch(cmd, flushed)
}

// View renders the header, the active panel, any overlay, and the status
// bar.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.state == StatePicker {
		return m.picker.View()
	}
	switch m.overlay {
	case overlayHelp:
		return m.help.View()
	case overlayDiff:
		return m.diff.View()
	case overlayBroker:
		return m.brokers.View()
	case overlayPicker:
		return m.picker.View()
	}

	var body, panel string
	var hints []components.KeyHint
	switch m.sess.root.Render().Kind {
	case editor.RenderEntity:
		body, panel, hints = m.entity.View(), m.entity.Title(), m.entity.Hints()
	case editor.RenderThresholds:
		body, panel, hints = m.thresholds.View(), m.thresholds.Title(), m.thresholds.Hints()
	default:
		body, panel, hints = m.composite.View(), m.composite.Title(), m.composite.Hints()
	}

	header := components.RenderHeader(m.theme, components.HeaderInfo{
		Card:    filepath.Base(m.sess.path),
		Panel:   panel,
		Broker:  m.mqttName,
		Version: m.deps.Version,
		Build:   m.deps.Build,
	}, m.width)

	st := m.status
	st.LastSaved = m.sess.savedAt
	st.Revisions = m.sess.history.Len()
	st.Session = m.sess.root.State().Session
	statusBar := components.RenderStatusBar(m.theme, st, hints, m.width)

	bodyHeight := m.height - 3
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		Background(m.theme.Base00).
		Foreground(m.theme.Base05)

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(body), statusBar)
}
