package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/mgce/internal/broker"
	"github.com/tonhe/mgce/tui/keys"
	"github.com/tonhe/mgce/tui/styles"
)

// PickerAction is the result of a BrokerPicker update.
type PickerAction int

const (
	// PickerNone means the picker stays open.
	PickerNone PickerAction = iota
	// PickerSelected means the user chose a broker; "" turns MQTT off.
	PickerSelected
	// PickerCancelled means the user dismissed the picker.
	PickerCancelled
)

type pickerMode int

const (
	pickerModeList pickerMode = iota
	pickerModeForm
)

// Broker form fields, in tab order.
const (
	bfName = iota
	bfURL
	bfUser
	bfPass
	bfTopic
	bfCount
)

var brokerFieldLabels = [bfCount]string{"Name", "URL", "Username", "Password", "Topic"}

// BrokerPicker is a modal for choosing the MQTT broker configurations are
// republished to, or adding a new one.
type BrokerPicker struct {
	theme    styles.Theme
	sty      *styles.Styles
	provider broker.Provider
	width    int
	height   int

	mode      pickerMode
	summaries []broker.Summary
	cursor    int // 0 = off, 1..n = broker, n+1 = new
	current   string
	selected  string

	fields    [bfCount]textinput.Model
	formFocus int
	formErr   string
}

// NewBrokerPicker creates a picker. provider may be nil when no store is
// unlocked; only "off" is offered then.
func NewBrokerPicker(theme styles.Theme, provider broker.Provider, current string) BrokerPicker {
	p := BrokerPicker{
		theme:    theme,
		sty:      styles.NewStyles(theme),
		provider: provider,
		current:  current,
	}
	p.reload()
	for i, s := range p.summaries {
		if s.Name == current {
			p.cursor = i + 1
		}
	}
	return p
}

// SetSize updates the terminal dimensions used for centering.
func (p *BrokerPicker) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Selected returns the chosen broker name after PickerSelected.
func (p BrokerPicker) Selected() string {
	return p.selected
}

func (p *BrokerPicker) reload() {
	p.summaries = nil
	if p.provider == nil {
		return
	}
	if sums, err := p.provider.List(); err == nil {
		p.summaries = sums
	}
}

func (p BrokerPicker) rows() int {
	n := 1 + len(p.summaries)
	if p.provider != nil {
		n++
	}
	return n
}

// Update handles a key and reports what the app should do.
func (p BrokerPicker) Update(msg tea.Msg) (BrokerPicker, tea.Cmd, PickerAction) {
	if p.mode == pickerModeForm {
		return p.updateForm(msg)
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, PickerNone
	}
	switch {
	case key.Matches(km, keys.DefaultKeyMap.Escape):
		return p, nil, PickerCancelled
	case key.Matches(km, keys.DefaultKeyMap.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, keys.DefaultKeyMap.Down):
		if p.cursor < p.rows()-1 {
			p.cursor++
		}
	case key.Matches(km, keys.DefaultKeyMap.Enter):
		switch {
		case p.cursor == 0:
			p.selected = ""
			return p, nil, PickerSelected
		case p.cursor <= len(p.summaries):
			p.selected = p.summaries[p.cursor-1].Name
			return p, nil, PickerSelected
		default:
			cmd := p.openForm()
			return p, cmd, PickerNone
		}
	}
	return p, nil, PickerNone
}

func (p *BrokerPicker) openForm() tea.Cmd {
	p.mode = pickerModeForm
	p.formErr = ""
	placeholders := [bfCount]string{"home", "tcp://homeassistant.local:1883", "optional", "optional", "default: per card"}
	for i := range p.fields {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 32
		ti.Placeholder = placeholders[i]
		if i == bfPass {
			ti.EchoMode = textinput.EchoPassword
		}
		p.fields[i] = ti
	}
	p.formFocus = 0
	return p.fields[0].Focus()
}

func (p *BrokerPicker) focus(i int) tea.Cmd {
	if i < 0 {
		i = bfCount - 1
	}
	p.formFocus = i % bfCount
	for j := range p.fields {
		p.fields[j].Blur()
	}
	return p.fields[p.formFocus].Focus()
}

func (p BrokerPicker) updateForm(msg tea.Msg) (BrokerPicker, tea.Cmd, PickerAction) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, PickerNone
	}
	switch {
	case key.Matches(km, keys.DefaultKeyMap.Escape):
		p.mode = pickerModeList
		p.formErr = ""
		return p, nil, PickerNone
	case km.String() == "tab":
		cmd := p.focus(p.formFocus + 1)
		return p, cmd, PickerNone
	case km.String() == "shift+tab":
		cmd := p.focus(p.formFocus - 1)
		return p, cmd, PickerNone
	case key.Matches(km, keys.DefaultKeyMap.Enter):
		if p.formFocus < bfCount-1 {
			cmd := p.focus(p.formFocus + 1)
			return p, cmd, PickerNone
		}
		return p.save()
	}
	var cmd tea.Cmd
	p.fields[p.formFocus], cmd = p.fields[p.formFocus].Update(msg)
	return p, cmd, PickerNone
}

func (p BrokerPicker) save() (BrokerPicker, tea.Cmd, PickerAction) {
	b := broker.Broker{
		Name:     strings.TrimSpace(p.fields[bfName].Value()),
		URL:      strings.TrimSpace(p.fields[bfURL].Value()),
		Username: strings.TrimSpace(p.fields[bfUser].Value()),
		Password: p.fields[bfPass].Value(),
		Topic:    strings.TrimSpace(p.fields[bfTopic].Value()),
	}
	if err := p.provider.Add(b); err != nil {
		p.formErr = err.Error()
		return p, nil, PickerNone
	}
	p.reload()
	p.mode = pickerModeList
	p.selected = b.Name
	return p, nil, PickerSelected
}

// View renders the picker as a centered modal.
func (p BrokerPicker) View() string {
	width := ModalWidth(p.width, 40, 60)
	if p.mode == pickerModeForm {
		return RenderModal(p.theme, "New Broker", p.viewForm(), width, p.width, p.height)
	}

	var lines []string
	if p.provider == nil {
		lines = append(lines, p.sty.Dim.Render("Broker store is locked."), p.sty.Dim.Render("Set MGCE_MASTER_KEY to unlock it."), "")
	}
	lines = append(lines, p.row(0, "(off)", "republish to file only"))
	for i, s := range p.summaries {
		name := s.Name
		if name == p.current {
			name += " *"
		}
		lines = append(lines, p.row(i+1, name, s.URL))
	}
	if p.provider != nil {
		newRow := p.sty.BoolOn.Render("+ New Broker")
		if p.cursor == p.rows()-1 {
			newRow = p.sty.Cursor.Render("> ") + newRow
		} else {
			newRow = "  " + newRow
		}
		lines = append(lines, newRow)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(lines, "\n"),
		"",
		RenderHints(p.theme, KeyHint{"enter", "select"}, KeyHint{"esc", "cancel"}),
	)
	return RenderModal(p.theme, "MQTT Broker", content, width, p.width, p.height)
}

func (p BrokerPicker) row(i int, name, detail string) string {
	cursor := "  "
	nameStyle := p.sty.Row
	if i == p.cursor {
		cursor = p.sty.Cursor.Render("> ")
		nameStyle = nameStyle.Foreground(p.theme.Base06).Bold(true)
	}
	return cursor + nameStyle.Render(name) + "  " + p.sty.Help.Render(detail)
}

func (p BrokerPicker) viewForm() string {
	var lines []string
	if p.formErr != "" {
		lines = append(lines, p.sty.Error.Render(p.formErr), "")
	}
	for i := range p.fields {
		indicator := "  "
		lbl := p.sty.Label
		if i == p.formFocus {
			indicator = p.sty.Cursor.Render("> ")
			lbl = p.sty.LabelSel
		}
		lines = append(lines, fmt.Sprintf("%s%s%s", indicator, lbl.Render(PadRight(brokerFieldLabels[i]+":", 12)), p.fields[i].View()))
	}
	lines = append(lines, "", RenderHints(p.theme,
		KeyHint{"tab", "next"}, KeyHint{"enter", "save on last field"}, KeyHint{"esc", "cancel"}))
	return strings.Join(lines, "\n")
}
