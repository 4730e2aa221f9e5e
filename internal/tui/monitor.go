package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/winbridge/internal/bridge"
	"github.com/1broseidon/winbridge/internal/wire"
)

// maxLogLines bounds the in-memory event log.
const maxLogLines = 500

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	windowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	eventStyles = map[wire.EventName]lipgloss.Style{
		wire.EventClose:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		wire.EventFocus:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		wire.EventBlur:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		wire.EventMaximize: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		wire.EventMinimize: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
	defaultEventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// logEntry is one received event with its arrival time.
type logEntry struct {
	at time.Time
	ev wire.Event
}

// eventMsg carries one bridge event into the bubbletea loop.
type eventMsg wire.Event

// closedMsg signals that the bridge connection went away.
type closedMsg struct{}

type model struct {
	events <-chan wire.Event

	log    []logEntry
	total  int
	closed bool

	width  int
	height int
}

func newModel(events <-chan wire.Event) model {
	return model{
		events: events,
		width:  80,
		height: 24,
	}
}

func waitForEvent(events <-chan wire.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "c":
			m.log = nil
			return m, nil
		}
		return m, nil

	case eventMsg:
		m.total++
		m.log = append(m.log, logEntry{at: time.Now(), ev: wire.Event(msg)})
		if len(m.log) > maxLogLines {
			m.log = m.log[len(m.log)-maxLogLines:]
		}
		return m, waitForEvent(m.events)

	case closedMsg:
		m.closed = true
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	header := titleStyle.Render("winbridge events")
	status := fmt.Sprintf(" %d received", m.total)
	if m.closed {
		status += "  (connection closed)"
	}

	visible := m.contentHeight()
	start := 0
	if len(m.log) > visible {
		start = len(m.log) - visible
	}

	body := ""
	for _, entry := range m.log[start:] {
		body += renderEntry(entry) + "\n"
	}
	if len(m.log) == 0 {
		body = helpStyle.Render("waiting for window events...") + "\n"
	}

	help := helpStyle.Render("q quit • c clear")
	return header + status + "\n\n" + body + "\n" + help
}

func (m model) contentHeight() int {
	// Header, status, blank lines and help take 5 rows.
	h := m.height - 5
	if h < 1 {
		h = 1
	}
	return h
}

func renderEntry(entry logEntry) string {
	style, ok := eventStyles[entry.ev.Name]
	if !ok {
		style = defaultEventStyle
	}
	return fmt.Sprintf("%s %s %s",
		timeStyle.Render(entry.at.Format("15:04:05.000")),
		style.Render(fmt.Sprintf("%-17s", entry.ev.Name)),
		windowStyle.Render(fmt.Sprintf("window %d", entry.ev.Window)),
	)
}

// Run attaches to the bridge connection and displays incoming window
// events until the user quits.
func Run(client *bridge.Client) error {
	events := make(chan wire.Event, 64)
	forward := func(ev wire.Event) {
		select {
		case events <- ev:
		default: // viewer lagging; drop rather than stall the bridge
		}
	}

	listener := &bridge.ListenerFuncs{
		OnClose:           forward,
		OnFocus:           forward,
		OnBlur:            forward,
		OnMaximize:        forward,
		OnUnmaximize:      forward,
		OnMinimize:        forward,
		OnRestore:         forward,
		OnResize:          forward,
		OnResized:         forward,
		OnMove:            forward,
		OnMoved:           forward,
		OnEnterFullScreen: forward,
		OnLeaveFullScreen: forward,
	}
	client.Events().AddListener(listener)
	defer client.Events().RemoveListener(listener)

	p := tea.NewProgram(newModel(events), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
