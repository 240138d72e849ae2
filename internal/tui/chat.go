// Package tui renders the chat widget in the terminal.
package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/setinbound/chatkit/internal/chat"
)

// Theme holds the color scheme for the widget.
type Theme struct {
	User      lipgloss.Color
	Assistant lipgloss.Color
	Error     lipgloss.Color
	Link      lipgloss.Color
	Hint      lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	User:      lipgloss.Color("#5FAFD7"), // light blue
	Assistant: lipgloss.Color("#D7D7D7"), // light gray
	Error:     lipgloss.Color("#FF005F"), // red
	Link:      lipgloss.Color("#00AFFF"), // blue
	Hint:      lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) userStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.User).Bold(true)
}

func (t Theme) assistantStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Assistant)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) linkStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Link).Underline(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// stateChangedMsg reports a store mutation (new message, pending flip, banner).
type stateChangedMsg struct{}

// widgetModel is the bubbletea model for the chat widget.
type widgetModel struct {
	session *chat.Session
	updates chan struct{}

	input     textinput.Model
	spin      spinner.Model
	theme     Theme
	inlineErr string
	quitting  bool
}

// NewWidget creates the widget model around a session. The session's
// store is subscribed so any mutation redraws the widget.
func NewWidget(session *chat.Session) tea.Model {
	updates := make(chan struct{}, 1)
	session.Store().Subscribe(func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	})

	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.CharLimit = chat.MaxMessageLen

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return widgetModel{
		session: session,
		updates: updates,
		input:   input,
		spin:    spin,
		theme:   defaultTheme,
	}
}

// waitForUpdate blocks on the store subscription channel.
func (m widgetModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		<-m.updates
		return stateChangedMsg{}
	}
}

// Init starts the update loop and the spinner.
func (m widgetModel) Init() tea.Cmd {
	return tea.Batch(m.waitForUpdate(), m.spin.Tick)
}

// Update handles messages and returns the updated model.
func (m widgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	store := m.session.Store()

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if !store.IsOpen() {
			switch msg.String() {
			case "enter", "o":
				store.SetOpen(true)
				return m, m.input.Focus()
			case "q", "ctrl+c":
				m.quitting = true
				m.session.Close()
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			m.session.Close()
			return m, tea.Quit
		case "esc":
			store.SetOpen(false)
			m.inlineErr = ""
			return m, nil
		case "ctrl+l":
			m.session.Clear()
			m.inlineErr = ""
			return m, nil
		case "enter":
			if err := m.session.Submit(m.input.Value()); err != nil {
				m.inlineErr = err.Error()
				return m, nil
			}
			m.inlineErr = ""
			m.input.SetValue("")
			return m, nil
		}

		// Typing clears the banner and any inline validation message.
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.inlineErr = ""
			store.ClearLastError()
		}
		return m, cmd

	case stateChangedMsg:
		return m, m.waitForUpdate()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the widget.
func (m widgetModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m widgetModel) renderContent() string {
	if m.quitting {
		return ""
	}

	store := m.session.Store()
	if !store.IsOpen() {
		return m.theme.hintStyle().Render("Web Chatbot — press enter to open, q to quit") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.theme.userStyle().Render("Web Chatbot"))
	b.WriteString(m.theme.hintStyle().Render("  (esc close, ctrl+l clear, ctrl+c quit)"))
	b.WriteString("\n\n")

	for _, msg := range store.Messages() {
		b.WriteString(m.renderMessage(msg))
	}

	if store.Pending() {
		b.WriteString(m.spin.View())
		b.WriteString(m.theme.hintStyle().Render(" waiting for response..."))
		b.WriteString("\n")
	}

	if banner := store.LastError(); banner != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.errorStyle().Render("⚠ " + banner))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.inlineErr != "" {
		b.WriteString(m.theme.errorStyle().Render(m.inlineErr))
		b.WriteString("\n")
	} else if n := utf8.RuneCountInString(m.input.Value()); n > 300 {
		b.WriteString(m.theme.hintStyle().Render(fmt.Sprintf("%d/%d characters", n, chat.MaxMessageLen)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m widgetModel) renderMessage(msg chat.Message) string {
	var label string
	var style lipgloss.Style
	switch {
	case msg.Role == chat.RoleUser:
		label = "you"
		style = m.theme.userStyle()
	case msg.IsError:
		label = "assistant"
		style = m.theme.errorStyle()
	default:
		label = "assistant"
		style = m.theme.assistantStyle()
	}

	header := style.Render(label) + m.theme.hintStyle().Render(" "+msg.Timestamp.Format("15:04"))
	return fmt.Sprintf("%s\n%s\n\n", header, m.renderText(msg.Text, style))
}

// renderText styles hyperlinks separately from surrounding text.
func (m widgetModel) renderText(text string, style lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range chat.Segments(text) {
		if seg.Kind == chat.Hyperlink {
			b.WriteString(m.theme.linkStyle().Render(seg.Value))
		} else {
			b.WriteString(style.Render(seg.Value))
		}
	}
	return b.String()
}

// Run starts the interactive widget and blocks until the user quits.
func Run(session *chat.Session) error {
	p := tea.NewProgram(NewWidget(session))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("widget UI error: %w", err)
	}
	return nil
}
