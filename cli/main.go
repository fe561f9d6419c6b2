package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	customerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	faintStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type chatResultMsg struct {
	resp *ChatResponse
	err  error
}

type confirmResultMsg struct {
	resp *ConfirmResponse
	err  error
}

type clearResultMsg struct {
	err error
}

type model struct {
	client    *ApiClient
	sessionID string

	viewport viewport.Model
	input    textinput.Model
	lines    []string
	order    []OrderLine
	total    float64
	waiting  bool
	ready    bool
}

func newModel(client *ApiClient, sessionID string) model {
	input := textinput.New()
	input.Placeholder = "Type your order, or /confirm, /clear, /quit"
	input.Focus()
	input.CharLimit = 280

	return model{
		client:    client,
		sessionID: sessionID,
		input:     input,
		lines: []string{
			assistantStyle.Render("Welcome! Check out the menu or tell me your order."),
		},
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			return m.dispatch(text)
		}

	case chatResultMsg:
		m.waiting = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
			return m, nil
		}
		m.order = msg.resp.Order
		m.total = msg.resp.Total
		m.appendLine(assistantStyle.Render(msg.resp.Reply))
		return m, nil

	case confirmResultMsg:
		m.waiting = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
			return m, nil
		}
		m.order = nil
		m.total = 0
		m.appendLine(assistantStyle.Render(msg.resp.Confirmation))
		m.appendLine(faintStyle.Render(fmt.Sprintf("Order placed. Total $%.2f, please pull forward to pay.", msg.resp.Total)))
		return m, nil

	case clearResultMsg:
		m.waiting = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("Error: " + msg.err.Error()))
			return m, nil
		}
		m.order = nil
		m.total = 0
		m.appendLine(assistantStyle.Render("Okay, I've cleared your current order."))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) dispatch(text string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(text) {
	case "/quit", "/exit":
		return m, tea.Quit
	case "/confirm":
		m.waiting = true
		m.appendLine(faintStyle.Render("Confirming your order..."))
		return m, func() tea.Msg {
			resp, err := m.client.ConfirmOrder(m.sessionID)
			return confirmResultMsg{resp: resp, err: err}
		}
	case "/clear":
		m.waiting = true
		return m, func() tea.Msg {
			return clearResultMsg{err: m.client.ClearOrder(m.sessionID)}
		}
	}

	m.waiting = true
	m.appendLine(customerStyle.Render("You: " + text))
	return m, func() tea.Msg {
		resp, err := m.client.SendChat(m.sessionID, text)
		return chatResultMsg{resp: resp, err: err}
	}
}

func (m *model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refreshViewport()
}

func (m *model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("🚗 AI Drive-Thru"))
	sb.WriteString("\n")
	if m.ready {
		sb.WriteString(m.viewport.View())
		sb.WriteString("\n")
	}
	sb.WriteString(m.orderSummary())
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	return sb.String()
}

func (m model) orderSummary() string {
	if len(m.order) == 0 {
		return faintStyle.Render("Your order is empty.")
	}
	var parts []string
	for _, line := range m.order {
		name := line.Item
		if line.Details != "" {
			name += " (" + line.Details + ")"
		}
		parts = append(parts, fmt.Sprintf("%dx %s", line.Quantity, name))
	}
	return faintStyle.Render(fmt.Sprintf("Order: %s | total $%.2f", strings.Join(parts, ", "), m.total))
}

func main() {
	client := NewApiClient()
	if ok, err := client.CheckHealth(); !ok {
		fmt.Fprintf(os.Stderr, "Drive-thru API is not reachable: %v\n", err)
		os.Exit(1)
	}

	sessionID, err := client.CreateSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start a session: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(client, sessionID), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
