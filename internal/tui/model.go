package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"faqbot/internal/domain"
)

// ChatPort is the TUI-facing subset of the engine.
type ChatPort interface {
	Chat(ctx context.Context, conversationID, text string) (domain.Reply, error)
	Summary() string
	Profile() *domain.BusinessProfile
}

// turn is one rendered exchange in the transcript.
type turn struct {
	user string
	bot  domain.Reply
}

// Model is the Bubble Tea model for the chat surface.
type Model struct {
	engine         ChatPort
	input          textinput.Model
	viewport       viewport.Model
	transcript     []turn
	conversationID string
	status         string
	ready          bool
}

// New creates a chat model bound to a fresh conversation.
func New(engine ChatPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		engine:         engine,
		input:          ti,
		viewport:       vp,
		conversationID: uuid.NewString(),
		status:         "Ready. Type to chat.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header + summary, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				reply, err := m.engine.Chat(context.Background(), m.conversationID, text)
				if err != nil {
					m.status = "Error: " + err.Error()
				} else {
					m.transcript = append(m.transcript, turn{user: text, bot: reply})
					m.status = "Decision: " + string(reply.Kind)
				}
				m.input.SetValue("")
				m.viewport.SetContent(m.renderTranscript())
				m.viewport.GotoBottom()
				return m, nil
			}
		case "ctrl+n":
			m.conversationID = uuid.NewString()
			m.transcript = nil
			m.status = "New conversation started."
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	name := "FAQ Chat"
	if p := m.engine.Profile(); p != nil {
		name = p.Name
	}
	header := lipgloss.NewStyle().Bold(true).Render(name)
	blurb := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.engine.Summary())
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + blurb + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet. Ask about hours, location, anything in the FAQ."
	}
	var b strings.Builder
	for i, t := range m.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(userStyle.Render("You: ") + t.user)
		b.WriteString("\n")
		b.WriteString(botStyle.Render("Bot: ") + t.bot.Text)
	}
	return b.String()
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
