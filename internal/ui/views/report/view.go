package report

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	reportdto "paymind/internal/modules/report/dto"
	"paymind/internal/ui/theme"
)

// Port renders the markdown report shown in this tab.
type Port interface {
	Render(ctx context.Context, input reportdto.RenderInput) (reportdto.RenderOutput, error)
}

type LoadedMsg struct {
	Markdown string
	Err      error
}

type Model struct {
	port     Port
	userID   string
	markdown string
	err      error
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	loading  bool
	width    int
	height   int
}

func New(port Port, userID string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{port: port, userID: userID, viewport: viewport.New(0, 0), spinner: sp, renderer: r, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh renders the report as of today.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("reports not configured")}
		}
		out, err := m.port.Render(context.Background(), reportdto.RenderInput{UserID: m.userID, Format: "md"})
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Markdown: string(out.Data)}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.viewport.SetContent(m.renderContent())

	case LoadedMsg:
		m.loading = false
		m.markdown, m.err = msg.Markdown, msg.Err
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Building report…")
	}
	footer := theme.Muted.Render(fmt.Sprintf("%.0f%%  ↑/↓: scroll  :report:export <json|md|pdf>", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = m.height - 1
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.width),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) renderContent() string {
	if m.err != nil {
		return theme.Loss.Render("report: " + m.err.Error())
	}
	if m.markdown == "" {
		return theme.Muted.Render("(empty report)")
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(m.markdown); err == nil {
			return rendered
		}
	}
	return m.markdown
}
