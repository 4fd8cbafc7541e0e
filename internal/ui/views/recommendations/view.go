package recommendations

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	insightsdto "paymind/internal/modules/insights/dto"
	"paymind/internal/ui/theme"
)

type Port interface {
	Recommendations(ctx context.Context, input insightsdto.AsOfInput) (insightsdto.RecommendationsOutput, error)
}

type LoadedMsg struct {
	Out insightsdto.RecommendationsOutput
	Err error
}

// entry is either a recommendation or a cut-back plan.
type entry struct {
	rec   *insightsdto.RecommendationItem
	plan  *insightsdto.CutBackPlanItem
	money func(float64) string
}

func (e entry) Title() string {
	if e.plan != nil {
		return "Plan: " + e.plan.Title
	}
	return e.rec.Title
}

func (e entry) Description() string {
	if e.plan != nil {
		return fmt.Sprintf("saves %s / month", e.money(e.plan.MonthlySaving))
	}
	return fmt.Sprintf("%s · saves %s %s", e.rec.Difficulty, e.money(e.rec.PotentialSaving), e.rec.Timeframe)
}

func (e entry) FilterValue() string { return e.Title() }

type Model struct {
	port   Port
	userID string
	money  func(float64) string
	out    insightsdto.RecommendationsOutput
	list   list.Model
	detail viewport.Model
	width  int
	height int
}

func New(port Port, userID string, money func(float64) string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Recommendations"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(1)
	return Model{port: port, userID: userID, money: money, list: l, detail: vp}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("insights not configured")}
		}
		out, err := m.port.Recommendations(context.Background(), insightsdto.AsOfInput{UserID: m.userID})
		return LoadedMsg{Out: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listW := m.width / 2
		m.list.SetSize(listW, m.height)
		m.detail.Width = m.width - listW - 4
		m.detail.Height = m.height - 4

	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Recommendations: " + msg.Err.Error()
			return m, nil
		}
		m.out = msg.Out
		m.list.Title = fmt.Sprintf("Recommendations · save up to %s / week", m.money(msg.Out.TotalPotentialSaving))
		items := make([]list.Item, 0, len(msg.Out.Items)+len(msg.Out.Plans))
		for i := range msg.Out.Items {
			items = append(items, entry{rec: &msg.Out.Items[i], money: m.money})
		}
		for i := range msg.Out.Plans {
			items = append(items, entry{plan: &msg.Out.Plans[i], money: m.money})
		}
		cmds = append(cmds, m.list.SetItems(items))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.detail.SetContent(m.renderDetail())
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width / 2
	left := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	right := theme.Pane.Width(m.width - listW - 2).Height(m.height - 2).Padding(0).Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) renderDetail() string {
	e, ok := m.list.SelectedItem().(entry)
	if !ok {
		if len(m.out.AdvisorFailures) > 0 {
			return theme.Warn.Render("skipped advisors: " + strings.Join(m.out.AdvisorFailures, ", "))
		}
		return theme.Muted.Render("No usage this week, nothing to recommend.")
	}
	var sb strings.Builder
	if e.plan != nil {
		p := e.plan
		sb.WriteString(theme.Title.Render(p.Title) + "\n\n" + p.Description + "\n\n")
		sb.WriteString(fmt.Sprintf("%s %.1fh per day\n", theme.Muted.Render("time back:"), p.DailyTimeSaving))
		sb.WriteString(fmt.Sprintf("%s %s per month\n\n", theme.Muted.Render("worth:    "), theme.Gain.Render(m.money(p.MonthlySaving))))
		for i, step := range p.Steps {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
		return sb.String()
	}
	r := e.rec
	sb.WriteString(theme.Title.Render(r.Title) + "\n\n" + r.Description + "\n\n")
	if r.App != "" {
		sb.WriteString(theme.Muted.Render("app:         ") + r.App + "\n")
	}
	if r.Alternative != "" {
		sb.WriteString(theme.Muted.Render("try instead: ") + r.Alternative + "\n")
	}
	sb.WriteString(theme.Muted.Render("costs you:   ") + theme.Loss.Render(m.money(r.CurrentCost)) + "\n")
	sb.WriteString(theme.Muted.Render("could save:  ") + theme.Gain.Render(m.money(r.PotentialSaving)) + " " + r.Timeframe + "\n")
	sb.WriteString(theme.Muted.Render("difficulty:  ") + r.Difficulty + "\n")
	sb.WriteString(theme.Muted.Render("source:      ") + r.Source + "\n")
	return sb.String()
}
