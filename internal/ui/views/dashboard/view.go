package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	insightsdto "paymind/internal/modules/insights/dto"
	"paymind/internal/ui/theme"
)

type Port interface {
	Dashboard(ctx context.Context, input insightsdto.AsOfInput) (insightsdto.DashboardOutput, error)
}

type LoadedMsg struct {
	Out insightsdto.DashboardOutput
	Err error
}

type Model struct {
	port    Port
	userID  string
	money   func(float64) string
	out     insightsdto.DashboardOutput
	err     error
	body    viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port, userID string, money func(float64) string) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, userID: userID, money: money, body: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

// Refresh reloads today's dashboard.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("insights not configured")}
		}
		out, err := m.port.Dashboard(context.Background(), insightsdto.AsOfInput{UserID: m.userID})
		return LoadedMsg{Out: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width
		m.body.Height = msg.Height
		m.body.SetContent(m.render())

	case LoadedMsg:
		m.loading = false
		m.out, m.err = msg.Out, msg.Err
		m.body.SetContent(m.render())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Counting the cost…")
	}
	return m.body.View()
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Loss.Render("dashboard: " + m.err.Error())
	}
	d := m.out
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today "+d.AsOf.Format("Mon 2 Jan")) + "\n")
	sb.WriteString(fmt.Sprintf("  screen time  %5.1fh   lost %s\n", d.TodayHours, theme.Loss.Render(m.money(d.TodayLoss))))
	sb.WriteString(fmt.Sprintf("  focus        %5.1fh   %d pts\n\n", d.FocusTodayHours, d.FocusTodayPoints))

	sb.WriteString(theme.Title.Render("Last 7 days") + "\n")
	sb.WriteString(fmt.Sprintf("  screen time  %5.1fh   lost %s\n", d.WeekHours, theme.Loss.Render(m.money(d.WeekLoss))))
	sb.WriteString(fmt.Sprintf("  corporations earned %s from your attention\n", theme.Hot.Render(m.money(d.WeekCorporateProfit))))
	if d.TopApp != "" {
		sb.WriteString(fmt.Sprintf("  top app      %s (%.1fh)\n", theme.Hot.Render(d.TopApp), d.TopAppHours))
	}
	sb.WriteString(fmt.Sprintf("  focus        %5.1fh   %d pts\n\n", d.FocusWeekHours, d.FocusWeekPoints))

	if len(d.WeeklyApps) > 0 {
		sb.WriteString(theme.Title.Render("Apps") + "\n")
		top := d.WeeklyApps[0].Hours
		for _, a := range d.WeeklyApps {
			ratio := 0.0
			if top > 0 {
				ratio = a.Hours / top
			}
			sb.WriteString(fmt.Sprintf("  %-12s %s %5.1fh  %s\n", a.App, theme.Bar(ratio, 20), a.Hours, m.money(a.Loss)))
		}
		sb.WriteString("\n")
	}

	ds := d.Distractions
	sb.WriteString(theme.Title.Render("Distractions") + "\n")
	if ds.DaysLogged == 0 {
		sb.WriteString(theme.Muted.Render("  nothing logged this week") + "\n")
	} else {
		sb.WriteString(fmt.Sprintf("  pickups %d  notifications %d  over %d days\n", ds.Pickups, ds.Notifications, ds.DaysLogged))
		sb.WriteString(fmt.Sprintf("  attention debt %.0f min (%s)\n", ds.DebtMinutes, theme.Warn.Render(m.money(ds.DebtValue))))
		sb.WriteString(fmt.Sprintf("  low-pickup streak %d days\n", ds.LowPickupStreak))
	}
	sb.WriteString("\n" + theme.Title.Render("Subscriptions") + "\n")
	sb.WriteString(fmt.Sprintf("  %d active, %s per month\n", d.SubscriptionCount, m.money(d.SubscriptionMonthly)))
	return sb.String()
}
