package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	insightsdto "paymind/internal/modules/insights/dto"
	reportdto "paymind/internal/modules/report/dto"
	trackingdto "paymind/internal/modules/tracking/dto"
	walletdto "paymind/internal/modules/wallet/dto"
	"paymind/internal/ui/components"
	"paymind/internal/ui/theme"
	dashboardview "paymind/internal/ui/views/dashboard"
	recommendationsview "paymind/internal/ui/views/recommendations"
	reportview "paymind/internal/ui/views/report"
	subscriptionsview "paymind/internal/ui/views/subscriptions"
	walletview "paymind/internal/ui/views/wallet"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type insightsPort interface {
	Dashboard(ctx context.Context, input insightsdto.AsOfInput) (insightsdto.DashboardOutput, error)
	Recommendations(ctx context.Context, input insightsdto.AsOfInput) (insightsdto.RecommendationsOutput, error)
}

type walletPort interface {
	Wallet(ctx context.Context, userID string) (walletdto.WalletOutput, error)
	AddGoal(ctx context.Context, userID, title string, target float64) (walletdto.GoalItem, error)
	ListGoals(ctx context.Context, userID string) (walletdto.GoalListOutput, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
	Allocate(ctx context.Context, userID, goalID string, amount float64) (walletdto.AllocateOutput, error)
}

type trackingPort interface {
	SaveScreenTime(ctx context.Context, userID string, date time.Time, apps []trackingdto.AppHours) (trackingdto.SaveScreenTimeOutput, error)
	LogDistractions(ctx context.Context, userID string, date time.Time, pickups, notifications int) (trackingdto.DistractionItem, error)
	LogFocus(ctx context.Context, userID string, date time.Time, activityType string, hours float64) (trackingdto.LogFocusOutput, error)
	AddSubscription(ctx context.Context, userID, name string, cost, usageHours float64) (trackingdto.SubscriptionItem, error)
	ListSubscriptions(ctx context.Context, userID string) (trackingdto.SubscriptionListOutput, error)
	DeleteSubscription(ctx context.Context, userID, id string) error
}

type reportPort interface {
	Render(ctx context.Context, input reportdto.RenderInput) (reportdto.RenderOutput, error)
	Export(ctx context.Context, input reportdto.ExportInput) (reportdto.ExportOutput, error)
}

type valuationPort interface {
	Money(amount float64) string
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabRecommendations
	tabWallet
	tabSubscriptions
	tabReport
	tabCount
)

var tabLabels = [tabCount]string{
	"Dashboard", "Recommendations", "Wallet & Goals", "Subscriptions", "Report",
}

// ─── async messages ───────────────────────────────────────────────────────────

// actionDoneMsg reports a palette action; a successful one refreshes every tab.
type actionDoneMsg struct {
	status string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Refresh key.Binding
	Help    key.Binding
	Palette key.Binding
	Delete  key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next tab")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete selected goal/subscription")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Refresh, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh, k.Delete},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay and the
// command palette; rendering is delegated to one sub-view per tab.
type Model struct {
	userID   string
	tracking trackingPort
	wallet   walletPort
	report   reportPort

	dashView  dashboardview.Model
	recsView  recommendationsview.Model
	walletV   walletview.Model
	subsView  subscriptionsview.Model
	reportV   reportview.Model
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(userID string, insights insightsPort, wallet walletPort, tracking trackingPort, report reportPort, valuation valuationPort) Model {
	money := func(v float64) string { return fmt.Sprintf("%.0f", v) }
	if valuation != nil {
		money = valuation.Money
	}
	return Model{
		userID:    userID,
		tracking:  tracking,
		wallet:    wallet,
		report:    report,
		dashView:  dashboardview.New(insights, userID, money),
		recsView:  recommendationsview.New(insights, userID, money),
		walletV:   walletview.New(wallet, userID, money),
		subsView:  subscriptionsview.New(tracking, userID, money),
		reportV:   reportview.New(report, userID),
		activeTab: tabDashboard,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.dashView.Init(), m.recsView.Init(), m.walletV.Init(), m.subsView.Init(), m.reportV.Init())
}

func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(m.dashView.Refresh(), m.recsView.Refresh(), m.walletV.Refresh(), m.subsView.Refresh(), m.reportV.Refresh())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Loaded messages are routed to their view whichever tab is active.
	case dashboardview.LoadedMsg:
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd
	case recommendationsview.LoadedMsg:
		var cmd tea.Cmd
		m.recsView, cmd = m.recsView.Update(msg)
		return m, cmd
	case walletview.LoadedMsg:
		var cmd tea.Cmd
		m.walletV, cmd = m.walletV.Update(msg)
		return m, cmd
	case subscriptionsview.LoadedMsg:
		var cmd tea.Cmd
		m.subsView, cmd = m.subsView.Update(msg)
		return m, cmd
	case reportview.LoadedMsg:
		var cmd tea.Cmd
		m.reportV, cmd = m.reportV.Update(msg)
		return m, cmd

	case actionDoneMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, m.refreshAll()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.subViewFiltering() {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			m.status = "refreshing"
			return m, m.refreshAll()
		case "x":
			return m.deleteSelected()
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case tabRecommendations:
		m.recsView, cmd = m.recsView.Update(msg)
	case tabWallet:
		m.walletV, cmd = m.walletV.Update(msg)
	case tabSubscriptions:
		m.subsView, cmd = m.subsView.Update(msg)
	case tabReport:
		m.reportV, cmd = m.reportV.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys) + "\n\n" + m.paletteHelp())
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabRecommendations:
		return m.recsView.View()
	case tabWallet:
		return m.walletV.View()
	case tabSubscriptions:
		return m.subsView.View()
	case tabReport:
		return m.reportV.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "paymind  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Muted.Render(m.userID+"  ") + m.status
	right := theme.Muted.Render("?:help  tab:switch  r:refresh  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

func (m Model) paletteHelp() string {
	return theme.Title.Render("Palette commands") + "\n" + theme.Muted.Render(strings.Join(components.Hints(), "\n"))
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	args := parts[1:]

	switch parts[0] {
	case "refresh":
		m.status = "refreshing"
		return m, m.refreshAll()

	case "focus:log":
		if len(args) != 2 {
			m.status = "usage: focus:log <type> <hours>"
			return m, nil
		}
		hours, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			m.status = "invalid hours"
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			out, err := m.tracking.LogFocus(ctx, m.userID, time.Time{}, args[0], hours)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("logged %.1fh %s (+%d pts)", out.Activity.Hours, out.Activity.Type, out.AccruedPoints), nil
		})

	case "screen:set":
		apps, err := parseAppHours(args)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			out, err := m.tracking.SaveScreenTime(ctx, m.userID, time.Time{}, apps)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("saved %d apps for today", len(out.Entries)), nil
		})

	case "distraction:log":
		if len(args) != 2 {
			m.status = "usage: distraction:log <pickups> <notifications>"
			return m, nil
		}
		pickups, err1 := strconv.Atoi(args[0])
		notifications, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			m.status = "pickups and notifications must be whole numbers"
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			_, err := m.tracking.LogDistractions(ctx, m.userID, time.Time{}, pickups, notifications)
			return "distractions logged", err
		})

	case "goal:add":
		if len(args) < 2 {
			m.status = "usage: goal:add <target> <title>"
			return m, nil
		}
		target, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			m.status = "invalid target"
			return m, nil
		}
		title := strings.Join(args[1:], " ")
		return m, m.action(func(ctx context.Context) (string, error) {
			_, err := m.wallet.AddGoal(ctx, m.userID, title, target)
			return "goal added: " + title, err
		})

	case "goal:allocate":
		goalID, ok := m.walletV.SelectedGoalID()
		if !ok {
			m.status = "no goal selected"
			return m, nil
		}
		if len(args) != 1 {
			m.status = "usage: goal:allocate <amount>"
			return m, nil
		}
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			m.status = "invalid amount"
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			out, err := m.wallet.Allocate(ctx, m.userID, goalID, amount)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s is %.0f%% funded", out.Goal.Title, out.Goal.Progress), nil
		})

	case "report:export":
		format := "md"
		if len(args) > 0 {
			format = args[0]
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			out, err := m.report.Export(ctx, reportdto.ExportInput{UserID: m.userID, Format: format})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("wrote %s (%d bytes)", out.Path, out.Bytes), nil
		})

	case "goal:rm", "sub:rm":
		return m.deleteSelected()

	case "sub:add":
		if len(args) < 3 {
			m.status = "usage: sub:add <cost> <usage-hours> <name>"
			return m, nil
		}
		cost, err1 := strconv.ParseFloat(args[0], 64)
		usage, err2 := strconv.ParseFloat(args[1], 64)
		if err1 != nil || err2 != nil {
			m.status = "cost and usage hours must be numbers"
			return m, nil
		}
		name := strings.Join(args[2:], " ")
		return m, m.action(func(ctx context.Context) (string, error) {
			item, err := m.tracking.AddSubscription(ctx, m.userID, name, cost, usage)
			if err != nil {
				return "", err
			}
			return name + ": " + item.Advice, nil
		})

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	switch m.activeTab {
	case tabWallet:
		goalID, ok := m.walletV.SelectedGoalID()
		if !ok {
			m.status = "no goal selected"
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			return "goal deleted", m.wallet.DeleteGoal(ctx, m.userID, goalID)
		})
	case tabSubscriptions:
		subID, ok := m.subsView.SelectedID()
		if !ok {
			m.status = "no subscription selected"
			return m, nil
		}
		return m, m.action(func(ctx context.Context) (string, error) {
			return "subscription deleted", m.tracking.DeleteSubscription(ctx, m.userID, subID)
		})
	}
	m.status = "nothing to delete here"
	return m, nil
}

func (m Model) action(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		return actionDoneMsg{status: status, err: err}
	}
}

// parseAppHours reads "TikTok=2 YouTube=1.5".
func parseAppHours(args []string) ([]trackingdto.AppHours, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: screen:set <app>=<hours> [...]")
	}
	apps := make([]trackingdto.AppHours, 0, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected app=hours, got %q", arg)
		}
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hours for %s", name)
		}
		apps = append(apps, trackingdto.AppHours{App: name, Hours: hours})
	}
	return apps, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabRecommendations:
		return m.recsView.Filtering()
	case tabWallet:
		return m.walletV.Filtering()
	case tabSubscriptions:
		return m.subsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.recsView, _ = m.recsView.Update(sz)
	m.walletV, _ = m.walletV.Update(sz)
	m.subsView, _ = m.subsView.Update(sz)
	m.reportV, _ = m.reportV.Update(sz)
}
