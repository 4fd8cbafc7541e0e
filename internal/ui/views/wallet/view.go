package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	walletdto "paymind/internal/modules/wallet/dto"
	"paymind/internal/ui/theme"
)

type Port interface {
	Wallet(ctx context.Context, userID string) (walletdto.WalletOutput, error)
	ListGoals(ctx context.Context, userID string) (walletdto.GoalListOutput, error)
}

type LoadedMsg struct {
	Wallet walletdto.WalletOutput
	Goals  walletdto.GoalListOutput
	Err    error
}

type goalItem struct {
	goal  walletdto.GoalItem
	money func(float64) string
}

func (i goalItem) Title() string { return i.goal.Title }

func (i goalItem) Description() string {
	if i.goal.Completed {
		return "completed " + i.money(i.goal.TargetAmount)
	}
	return fmt.Sprintf("%s %3.0f%%  %s to go", theme.Bar(i.goal.Progress/100, 12), i.goal.Progress, i.money(i.goal.Remaining))
}

func (i goalItem) FilterValue() string { return i.goal.Title }

type Model struct {
	port   Port
	userID string
	money  func(float64) string
	wallet walletdto.WalletOutput
	goals  list.Model
	err    error
	width  int
	height int
}

func New(port Port, userID string, money func(float64) string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Goals"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	return Model{port: port, userID: userID, money: money, goals: l}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("wallet not configured")}
		}
		ctx := context.Background()
		w, err := m.port.Wallet(ctx, m.userID)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		goals, err := m.port.ListGoals(ctx, m.userID)
		return LoadedMsg{Wallet: w, Goals: goals, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.goals.SetSize(m.width-m.panelWidth(), m.height)

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.wallet = msg.Wallet
			items := make([]list.Item, 0, len(msg.Goals.Goals))
			for _, g := range msg.Goals.Goals {
				items = append(items, goalItem{goal: g, money: m.money})
			}
			cmds = append(cmds, m.goals.SetItems(items))
		}
	}
	var cmd tea.Cmd
	m.goals, cmd = m.goals.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	panel := theme.Pane.Width(m.panelWidth() - 2).Height(m.height - 2).Render(m.renderWallet())
	goals := lipgloss.NewStyle().Width(m.width - m.panelWidth()).Height(m.height).Render(m.goals.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, panel, goals)
}

// SelectedGoalID returns the highlighted goal, if any.
func (m Model) SelectedGoalID() (string, bool) {
	if item, ok := m.goals.SelectedItem().(goalItem); ok {
		return item.goal.ID, true
	}
	return "", false
}

func (m Model) Filtering() bool {
	return m.goals.FilterState() == list.Filtering
}

func (m Model) panelWidth() int {
	return m.width * 2 / 5
}

func (m Model) renderWallet() string {
	if m.err != nil {
		return theme.Loss.Render("wallet: " + m.err.Error())
	}
	w := m.wallet
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Attention wallet") + "\n\n")
	sb.WriteString(theme.Muted.Render("balance  ") + theme.Gain.Render(m.money(w.MoneySaved)) + "\n")
	sb.WriteString(theme.Muted.Render("time     ") + fmt.Sprintf("%.1fh saved", w.TotalSavedTime) + "\n")
	sb.WriteString(theme.Muted.Render("points   ") + fmt.Sprintf("%d", w.TotalPoints) + "\n")
	sb.WriteString(theme.Muted.Render("streak   ") + fmt.Sprintf("%d days", w.StreakDays) + "\n\n")
	sb.WriteString(theme.Title.Render("Achievements") + "\n")
	for _, a := range w.Achievements {
		mark := theme.Muted.Render("○ ")
		if a.Unlocked {
			mark = theme.Gain.Render("● ")
		}
		sb.WriteString(mark + a.Title + "\n")
	}
	return sb.String()
}
