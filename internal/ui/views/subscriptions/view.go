package subscriptions

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	trackingdto "paymind/internal/modules/tracking/dto"
	"paymind/internal/ui/theme"
)

type Port interface {
	ListSubscriptions(ctx context.Context, userID string) (trackingdto.SubscriptionListOutput, error)
}

type LoadedMsg struct {
	Out trackingdto.SubscriptionListOutput
	Err error
}

type subItem struct {
	sub   trackingdto.SubscriptionItem
	money func(float64) string
}

func (i subItem) Title() string {
	if i.sub.IsWorthwhile {
		return theme.Gain.Render("✓ ") + i.sub.Name
	}
	return theme.Loss.Render("✗ ") + i.sub.Name
}

func (i subItem) Description() string {
	return fmt.Sprintf("%s/mo · %.0fh · %s/h · %s", i.money(i.sub.Cost), i.sub.UsageHours, i.money(i.sub.CostPerHour), i.sub.Advice)
}

func (i subItem) FilterValue() string { return i.sub.Name }

type Model struct {
	port   Port
	userID string
	money  func(float64) string
	list   list.Model
}

func New(port Port, userID string, money func(float64) string) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Subscriptions"
	l.Styles.Title = theme.Title
	l.SetShowHelp(false)
	return Model{port: port, userID: userID, money: money, list: l}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("tracking not configured")}
		}
		out, err := m.port.ListSubscriptions(context.Background(), m.userID)
		return LoadedMsg{Out: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Subscriptions: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("Subscriptions · %s per month", m.money(msg.Out.TotalMonthly))
		items := make([]list.Item, 0, len(msg.Out.Subscriptions))
		for _, s := range msg.Out.Subscriptions {
			items = append(items, subItem{sub: s, money: m.money})
		}
		cmds = append(cmds, m.list.SetItems(items))
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string { return m.list.View() }

func (m Model) SelectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(subItem); ok {
		return item.sub.ID, true
	}
	return "", false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
