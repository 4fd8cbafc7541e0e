package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"paymind/internal/ui/theme"
)

// PaletteSubmitMsg carries the confirmed command line.
type PaletteSubmitMsg struct{ Input string }

type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Peach).Bold(true)
)

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"focus:log <type> <hours>",
	"screen:set <app>=<hours> [...]",
	"distraction:log <pickups> <notifications>",
	"goal:add <target> <title>",
	"goal:allocate <amount>",
	"goal:rm",
	"sub:add <cost> <usage-hours> <name>",
	"sub:rm",
	"report:export [json|md|pdf]",
	"refresh",
}

const (
	maxShown   = 5
	maxHistory = 20
)

func Hints() []string {
	return append([]string(nil), paletteHints...)
}

// Matching returns up to five hints whose command starts with the typed word.
func Matching(input string) []string {
	word, _, _ := strings.Cut(strings.ToLower(strings.TrimLeft(input, " ")), " ")
	var out []string
	for _, h := range paletteHints {
		name, _, _ := strings.Cut(h, " ")
		if word == "" || strings.HasPrefix(name, word) {
			out = append(out, h)
			if len(out) == maxShown {
				break
			}
		}
	}
	return out
}

// Complete expands a partial command name to the first matching one. Input that already
// has arguments is returned unchanged.
func Complete(input string) string {
	if strings.Contains(strings.TrimSpace(input), " ") {
		return input
	}
	matches := Matching(input)
	if len(matches) == 0 {
		return input
	}
	name, _, _ := strings.Cut(matches[0], " ")
	return name + " "
}

// Palette is the ":" overlay. tab completes the command name, up/down walk earlier
// commands from this session.
type Palette struct {
	input   textinput.Model
	history []string
	cursor  int
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "focus:log reading 1.5"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.cursor = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.remember(val)
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			p.input.SetValue(Complete(p.input.Value()))
			p.input.CursorEnd()
			return p, nil
		case "up":
			if p.cursor > 0 {
				p.cursor--
				p.input.SetValue(p.history[p.cursor])
				p.input.CursorEnd()
			}
			return p, nil
		case "down":
			if p.cursor < len(p.history) {
				p.cursor++
			}
			if p.cursor == len(p.history) {
				p.input.SetValue("")
			} else {
				p.input.SetValue(p.history[p.cursor])
			}
			p.input.CursorEnd()
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) remember(line string) {
	if line == "" || (len(p.history) > 0 && p.history[len(p.history)-1] == line) {
		return
	}
	p.history = append(p.history, line)
	if len(p.history) > maxHistory {
		p.history = p.history[len(p.history)-maxHistory:]
	}
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matching := Matching(p.input.Value()); len(matching) > 0 {
		sb.WriteString("\n")
		for i, h := range matching {
			style := hintStyle
			if i == 0 && p.input.Value() != "" {
				style = selectedStyle
			}
			sb.WriteString(style.Render("  "+h) + "\n")
		}
	}
	sb.WriteString(hintStyle.Render("tab: complete  ↑/↓: history  esc: close"))

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
