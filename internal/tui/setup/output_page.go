package setup

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/winposture/winposture/internal/config"
	"github.com/winposture/winposture/internal/tui/common"
)

// OutputPage is the second wizard page: artifact directory and run history.
type OutputPage struct {
	outDir      common.TextInput
	history     common.Toggle
	historyPath common.TextInput

	focus  int
	width  int
	height int
}

const outputFieldCount = 3

// NewOutputPage creates the output settings page.
func NewOutputPage() *OutputPage {
	out := common.NewTextInput("Output Directory", "out", "(report.json, report.html, report.pdf, raw_logs/)")
	out.SetValue("out")
	out.Validate = config.ValidateNonEmpty

	history := common.NewToggle("Record run history", "(keep past scores in a local SQLite database)", false)
	history.HelpText = "Each run appends hostname, timestamp, score, and the full report.\nBrowse past runs with winposture -runs."

	histPath := common.NewTextInput("History Database", "winposture.db", "(ignored unless history is enabled)")

	return &OutputPage{
		outDir:      out,
		history:     history,
		historyPath: histPath,
	}
}

func (p *OutputPage) Title() string { return "Output & History" }
func (p *OutputPage) Init() tea.Cmd { return nil }

func (p *OutputPage) Focus() tea.Cmd {
	p.focus = 0
	p.updateFocus()
	return nil
}

func (p *OutputPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *OutputPage) updateFocus() {
	p.outDir.Blur()
	p.history.Blur()
	p.historyPath.Blur()

	switch p.focus {
	case 0:
		p.outDir.Focus()
	case 1:
		p.history.Focus()
	case 2:
		p.historyPath.Focus()
	}
}

func (p *OutputPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "enter":
			// The toggle consumes enter; tab advances past it
			if p.focus < outputFieldCount-1 {
				if msg.String() == "enter" && p.focus == 1 {
					p.history.Update(msg)
					return p, fieldNav
				}
				p.focus++
				p.updateFocus()
				return p, fieldNav
			}
			// Last field: let the wizard handle page advance
			return p, nil
		case "shift+tab":
			if p.focus > 0 {
				p.focus--
				p.updateFocus()
				return p, fieldNav
			}
			return p, nil
		}
	}

	var cmd tea.Cmd
	switch p.focus {
	case 0:
		cmd = p.outDir.Update(msg)
	case 1:
		p.history.Update(msg)
	case 2:
		cmd = p.historyPath.Update(msg)
	}
	return p, cmd
}

func (p *OutputPage) Validate() bool {
	return p.outDir.RunValidation()
}

// Apply writes the page values into the config. History stays disabled
// (empty path) unless the toggle is on.
func (p *OutputPage) Apply(cfg *config.Config) {
	cfg.Output.Dir = strings.TrimSpace(p.outDir.Value())
	if p.history.Enabled {
		path := strings.TrimSpace(p.historyPath.Value())
		if path == "" {
			path = "winposture.db"
		}
		cfg.History.Path = path
	} else {
		cfg.History.Path = ""
	}
}

func (p *OutputPage) View() string {
	var b strings.Builder
	b.WriteString(common.LabelStyle.Render("Artifacts & History"))
	b.WriteString("\n\n")
	b.WriteString(p.outDir.View())
	b.WriteString("\n\n")
	b.WriteString(p.history.View())
	b.WriteString("\n\n")
	b.WriteString(p.historyPath.View())
	return b.String()
}
