package setup

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/winposture/winposture/internal/config"
	"github.com/winposture/winposture/internal/tui/common"
)

// configWrittenMsg is sent when the config file write has finished.
type configWrittenMsg struct {
	err error
}

// ReviewPage is the final wizard page: a read-only summary of the collected
// settings, written to disk on enter.
type ReviewPage struct {
	path     string
	cfg      *config.Config
	viewport viewport.Model
	width    int
	height   int
	writing  bool
	written  bool
	writeErr error
}

// NewReviewPage creates the review page targeting the given config path.
func NewReviewPage(path string) *ReviewPage {
	vp := viewport.New(80, 20)
	return &ReviewPage{
		path:     path,
		viewport: vp,
	}
}

func (p *ReviewPage) Title() string  { return "Review & Write" }
func (p *ReviewPage) Init() tea.Cmd  { return nil }
func (p *ReviewPage) Focus() tea.Cmd { return nil }

func (p *ReviewPage) SetSize(w, h int) {
	p.width = w
	p.height = h
	// Reserve space for header/footer
	contentH := h - 6
	if contentH < 5 {
		contentH = 5
	}
	p.viewport.Width = w - 4
	p.viewport.Height = contentH
}

// SetConfig updates the review page with the accumulated config.
func (p *ReviewPage) SetConfig(cfg *config.Config) {
	p.cfg = cfg
	p.viewport.SetContent(p.renderSummary())
	p.viewport.GotoTop()
}

func (p *ReviewPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case configWrittenMsg:
		p.writing = false
		if msg.err != nil {
			p.writeErr = msg.err
		} else {
			p.written = true
		}
		return p, nil

	case tea.KeyMsg:
		if p.written {
			switch msg.String() {
			case "enter", "q":
				return p, tea.Quit
			}
			return p, nil
		}
		if msg.String() == "enter" && !p.writing {
			p.writing = true
			p.writeErr = nil
			cfg := p.cfg
			path := p.path
			return p, func() tea.Msg {
				return configWrittenMsg{err: cfg.Save(path)}
			}
		}
	}

	if !p.written {
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *ReviewPage) Validate() bool          { return true }
func (p *ReviewPage) Apply(_ *config.Config) {}

func (p *ReviewPage) View() string {
	if p.written {
		return p.renderSuccess()
	}
	if p.writeErr != nil {
		return p.viewport.View() + "\n\n" +
			common.ErrorStyle.Render(fmt.Sprintf("Error writing config: %v", p.writeErr)) + "\n" +
			common.HintStyle.Render("Press Enter to retry")
	}
	if p.writing {
		return p.viewport.View() + "\n\n" +
			common.MutedStyle.Render("Writing configuration...")
	}
	return p.viewport.View() + "\n\n" +
		common.HintStyle.Render("Scroll with arrow keys | Press Enter to write config | Ctrl+C to cancel")
}

func (p *ReviewPage) renderSuccess() string {
	var b strings.Builder
	b.WriteString(common.SuccessStyle.Render("Configuration written successfully!"))
	b.WriteString("\n")
	b.WriteString(common.LabelStyle.Render("File: "))
	b.WriteString(p.path)
	b.WriteString("\n\n")
	b.WriteString(common.MutedStyle.Render("Next steps:"))
	b.WriteString("\n")
	b.WriteString("  winposture -config " + p.path + "   " + common.HintStyle.Render("run an audit") + "\n")
	b.WriteString("  winposture-tui view" + "                    " + common.HintStyle.Render("browse the report in the terminal") + "\n")
	b.WriteString("\n")
	b.WriteString(common.HintStyle.Render("Press Enter or q to exit"))
	return b.String()
}

func (p *ReviewPage) renderSummary() string {
	if p.cfg == nil {
		return common.MutedStyle.Render("(no configuration to review)")
	}
	cfg := p.cfg
	var b strings.Builder
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(common.ColorPrimary)
	fieldStyle := lipgloss.NewStyle().Foreground(common.ColorDim).Width(24)

	field := func(label, value string) {
		b.WriteString("  " + fieldStyle.Render(label) + " " + value + "\n")
	}

	b.WriteString(sectionStyle.Render("Collection"))
	b.WriteString("\n")
	field("PowerShell", cfg.Collection.PowerShell)
	field("Query timeout", fmt.Sprintf("%ds", cfg.Collection.TimeoutSec))
	field("Update query timeout", fmt.Sprintf("%ds", cfg.Collection.UpdatesTimeoutSec))
	field("Updates shown", fmt.Sprintf("%d", cfg.Collection.UpdatesLimit))
	field("Local users shown", fmt.Sprintf("%d", cfg.Collection.UsersLimit))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Output"))
	b.WriteString("\n")
	field("Directory", cfg.Output.Dir)
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("History"))
	b.WriteString("\n")
	if cfg.History.Path != "" {
		field("Database", cfg.History.Path)
	} else {
		field("Recording", "disabled")
	}

	return b.String()
}
