package setup

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/winposture/winposture/internal/config"
	"github.com/winposture/winposture/internal/tui/common"
)

// CollectionPage is the first wizard page: PowerShell adapter settings.
type CollectionPage struct {
	shell          common.Selector
	timeoutSec     common.TextInput
	updatesTimeout common.TextInput
	updatesLimit   common.TextInput
	usersLimit     common.TextInput

	focus  int
	width  int
	height int
}

const collectionFieldCount = 5

// NewCollectionPage creates the collection settings page.
func NewCollectionPage() *CollectionPage {
	shell := common.NewSelector("PowerShell Executable", []common.SelectorOption{
		{Value: "powershell", Label: "powershell", Description: "Windows PowerShell 5.1 — preinstalled on every supported Windows"},
		{Value: "pwsh", Label: "pwsh", Description: "PowerShell 7+ — must be installed separately"},
	})

	timeout := common.NewTextInput("Query Timeout (seconds)", "25", "(per evidence query)")
	timeout.Validate = config.ValidateOptionalCount

	updTimeout := common.NewTextInput("Update Query Timeout (seconds)", "40", "(Get-HotFix is slow on heavily patched hosts)")
	updTimeout.Validate = config.ValidateOptionalCount

	updLimit := common.NewTextInput("Updates Shown", "10", "(most recent hotfixes)")
	updLimit.Validate = config.ValidateOptionalCount

	usrLimit := common.NewTextInput("Local Users Shown", "20", "")
	usrLimit.Validate = config.ValidateOptionalCount

	return &CollectionPage{
		shell:          shell,
		timeoutSec:     timeout,
		updatesTimeout: updTimeout,
		updatesLimit:   updLimit,
		usersLimit:     usrLimit,
	}
}

func (p *CollectionPage) Title() string { return "Collection" }
func (p *CollectionPage) Init() tea.Cmd { return nil }

func (p *CollectionPage) Focus() tea.Cmd {
	p.focus = 0
	p.updateFocus()
	return nil
}

func (p *CollectionPage) SetSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *CollectionPage) updateFocus() {
	p.shell.Blur()
	p.timeoutSec.Blur()
	p.updatesTimeout.Blur()
	p.updatesLimit.Blur()
	p.usersLimit.Blur()

	switch p.focus {
	case 0:
		p.shell.Focus()
	case 1:
		p.timeoutSec.Focus()
	case 2:
		p.updatesTimeout.Focus()
	case 3:
		p.updatesLimit.Focus()
	case 4:
		p.usersLimit.Focus()
	}
}

func (p *CollectionPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "enter":
			// The selector consumes enter; tab advances past it
			if p.focus < collectionFieldCount-1 {
				if msg.String() == "enter" && p.focus == 0 {
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
		p.shell.Update(msg)
	case 1:
		cmd = p.timeoutSec.Update(msg)
	case 2:
		cmd = p.updatesTimeout.Update(msg)
	case 3:
		cmd = p.updatesLimit.Update(msg)
	case 4:
		cmd = p.usersLimit.Update(msg)
	}
	return p, cmd
}

func (p *CollectionPage) Validate() bool {
	valid := true
	if !p.timeoutSec.RunValidation() {
		valid = false
	}
	if !p.updatesTimeout.RunValidation() {
		valid = false
	}
	if !p.updatesLimit.RunValidation() {
		valid = false
	}
	if !p.usersLimit.RunValidation() {
		valid = false
	}
	return valid
}

// Apply writes the page values into the config. Empty numeric fields keep
// the defaults already present in the config.
func (p *CollectionPage) Apply(cfg *config.Config) {
	cfg.Collection.PowerShell = p.shell.Selected()
	if n := parseInt(strings.TrimSpace(p.timeoutSec.Value())); n > 0 {
		cfg.Collection.TimeoutSec = n
	}
	if n := parseInt(strings.TrimSpace(p.updatesTimeout.Value())); n > 0 {
		cfg.Collection.UpdatesTimeoutSec = n
	}
	if n := parseInt(strings.TrimSpace(p.updatesLimit.Value())); n > 0 {
		cfg.Collection.UpdatesLimit = n
	}
	if n := parseInt(strings.TrimSpace(p.usersLimit.Value())); n > 0 {
		cfg.Collection.UsersLimit = n
	}
}

func (p *CollectionPage) View() string {
	var b strings.Builder
	b.WriteString(common.LabelStyle.Render("Evidence Collection"))
	b.WriteString("\n\n")
	b.WriteString(p.shell.View())
	b.WriteString("\n")
	b.WriteString(p.timeoutSec.View())
	b.WriteString("\n\n")
	b.WriteString(p.updatesTimeout.View())
	b.WriteString("\n\n")
	b.WriteString(p.updatesLimit.View())
	b.WriteString("\n\n")
	b.WriteString(p.usersLimit.View())
	return b.String()
}
