// Package setup implements the interactive setup wizard for winposture.
// It walks through 3 pages: Collection, Output & History, and Review & Write.
package setup

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/winposture/winposture/internal/config"
	"github.com/winposture/winposture/internal/tui/common"
	"github.com/winposture/winposture/pkg/buildinfo"
)

const totalPages = 3

// SetupModel is the top-level Bubbletea model for the setup wizard.
type SetupModel struct {
	pages     []Page
	pageIndex int
	config    *config.Config
	width     int
	height    int
	err       string
}

// NewSetupModel creates a new setup wizard writing to the given config path.
func NewSetupModel(cfgPath string) SetupModel {
	cfg := config.NewDefaultConfig()

	collectionPage := NewCollectionPage()
	outputPage := NewOutputPage()
	reviewPage := NewReviewPage(cfgPath)

	return SetupModel{
		pages: []Page{
			collectionPage,
			outputPage,
			reviewPage,
		},
		config: cfg,
	}
}

// Init initializes the wizard, focusing the first page.
func (m SetupModel) Init() tea.Cmd {
	return m.pages[0].Focus()
}

// Update handles messages for the wizard.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, p := range m.pages {
			p.SetSize(msg.Width-4, msg.Height-8) // Reserve for chrome
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "tab", "enter":
			// Let the page try internal field navigation first; if it does
			// not consume the key, advance the wizard page instead.
			return m.handlePageAdvance(msg)

		case "shift+tab":
			return m.handlePageBack(msg)
		}
	}

	// Delegate to current page
	return m.delegateToPage(msg)
}

func (m SetupModel) handlePageAdvance(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// First, delegate to the page to handle internal navigation
	page, cmd := m.pages[m.pageIndex].Update(msg)
	m.pages[m.pageIndex] = page

	// On the review page, enter triggers the config write; never advance
	if m.pageIndex == totalPages-1 {
		return m, cmd
	}

	// Pages return a no-op cmd while moving between their own fields and
	// nil once the last field is passed, so a nil cmd here means the page
	// is done with tab/enter and the wizard should move on.
	if cmd == nil && msg.String() == "tab" {
		return m.advancePage()
	}
	if cmd == nil && msg.String() == "enter" {
		return m.advancePage()
	}

	return m, cmd
}

func (m SetupModel) handlePageBack(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let page handle internal back navigation first
	page, cmd := m.pages[m.pageIndex].Update(msg)
	m.pages[m.pageIndex] = page

	if cmd == nil && m.pageIndex > 0 {
		m.pageIndex--
		focusCmd := m.pages[m.pageIndex].Focus()
		return m, focusCmd
	}
	return m, cmd
}

func (m SetupModel) advancePage() (tea.Model, tea.Cmd) {
	// Validate current page
	if !m.pages[m.pageIndex].Validate() {
		m.err = "Please fix the errors above before continuing."
		return m, nil
	}
	m.err = ""

	// Apply values to shared config
	m.pages[m.pageIndex].Apply(m.config)

	if m.pageIndex < totalPages-1 {
		m.pageIndex++

		if m.pageIndex == totalPages-1 {
			// Apply all pages before review
			for i := 0; i < totalPages-1; i++ {
				m.pages[i].Apply(m.config)
			}
			if rp, ok := m.pages[totalPages-1].(*ReviewPage); ok {
				rp.SetConfig(m.config)
			}
		}

		focusCmd := m.pages[m.pageIndex].Focus()
		return m, focusCmd
	}
	return m, nil
}

func (m SetupModel) delegateToPage(msg tea.Msg) (tea.Model, tea.Cmd) {
	page, cmd := m.pages[m.pageIndex].Update(msg)
	m.pages[m.pageIndex] = page
	return m, cmd
}

// View renders the complete wizard view.
func (m SetupModel) View() string {
	var b strings.Builder

	// Header
	header := common.HeaderStyle.Render(
		common.TitleStyle.Render("winposture") +
			common.MutedStyle.Render(" "+buildinfo.Version+" Setup"))
	b.WriteString(header)
	b.WriteString("\n")

	// Progress
	b.WriteString(renderProgress(m.pageIndex+1, totalPages, m.pages[m.pageIndex].Title()))
	b.WriteString("\n\n")

	// Page content
	b.WriteString(m.pages[m.pageIndex].View())

	// Error
	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(common.ErrorStyle.Render(m.err))
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(common.FooterStyle.Render(renderNavHints(m.pageIndex == 0, m.pageIndex == totalPages-1)))

	return common.PageStyle.Render(b.String())
}
