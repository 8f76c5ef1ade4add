// Package view implements the terminal report viewer. It loads a report.json
// written by a collection run and renders the score, evidence availability,
// and findings for review without opening the HTML or PDF artifacts.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/winposture/winposture/internal/report"
	"github.com/winposture/winposture/pkg/buildinfo"
)

// ReportModel is the Bubbletea model for the report viewer.
type ReportModel struct {
	path     string
	viewport viewport.Model
	report   *report.Report
	loadedAt time.Time
	err      error
	width    int
	height   int
	ready    bool
}

// NewReportModel creates a viewer for the report file at path.
func NewReportModel(path string) ReportModel {
	return ReportModel{path: path}
}

// loadMsg carries a report read from disk.
type loadMsg struct {
	report *report.Report
	err    error
}

// loadReport reads and parses the report file off the event loop.
func loadReport(path string) tea.Cmd {
	return func() tea.Msg {
		r, err := report.ReadJSON(path)
		if err != nil {
			return loadMsg{err: err}
		}
		return loadMsg{report: r}
	}
}

// Init starts the first load.
func (m ReportModel) Init() tea.Cmd {
	return loadReport(m.path)
}

// Update handles messages.
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentH := msg.Height - 6 // reserve for header/footer
		if contentH < 5 {
			contentH = 5
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, contentH)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = contentH
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case loadMsg:
		m.loadedAt = time.Now()
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.report = msg.report
		}
		if m.ready {
			m.viewport.SetContent(m.renderContent())
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			// Re-read the file, picking up a newer audit run
			return m, loadReport(m.path)
		}
	}

	// Delegate to viewport for scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the report viewer.
func (m ReportModel) View() string {
	var b strings.Builder

	// Header
	header := headerStyle.Render(
		titleStyle.Render("winposture") +
			dimStyle.Render(" "+buildinfo.Version) +
			dimStyle.Render(" | Posture Report") +
			m.renderLoadState())
	b.WriteString(header)
	b.WriteString("\n")

	if !m.ready {
		b.WriteString("\n  Initializing...\n")
		return b.String()
	}

	// Content
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	// Footer
	footer := m.renderFooter()
	b.WriteString(footerStyle.Render(footer))

	return b.String()
}

func (m ReportModel) renderLoadState() string {
	if m.loadedAt.IsZero() {
		return dimStyle.Render(" | Loading...")
	}
	return dimStyle.Render(fmt.Sprintf(" | Loaded %s", m.loadedAt.Format("15:04:05")))
}

func (m ReportModel) renderContent() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(badStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  Press 'r' to retry | Run winposture to generate a report first"))
		b.WriteString("\n")
		return b.String()
	}

	if m.report == nil {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  Loading report..."))
		b.WriteString("\n")
		return b.String()
	}

	// Score bar and host line
	b.WriteString("\n")
	b.WriteString(renderScoreBar(m.report.Score, m.width))
	b.WriteString("\n")
	b.WriteString(renderHost(m.report))

	// Sections
	b.WriteString(renderEvidence(m.report))
	b.WriteString(renderFindings(m.report.Findings))

	return b.String()
}

func (m ReportModel) renderFooter() string {
	state := goodStyle.Render("Loaded")
	if m.err != nil {
		state = badStyle.Render("Load failed")
	}

	return fmt.Sprintf(" [q] Quit  [r] Reload  | %s | %s", state, m.path)
}
