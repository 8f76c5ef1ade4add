package view

import (
	"fmt"
	"strings"

	"github.com/winposture/winposture/internal/render"
	"github.com/winposture/winposture/internal/report"
	"github.com/winposture/winposture/internal/score"
)

// sectionIcon returns a colored icon for an evidence section: collected
// cleanly, collected but unparsable, or unavailable.
func sectionIcon(available bool, errText string) string {
	switch {
	case available && errText == "":
		return goodStyle.Render("●")
	case available:
		return warnStyle.Render("○")
	default:
		return badStyle.Render("✖")
	}
}

// severityLabel returns a colored, width-padded severity label.
func severityLabel(s score.Severity) string {
	label := fmt.Sprintf("%-6s", strings.ToUpper(string(s)))
	switch s {
	case score.SeverityHigh:
		return badStyle.Render(label)
	case score.SeverityMedium:
		return warnStyle.Render(label)
	case score.SeverityLow:
		return infoStyle.Render(label)
	default:
		return mutedStyle.Render(label)
	}
}

// sectionLine is one evidence row: icon state, display name, short note.
type sectionLine struct {
	name      string
	available bool
	errText   string
	note      string
}

// evidenceLines flattens the report's evidence sections into display rows.
func evidenceLines(r *report.Report) []sectionLine {
	return []sectionLine{
		{
			name:      "Microsoft Defender",
			available: r.Defender.Available,
			errText:   r.Defender.Error,
			note:      defenderNote(r),
		},
		{
			name:      "Windows Firewall",
			available: r.Firewall.Available,
			errText:   r.Firewall.Error,
			note:      firewallNote(r),
		},
		{
			name:      "BitLocker",
			available: r.Bitlocker.Available,
			errText:   r.Bitlocker.Error,
			note:      bitlockerNote(r),
		},
		{
			name:      "Windows Updates",
			available: r.Updates.Available,
			errText:   r.Updates.Error,
			note:      updatesNote(r),
		},
		{
			name:      "Local Users",
			available: r.LocalUsers.Available,
			errText:   r.LocalUsers.Error,
			note:      usersNote(r),
		},
	}
}

func defenderNote(r *report.Report) string {
	if !r.Defender.Available || r.Defender.Error != "" {
		return r.Defender.Error
	}
	rtp := r.Defender.Data.RealTimeProtectionEnabled
	switch {
	case rtp.True():
		return "real-time protection on"
	case rtp.False():
		return "real-time protection off"
	default:
		return "real-time protection unreported"
	}
}

func firewallNote(r *report.Report) string {
	if !r.Firewall.Available || r.Firewall.Error != "" {
		return r.Firewall.Error
	}
	disabled := 0
	for _, p := range r.Firewall.Profiles {
		if p.Enabled.False() {
			disabled++
		}
	}
	if disabled > 0 {
		return fmt.Sprintf("%d profiles, %d disabled", len(r.Firewall.Profiles), disabled)
	}
	return fmt.Sprintf("%d profiles", len(r.Firewall.Profiles))
}

func bitlockerNote(r *report.Report) string {
	if !r.Bitlocker.Available {
		return r.Bitlocker.Error
	}
	return fmt.Sprintf("%d bytes captured", len(r.Bitlocker.Raw))
}

func updatesNote(r *report.Report) string {
	if !r.Updates.Available || r.Updates.Error != "" {
		return r.Updates.Error
	}
	return fmt.Sprintf("%d hotfixes", len(r.Updates.Updates))
}

func usersNote(r *report.Report) string {
	if !r.LocalUsers.Available || r.LocalUsers.Error != "" {
		return r.LocalUsers.Error
	}
	return fmt.Sprintf("%d accounts", len(r.LocalUsers.Users))
}

// renderEvidence renders the evidence availability section.
func renderEvidence(r *report.Report) string {
	var b strings.Builder

	lines := evidenceLines(r)
	availCount := 0
	for _, l := range lines {
		if l.available {
			availCount++
		}
	}

	name := sectionNameStyle.Render("Evidence")
	count := sectionCountStyle.Render(fmt.Sprintf("%d/%d available", availCount, len(lines)))
	b.WriteString(fmt.Sprintf(" %s  %s\n", name, count))

	for _, l := range lines {
		b.WriteString(renderEvidenceLine(l))
		b.WriteString("\n")
	}

	return b.String()
}

// renderEvidenceLine renders a single evidence row.
func renderEvidenceLine(l sectionLine) string {
	icon := sectionIcon(l.available, l.errText)
	name := l.name

	// Dim clean sections to reduce noise, highlight problems
	if !l.available {
		name = badStyle.Render(name)
	} else if l.errText != "" {
		name = warnStyle.Render(name)
	} else {
		name = dimStyle.Render(name)
	}

	return fmt.Sprintf("   %s %-28s %s", icon, name, dimStyle.Render(l.note))
}

// renderFindings renders the findings list in scoring order.
func renderFindings(findings []score.Finding) string {
	var b strings.Builder

	name := sectionNameStyle.Render("Findings")
	count := sectionCountStyle.Render(fmt.Sprintf("%d raised", len(findings)))
	b.WriteString(fmt.Sprintf(" %s  %s\n", name, count))

	if len(findings) == 0 {
		b.WriteString(dimStyle.Render("   No major findings detected."))
		b.WriteString("\n")
		return b.String()
	}

	for _, f := range findings {
		b.WriteString(renderFinding(f))
		b.WriteString("\n")
	}

	return b.String()
}

// renderFinding renders one finding with its remediation detail.
func renderFinding(f score.Finding) string {
	line := fmt.Sprintf("   %s %s", severityLabel(f.Severity), f.Title)
	if f.Detail != "" {
		line += "\n" + dimStyle.Render("          "+f.Detail)
	}
	return line
}

// renderHost renders the host identity line under the score bar.
func renderHost(r *report.Report) string {
	sys := r.System
	line := fmt.Sprintf("  %s | %s | generated %s", sys.Hostname, sys.OS, sys.TimestampUTC)
	if r.UptimeSeconds != nil {
		line += fmt.Sprintf(" | up %ds", *r.UptimeSeconds)
	}
	return dimStyle.Render(line) + "\n"
}

// renderScoreBar renders the top-level score bar using the same buckets as
// the HTML and PDF renderers.
func renderScoreBar(total, width int) string {
	barWidth := 20
	if width > 80 {
		barWidth = 30
	}
	filled := (total * barWidth) / 100
	if filled > barWidth {
		filled = barWidth
	}
	bar := ""
	for i := 0; i < barWidth; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}

	var sStyle func(...string) string
	switch {
	case total >= 75:
		sStyle = goodStyle.Render
	case total >= 60:
		sStyle = warnStyle.Render
	default:
		sStyle = badStyle.Render
	}

	label := render.ScoreLabel(total)
	return summaryBoxStyle.Render(fmt.Sprintf("  %d/100   %s %s", total, sStyle(label), sStyle(bar)))
}
