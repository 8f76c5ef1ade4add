// Package render turns a finished report into presentation artifacts.
//
// Both renderers are pure functions of the Report: same input, same bytes.
// Unavailable evidence sections render as placeholders, never as errors, so
// a degraded collection still produces the full artifact set.
package render

import "github.com/winposture/winposture/internal/score"

// ScoreLabel buckets a score into the qualitative label shown on reports.
// Boundaries are inclusive on the lower end of each bucket.
func ScoreLabel(total int) string {
	switch {
	case total >= 90:
		return "Excellent"
	case total >= 75:
		return "Good"
	case total >= 60:
		return "Fair"
	default:
		return "Needs Work"
	}
}

// scoreClass maps a score to the CSS class carrying the bucket's accent.
func scoreClass(total int) string {
	switch {
	case total >= 90:
		return "s-ex"
	case total >= 75:
		return "s-good"
	case total >= 60:
		return "s-fair"
	default:
		return "s-bad"
	}
}

// scoreAccent is the bucket color used for the PDF header band.
func scoreAccent(total int) (int, int, int) {
	switch {
	case total >= 90:
		return 22, 163, 74 // #16a34a
	case total >= 75:
		return 34, 197, 94 // #22c55e
	case total >= 60:
		return 245, 158, 11 // #f59e0b
	default:
		return 239, 68, 68 // #ef4444
	}
}

// severityColor is the label color for a finding's severity in the PDF.
func severityColor(sev score.Severity) (int, int, int) {
	switch sev {
	case score.SeverityHigh:
		return 239, 68, 68 // #ef4444
	case score.SeverityMedium:
		return 245, 158, 11 // #f59e0b
	case score.SeverityLow:
		return 59, 130, 246 // #3b82f6
	default:
		return 107, 114, 128 // #6b7280
	}
}

func availabilityWord(available bool) string {
	if available {
		return "Available"
	}
	return "Unavailable"
}
