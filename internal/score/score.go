// Package score turns normalized evidence into a posture score and findings.
//
// Evaluate is a pure function: no filesystem, no processes, no clock. Given
// identical evidence it returns an identical score and an identical findings
// list, so report snapshots diff cleanly between runs.
package score

import (
	"strings"

	"github.com/winposture/winposture/internal/evidence"
)

// Severity classifies how urgent a finding is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Finding is one scored observation about the host's posture.
type Finding struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Detail   string   `json:"detail"`
}

// Deduction weights. The rule order in Evaluate, not these values, decides
// the findings order.
const (
	penaltyDefenderUnreadable = 15
	penaltyRealTimeOff        = 25
	penaltyAntivirusOff       = 25
	penaltyFirewallUnreadable = 10
	penaltyProfileDisabled    = 20
	penaltyNoUpdateDate       = 5
	penaltyUpdatesUnreadable  = 10
)

// Evaluate applies the deduction rules in a fixed order, starting from 100
// and clamping the result to [0,100]. Findings are appended in rule order.
//
// Rules keyed on a specific Defender field fire only when the field is
// present and explicitly false; an absent field deducts nothing. Incomplete
// query output fails open rather than dragging down the score.
func Evaluate(defender evidence.DefenderStatus, firewall evidence.FirewallStatus, updates evidence.UpdateHistory) (int, []Finding) {
	total := 100
	findings := []Finding{}

	if !defender.Available {
		total -= penaltyDefenderUnreadable
		findings = append(findings, Finding{
			Severity: SeverityMedium,
			Title:    "Defender status not readable",
			Detail:   defender.Error,
		})
	} else {
		if defender.Data.RealTimeProtectionEnabled.False() {
			total -= penaltyRealTimeOff
			findings = append(findings, Finding{
				Severity: SeverityHigh,
				Title:    "Real-time protection disabled",
				Detail:   "Enable Microsoft Defender real-time protection.",
			})
		}
		if defender.Data.AntivirusEnabled.False() {
			total -= penaltyAntivirusOff
			findings = append(findings, Finding{
				Severity: SeverityHigh,
				Title:    "Antivirus appears disabled",
				Detail:   "Verify antivirus is enabled and updating.",
			})
		}
	}

	if !firewall.Available {
		total -= penaltyFirewallUnreadable
		findings = append(findings, Finding{
			Severity: SeverityMedium,
			Title:    "Firewall status not readable",
			Detail:   firewall.Error,
		})
	} else if disabled := disabledProfiles(firewall.Profiles); len(disabled) > 0 {
		total -= penaltyProfileDisabled
		findings = append(findings, Finding{
			Severity: SeverityHigh,
			Title:    "Firewall disabled on profiles",
			Detail:   "Disabled profiles: " + strings.Join(disabled, ", ") + ".",
		})
	}

	// Rules 6 and 7 are mutually exclusive: 6 needs a non-empty history,
	// 7 fires when the history is unavailable or empty.
	if updates.Available && len(updates.Updates) > 0 {
		if updates.Updates[0].InstalledOn.Empty() {
			total -= penaltyNoUpdateDate
			findings = append(findings, Finding{
				Severity: SeverityLow,
				Title:    "Cannot determine latest update date",
				Detail:   "InstalledOn missing for newest hotfix.",
			})
		}
	} else {
		total -= penaltyUpdatesUnreadable
		findings = append(findings, Finding{
			Severity: SeverityMedium,
			Title:    "Update history not readable",
			Detail:   updates.Error,
		})
	}

	return clamp(total, 0, 100), findings
}

func disabledProfiles(profiles []evidence.FirewallProfile) []string {
	var names []string
	for _, p := range profiles {
		if !p.Enabled.False() {
			continue
		}
		name := p.Name
		if name == "" {
			name = "Unknown"
		}
		names = append(names, name)
	}
	return names
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
