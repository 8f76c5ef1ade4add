// Package report assembles the audit snapshot consumed by every renderer
// and persisted as JSON evidence.
package report

import (
	"os"
	"runtime"
	"time"

	"github.com/winposture/winposture/internal/evidence"
	"github.com/winposture/winposture/internal/score"
	"github.com/winposture/winposture/pkg/buildinfo"
)

// SystemInfo identifies the host and run. Captured once per run.
type SystemInfo struct {
	Hostname         string `json:"hostname"`
	OS               string `json:"os"`
	CollectorVersion string `json:"collector_version"`
	TimestampUTC     string `json:"timestamp_utc"`
}

// Report is the complete audit snapshot. It is built once and treated as
// immutable: renderers and persistence read it, nothing mutates it. The
// field order here is the report.json key order, a stable contract for
// automation pipelines that consume the JSON.
type Report struct {
	System        SystemInfo               `json:"system"`
	UptimeSeconds *int64                   `json:"uptime_seconds"`
	Score         int                      `json:"score"`
	Findings      []score.Finding          `json:"findings"`
	Defender      evidence.DefenderStatus  `json:"defender"`
	Firewall      evidence.FirewallStatus  `json:"firewall"`
	Bitlocker     evidence.BitlockerStatus `json:"bitlocker"`
	Updates       evidence.UpdateHistory   `json:"updates"`
	LocalUsers    evidence.LocalUsers      `json:"local_users"`
}

// CaptureSystemInfo snapshots host identity and the run timestamp, truncated
// to whole seconds, UTC, with a trailing Z.
func CaptureSystemInfo() SystemInfo {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}
	return SystemInfo{
		Hostname:         hostname,
		OS:               runtime.GOOS + "/" + runtime.GOARCH,
		CollectorVersion: buildinfo.Version,
		TimestampUTC:     time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
	}
}

// Build assembles the snapshot from captured system info and collected
// evidence, running the scoring rules over the sections they read.
func Build(sys SystemInfo, b evidence.Bundle) Report {
	total, findings := score.Evaluate(b.Defender, b.Firewall, b.Updates)
	return Report{
		System:        sys,
		UptimeSeconds: b.UptimeSeconds,
		Score:         total,
		Findings:      findings,
		Defender:      b.Defender,
		Firewall:      b.Firewall,
		Bitlocker:     b.Bitlocker,
		Updates:       b.Updates,
		LocalUsers:    b.LocalUsers,
	}
}
