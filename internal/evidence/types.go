// Package evidence defines the normalized evidence sections collected from a
// Windows host, plus the loosely-typed JSON scalars PowerShell emits.
//
// Every section carries the same availability shape: available + payload, or
// unavailable + reason. A section that was collected but could not be parsed
// stays available with an empty payload and an embedded parse-error string;
// "technically available, but unusable" is distinct from "unavailable".
package evidence

// DefenderData holds the Microsoft Defender fields selected by the collector
// query. Fields the query did not report stay unset and are omitted from JSON.
type DefenderData struct {
	AMServiceEnabled          Bool `json:"AMServiceEnabled,omitzero"`
	AntispywareEnabled        Bool `json:"AntispywareEnabled,omitzero"`
	AntivirusEnabled          Bool `json:"AntivirusEnabled,omitzero"`
	RealTimeProtectionEnabled Bool `json:"RealTimeProtectionEnabled,omitzero"`
}

// DefenderStatus is the Defender evidence section.
type DefenderStatus struct {
	Available bool         `json:"available"`
	Data      DefenderData `json:"data"`
	Error     string       `json:"error"`
}

// FirewallProfile is one Windows Firewall profile (Domain, Private, Public).
type FirewallProfile struct {
	Name    string `json:"Name"`
	Enabled Bool   `json:"Enabled"`
}

// FirewallStatus is the firewall evidence section.
type FirewallStatus struct {
	Available bool              `json:"available"`
	Profiles  []FirewallProfile `json:"profiles"`
	Error     string            `json:"error"`
}

// Update is one installed hotfix, newest first in UpdateHistory.
type Update struct {
	HotFixID    string `json:"HotFixID"`
	Description string `json:"Description"`
	InstalledOn Text   `json:"InstalledOn"`
}

// UpdateHistory is the update-history evidence section, bounded to the
// most recent entries.
type UpdateHistory struct {
	Available bool     `json:"available"`
	Updates   []Update `json:"updates"`
	Error     string   `json:"error"`
}

// LocalUser is one local account.
type LocalUser struct {
	Name      string `json:"Name"`
	Enabled   Bool   `json:"Enabled"`
	LastLogon Text   `json:"LastLogon"`
}

// LocalUsers is the local-accounts evidence section.
type LocalUsers struct {
	Available bool        `json:"available"`
	Users     []LocalUser `json:"users"`
	Error     string      `json:"error"`
}

// BitlockerStatus is the BitLocker evidence section. The manage-bde output
// is kept as a raw free-text dump; no schema parsing is attempted.
type BitlockerStatus struct {
	Available bool   `json:"available"`
	Raw       string `json:"raw"`
	Error     string `json:"error"`
}

// Bundle groups every evidence section collected in one run. The collectors
// fill disjoint fields, so a Bundle can be populated concurrently.
type Bundle struct {
	UptimeSeconds *int64
	Defender      DefenderStatus
	Firewall      FirewallStatus
	Bitlocker     BitlockerStatus
	Updates       UpdateHistory
	LocalUsers    LocalUsers
}
