package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EvidenceDirName is the subdirectory of the output directory that holds
// per-section raw evidence files.
const EvidenceDirName = "raw_logs"

// WriteJSON serializes the report to an indented JSON file.
func WriteJSON(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReadJSON loads a previously written report.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

// WriteEvidence writes each evidence section to its own file under dir:
// JSON per structured section, and the raw BitLocker dump as text when it
// was collected. Free text from external tools is reduced to valid UTF-8
// before writing.
func WriteEvidence(dir string, r *Report) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create evidence dir: %w", err)
	}

	sections := []struct {
		name string
		v    any
	}{
		{"defender.json", r.Defender},
		{"firewall.json", r.Firewall},
		{"updates.json", r.Updates},
		{"local_users.json", r.LocalUsers},
	}
	for _, s := range sections {
		data, err := json.MarshalIndent(s.v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s: %w", s.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, s.name), data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", s.name, err)
		}
	}

	if r.Bitlocker.Available {
		raw := strings.ToValidUTF8(r.Bitlocker.Raw, "")
		if err := os.WriteFile(filepath.Join(dir, "bitlocker_status.txt"), []byte(raw), 0644); err != nil {
			return fmt.Errorf("write bitlocker_status.txt: %w", err)
		}
	}
	return nil
}
