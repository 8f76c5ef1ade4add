package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/winposture/winposture/internal/evidence"
	"github.com/winposture/winposture/internal/report"
	"github.com/winposture/winposture/internal/score"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-runs.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(hostname string, total int) *report.Report {
	r := report.Build(report.SystemInfo{
		Hostname:         hostname,
		OS:               "windows/amd64",
		CollectorVersion: "1.0.0-test",
		TimestampUTC:     "2026-08-25T10:00:00Z",
	}, evidence.Bundle{
		Defender: evidence.DefenderStatus{Available: true},
		Firewall: evidence.FirewallStatus{Available: true},
		Updates: evidence.UpdateHistory{
			Available: true,
			Updates:   []evidence.Update{{HotFixID: "KB1", InstalledOn: "2026-08-01"}},
		},
		LocalUsers: evidence.LocalUsers{Available: true, Users: []evidence.LocalUser{}},
	})
	// Tests need distinguishable scores without re-deriving the rule set.
	r.Score = total
	r.Findings = []score.Finding{{Severity: score.SeverityMedium, Title: "t", Detail: "d"}}
	return &r
}

func TestStore_RecordAndGet(t *testing.T) {
	store := tempStore(t)
	ctx := context.Background()

	id, err := store.Record(ctx, sampleRun("WIN-A", 85))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id == 0 {
		t.Error("expected a nonzero run id")
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.System.Hostname != "WIN-A" {
		t.Errorf("Hostname = %q, want WIN-A", got.System.Hostname)
	}
	if got.Score != 85 {
		t.Errorf("Score = %d, want 85", got.Score)
	}
	if len(got.Findings) != 1 || got.Findings[0].Title != "t" {
		t.Errorf("Findings = %+v", got.Findings)
	}
	if !got.Defender.Available {
		t.Error("evidence sections should survive the round trip")
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := tempStore(t)

	if _, err := store.Get(context.Background(), 999); err == nil {
		t.Fatal("expected error for unknown run id")
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	store := tempStore(t)
	ctx := context.Background()

	for i, total := range []int{100, 85, 45} {
		if _, err := store.Record(ctx, sampleRun(fmt.Sprintf("WIN-%d", i), total)); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	if entries[0].Score != 45 || entries[2].Score != 100 {
		t.Errorf("order = %d,%d,%d, want newest first", entries[0].Score, entries[1].Score, entries[2].Score)
	}
	if entries[0].Findings != 1 {
		t.Errorf("Findings = %d, want 1", entries[0].Findings)
	}
	if entries[0].Timestamp != "2026-08-25T10:00:00Z" {
		t.Errorf("Timestamp = %q", entries[0].Timestamp)
	}
}

func TestStore_ListLimit(t *testing.T) {
	store := tempStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, sampleRun("WIN-A", 90)); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2", len(entries))
	}
}

func TestStore_ListEmpty(t *testing.T) {
	store := tempStore(t)

	entries, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestOpen_CreatesAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	id, err := store.Record(ctx, sampleRun("WIN-A", 70))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.Score != 70 {
		t.Errorf("Score = %d, want 70", got.Score)
	}
}
