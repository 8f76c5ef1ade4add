// Command winposture audits the security posture of a Windows host.
//
// It queries Microsoft Defender, the firewall, BitLocker, update history,
// and local accounts through PowerShell, scores the evidence, and writes
// HTML, PDF, and JSON reports plus per-section raw evidence files.
//
// Usage:
//
//	winposture -output out
//	winposture -config winposture.yaml -history winposture.db
//	winposture -runs    # list recorded runs
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/winposture/winposture/internal/collect"
	"github.com/winposture/winposture/internal/config"
	"github.com/winposture/winposture/internal/history"
	"github.com/winposture/winposture/internal/render"
	"github.com/winposture/winposture/internal/report"
	"github.com/winposture/winposture/pkg/buildinfo"
)

const defaultConfigPath = "winposture.yaml"

func main() {
	output := flag.String("output", "", "output directory (or set WINPOSTURE_OUT env; overrides config, default \"out\")")
	configPath := flag.String("config", "", "config file path (or set WINPOSTURE_CONFIG env; default \"winposture.yaml\")")
	historyPath := flag.String("history", "", "record the run into a SQLite archive at this path (overrides config)")
	listRuns := flag.Bool("runs", false, "list recorded runs and exit")
	showRun := flag.Int64("show", 0, "print the report JSON of a recorded run and exit")
	version := flag.Bool("version", false, "print version and exit")

	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		os.Exit(0)
	}

	logger := log.New(os.Stderr, "[winposture] ", log.LstdFlags)

	cfgPath := envOrFlag(*configPath, "WINPOSTURE_CONFIG")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if out := envOrFlag(*output, "WINPOSTURE_OUT"); out != "" {
		cfg.Output.Dir = out
	}
	if *historyPath != "" {
		cfg.History.Path = *historyPath
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *listRuns {
		os.Exit(runList(ctx, cfg.History.Path, logger))
	}
	if *showRun != 0 {
		os.Exit(runShow(ctx, cfg.History.Path, *showRun, logger))
	}

	os.Exit(runAudit(ctx, cfg, logger))
}

// runAudit performs one full collect-score-render cycle. Filesystem errors
// on the JSON report and evidence tree are fatal; HTML and PDF failures are
// isolated so the remaining artifacts still land.
func runAudit(ctx context.Context, cfg *config.Config, logger *log.Logger) int {
	logger.Printf("%s", buildinfo.String())
	logger.Printf("Collecting evidence via %s", cfg.Collection.PowerShell)

	runner := collect.NewPowerShellRunner(cfg.Collection.PowerShell)
	collector := collect.New(runner, collect.Options{
		Timeout:        cfg.Timeout(),
		UpdatesTimeout: cfg.UpdatesTimeout(),
		UpdatesLimit:   cfg.Collection.UpdatesLimit,
		UsersLimit:     cfg.Collection.UsersLimit,
		Logger:         logger,
	})

	bundle := collector.Collect(ctx)
	rep := report.Build(report.CaptureSystemInfo(), bundle)
	logger.Printf("Score: %d/100, %d findings", rep.Score, len(rep.Findings))

	outDir := cfg.Output.Dir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		logger.Printf("create output dir: %v", err)
		return 1
	}

	exit := 0

	htmlPath := filepath.Join(outDir, "report.html")
	if data, err := render.HTML(&rep); err != nil {
		logger.Printf("HTML render failed: %v (JSON and evidence artifacts are unaffected)", err)
		exit = 1
	} else if err := os.WriteFile(htmlPath, data, 0644); err != nil {
		logger.Printf("write report.html: %v", err)
		exit = 1
	} else {
		fmt.Printf("[+] Report written to: %s\n", htmlPath)
	}

	pdfPath := filepath.Join(outDir, "report.pdf")
	if data, err := render.PDF(&rep); err != nil {
		logger.Printf("PDF render failed: %v (HTML, JSON, and evidence artifacts are unaffected)", err)
		exit = 1
	} else if err := os.WriteFile(pdfPath, data, 0644); err != nil {
		logger.Printf("write report.pdf: %v", err)
		exit = 1
	} else {
		fmt.Printf("[+] PDF written to:    %s\n", pdfPath)
	}

	jsonPath := filepath.Join(outDir, "report.json")
	if err := report.WriteJSON(jsonPath, &rep); err != nil {
		logger.Printf("%v", err)
		return 1
	}
	fmt.Printf("[+] JSON written to:   %s\n", jsonPath)

	evidenceDir := filepath.Join(outDir, report.EvidenceDirName)
	if err := report.WriteEvidence(evidenceDir, &rep); err != nil {
		logger.Printf("%v", err)
		return 1
	}
	fmt.Printf("[+] Evidence in:       %s\n", evidenceDir)

	if cfg.History.Path != "" {
		if id, err := recordRun(ctx, cfg.History.Path, &rep); err != nil {
			logger.Printf("record run history: %v", err)
			exit = 1
		} else {
			logger.Printf("run %d recorded in %s", id, cfg.History.Path)
		}
	}

	return exit
}

func recordRun(ctx context.Context, dbPath string, r *report.Report) (int64, error) {
	store, err := history.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	return store.Record(ctx, r)
}

func runList(ctx context.Context, dbPath string, logger *log.Logger) int {
	if dbPath == "" {
		logger.Printf("run history is not enabled; pass -history <path> or set history.path in the config")
		return 1
	}
	store, err := history.Open(dbPath)
	if err != nil {
		logger.Printf("open history: %v", err)
		return 1
	}
	defer store.Close()

	entries, err := store.List(ctx, history.DefaultListLimit)
	if err != nil {
		logger.Printf("list runs: %v", err)
		return 1
	}
	printRuns(os.Stdout, entries)
	return 0
}

func runShow(ctx context.Context, dbPath string, id int64, logger *log.Logger) int {
	if dbPath == "" {
		logger.Printf("run history is not enabled; pass -history <path> or set history.path in the config")
		return 1
	}
	store, err := history.Open(dbPath)
	if err != nil {
		logger.Printf("open history: %v", err)
		return 1
	}
	defer store.Close()

	r, err := store.Get(ctx, id)
	if err != nil {
		logger.Printf("show run %d: %v", id, err)
		return 1
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(r)
	return 0
}

func printRuns(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return
	}
	fmt.Fprintf(w, "%-5s %-20s %-22s %-6s %s\n", "ID", "HOST", "TIMESTAMP", "SCORE", "FINDINGS")
	for _, e := range entries {
		fmt.Fprintf(w, "%-5d %-20s %-22s %-6d %d\n", e.ID, e.Hostname, e.Timestamp, e.Score, e.Findings)
	}
}

func envOrFlag(flagVal, envKey string) string {
	if flagVal != "" {
		return flagVal
	}
	return os.Getenv(envKey)
}
