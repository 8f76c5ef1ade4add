// Command tui provides an interactive terminal UI for winposture.
//
// Subcommands:
//
//	view    browse a generated posture report in the terminal
//	setup   guided wizard that writes winposture.yaml
//
// Usage:
//
//	go run ./cmd/tui view [--report out/report.json]
//	go run ./cmd/tui setup [--config winposture.yaml]
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/winposture/winposture/internal/tui/setup"
	"github.com/winposture/winposture/internal/tui/view"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "view":
		runView(os.Args[2:])
	case "setup":
		runSetup(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("winposture TUI")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  winposture-tui view [--report path]   Browse a posture report")
	fmt.Println("  winposture-tui setup [--config path]  Interactive configuration wizard")
	fmt.Println()
	fmt.Println("View flags:")
	fmt.Println("  --report    Report JSON path (default: out/report.json)")
	fmt.Println()
	fmt.Println("Setup flags:")
	fmt.Println("  --config    Config file to write (default: winposture.yaml)")
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	reportPath := fs.String("report", "out/report.json", "Report JSON path")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	m := view.NewReportModel(*reportPath)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSetup(args []string) {
	fs := flag.NewFlagSet("setup", flag.ExitOnError)
	configPath := fs.String("config", "winposture.yaml", "Config file to write")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	m := setup.NewSetupModel(*configPath)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
