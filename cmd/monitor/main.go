// Command monitor is a terminal dashboard that polls a running driver's
// HTTP status API and renders UPS telemetry, grounded on guiperry-HASHER's
// internal/cli/ui bubbletea wiring (tea.NewProgram with the alt screen).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"apc-modbus-hid-driver/internal/tui"
)

func main() {
	apiBase := flag.String("api", "http://localhost:8080", "base URL of the running driver's HTTP API")
	interval := flag.Duration("interval", 2*time.Second, "status poll interval")
	flag.Parse()

	m := tui.New(*apiBase, *interval)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "monitor: %v\n", err)
		os.Exit(1)
	}
}
