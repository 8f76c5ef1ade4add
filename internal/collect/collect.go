package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/winposture/winposture/internal/evidence"
)

// PowerShell query texts. These are fixed contracts with the host: the
// Select-Object projections determine the JSON shapes the normalizer decodes.
const (
	defenderQuery = "Get-MpComputerStatus | Select-Object AMServiceEnabled,AntispywareEnabled,AntivirusEnabled,RealTimeProtectionEnabled | ConvertTo-Json"
	firewallQuery = "Get-NetFirewallProfile | Select-Object Name,Enabled | ConvertTo-Json"
	uptimeQuery   = "(Get-Date) - (Get-CimInstance Win32_OperatingSystem).LastBootUpTime | Select-Object -ExpandProperty TotalSeconds"
)

// Default collection bounds. The update-history query walks the full hotfix
// store, so it gets a longer timeout than the rest.
const (
	DefaultTimeout        = 25 * time.Second
	DefaultUpdatesTimeout = 40 * time.Second
	DefaultUpdatesLimit   = 10
	DefaultUsersLimit     = 20
)

// Options configures a Collector. Zero values fall back to the defaults.
type Options struct {
	Timeout        time.Duration
	UpdatesTimeout time.Duration
	UpdatesLimit   int
	UsersLimit     int
	Logger         *log.Logger
}

// Collector runs the evidence queries for one audit snapshot.
type Collector struct {
	runner         Runner
	timeout        time.Duration
	updatesTimeout time.Duration
	updatesLimit   int
	usersLimit     int
	logger         *log.Logger
}

// New creates a Collector on top of the given Runner.
func New(runner Runner, opts Options) *Collector {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UpdatesTimeout == 0 {
		opts.UpdatesTimeout = DefaultUpdatesTimeout
	}
	if opts.UpdatesLimit == 0 {
		opts.UpdatesLimit = DefaultUpdatesLimit
	}
	if opts.UsersLimit == 0 {
		opts.UsersLimit = DefaultUsersLimit
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Collector{
		runner:         runner,
		timeout:        opts.Timeout,
		updatesTimeout: opts.UpdatesTimeout,
		updatesLimit:   opts.UpdatesLimit,
		usersLimit:     opts.UsersLimit,
		logger:         opts.Logger,
	}
}

// Collect gathers all evidence sections concurrently. The sections are
// mutually independent and write disjoint Bundle fields, and every section
// degrades to an unavailability reason instead of an error, so the join
// always succeeds.
func (c *Collector) Collect(ctx context.Context) evidence.Bundle {
	var b evidence.Bundle
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { b.UptimeSeconds = c.Uptime(ctx); return nil })
	g.Go(func() error { b.Defender = c.Defender(ctx); return nil })
	g.Go(func() error { b.Firewall = c.Firewall(ctx); return nil })
	g.Go(func() error { b.Bitlocker = c.Bitlocker(ctx); return nil })
	g.Go(func() error { b.Updates = c.Updates(ctx); return nil })
	g.Go(func() error { b.LocalUsers = c.LocalUsers(ctx); return nil })

	g.Wait()

	c.logSection("defender", b.Defender.Available, b.Defender.Error)
	c.logSection("firewall", b.Firewall.Available, b.Firewall.Error)
	c.logSection("bitlocker", b.Bitlocker.Available, b.Bitlocker.Error)
	c.logSection("updates", b.Updates.Available, b.Updates.Error)
	c.logSection("local users", b.LocalUsers.Available, b.LocalUsers.Error)
	return b
}

func (c *Collector) logSection(name string, available bool, reason string) {
	if available && reason == "" {
		c.logger.Printf("%s: collected", name)
		return
	}
	if available {
		c.logger.Printf("%s: collected with parse error: %s", name, reason)
		return
	}
	c.logger.Printf("%s: unavailable: %s", name, reason)
}

// Defender queries Microsoft Defender status. Requires the Defender cmdlets,
// which Windows 10/11 normally ship.
func (c *Collector) Defender(ctx context.Context) evidence.DefenderStatus {
	res := c.runner.Query(ctx, defenderQuery, c.timeout)
	if !res.Ok() {
		return evidence.DefenderStatus{Error: fallback(res.Stderr, "Defender status unavailable.")}
	}
	var data evidence.DefenderData
	if err := json.Unmarshal([]byte(res.Stdout), &data); err != nil {
		return evidence.DefenderStatus{Available: true, Error: "Failed to parse Defender output."}
	}
	return evidence.DefenderStatus{Available: true, Data: data}
}

// Firewall queries the state of every Windows Firewall profile.
func (c *Collector) Firewall(ctx context.Context) evidence.FirewallStatus {
	res := c.runner.Query(ctx, firewallQuery, c.timeout)
	if !res.Ok() {
		return evidence.FirewallStatus{
			Profiles: []evidence.FirewallProfile{},
			Error:    fallback(res.Stderr, "Firewall status unavailable."),
		}
	}
	var profiles []evidence.FirewallProfile
	if err := json.Unmarshal(evidence.CoerceArray([]byte(res.Stdout)), &profiles); err != nil {
		return evidence.FirewallStatus{
			Available: true,
			Profiles:  []evidence.FirewallProfile{},
			Error:     "Failed to parse firewall output.",
		}
	}
	return evidence.FirewallStatus{Available: true, Profiles: profiles}
}

// Bitlocker captures the manage-bde status dump as raw text.
func (c *Collector) Bitlocker(ctx context.Context) evidence.BitlockerStatus {
	res := c.runner.Exec(ctx, c.timeout, "manage-bde", "-status")
	if res.ExitCode != 0 || res.Stdout == "" {
		return evidence.BitlockerStatus{Error: fallback(res.Stderr, "BitLocker status unavailable.")}
	}
	return evidence.BitlockerStatus{Available: true, Raw: res.Stdout}
}

// Updates queries recent hotfix history, newest first.
func (c *Collector) Updates(ctx context.Context) evidence.UpdateHistory {
	query := fmt.Sprintf(
		"Get-HotFix | Sort-Object InstalledOn -Descending | Select-Object -First %d HotFixID,Description,InstalledOn | ConvertTo-Json",
		c.updatesLimit)
	res := c.runner.Query(ctx, query, c.updatesTimeout)
	if !res.Ok() {
		return evidence.UpdateHistory{
			Updates: []evidence.Update{},
			Error:   fallback(res.Stderr, "Update history unavailable."),
		}
	}
	var updates []evidence.Update
	if err := json.Unmarshal(evidence.CoerceArray([]byte(res.Stdout)), &updates); err != nil {
		return evidence.UpdateHistory{
			Available: true,
			Updates:   []evidence.Update{},
			Error:     "Failed to parse update output.",
		}
	}
	return evidence.UpdateHistory{Available: true, Updates: updates}
}

// LocalUsers queries local accounts.
func (c *Collector) LocalUsers(ctx context.Context) evidence.LocalUsers {
	query := fmt.Sprintf(
		"Get-LocalUser | Select-Object -First %d Name,Enabled,LastLogon | ConvertTo-Json",
		c.usersLimit)
	res := c.runner.Query(ctx, query, c.timeout)
	if !res.Ok() {
		return evidence.LocalUsers{
			Users: []evidence.LocalUser{},
			Error: fallback(res.Stderr, "Local users unavailable."),
		}
	}
	var users []evidence.LocalUser
	if err := json.Unmarshal(evidence.CoerceArray([]byte(res.Stdout)), &users); err != nil {
		return evidence.LocalUsers{
			Available: true,
			Users:     []evidence.LocalUser{},
			Error:     "Failed to parse local user output.",
		}
	}
	return evidence.LocalUsers{Available: true, Users: users}
}

// Uptime derives seconds since boot from the OS boot time. Unparseable or
// unavailable output degrades to nil rather than an error.
func (c *Collector) Uptime(ctx context.Context) *int64 {
	res := c.runner.Query(ctx, uptimeQuery, c.timeout)
	if !res.Ok() {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(res.Stdout), 64)
	if err != nil {
		return nil
	}
	secs := int64(f)
	return &secs
}

func fallback(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
