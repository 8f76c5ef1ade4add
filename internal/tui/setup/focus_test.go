package setup

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/winposture/winposture/internal/config"
)

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
)

// ---------------------------------------------------------------------------
// CollectionPage
// ---------------------------------------------------------------------------

func TestCollectionPage_Defaults(t *testing.T) {
	p := NewCollectionPage()
	if p.Title() != "Collection" {
		t.Errorf("Title = %q, want Collection", p.Title())
	}
	if p.shell.Selected() != "powershell" {
		t.Errorf("default shell = %q, want powershell", p.shell.Selected())
	}
}

func TestCollectionPage_TabAdvancesFields(t *testing.T) {
	p := NewCollectionPage()
	p.Focus()

	// Tab through all but the last field: each must be consumed by the page
	for i := 0; i < collectionFieldCount-1; i++ {
		_, cmd := p.Update(keyTab)
		if cmd == nil {
			t.Fatalf("tab at field %d should be consumed by the page", i)
		}
	}
	if p.focus != collectionFieldCount-1 {
		t.Errorf("focus = %d, want %d", p.focus, collectionFieldCount-1)
	}

	// Tab on the last field falls through to the wizard
	_, cmd := p.Update(keyTab)
	if cmd != nil {
		t.Error("tab on the last field should not be consumed")
	}
}

func TestCollectionPage_EnterOnSelector(t *testing.T) {
	p := NewCollectionPage()
	p.Focus()

	_, cmd := p.Update(keyEnter)
	if cmd == nil {
		t.Error("enter on the selector should be consumed")
	}
	if p.focus != 0 {
		t.Errorf("selector should keep focus on enter, focus = %d", p.focus)
	}
}

func TestCollectionPage_SelectorNavigation(t *testing.T) {
	p := NewCollectionPage()
	p.Focus()

	p.Update(keyDown)
	if p.shell.Selected() != "pwsh" {
		t.Errorf("after down: shell = %q, want pwsh", p.shell.Selected())
	}
}

func TestCollectionPage_ShiftTabBack(t *testing.T) {
	p := NewCollectionPage()
	p.Focus()
	p.Update(keyTab)
	p.Update(keyTab)
	if p.focus != 2 {
		t.Fatalf("focus = %d, want 2", p.focus)
	}

	_, cmd := p.Update(keyShiftTab)
	if cmd == nil {
		t.Error("shift+tab mid-page should be consumed")
	}
	if p.focus != 1 {
		t.Errorf("focus = %d, want 1", p.focus)
	}

	p.focus = 0
	p.updateFocus()
	_, cmd = p.Update(keyShiftTab)
	if cmd != nil {
		t.Error("shift+tab on the first field should fall through to the wizard")
	}
}

func TestCollectionPage_Validate(t *testing.T) {
	p := NewCollectionPage()
	if !p.Validate() {
		t.Error("empty numeric fields should validate (defaults apply)")
	}

	p.timeoutSec.SetValue("abc")
	if p.Validate() {
		t.Error("non-numeric timeout should fail validation")
	}
	if p.timeoutSec.Err == "" {
		t.Error("invalid field should carry an inline error")
	}
}

func TestCollectionPage_Apply_EmptyKeepsDefaults(t *testing.T) {
	p := NewCollectionPage()
	cfg := config.NewDefaultConfig()
	p.Apply(cfg)

	if cfg.Collection.PowerShell != "powershell" {
		t.Errorf("PowerShell = %q, want powershell", cfg.Collection.PowerShell)
	}
	if cfg.Collection.TimeoutSec != 25 {
		t.Errorf("TimeoutSec = %d, want 25", cfg.Collection.TimeoutSec)
	}
	if cfg.Collection.UpdatesTimeoutSec != 40 {
		t.Errorf("UpdatesTimeoutSec = %d, want 40", cfg.Collection.UpdatesTimeoutSec)
	}
	if cfg.Collection.UpdatesLimit != 10 {
		t.Errorf("UpdatesLimit = %d, want 10", cfg.Collection.UpdatesLimit)
	}
	if cfg.Collection.UsersLimit != 20 {
		t.Errorf("UsersLimit = %d, want 20", cfg.Collection.UsersLimit)
	}
}

func TestCollectionPage_Apply_Values(t *testing.T) {
	p := NewCollectionPage()
	p.shell.SetSelected("pwsh")
	p.timeoutSec.SetValue("30")
	p.updatesTimeout.SetValue("60")
	p.updatesLimit.SetValue("5")
	p.usersLimit.SetValue("50")

	cfg := config.NewDefaultConfig()
	p.Apply(cfg)

	if cfg.Collection.PowerShell != "pwsh" {
		t.Errorf("PowerShell = %q, want pwsh", cfg.Collection.PowerShell)
	}
	if cfg.Collection.TimeoutSec != 30 {
		t.Errorf("TimeoutSec = %d, want 30", cfg.Collection.TimeoutSec)
	}
	if cfg.Collection.UpdatesTimeoutSec != 60 {
		t.Errorf("UpdatesTimeoutSec = %d, want 60", cfg.Collection.UpdatesTimeoutSec)
	}
	if cfg.Collection.UpdatesLimit != 5 {
		t.Errorf("UpdatesLimit = %d, want 5", cfg.Collection.UpdatesLimit)
	}
	if cfg.Collection.UsersLimit != 50 {
		t.Errorf("UsersLimit = %d, want 50", cfg.Collection.UsersLimit)
	}
}

// ---------------------------------------------------------------------------
// OutputPage
// ---------------------------------------------------------------------------

func TestOutputPage_Defaults(t *testing.T) {
	p := NewOutputPage()
	if p.Title() != "Output & History" {
		t.Errorf("Title = %q, want Output & History", p.Title())
	}
	if p.outDir.Value() != "out" {
		t.Errorf("default output dir = %q, want out", p.outDir.Value())
	}
	if p.history.Enabled {
		t.Error("history should default to off")
	}
}

func TestOutputPage_Validate(t *testing.T) {
	p := NewOutputPage()
	if !p.Validate() {
		t.Error("default page should validate")
	}

	p.outDir.SetValue("")
	if p.Validate() {
		t.Error("empty output dir should fail validation")
	}
	if p.outDir.Err == "" {
		t.Error("invalid field should carry an inline error")
	}
}

func TestOutputPage_EnterTogglesHistory(t *testing.T) {
	p := NewOutputPage()
	p.Focus()
	p.Update(keyTab) // focus the toggle

	_, cmd := p.Update(keyEnter)
	if cmd == nil {
		t.Error("enter on the toggle should be consumed")
	}
	if !p.history.Enabled {
		t.Error("enter should flip the toggle on")
	}
	if p.focus != 1 {
		t.Errorf("toggle should keep focus on enter, focus = %d", p.focus)
	}

	// Tab moves past the toggle without flipping it
	p.Update(keyTab)
	if p.focus != 2 {
		t.Errorf("focus = %d, want 2", p.focus)
	}
	if !p.history.Enabled {
		t.Error("tab should not flip the toggle")
	}
}

func TestOutputPage_Apply_HistoryDisabled(t *testing.T) {
	p := NewOutputPage()
	cfg := config.NewDefaultConfig()
	p.Apply(cfg)

	if cfg.Output.Dir != "out" {
		t.Errorf("Output.Dir = %q, want out", cfg.Output.Dir)
	}
	if cfg.History.Path != "" {
		t.Errorf("History.Path = %q, want empty (disabled)", cfg.History.Path)
	}
}

func TestOutputPage_Apply_HistoryDefaultPath(t *testing.T) {
	p := NewOutputPage()
	p.history.Enabled = true

	cfg := config.NewDefaultConfig()
	p.Apply(cfg)

	if cfg.History.Path != "winposture.db" {
		t.Errorf("History.Path = %q, want winposture.db", cfg.History.Path)
	}
}

func TestOutputPage_Apply_HistoryCustomPath(t *testing.T) {
	p := NewOutputPage()
	p.history.Enabled = true
	p.historyPath.SetValue("scores.db")

	cfg := config.NewDefaultConfig()
	p.Apply(cfg)

	if cfg.History.Path != "scores.db" {
		t.Errorf("History.Path = %q, want scores.db", cfg.History.Path)
	}
}

// ---------------------------------------------------------------------------
// SetupModel page flow
// ---------------------------------------------------------------------------

func tabThrough(t *testing.T, m SetupModel, presses int) SetupModel {
	t.Helper()
	for i := 0; i < presses; i++ {
		model, _ := m.Update(keyTab)
		m = model.(SetupModel)
	}
	return m
}

func TestSetupModel_AdvanceThroughPages(t *testing.T) {
	m := NewSetupModel("winposture.yaml")
	m.Init()

	// Collection page: 4 tabs between fields, 5th advances the wizard
	m = tabThrough(t, m, collectionFieldCount)
	if m.pageIndex != 1 {
		t.Fatalf("after collection page: pageIndex = %d, want 1", m.pageIndex)
	}

	// Output page: 2 tabs between fields, 3rd advances to review
	m = tabThrough(t, m, outputFieldCount)
	if m.pageIndex != 2 {
		t.Fatalf("after output page: pageIndex = %d, want 2", m.pageIndex)
	}

	// Review page received the accumulated config
	rp, ok := m.pages[2].(*ReviewPage)
	if !ok {
		t.Fatal("page 2 should be the review page")
	}
	if rp.cfg == nil {
		t.Fatal("review page should have the config")
	}
	if rp.cfg.Output.Dir != "out" {
		t.Errorf("review config Output.Dir = %q, want out", rp.cfg.Output.Dir)
	}
	if rp.cfg.Collection.PowerShell != "powershell" {
		t.Errorf("review config PowerShell = %q, want powershell", rp.cfg.Collection.PowerShell)
	}
}

func TestSetupModel_ValidationBlocksAdvance(t *testing.T) {
	m := NewSetupModel("winposture.yaml")
	m.Init()

	cp := m.pages[0].(*CollectionPage)
	cp.timeoutSec.SetValue("abc")

	m = tabThrough(t, m, collectionFieldCount)
	if m.pageIndex != 0 {
		t.Errorf("invalid page should not advance, pageIndex = %d", m.pageIndex)
	}
	if m.err == "" {
		t.Error("model should surface a validation error")
	}
	if !strings.Contains(m.View(), "fix the errors") {
		t.Error("view should show the validation error")
	}

	// Fixing the field clears the error on the next advance
	cp.timeoutSec.SetValue("30")
	m = tabThrough(t, m, 1)
	if m.pageIndex != 1 {
		t.Errorf("fixed page should advance, pageIndex = %d", m.pageIndex)
	}
	if m.err != "" {
		t.Errorf("error should clear after a valid advance, got %q", m.err)
	}
}

func TestSetupModel_BackNavigation(t *testing.T) {
	m := NewSetupModel("winposture.yaml")
	m.Init()

	m = tabThrough(t, m, collectionFieldCount)
	if m.pageIndex != 1 {
		t.Fatalf("pageIndex = %d, want 1", m.pageIndex)
	}

	// Output page focus is on its first field, so shift+tab goes back a page
	model, _ := m.Update(keyShiftTab)
	m = model.(SetupModel)
	if m.pageIndex != 0 {
		t.Errorf("shift+tab on first field should go back, pageIndex = %d", m.pageIndex)
	}
}

func TestSetupModel_CtrlCQuits(t *testing.T) {
	m := NewSetupModel("winposture.yaml")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}

func TestSetupModel_WindowSize(t *testing.T) {
	m := NewSetupModel("winposture.yaml")
	model, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = model.(SetupModel)
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
}
