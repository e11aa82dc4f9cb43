package menu

import (
	"strings"
	"testing"
	"time"

	"github.com/sweeney/doser-control/internal/button"
	"github.com/sweeney/doser-control/internal/control"
	"github.com/sweeney/doser-control/internal/nvstore"
	"github.com/sweeney/doser-control/internal/output"
)

type nullRecorder struct{}

func (nullRecorder) Record(...string) {}

func newTestMenu() (*Menu, *control.Controller, *nvstore.Fake) {
	store := nvstore.NewFake()
	ctl := control.New(store, output.NewFakeDriver(), nullRecorder{})
	ctl.Recover(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	return New(ctl), ctl, store
}

func now() time.Time {
	return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
}

// press sends a sequence of events.
func press(m *Menu, evs ...button.Event) {
	for _, ev := range evs {
		m.Handle(ev, now())
	}
}

func line2(m *Menu) string {
	_, l2 := m.Render()
	return strings.TrimRight(l2, " ")
}

func TestSelectorRotation(t *testing.T) {
	m, _, _ := newTestMenu()

	if got := line2(m); got != "[ALL] MAN CAL LOG" {
		t.Fatalf("initial selector = %q", got)
	}

	press(m, button.Right)
	if got := line2(m); got != "ALL [MAN] CAL LOG" {
		t.Errorf("after Right: %q", got)
	}

	// Left from ALL wraps to LOG.
	press(m, button.Left, button.Left)
	if got := line2(m); got != "ALL MAN CAL [LOG]" {
		t.Errorf("after wraparound: %q", got)
	}

	press(m, button.Right)
	if got := line2(m); got != "[ALL] MAN CAL LOG" {
		t.Errorf("after forward wraparound: %q", got)
	}
}

func TestSelectorBackIsNoop(t *testing.T) {
	m, _, _ := newTestMenu()
	press(m, button.Right, button.Back)
	if got := line2(m); got != "ALL [MAN] CAL LOG" {
		t.Errorf("Back at top level moved the cursor: %q", got)
	}
}

func TestSelectAllTogglesEverything(t *testing.T) {
	m, ctl, _ := newTestMenu()

	press(m, button.Select) // ALL is an action, not a sub-context

	if got := line2(m); got != "[ALL] MAN CAL LOG" {
		t.Fatalf("ALL select left the selector: %q", got)
	}
	for i := 0; i < control.NumChannels; i++ {
		if !ctl.Channel(i).Running {
			t.Errorf("channel %d not running after ALL", i)
		}
	}
	if ctl.RelayState().Count != 1 {
		t.Errorf("relay count = %d, want 1", ctl.RelayState().Count)
	}
}

func TestManualToggleChannel(t *testing.T) {
	m, ctl, _ := newTestMenu()

	press(m, button.Right, button.Select) // enter MANUAL at Pump1
	if got := line2(m); got != "Pump1 OFF 100%" {
		t.Fatalf("manual entry = %q", got)
	}

	press(m, button.Select)
	if !ctl.Channel(0).Running {
		t.Fatal("Pump1 not started")
	}
	if got := line2(m); got != "Pump1 ON 100%" {
		t.Errorf("after start: %q", got)
	}

	press(m, button.Select)
	if ctl.Channel(0).Running {
		t.Error("Pump1 not stopped by second select")
	}
}

func TestManualRelayEntry(t *testing.T) {
	m, ctl, _ := newTestMenu()

	press(m, button.Right, button.Select) // enter MANUAL
	press(m, button.Left)                 // wrap back to the relay entry
	if got := line2(m); got != "Relay IDLE n=0" {
		t.Fatalf("relay entry = %q", got)
	}

	press(m, button.Select)
	if !ctl.RelayState().Blinking {
		t.Error("relay not toggled")
	}
	if got := line2(m); got != "Relay BLINK n=1" {
		t.Errorf("after toggle: %q", got)
	}
}

func TestManualBackUnwinds(t *testing.T) {
	m, _, _ := newTestMenu()
	press(m, button.Right, button.Select, button.Right, button.Back)
	if got := line2(m); got != "ALL [MAN] CAL LOG" {
		t.Errorf("Back did not land on the selector: %q", got)
	}
}

func TestCalibrationAdjustAndCommit(t *testing.T) {
	m, ctl, store := newTestMenu()

	press(m, button.Right, button.Right, button.Select) // enter CALIBRATION
	if got := line2(m); got != "Pump1 100% lvl 255" {
		t.Fatalf("calibration entry = %q", got)
	}

	press(m, button.Left, button.Left, button.Left)
	if got := ctl.Channel(0).Percent; got != 70 {
		t.Fatalf("percent = %d, want 70", got)
	}
	if store.Writes["cal0"] != 0 {
		t.Error("adjustment persisted before commit")
	}

	press(m, button.Select) // commit + advance to Pump2
	if store.Cals[0] != 70 {
		t.Errorf("persisted calibration = %d, want 70", store.Cals[0])
	}
	if got := line2(m); got != "Pump2 100% lvl 255" {
		t.Errorf("after commit: %q", got)
	}
}

func TestCalibrationClamps(t *testing.T) {
	m, ctl, _ := newTestMenu()
	press(m, button.Right, button.Right, button.Select)

	press(m, button.Right) // already at 100
	if got := ctl.Channel(0).Percent; got != 100 {
		t.Errorf("percent = %d, want clamp at 100", got)
	}

	for i := 0; i < 12; i++ {
		press(m, button.Left)
	}
	if got := ctl.Channel(0).Percent; got != 0 {
		t.Errorf("percent = %d, want clamp at 0", got)
	}
}

func TestClearAllNeedsConfirmation(t *testing.T) {
	m, ctl, store := newTestMenu()
	ctl.StartChannel(0, now().Add(-30*time.Second))
	ctl.StopChannel(0, now())
	ctl.ToggleRelay(now())

	press(m, button.Right, button.Right, button.Select) // enter CALIBRATION
	press(m, button.Select, button.Select, button.Select, button.Select)
	// Four commits land on the clear-all entry.
	if got := line2(m); got != "Select to arm" {
		t.Fatalf("clear-all entry = %q", got)
	}

	press(m, button.Select)
	if got := line2(m); got != "Select to confirm" {
		t.Fatalf("after arming: %q", got)
	}
	if ctl.Channel(0).TotalSeconds != 30 {
		t.Fatal("arming press already cleared totals")
	}

	press(m, button.Select)
	if ctl.Channel(0).TotalSeconds != 0 || store.Totals[0] != 0 {
		t.Error("totals not cleared")
	}
	if ctl.RelayState().Count != 0 || store.Count != 0 {
		t.Error("relay count not cleared")
	}
	if got := line2(m); got != "ALL MAN [CAL] LOG" {
		t.Errorf("clear-all did not return to the selector: %q", got)
	}
}

func TestClearAllBackDisarms(t *testing.T) {
	m, ctl, _ := newTestMenu()
	ctl.StartChannel(0, now().Add(-10*time.Second))
	ctl.StopChannel(0, now())

	press(m, button.Right, button.Right, button.Select)
	press(m, button.Select, button.Select, button.Select, button.Select)
	press(m, button.Select, button.Back) // arm, then leave

	if ctl.Channel(0).TotalSeconds != 10 {
		t.Error("Back after arming cleared totals")
	}
	if got := line2(m); got != "ALL MAN [CAL] LOG" {
		t.Errorf("Back did not land on the selector: %q", got)
	}

	// Re-entering must not remember the armed state.
	press(m, button.Select, button.Select, button.Select, button.Select, button.Select)
	if got := line2(m); got != "Select to arm" {
		t.Errorf("armed state leaked across contexts: %q", got)
	}
}

func TestLogPages(t *testing.T) {
	m, ctl, _ := newTestMenu()
	ctl.StartChannel(1, now().Add(-90*time.Second))
	ctl.StopChannel(1, now())

	press(m, button.Right, button.Right, button.Right, button.Select) // enter LOG
	if got := line2(m); got != "Pump1 0s" {
		t.Fatalf("log page 1 = %q", got)
	}

	press(m, button.Right)
	if got := line2(m); got != "Pump2 1m30s" {
		t.Errorf("log page 2 = %q", got)
	}

	// Select is view-only.
	press(m, button.Select)
	if got := line2(m); got != "Pump2 1m30s" {
		t.Errorf("select changed the log view: %q", got)
	}

	// Left from page 1 wraps to the relay page.
	press(m, button.Left, button.Left)
	if got := line2(m); got != "Relay n=0" {
		t.Errorf("relay page = %q", got)
	}

	press(m, button.Back)
	if got := line2(m); got != "ALL MAN CAL [LOG]" {
		t.Errorf("Back did not land on the selector: %q", got)
	}
}

func TestRenderWidth(t *testing.T) {
	m, _, _ := newTestMenu()
	screens := [][]button.Event{
		nil,                                         // selector
		{button.Right, button.Select},               // manual
		{button.Back, button.Right, button.Select},  // calibration
		{button.Back, button.Right, button.Select, button.Left}, // log, relay page
	}
	for i, evs := range screens {
		press(m, evs...)
		l1, l2 := m.Render()
		if len(l1) != Width || len(l2) != Width {
			t.Errorf("screen %d: line widths %d/%d, want %d", i, len(l1), len(l2), Width)
		}
	}
}
