// Package menu is the navigation state machine between the buttons and
// the control engine. Each UI context is its own screen type, so a cursor
// can never hold a value that is illegal for the mode it belongs to.
package menu

import (
	"time"

	"github.com/sweeney/doser-control/internal/button"
	"github.com/sweeney/doser-control/internal/control"
)

// Top-level mode order on the selector.
const (
	modeAll = iota
	modeManual
	modeCalibration
	modeLog

	numModes
)

// Cursor extents inside the sub-contexts. Manual and calibration both
// cover the four channels plus one terminal entry (relay / clear-all).
const (
	manualEntries = control.NumChannels + 1
	calibEntries  = control.NumChannels + 1
	logPages      = control.NumChannels + 1
)

const (
	relayCursor    = control.NumChannels
	clearAllCursor = control.NumChannels
)

// screen is the tagged-variant menu state.
type screen interface{ isScreen() }

type selectorScreen struct{ cursor int }
type manualScreen struct{ cursor int }
type calibScreen struct {
	cursor  int
	confirm bool // clear-all armed and waiting for the second Select
}
type logScreen struct{ page int }

func (selectorScreen) isScreen() {}
func (manualScreen) isScreen()   {}
func (calibScreen) isScreen()    {}
func (logScreen) isScreen()      {}

// Menu drives a Controller from debounced button events and renders the
// two display lines. Transient by design: Back and boot both land on the
// selector.
type Menu struct {
	ctl *control.Controller
	cur screen
}

// New creates a Menu at the top-level selector.
func New(ctl *control.Controller) *Menu {
	return &Menu{ctl: ctl, cur: selectorScreen{}}
}

// Handle applies one button event to the current screen. Select semantics
// are context-dependent; Back always unwinds to the selector and never
// touches committed writes.
func (m *Menu) Handle(ev button.Event, now time.Time) {
	switch s := m.cur.(type) {
	case selectorScreen:
		m.handleSelector(s, ev, now)
	case manualScreen:
		m.handleManual(s, ev, now)
	case calibScreen:
		m.handleCalib(s, ev, now)
	case logScreen:
		m.handleLog(s, ev)
	}
}

func (m *Menu) handleSelector(s selectorScreen, ev button.Event, now time.Time) {
	switch ev {
	case button.Left:
		s.cursor = rotate(s.cursor, -1, numModes)
		m.cur = s
	case button.Right:
		s.cursor = rotate(s.cursor, +1, numModes)
		m.cur = s
	case button.Select:
		switch s.cursor {
		case modeAll:
			// ALL is an action, not a sub-context.
			m.ctl.ToggleAll(now)
		case modeManual:
			m.cur = manualScreen{}
		case modeCalibration:
			m.cur = calibScreen{}
		case modeLog:
			m.cur = logScreen{}
		}
	case button.Back:
		// Already at the top.
	}
}

func (m *Menu) handleManual(s manualScreen, ev button.Event, now time.Time) {
	switch ev {
	case button.Left:
		s.cursor = rotate(s.cursor, -1, manualEntries)
		m.cur = s
	case button.Right:
		s.cursor = rotate(s.cursor, +1, manualEntries)
		m.cur = s
	case button.Select:
		if s.cursor == relayCursor {
			m.ctl.ToggleRelay(now)
		} else {
			m.ctl.ToggleChannel(s.cursor, now)
		}
	case button.Back:
		m.cur = selectorScreen{cursor: modeManual}
	}
}

func (m *Menu) handleCalib(s calibScreen, ev button.Event, now time.Time) {
	if s.cursor == clearAllCursor {
		switch ev {
		case button.Left:
			m.cur = calibScreen{cursor: rotate(s.cursor, -1, calibEntries)}
		case button.Right:
			m.cur = calibScreen{cursor: rotate(s.cursor, +1, calibEntries)}
		case button.Select:
			if !s.confirm {
				// Destructive: require a second explicit press.
				m.cur = calibScreen{cursor: s.cursor, confirm: true}
				return
			}
			m.ctl.ClearTotals()
			m.cur = selectorScreen{cursor: modeCalibration}
		case button.Back:
			m.cur = selectorScreen{cursor: modeCalibration}
		}
		return
	}

	switch ev {
	case button.Left:
		m.ctl.SetCalibration(s.cursor, stepDown(m.ctl.Channel(s.cursor).Percent))
	case button.Right:
		m.ctl.SetCalibration(s.cursor, stepUp(m.ctl.Channel(s.cursor).Percent))
	case button.Select:
		// Commit, then advance; past the last channel lands on clear-all.
		m.ctl.CommitCalibration(s.cursor)
		m.cur = calibScreen{cursor: s.cursor + 1}
	case button.Back:
		m.cur = selectorScreen{cursor: modeCalibration}
	}
}

func (m *Menu) handleLog(s logScreen, ev button.Event) {
	switch ev {
	case button.Left:
		s.page = rotate(s.page, -1, logPages)
		m.cur = s
	case button.Right:
		s.page = rotate(s.page, +1, logPages)
		m.cur = s
	case button.Select:
		// View-only.
	case button.Back:
		m.cur = selectorScreen{cursor: modeLog}
	}
}

func rotate(cur, delta, n int) int {
	return (cur + delta + n) % n
}

func stepUp(pct uint8) uint8 {
	if pct >= 90 {
		return 100
	}
	return pct + 10
}

func stepDown(pct uint8) uint8 {
	if pct <= 10 {
		return 0
	}
	return pct - 10
}
