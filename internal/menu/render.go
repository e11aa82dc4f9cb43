package menu

import (
	"fmt"
	"strings"

	"github.com/sweeney/doser-control/internal/control"
)

// Width is the character width of the two display lines.
const Width = 20

var modeNames = [numModes]string{"ALL", "MAN", "CAL", "LOG"}

// Render produces the two display lines for the current screen. Content
// is fully determined by the menu state and live controller data.
func (m *Menu) Render() (string, string) {
	switch s := m.cur.(type) {
	case selectorScreen:
		return fit("Dosing Rig"), fit(selectorLine(s.cursor))
	case manualScreen:
		return m.renderManual(s)
	case calibScreen:
		return m.renderCalib(s)
	case logScreen:
		return m.renderLog(s)
	}
	return fit(""), fit("")
}

// selectorLine lists the mode names with the active one bracketed.
func selectorLine(cursor int) string {
	parts := make([]string, numModes)
	for i, name := range modeNames {
		if i == cursor {
			parts[i] = "[" + name + "]"
		} else {
			parts[i] = name
		}
	}
	return strings.Join(parts, " ")
}

func (m *Menu) renderManual(s manualScreen) (string, string) {
	if s.cursor == relayCursor {
		r := m.ctl.RelayState()
		state := "IDLE"
		if r.Blinking {
			state = "BLINK"
		}
		return fit("Manual"), fit(fmt.Sprintf("Relay %s n=%s", state, control.FormatCount(r.Count)))
	}
	ch := m.ctl.Channel(s.cursor)
	state := "OFF"
	if ch.Running {
		state = "ON"
	}
	return fit("Manual"), fit(fmt.Sprintf("%s %s %d%%", ch.Name, state, ch.Percent))
}

func (m *Menu) renderCalib(s calibScreen) (string, string) {
	if s.cursor == clearAllCursor {
		if s.confirm {
			return fit("Clear all totals"), fit("Select to confirm")
		}
		return fit("Clear all totals"), fit("Select to arm")
	}
	ch := m.ctl.Channel(s.cursor)
	return fit("Calibrate"), fit(fmt.Sprintf("%s %d%% lvl %d", ch.Name, ch.Percent, ch.Level))
}

func (m *Menu) renderLog(s logScreen) (string, string) {
	header := fmt.Sprintf("Log %d/%d", s.page+1, logPages)
	if s.page == logPages-1 {
		r := m.ctl.RelayState()
		return fit(header), fit("Relay n=" + control.FormatCount(r.Count))
	}
	ch := m.ctl.Channel(s.page)
	return fit(header), fit(ch.Name + " " + control.FormatTotal(ch.TotalSeconds))
}

// fit pads or truncates a line to the display width.
func fit(s string) string {
	if len(s) > Width {
		return s[:Width]
	}
	return s + strings.Repeat(" ", Width-len(s))
}
