package display

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Panel draws the two lines as a live-updating terminal area, standing in
// for the rig's character LCD when running on a console.
type Panel struct {
	area *pterm.AreaPrinter
}

// NewPanel starts the terminal area.
func NewPanel() (*Panel, error) {
	area, err := pterm.DefaultArea.Start()
	if err != nil {
		return nil, fmt.Errorf("start display area: %w", err)
	}
	return &Panel{area: area}, nil
}

func (p *Panel) Show(line1, line2 string) error {
	p.area.Update(line1 + "\n" + line2)
	return nil
}

func (p *Panel) Close() error {
	return p.area.Stop()
}
