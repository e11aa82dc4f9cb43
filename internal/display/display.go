// Package display renders the rig's two text lines. The content contract
// is owned by the menu; implementations only draw.
package display

// Display draws a two-line frame.
type Display interface {
	// Show replaces the visible frame with the given lines.
	Show(line1, line2 string) error

	// Close releases the display.
	Close() error
}
