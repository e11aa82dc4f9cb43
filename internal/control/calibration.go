package control

// Level converts a calibration percent to the 0–255 drive level,
// rounding to nearest. Percents above 100 clamp first.
func Level(percent uint8) uint8 {
	if percent > 100 {
		percent = 100
	}
	return uint8((int(percent)*255 + 50) / 100)
}
