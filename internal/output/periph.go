package output

import (
	"fmt"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/host"
)

// pwmFreq is the pump drive frequency. Diaphragm pump motors are not
// fussy; 1 kHz keeps the switching inaudible without stressing the driver
// transistors.
const pwmFreq = physic.KiloHertz

// RealDriver drives pumps over PWM-capable GPIO pins and the relay over a
// plain digital pin, via periph.io.
type RealDriver struct {
	pumps [4]gpio.PinIO
	relay gpio.PinIO
}

// NewRealDriver resolves the named pins and forces every output low.
// Pin names use periph naming, e.g. "GPIO12".
func NewRealDriver(pumpPins [4]string, relayPin string) (*RealDriver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	d := &RealDriver{}
	for i, name := range pumpPins {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("unknown pump pin %q", name)
		}
		if err := p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("init pump pin %q: %w", name, err)
		}
		d.pumps[i] = p
	}

	r := gpioreg.ByName(relayPin)
	if r == nil {
		return nil, fmt.Errorf("unknown relay pin %q", relayPin)
	}
	if err := r.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("init relay pin %q: %w", relayPin, err)
	}
	d.relay = r

	return d, nil
}

// SetLevel drives a pump channel. Full-scale and zero levels use plain
// digital writes; anything between runs PWM at pwmFreq.
func (d *RealDriver) SetLevel(ch int, level uint8) error {
	if ch < 0 || ch >= len(d.pumps) {
		return fmt.Errorf("pump channel %d out of range", ch)
	}
	pin := d.pumps[ch]
	switch level {
	case 0:
		return pin.Out(gpio.Low)
	case 255:
		return pin.Out(gpio.High)
	default:
		duty := gpio.Duty(uint64(level) * uint64(gpio.DutyMax) / 255)
		return pin.PWM(duty, pwmFreq)
	}
}

func (d *RealDriver) SetRelay(on bool) error {
	return d.relay.Out(gpio.Level(on))
}

// Close forces all outputs low. periph pins have no per-pin release.
func (d *RealDriver) Close() error {
	var firstErr error
	for _, p := range d.pumps {
		if err := p.Out(gpio.Low); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := d.relay.Out(gpio.Low); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
