// internal/indicator/gpioled/led.go
package gpioled

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// LED drives an active-high status LED on a GPIO pin.
type LED struct {
	pin gpio.PinOut
}

func Open(name string) (*LED, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "gpioled: host init")
	}

	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Errorf("gpioled: no such pin %q", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, errors.Wrapf(err, "gpioled: configure %s", name)
	}
	return &LED{pin: p}, nil
}

func (l *LED) Set(on bool) error {
	return errors.Wrap(l.pin.Out(gpio.Level(on)), "gpioled: set")
}
