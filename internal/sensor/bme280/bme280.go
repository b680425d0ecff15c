// internal/sensor/bme280/bme280.go
package bme280

import (
	"sync"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"

	"github.com/tamzrod/weather-node/internal/sensor"
)

// Config is the minimal bus config.
type Config struct {
	Bus         string // "" = first available bus
	Address     uint16
	SeaLevelHPa float32
}

// Sensor implements sensor.Atmosphere on a BME280 over I2C.
type Sensor struct {
	cfg Config
	bus i2c.BusCloser
	dev *bmxx80.Dev
}

var hostOnce sync.Once
var hostErr error

func New(cfg Config) *Sensor {
	return &Sensor{cfg: cfg}
}

// Init opens the bus and probes the chip. Fails when the sensor is absent.
func (s *Sensor) Init() error {
	hostOnce.Do(func() { _, hostErr = host.Init() })
	if hostErr != nil {
		return errors.Wrap(hostErr, "bme280: host init")
	}

	bus, err := i2creg.Open(s.cfg.Bus)
	if err != nil {
		return errors.Wrapf(err, "bme280: open i2c bus %q", s.cfg.Bus)
	}

	dev, err := bmxx80.NewI2C(bus, s.cfg.Address, &bmxx80.DefaultOpts)
	if err != nil {
		_ = bus.Close()
		return errors.Wrapf(err, "bme280: probe 0x%02X", s.cfg.Address)
	}

	s.bus = bus
	s.dev = dev
	return nil
}

func (s *Sensor) Read() (sensor.Atmospherics, error) {
	env, err := s.sense()
	if err != nil {
		return sensor.Atmospherics{}, err
	}

	return sensor.Atmospherics{
		TempC:   float32(env.Temperature.Celsius()),
		PressPa: float32(float64(env.Pressure) / float64(physic.Pascal)),
		Hum:     float32(float64(env.Humidity) / float64(physic.PercentRH)),
	}, nil
}

// Altitude takes its own pressure sample.
func (s *Sensor) Altitude() (float32, error) {
	env, err := s.sense()
	if err != nil {
		return 0, err
	}
	pressPa := float32(float64(env.Pressure) / float64(physic.Pascal))
	return sensor.PressureAltitude(pressPa, s.cfg.SeaLevelHPa), nil
}

// Close halts the chip and releases the bus.
func (s *Sensor) Close() error {
	if s.dev == nil {
		return nil
	}
	err := s.dev.Halt()
	if cerr := s.bus.Close(); err == nil {
		err = cerr
	}
	s.dev = nil
	s.bus = nil
	return err
}

func (s *Sensor) sense() (physic.Env, error) {
	var env physic.Env
	if s.dev == nil {
		return env, sensor.ErrNotInitialized
	}
	if err := s.dev.Sense(&env); err != nil {
		return env, errors.Wrap(err, "bme280: sense")
	}
	return env, nil
}
