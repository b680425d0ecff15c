// internal/sensor/modbusaq/sensor.go
package modbusaq

import (
	"github.com/goburrow/modbus"
	"github.com/pkg/errors"

	"github.com/tamzrod/weather-node/internal/health"
	"github.com/tamzrod/weather-node/internal/sensor"
)

// Sensor implements sensor.AirQuality on a Modbus CO2/TVOC transmitter.
// The transmitter's status register mirrors the health air-quality bits.
type Sensor struct {
	cfg Config

	handler transport
	client  registerClient

	fault health.Bits
}

func New(cfg Config) *Sensor {
	return &Sensor{cfg: cfg}
}

// newWithClient binds an already connected register client.
func newWithClient(cfg Config, c registerClient) *Sensor {
	return &Sensor{cfg: cfg, client: c}
}

// Init connects and probes the status register.
func (s *Sensor) Init() error {
	if s.client == nil {
		h, err := newTransport(s.cfg)
		if err != nil {
			return err
		}
		if err := h.Connect(); err != nil {
			return errors.Wrapf(err, "modbusaq: connect %s", s.cfg.Endpoint)
		}
		s.handler = h
		s.client = modbus.NewClient(h)
	}

	if _, err := s.readRegister(s.cfg.Registers.Status); err != nil {
		s.fault = health.ReadRegInvalid
		return errors.Wrap(err, "modbusaq: probe status")
	}
	s.fault = 0
	return nil
}

// Read returns a sample only when the status register is clear.
func (s *Sensor) Read() (sensor.AirSample, error) {
	if s.client == nil {
		return sensor.AirSample{}, sensor.ErrNotInitialized
	}

	status, err := s.readRegister(s.cfg.Registers.Status)
	if err != nil {
		s.fault = health.ReadRegInvalid
		return sensor.AirSample{}, errors.Wrap(err, "modbusaq: read status")
	}

	s.fault = health.Bits(status) & health.AirQualityMask
	if s.fault != 0 {
		return sensor.AirSample{}, errors.Errorf("modbusaq: sensor fault %s", s.fault)
	}

	co2, err := s.readRegister(s.cfg.Registers.CO2)
	if err != nil {
		s.fault = health.ReadRegInvalid
		return sensor.AirSample{}, errors.Wrap(err, "modbusaq: read co2")
	}
	tvoc, err := s.readRegister(s.cfg.Registers.TVOC)
	if err != nil {
		s.fault = health.ReadRegInvalid
		return sensor.AirSample{}, errors.Wrap(err, "modbusaq: read tvoc")
	}

	return sensor.AirSample{
		CO2ppm:  float32(co2),
		TVOCppb: float32(tvoc),
	}, nil
}

// SetCompensation writes ambient humidity and temperature to the transmitter.
func (s *Sensor) SetCompensation(humidity, tempC float32) error {
	if s.client == nil {
		return sensor.ErrNotInitialized
	}

	if _, err := s.client.WriteSingleRegister(s.cfg.Registers.Humidity, scaleHundredths(humidity, false)); err != nil {
		s.fault = health.WriteRegInvalid
		return errors.Wrap(err, "modbusaq: write humidity")
	}
	if _, err := s.client.WriteSingleRegister(s.cfg.Registers.Temperature, scaleHundredths(tempC, true)); err != nil {
		s.fault = health.WriteRegInvalid
		return errors.Wrap(err, "modbusaq: write temperature")
	}
	return nil
}

// LastFault is the fault recorded by the most recent operation.
func (s *Sensor) LastFault() health.Bits {
	return s.fault
}

func (s *Sensor) Close() error {
	if s.handler == nil {
		return nil
	}
	err := s.handler.Close()
	s.handler = nil
	s.client = nil
	return err
}

func (s *Sensor) readRegister(addr uint16) (uint16, error) {
	raw, err := s.client.ReadInputRegisters(addr, 1)
	if err != nil {
		return 0, err
	}
	return unpackU16(raw)
}
