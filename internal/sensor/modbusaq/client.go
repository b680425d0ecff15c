// internal/sensor/modbusaq/client.go
package modbusaq

import (
	"strings"
	"time"

	"github.com/goburrow/modbus"
	"github.com/pkg/errors"
)

// registerClient is the exact subset of modbus.Client the sensor uses.
type registerClient interface {
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
	WriteSingleRegister(address, value uint16) ([]byte, error)
}

// transport is a connectable modbus handler (TCP or RTU).
type transport interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// Config is minimal transport config.
type Config struct {
	// Endpoint is "host:port" for Modbus TCP, a serial device path otherwise.
	Endpoint string
	SlaveID  uint8
	BaudRate int
	Timeout  time.Duration

	Registers Registers
}

// Registers is the transmitter's input/holding register map.
type Registers struct {
	CO2         uint16 // input, ppm
	TVOC        uint16 // input, ppb
	Status      uint16 // input, fault bits
	Humidity    uint16 // holding, %RH x100
	Temperature uint16 // holding, degC x100 (signed)
}

// isTCP: serial device paths never contain a port separator.
func isTCP(endpoint string) bool {
	return strings.Contains(endpoint, ":") && !strings.HasPrefix(endpoint, "/")
}

func newTransport(cfg Config) (transport, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbusaq: endpoint required")
	}

	if isTCP(cfg.Endpoint) {
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.SlaveID
		return h, nil
	}

	h := modbus.NewRTUClientHandler(cfg.Endpoint)
	h.BaudRate = cfg.BaudRate
	h.DataBits = 8
	h.Parity = "N"
	h.StopBits = 1
	h.SlaveId = cfg.SlaveID
	h.Timeout = cfg.Timeout
	return h, nil
}

// ---- register geometry ----

func unpackU16(data []byte) (uint16, error) {
	if len(data) < 2 {
		return 0, errors.Errorf("modbusaq: short register payload (%d bytes)", len(data))
	}
	return uint16(data[0])<<8 | uint16(data[1]), nil
}

// scaleHundredths encodes v*100 rounded, clamped to the register range.
func scaleHundredths(v float32, signed bool) uint16 {
	x := float64(v) * 100
	if x >= 0 {
		x += 0.5
	} else {
		x -= 0.5
	}

	if signed {
		switch {
		case x > 32767:
			x = 32767
		case x < -32768:
			x = -32768
		}
		return uint16(int16(x))
	}

	switch {
	case x > 65535:
		x = 65535
	case x < 0:
		x = 0
	}
	return uint16(x)
}
