// internal/sensor/modbusaq/sensor_test.go
package modbusaq

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/tamzrod/weather-node/internal/health"
	"github.com/tamzrod/weather-node/internal/sensor"
)

var _ sensor.AirQuality = (*Sensor)(nil)

type fakeRegs struct {
	input   map[uint16]uint16
	written map[uint16]uint16

	readErr  error
	writeErr error
}

func newFakeRegs() *fakeRegs {
	return &fakeRegs{
		input:   map[uint16]uint16{},
		written: map[uint16]uint16{},
	}
}

func (f *fakeRegs) ReadInputRegisters(addr, qty uint16) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make([]byte, 0, 2*qty)
	for i := uint16(0); i < qty; i++ {
		v := f.input[addr+i]
		out = append(out, byte(v>>8), byte(v))
	}
	return out, nil
}

func (f *fakeRegs) WriteSingleRegister(addr, value uint16) ([]byte, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.written[addr] = value
	return []byte{byte(value >> 8), byte(value)}, nil
}

func testConfig() Config {
	return Config{
		Endpoint: "127.0.0.1:502",
		SlaveID:  1,
		Registers: Registers{
			CO2: 0, TVOC: 1, Status: 2,
			Humidity: 16, Temperature: 17,
		},
	}
}

func TestSensor_ReadNominal(t *testing.T) {
	regs := newFakeRegs()
	regs.input[0] = 410
	regs.input[1] = 120

	s := newWithClient(testConfig(), regs)
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	got, err := s.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.CO2ppm != 410 || got.TVOCppb != 120 {
		t.Fatalf("sample=%+v", got)
	}
	if s.LastFault() != 0 {
		t.Fatalf("LastFault=%v want 0", s.LastFault())
	}
}

func TestSensor_StatusFaultFailsRead(t *testing.T) {
	regs := newFakeRegs()
	regs.input[2] = uint16(health.MeasModeInvalid) | 0x8000 // high bit outside the mask

	s := newWithClient(testConfig(), regs)
	if _, err := s.Read(); err == nil {
		t.Fatalf("expected read failure on status fault")
	}
	if s.LastFault() != health.MeasModeInvalid {
		t.Fatalf("LastFault=%v want %v", s.LastFault(), health.MeasModeInvalid)
	}
}

func TestSensor_TransportErrorsMapToRegisterFaults(t *testing.T) {
	regs := newFakeRegs()
	regs.readErr = errors.New("timeout")
	regs.writeErr = errors.New("exception")

	s := newWithClient(testConfig(), regs)
	if _, err := s.Read(); err == nil {
		t.Fatalf("expected read error")
	}
	if s.LastFault() != health.ReadRegInvalid {
		t.Fatalf("LastFault after read=%v", s.LastFault())
	}

	if err := s.SetCompensation(45, 21.5); err == nil {
		t.Fatalf("expected compensation error")
	}
	if s.LastFault() != health.WriteRegInvalid {
		t.Fatalf("LastFault after write=%v", s.LastFault())
	}
}

func TestSensor_CompensationScaling(t *testing.T) {
	regs := newFakeRegs()
	s := newWithClient(testConfig(), regs)

	if err := s.SetCompensation(45.5, -3.25); err != nil {
		t.Fatalf("SetCompensation: %v", err)
	}
	if regs.written[16] != 4550 {
		t.Fatalf("humidity reg=%d want 4550", regs.written[16])
	}
	if int16(regs.written[17]) != -325 {
		t.Fatalf("temperature reg=%d want -325", int16(regs.written[17]))
	}
}

func TestSensor_UninitializedErrors(t *testing.T) {
	s := New(testConfig())
	if _, err := s.Read(); errors.Cause(err) != sensor.ErrNotInitialized {
		t.Fatalf("Read err=%v", err)
	}
	if err := s.SetCompensation(1, 1); errors.Cause(err) != sensor.ErrNotInitialized {
		t.Fatalf("SetCompensation err=%v", err)
	}
}

func TestIsTCP(t *testing.T) {
	cases := map[string]bool{
		"10.0.0.5:502":   true,
		"/dev/ttyUSB0":   false,
		"COM3":           false,
		"sensor.local:1": true,
	}
	for in, want := range cases {
		if got := isTCP(in); got != want {
			t.Fatalf("isTCP(%q)=%v want %v", in, got, want)
		}
	}
}

func TestScaleHundredths_Clamps(t *testing.T) {
	if got := scaleHundredths(1000, false); got != 65535 {
		t.Fatalf("unsigned clamp=%d", got)
	}
	if got := scaleHundredths(-5, false); got != 0 {
		t.Fatalf("unsigned floor=%d", got)
	}
	if got := int16(scaleHundredths(-500, true)); got != -32768 {
		t.Fatalf("signed floor=%d", got)
	}
}
