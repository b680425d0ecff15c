// internal/radio/rylr/radio.go
package rylr

import (
	"encoding/hex"
	"io"
	"strconv"
	"time"

	"github.com/goburrow/serial"
	"github.com/pkg/errors"

	"github.com/tamzrod/weather-node/internal/radio"
)

// Config is the serial line and link addressing.
type Config struct {
	Port        string
	BaudRate    int
	Destination uint16
	Timeout     time.Duration
}

// Radio drives an RYLR896 over its UART. Frames are hex-encoded because
// the module's payload field is ASCII.
type Radio struct {
	cfg  Config
	open func(*serial.Config) (io.ReadWriteCloser, error)

	s       *session
	pending string
	asleep  bool
}

func New(cfg Config) *Radio {
	return &Radio{cfg: cfg, open: openSerial}
}

func openSerial(c *serial.Config) (io.ReadWriteCloser, error) {
	return serial.Open(c)
}

// Init opens the port and checks the module answers.
func (r *Radio) Init() error {
	port, err := r.open(&serial.Config{
		Address:  r.cfg.Port,
		BaudRate: r.cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  250 * time.Millisecond,
	})
	if err != nil {
		return errors.Wrapf(err, "rylr: open %s", r.cfg.Port)
	}

	s := newSession(port, r.cfg.Timeout)
	if err := s.do(cmdPing); err != nil {
		_ = port.Close()
		return err
	}
	r.s = s
	return nil
}

func (r *Radio) Configure(frequencyHz uint32, txPowerDBm int8) error {
	if r.s == nil {
		return radio.ErrNotInitialized
	}
	if frequencyHz < MinBandHz || frequencyHz > MaxBandHz {
		return errors.Errorf("rylr: band %d Hz out of range", frequencyHz)
	}
	if txPowerDBm < 0 || txPowerDBm > MaxPowerDB {
		return errors.Errorf("rylr: tx power %d dBm out of range", txPowerDBm)
	}

	if err := r.s.do(cmdBand + strconv.FormatUint(uint64(frequencyHz), 10)); err != nil {
		return err
	}
	return r.s.do(cmdPower + strconv.Itoa(int(txPowerDBm)))
}

// Send queues the frame. The module answers once the air time is over,
// which WaitSent collects.
func (r *Radio) Send(frame []byte) error {
	if r.s == nil {
		return radio.ErrNotInitialized
	}

	data := hex.EncodeToString(frame)
	if len(data) > MaxPayload {
		return errors.Wrapf(radio.ErrFrameTooLarge, "rylr: %d bytes encoded", len(data))
	}

	if r.asleep {
		if err := r.s.do(cmdMode + strconv.Itoa(modeTransceive)); err != nil {
			return err
		}
		r.asleep = false
	}

	cmd := cmdSend + strconv.Itoa(int(r.cfg.Destination)) + "," + strconv.Itoa(len(data)) + "," + data
	if err := r.s.write(cmd); err != nil {
		return err
	}
	r.pending = cmd
	return nil
}

func (r *Radio) WaitSent() error {
	if r.s == nil {
		return radio.ErrNotInitialized
	}
	if r.pending == "" {
		return radio.ErrNothingPending
	}
	cmd := r.pending
	r.pending = ""
	return r.s.expectOK(cmd)
}

func (r *Radio) Sleep() error {
	if r.s == nil {
		return radio.ErrNotInitialized
	}
	if err := r.s.do(cmdMode + strconv.Itoa(modeSleep)); err != nil {
		return err
	}
	r.asleep = true
	return nil
}

func (r *Radio) Close() error {
	if r.s == nil {
		return nil
	}
	err := r.s.port.Close()
	r.s = nil
	return err
}
