// internal/radio/rylr/at.go
package rylr

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/goburrow/serial"
	"github.com/pkg/errors"
)

// AT command set of the RYLR896 LoRa UART module.
const (
	cmdPing     = "AT"
	cmdBand     = "AT+BAND="
	cmdPower    = "AT+CRFOP="
	cmdMode     = "AT+MODE="
	cmdSend     = "AT+SEND="
	replyOK     = "+OK"
	replyErrPfx = "+ERR="

	modeTransceive = 0
	modeSleep      = 1

	// MaxPayload is the module's per-frame ASCII data limit.
	MaxPayload = 240

	MinBandHz  uint32 = 433000000
	MaxBandHz  uint32 = 915000000
	MaxPowerDB int8   = 15
)

// ErrModule is a "+ERR=n" reply from the module.
type ErrModule struct {
	Command string
	Code    string
}

func (e *ErrModule) Error() string {
	return "rylr: " + e.Command + ": module error " + e.Code
}

// session is one open serial line with the module.
type session struct {
	port    io.ReadWriteCloser
	rd      *bufio.Reader
	timeout time.Duration
}

func newSession(port io.ReadWriteCloser, timeout time.Duration) *session {
	return &session{port: port, rd: bufio.NewReader(port), timeout: timeout}
}

func (s *session) write(cmd string) error {
	_, err := io.WriteString(s.port, cmd+"\r\n")
	return errors.Wrapf(err, "rylr: write %q", verb(cmd))
}

// expectOK reads reply lines until +OK or +ERR, skipping unsolicited output.
func (s *session) expectOK(cmd string) error {
	deadline := time.Now().Add(s.timeout)
	partial := ""

	for time.Now().Before(deadline) {
		chunk, err := s.rd.ReadString('\n')
		if err != nil {
			if err == serial.ErrTimeout {
				partial += chunk
				continue
			}
			return errors.Wrapf(err, "rylr: %s: read reply", verb(cmd))
		}

		line := strings.TrimSpace(partial + chunk)
		partial = ""
		switch {
		case line == replyOK:
			return nil
		case strings.HasPrefix(line, replyErrPfx):
			return &ErrModule{Command: verb(cmd), Code: strings.TrimPrefix(line, replyErrPfx)}
		}
	}
	return errors.Errorf("rylr: %s: no reply within %s", verb(cmd), s.timeout)
}

func (s *session) do(cmd string) error {
	if err := s.write(cmd); err != nil {
		return err
	}
	return s.expectOK(cmd)
}

// verb strips the argument part for log/error text.
func verb(cmd string) string {
	if i := strings.IndexByte(cmd, '='); i >= 0 {
		return cmd[:i]
	}
	return cmd
}
