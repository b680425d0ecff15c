// internal/radio/ingest/client.go
package ingest

import (
	"io"
	"net"
	"time"

	"github.com/pkg/errors"

	"github.com/tamzrod/weather-node/internal/radio"
)

const (
	magicHi byte = 0x57 // 'W'
	magicLo byte = 0x4E // 'N'

	versionV1 byte = 0x01

	kindWeather byte = 0x01

	headerSize = 10
	maxPayload = 0xFFFF

	respOK       byte = 0x00
	respRejected byte = 0x01
)

// ErrRejected is a 0x01 status from the ingest server.
var ErrRejected = errors.New("ingest: rejected")

// Config is the ingest endpoint.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// Client implements radio.Radio over a TCP ingest bridge.
// Stateless between frames: 1 frame = 1 connection, confirmed by a
// single status byte.
type Client struct {
	cfg Config

	ready bool
	seq   uint32
	conn  net.Conn
}

func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{cfg: cfg}
}

// Init only checks the endpoint resolves; no connection is held.
func (c *Client) Init() error {
	if c.cfg.Endpoint == "" {
		return errors.New("ingest: endpoint required")
	}
	if _, err := net.ResolveTCPAddr("tcp", c.cfg.Endpoint); err != nil {
		return errors.Wrapf(err, "ingest: resolve %s", c.cfg.Endpoint)
	}
	c.ready = true
	return nil
}

// Configure has no meaning on a wired bridge.
func (c *Client) Configure(uint32, int8) error {
	if !c.ready {
		return radio.ErrNotInitialized
	}
	return nil
}

// Send dials and writes the framed packet; WaitSent reads the status.
func (c *Client) Send(frame []byte) error {
	if !c.ready {
		return radio.ErrNotInitialized
	}
	if len(frame) > maxPayload {
		return radio.ErrFrameTooLarge
	}
	c.drop()

	conn, err := net.DialTimeout("tcp", c.cfg.Endpoint, c.cfg.Timeout)
	if err != nil {
		return errors.Wrap(err, "ingest: dial")
	}

	c.seq++
	pkt := buildFrameV1(c.seq, frame)

	_ = conn.SetWriteDeadline(time.Now().Add(c.cfg.Timeout))
	if err := writeAll(conn, pkt); err != nil {
		_ = conn.Close()
		return errors.Wrap(err, "ingest: write")
	}

	c.conn = conn
	return nil
}

func (c *Client) WaitSent() error {
	if c.conn == nil {
		return radio.ErrNothingPending
	}
	defer c.drop()

	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.Timeout))
	var resp [1]byte
	if _, err := io.ReadFull(c.conn, resp[:]); err != nil {
		return errors.Wrap(err, "ingest: read status")
	}

	switch resp[0] {
	case respOK:
		return nil
	case respRejected:
		return ErrRejected
	default:
		return errors.Errorf("ingest: unknown status 0x%02x", resp[0])
	}
}

// Sleep releases any half-finished exchange.
func (c *Client) Sleep() error {
	c.drop()
	return nil
}

func (c *Client) Close() error {
	c.drop()
	return nil
}

func (c *Client) drop() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

//
// ---- frame builder (LOCKED) ----
//
// Layout (10 bytes header, big-endian):
// 0–1  Magic "WN"
// 2    Version (0x01)
// 3    Kind (0x01 = weather packet)
// 4–7  Link sequence
// 8–9  Payload length
// 10+  Payload
//

func buildFrameV1(seq uint32, payload []byte) []byte {
	out := make([]byte, headerSize, headerSize+len(payload))

	out[0] = magicHi
	out[1] = magicLo
	out[2] = versionV1
	out[3] = kindWeather

	out[4] = byte(seq >> 24)
	out[5] = byte(seq >> 16)
	out[6] = byte(seq >> 8)
	out[7] = byte(seq)

	n := uint16(len(payload))
	out[8] = byte(n >> 8)
	out[9] = byte(n)

	return append(out, payload...)
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
