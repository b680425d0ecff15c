// internal/radio/ingest/client_test.go
package ingest

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"

	"github.com/tamzrod/weather-node/internal/radio"
)

var _ radio.Radio = (*Client)(nil)

// serveOnce accepts one connection, captures the frame and replies status.
func serveOnce(t *testing.T, status byte, payloadLen int) (string, <-chan []byte) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	got := make(chan []byte, 1)

	go func() {
		defer ln.Close()
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, headerSize+payloadLen)
		if _, err := io.ReadFull(conn, buf); err != nil {
			return
		}
		got <- buf
		_, _ = conn.Write([]byte{status})
	}()

	return ln.Addr().String(), got
}

func TestClient_FrameAndAck(t *testing.T) {
	addr, got := serveOnce(t, respOK, 3)

	c := New(Config{Endpoint: addr, Timeout: time.Second})
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Send([]byte{0xAA, 0xBB, 0xCC}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := c.WaitSent(); err != nil {
		t.Fatalf("WaitSent: %v", err)
	}

	want := []byte{'W', 'N', 0x01, 0x01, 0, 0, 0, 1, 0, 3, 0xAA, 0xBB, 0xCC}
	select {
	case frame := <-got:
		if !bytes.Equal(frame, want) {
			t.Fatalf("frame=% x want % x", frame, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("server saw nothing")
	}
}

func TestClient_Rejected(t *testing.T) {
	addr, _ := serveOnce(t, respRejected, 1)

	c := New(Config{Endpoint: addr, Timeout: time.Second})
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Send([]byte{1}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := c.WaitSent(); err != ErrRejected {
		t.Fatalf("WaitSent err=%v want ErrRejected", err)
	}
}

func TestClient_Errors(t *testing.T) {
	c := New(Config{})
	if err := c.Init(); err == nil {
		t.Fatalf("expected endpoint error")
	}
	if err := c.Send([]byte{1}); err != radio.ErrNotInitialized {
		t.Fatalf("Send err=%v", err)
	}
	if err := c.WaitSent(); err != radio.ErrNothingPending {
		t.Fatalf("WaitSent err=%v", err)
	}
}
