// internal/radio/radio.go
package radio

import "github.com/pkg/errors"

// Radio is the one-way uplink. Send hands a frame over; WaitSent blocks
// until the link confirms it left; Sleep drops the link to low power.
type Radio interface {
	Init() error
	Configure(frequencyHz uint32, txPowerDBm int8) error
	Send(frame []byte) error
	WaitSent() error
	Sleep() error
}

var (
	ErrNotInitialized = errors.New("radio: not initialized")
	ErrNothingPending = errors.New("radio: no frame pending")
	ErrFrameTooLarge  = errors.New("radio: frame too large")
)
