// internal/radio/stub/stub.go
package stub

import (
	"sync"

	"github.com/tamzrod/weather-node/internal/radio"
)

// Radio is a host-side radio that keeps transmitted frames in memory.
type Radio struct {
	mu sync.Mutex

	initialized bool
	frequencyHz uint32
	txPowerDBm  int8
	asleep      bool

	pending []byte
	txLog   ringBuffer
}

func New() *Radio { return &Radio{} }

func (r *Radio) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initialized = true
	return nil
}

func (r *Radio) Configure(frequencyHz uint32, txPowerDBm int8) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized {
		return radio.ErrNotInitialized
	}
	r.frequencyHz = frequencyHz
	r.txPowerDBm = txPowerDBm
	return nil
}

func (r *Radio) Send(frame []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.initialized {
		return radio.ErrNotInitialized
	}
	r.asleep = false
	r.pending = append([]byte(nil), frame...)
	return nil
}

// WaitSent moves the pending frame into the transmit log.
func (r *Radio) WaitSent() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		return radio.ErrNothingPending
	}
	r.txLog.push(r.pending)
	r.pending = nil
	return nil
}

func (r *Radio) Sleep() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.asleep = true
	return nil
}

// Settings returns the last configured frequency and power.
func (r *Radio) Settings() (uint32, int8) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frequencyHz, r.txPowerDBm
}

func (r *Radio) Asleep() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.asleep
}

// TxLog returns copies of the most recent transmitted frames, oldest first.
func (r *Radio) TxLog() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.txLog.snapshot()
}

// ---- bounded frame log ----

const ringCapacity = 64

type ringBuffer struct {
	data       [ringCapacity][]byte
	head, tail int
	count      int
}

// push drops the oldest frame when full.
func (rb *ringBuffer) push(frame []byte) {
	if rb.count == ringCapacity {
		rb.data[rb.head] = nil
		rb.head = (rb.head + 1) % ringCapacity
		rb.count--
	}
	rb.data[rb.tail] = frame
	rb.tail = (rb.tail + 1) % ringCapacity
	rb.count++
}

func (rb *ringBuffer) snapshot() [][]byte {
	out := make([][]byte, 0, rb.count)
	for c, i := 0, rb.head; c < rb.count; c, i = c+1, (i+1)%ringCapacity {
		out = append(out, append([]byte(nil), rb.data[i]...))
	}
	return out
}
