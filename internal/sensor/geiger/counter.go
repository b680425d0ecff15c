// internal/sensor/geiger/counter.go
package geiger

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/tamzrod/weather-node/internal/sensor"
)

// edgeSource is the part of gpio.PinIn the counter loop needs.
type edgeSource interface {
	WaitForEdge(timeout time.Duration) bool
}

// pollInterval bounds how long Close waits for the edge loop.
const pollInterval = 200 * time.Millisecond

// Counter implements sensor.Radiation by counting rising edges
// from a Geiger tube pulse output.
type Counter struct {
	pinName string

	open func(name string) (edgeSource, error)

	pulses  uint32
	running int32

	stop chan struct{}
	wg   sync.WaitGroup
}

func New(pin string) *Counter {
	return &Counter{pinName: pin, open: openPin}
}

func openPin(name string) (edgeSource, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "geiger: host init")
	}

	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Errorf("geiger: no such pin %q", name)
	}
	if err := p.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return nil, errors.Wrapf(err, "geiger: configure %s", name)
	}
	return p, nil
}

// Init starts edge counting in the background.
func (c *Counter) Init() error {
	if atomic.LoadInt32(&c.running) == 1 {
		return nil
	}

	src, err := c.open(c.pinName)
	if err != nil {
		return err
	}

	c.stop = make(chan struct{})
	atomic.StoreUint32(&c.pulses, 0)
	atomic.StoreInt32(&c.running, 1)

	c.wg.Add(1)
	go c.count(src)
	return nil
}

// Read returns pulses since the previous Read and restarts the window.
func (c *Counter) Read() (uint32, error) {
	if atomic.LoadInt32(&c.running) == 0 {
		return 0, sensor.ErrNotInitialized
	}
	return atomic.SwapUint32(&c.pulses, 0), nil
}

func (c *Counter) Close() error {
	if !atomic.CompareAndSwapInt32(&c.running, 1, 0) {
		return nil
	}
	close(c.stop)
	c.wg.Wait()
	return nil
}

func (c *Counter) count(src edgeSource) {
	defer c.wg.Done()

	for {
		select {
		case <-c.stop:
			return
		default:
		}

		if src.WaitForEdge(pollInterval) {
			atomic.AddUint32(&c.pulses, 1)
		}
	}
}
