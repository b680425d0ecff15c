// internal/indicator/indicator.go
package indicator

import (
	"context"
	"sync"
	"time"
)

// Subsystem identifies which boot collaborator failed.
type Subsystem int

const (
	None Subsystem = iota
	Atmosphere
	AirQuality
	Radio
)

// Pulses is the number of LED pulses per pattern repetition.
func (s Subsystem) Pulses() int {
	switch s {
	case Atmosphere:
		return 1
	case AirQuality:
		return 2
	case Radio:
		return 3
	default:
		return 0
	}
}

func (s Subsystem) String() string {
	switch s {
	case Atmosphere:
		return "atmosphere"
	case AirQuality:
		return "air_quality"
	case Radio:
		return "radio"
	default:
		return "none"
	}
}

type State int

const (
	Idle State = iota
	Fault
)

func (s State) String() string {
	if s == Fault {
		return "fault"
	}
	return "idle"
}

// LED is a single on/off output.
type LED interface {
	Set(on bool) error
}

// Timing is one pattern: Pulses x (On, Off), then Gap.
type Timing struct {
	On  time.Duration
	Off time.Duration
	Gap time.Duration
}

// Indicator is the boot fault state machine.
// Idle -> Fault(subsystem) once; Fault is terminal.
type Indicator struct {
	mu        sync.Mutex
	state     State
	subsystem Subsystem

	led    LED
	timing Timing

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func New(led LED, timing Timing) *Indicator {
	return &Indicator{
		led:    led,
		timing: timing,
		sleep:  sleepCtx,
	}
}

// Enter moves Idle -> Fault. Returns false when already in Fault.
func (i *Indicator) Enter(s Subsystem) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state == Fault || s == None {
		return false
	}
	i.state = Fault
	i.subsystem = s
	return true
}

func (i *Indicator) State() (State, Subsystem) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state, i.subsystem
}

// Run repeats the fault pattern until ctx is done. Returns nil at once
// in Idle. The LED is left off on return.
func (i *Indicator) Run(ctx context.Context) error {
	state, s := i.State()
	if state != Fault {
		return nil
	}
	defer i.led.Set(false)

	for {
		for n := 0; n < s.Pulses(); n++ {
			if err := i.phase(ctx, true, i.timing.On); err != nil {
				return err
			}
			if err := i.phase(ctx, false, i.timing.Off); err != nil {
				return err
			}
		}
		if err := i.sleep(ctx, i.timing.Gap); err != nil {
			return err
		}
	}
}

func (i *Indicator) phase(ctx context.Context, on bool, d time.Duration) error {
	// LED errors are not actionable here; the pattern keeps its timing.
	_ = i.led.Set(on)
	return i.sleep(ctx, d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
