// internal/indicator/indicator_test.go
package indicator

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type recLED struct {
	events []bool
}

func (l *recLED) Set(on bool) error {
	l.events = append(l.events, on)
	return nil
}

// runOnePattern drives one pattern and stops at the gap.
func runOnePattern(t *testing.T, s Subsystem) (*recLED, []time.Duration) {
	t.Helper()

	led := &recLED{}
	ind := New(led, Timing{On: 10 * time.Millisecond, Off: 20 * time.Millisecond, Gap: 500 * time.Millisecond})
	if !ind.Enter(s) {
		t.Fatalf("Enter(%v) refused", s)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sleeps []time.Duration
	ind.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		if d == 500*time.Millisecond {
			cancel()
			return ctx.Err()
		}
		return nil
	}

	if err := ind.Run(ctx); err != context.Canceled {
		t.Fatalf("Run err=%v want canceled", err)
	}
	return led, sleeps
}

func TestIndicator_PulseCountPerSubsystem(t *testing.T) {
	cases := map[Subsystem]int{
		Atmosphere: 1,
		AirQuality: 2,
		Radio:      3,
	}

	for s, want := range cases {
		led, sleeps := runOnePattern(t, s)

		ons := 0
		for _, e := range led.events {
			if e {
				ons++
			}
		}
		if ons != want {
			t.Fatalf("%v: pulses=%d want %d", s, ons, want)
		}
		// N x (on, off) then gap
		if len(sleeps) != 2*want+1 {
			t.Fatalf("%v: sleeps=%v", s, sleeps)
		}
		if led.events[len(led.events)-1] {
			t.Fatalf("%v: LED left on", s)
		}
	}
}

func TestIndicator_FaultIsTerminal(t *testing.T) {
	ind := New(&recLED{}, Timing{})

	if st, _ := ind.State(); st != Idle {
		t.Fatalf("initial state=%v", st)
	}
	if !ind.Enter(AirQuality) {
		t.Fatalf("first Enter refused")
	}
	if ind.Enter(Radio) {
		t.Fatalf("second Enter accepted")
	}

	st, s := ind.State()
	if st != Fault || s != AirQuality {
		t.Fatalf("state=%v/%v want fault/air_quality", st, s)
	}
}

func TestIndicator_IdleRunReturnsImmediately(t *testing.T) {
	led := &recLED{}
	ind := New(led, Timing{On: time.Hour, Off: time.Hour, Gap: time.Hour})

	if err := ind.Run(context.Background()); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if len(led.events) != 0 {
		t.Fatalf("idle indicator touched the LED: %v", led.events)
	}
	if ind.Enter(None) {
		t.Fatalf("Enter(None) accepted")
	}
}

func TestIndicator_RealSleepHonoursContext(t *testing.T) {
	ind := New(&recLED{}, Timing{On: time.Millisecond, Off: time.Millisecond, Gap: time.Millisecond})
	ind.Enter(Radio)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := ind.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Run err=%v", err)
	}
}

func TestLogLED_LogsTransitionsOnly(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	l := NewLogLED(logger)
	_ = l.Set(true)
	_ = l.Set(true)
	_ = l.Set(false)

	if n := len(hook.AllEntries()); n != 2 {
		t.Fatalf("entries=%d want 2", n)
	}
}
