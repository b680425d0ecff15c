// internal/boot/boot_test.go
package boot

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/tamzrod/weather-node/internal/health"
	"github.com/tamzrod/weather-node/internal/indicator"
	"github.com/tamzrod/weather-node/internal/sensor"
)

type calls struct {
	seq []string
}

func (c *calls) add(s string) { c.seq = append(c.seq, s) }

type fakeAtmo struct {
	c   *calls
	err error
}

func (f *fakeAtmo) Init() error {
	f.c.add("atmosphere")
	return f.err
}

func (f *fakeAtmo) Read() (sensor.Atmospherics, error) { return sensor.Atmospherics{}, nil }
func (f *fakeAtmo) Altitude() (float32, error)         { return 0, nil }

type fakeAir struct {
	c   *calls
	err error
}

func (f *fakeAir) Init() error {
	f.c.add("air_quality")
	return f.err
}

func (f *fakeAir) Read() (sensor.AirSample, error)        { return sensor.AirSample{}, nil }
func (f *fakeAir) SetCompensation(float32, float32) error { return nil }
func (f *fakeAir) LastFault() health.Bits                 { return 0 }

type fakeRad struct {
	c   *calls
	err error
}

func (f *fakeRad) Init() error {
	f.c.add("radiation")
	return f.err
}

func (f *fakeRad) Read() (uint32, error) { return 0, nil }

type fakeRadio struct {
	c            *calls
	initErr      error
	configureErr error
	freq         uint32
	power        int8
}

func (f *fakeRadio) Init() error {
	f.c.add("radio")
	return f.initErr
}

func (f *fakeRadio) Configure(freq uint32, p int8) error {
	f.c.add("radio_config")
	f.freq, f.power = freq, p
	return f.configureErr
}

func (f *fakeRadio) Send([]byte) error { return nil }
func (f *fakeRadio) WaitSent() error   { return nil }
func (f *fakeRadio) Sleep() error      { return nil }

type rig struct {
	c     *calls
	atmo  *fakeAtmo
	air   *fakeAir
	rad   *fakeRad
	radio *fakeRadio
}

func newRig() *rig {
	c := &calls{}
	return &rig{
		c:     c,
		atmo:  &fakeAtmo{c: c},
		air:   &fakeAir{c: c},
		rad:   &fakeRad{c: c},
		radio: &fakeRadio{c: c},
	}
}

func (r *rig) sequencer() *Sequencer {
	logger, _ := test.NewNullLogger()
	return New(Collaborators{
		Atmosphere: r.atmo,
		AirQuality: r.air,
		Radiation:  r.rad,
		Radio:      r.radio,
	}, RadioSettings{FrequencyHz: 915000000, TxPowerDBm: 15}, logger)
}

func TestBoot_OrderAndConfigure(t *testing.T) {
	r := newRig()
	s := r.sequencer()

	if err := s.Boot(context.Background()); err != nil {
		t.Fatalf("Boot: %v", err)
	}

	got := strings.Join(r.c.seq, ",")
	if got != "atmosphere,air_quality,radiation,radio,radio_config" {
		t.Fatalf("order=%s", got)
	}
	if r.radio.freq != 915000000 || r.radio.power != 15 {
		t.Fatalf("configure=%d/%d", r.radio.freq, r.radio.power)
	}
	if !s.RadiationAvailable() {
		t.Fatalf("radiation should be available")
	}
}

func TestBoot_FatalFailuresStopSequence(t *testing.T) {
	cases := []struct {
		name    string
		arrange func(*rig)
		want    indicator.Subsystem
		seq     string
	}{
		{
			name:    "atmosphere",
			arrange: func(r *rig) { r.atmo.err = errors.New("absent") },
			want:    indicator.Atmosphere,
			seq:     "atmosphere",
		},
		{
			name:    "air quality",
			arrange: func(r *rig) { r.air.err = errors.New("absent") },
			want:    indicator.AirQuality,
			seq:     "atmosphere,air_quality",
		},
		{
			name:    "radio init",
			arrange: func(r *rig) { r.radio.initErr = errors.New("absent") },
			want:    indicator.Radio,
			seq:     "atmosphere,air_quality,radiation,radio",
		},
		{
			name:    "radio configure",
			arrange: func(r *rig) { r.radio.configureErr = errors.New("bad band") },
			want:    indicator.Radio,
			seq:     "atmosphere,air_quality,radiation,radio,radio_config",
		},
	}

	for _, tc := range cases {
		r := newRig()
		tc.arrange(r)

		err := r.sequencer().Boot(context.Background())

		var fe *FatalError
		if !errors.As(err, &fe) {
			t.Fatalf("%s: err=%v want FatalError", tc.name, err)
		}
		if fe.Subsystem != tc.want {
			t.Fatalf("%s: subsystem=%v want %v", tc.name, fe.Subsystem, tc.want)
		}
		if got := strings.Join(r.c.seq, ","); got != tc.seq {
			t.Fatalf("%s: calls=%s want %s", tc.name, got, tc.seq)
		}
	}
}

func TestBoot_RadiationFailureIsAdvisory(t *testing.T) {
	r := newRig()
	r.rad.err = errors.New("no tube")
	s := r.sequencer()

	if err := s.Boot(context.Background()); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if s.RadiationAvailable() {
		t.Fatalf("radiation reported available")
	}
	if len(r.c.seq) != 5 {
		t.Fatalf("calls=%v", r.c.seq)
	}
}

func TestBoot_OnlyOnce(t *testing.T) {
	r := newRig()
	s := r.sequencer()

	_ = s.Boot(context.Background())
	if err := s.Boot(context.Background()); err != ErrAlreadyBooted {
		t.Fatalf("second Boot err=%v", err)
	}
	if len(r.c.seq) != 5 {
		t.Fatalf("collaborators re-initialized: %v", r.c.seq)
	}
}

func TestBoot_CanceledContext(t *testing.T) {
	r := newRig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.sequencer().Boot(ctx); err != context.Canceled {
		t.Fatalf("err=%v want canceled", err)
	}
	if len(r.c.seq) != 0 {
		t.Fatalf("calls=%v", r.c.seq)
	}
}
