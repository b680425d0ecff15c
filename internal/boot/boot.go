// internal/boot/boot.go
package boot

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tamzrod/weather-node/internal/indicator"
	"github.com/tamzrod/weather-node/internal/radio"
	"github.com/tamzrod/weather-node/internal/sensor"
)

// ErrAlreadyBooted: each collaborator is initialized once per process.
var ErrAlreadyBooted = errors.New("boot: already booted")

// FatalError stops the node before the first cycle.
type FatalError struct {
	Subsystem indicator.Subsystem
	Err       error
}

func (e *FatalError) Error() string {
	return "boot: " + e.Subsystem.String() + " init failed: " + e.Err.Error()
}

func (e *FatalError) Unwrap() error { return e.Err }
func (e *FatalError) Cause() error  { return e.Err }

// Collaborators is everything the node initializes at boot.
type Collaborators struct {
	Atmosphere sensor.Atmosphere
	AirQuality sensor.AirQuality
	Radiation  sensor.Radiation
	Radio      radio.Radio
}

// RadioSettings are passed to the radio once it is up.
type RadioSettings struct {
	FrequencyHz uint32
	TxPowerDBm  int8
}

// Sequencer initializes collaborators in a fixed order.
type Sequencer struct {
	c     Collaborators
	radio RadioSettings
	log   logrus.FieldLogger

	booted      bool
	radiationOK bool
}

func New(c Collaborators, rs RadioSettings, log logrus.FieldLogger) *Sequencer {
	return &Sequencer{c: c, radio: rs, log: log}
}

// Boot runs atmosphere, air-quality, radiation, radio init, then radio
// configuration. The first fatal failure stops the sequence.
// Radiation failure is advisory.
func (s *Sequencer) Boot(ctx context.Context) error {
	if s.booted {
		return ErrAlreadyBooted
	}
	s.booted = true

	steps := []struct {
		name      string
		subsystem indicator.Subsystem
		run       func() error
	}{
		{"atmosphere", indicator.Atmosphere, s.c.Atmosphere.Init},
		{"air_quality", indicator.AirQuality, s.c.AirQuality.Init},
		{"radiation", indicator.None, s.c.Radiation.Init},
		{"radio", indicator.Radio, s.c.Radio.Init},
		{"radio_config", indicator.Radio, func() error {
			return s.c.Radio.Configure(s.radio.FrequencyHz, s.radio.TxPowerDBm)
		}},
	}

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		log := s.log.WithField("step", st.name)
		err := st.run()

		switch {
		case err == nil:
			if st.name == "radiation" {
				s.radiationOK = true
			}
			log.Info("boot step ok")

		case st.subsystem == indicator.None:
			log.WithError(err).Warn("boot step failed, continuing")

		default:
			log.WithError(err).Error("boot step failed")
			return &FatalError{Subsystem: st.subsystem, Err: err}
		}
	}

	s.log.WithFields(logrus.Fields{
		"frequency_hz": s.radio.FrequencyHz,
		"tx_power_dbm": s.radio.TxPowerDBm,
		"radiation":    s.radiationOK,
	}).Info("boot complete")
	return nil
}

// RadiationAvailable reports whether the radiation counter came up.
func (s *Sequencer) RadiationAvailable() bool {
	return s.radiationOK
}
