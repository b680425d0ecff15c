// internal/cycle/runner.go
package cycle

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tamzrod/weather-node/internal/packet"
	"github.com/tamzrod/weather-node/internal/radio"
	"github.com/tamzrod/weather-node/internal/sensor"
)

// Sensors are the collaborators read every cycle.
type Sensors struct {
	Atmosphere sensor.Atmosphere
	AirQuality sensor.AirQuality
	Radiation  sensor.Radiation
}

// Runner is a dumb, clock-driven cycle: acquire, stamp, transmit, idle.
// Strictly sequential. No retries.
type Runner struct {
	st      *State
	sensors Sensors
	radio   radio.Radio
	idle    time.Duration
	log     logrus.FieldLogger

	observer Observer

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func New(st *State, sensors Sensors, r radio.Radio, idle time.Duration, log logrus.FieldLogger) *Runner {
	return &Runner{
		st:      st,
		sensors: sensors,
		radio:   r,
		idle:    idle,
		log:     log,
		sleep:   sleepCtx,
	}
}

// SetObserver installs a hook called after every cycle.
func (r *Runner) SetObserver(o Observer) { r.observer = o }

func (r *Runner) State() *State { return r.st }

// RunOnce performs exactly one cycle, minus the idle delay.
// Always completes and always emits a packet.
func (r *Runner) RunOnce(ctx context.Context) Report {
	r.st.health.Reset()

	rep := r.Acquire(ctx)
	rep.Packet = r.st.Stamp()
	r.logSummary(rep)

	rep.SendErr = r.Transmit(ctx, rep.Packet)

	r.st.health.Reset()

	if r.observer != nil {
		r.observer.ObserveCycle(rep)
	}
	return rep
}

// Acquire reads every sensor in dependency order and folds air-quality
// faults into the health bitfield. Failed reads keep the previous value.
func (r *Runner) Acquire(ctx context.Context) Report {
	var rep Report
	st := r.st

	// 1. atmosphere
	if a, err := r.sensors.Atmosphere.Read(); err != nil {
		rep.AtmosphereErr = err
		r.log.WithError(err).Warn("atmosphere read failed")
	} else {
		st.TempC, st.PressPa, st.Hum = a.TempC, a.PressPa, a.Hum
	}

	// 2. altitude
	if alt, err := r.sensors.Atmosphere.Altitude(); err != nil {
		rep.AltitudeErr = err
		r.log.WithError(err).Warn("altitude read failed")
	} else {
		st.Altitude = alt
	}
	rep.Altitude = st.Altitude

	// 3. air quality
	if q, err := r.sensors.AirQuality.Read(); err != nil {
		rep.AirQualityErr = err
		st.health.Merge(r.sensors.AirQuality.LastFault())
		r.log.WithError(err).Warn("air quality read failed")
	} else {
		st.CO2ppm, st.TVOCppb = q.CO2ppm, q.TVOCppb
	}

	// 4. compensation, with whatever humidity/temperature the node now holds
	if err := r.sensors.AirQuality.SetCompensation(st.Hum, st.TempC); err != nil {
		rep.CompensationErr = err
		st.health.Merge(r.sensors.AirQuality.LastFault())
		r.log.WithError(err).Warn("air quality compensation failed")
	}

	// 5. radiation; no fault detail
	if n, err := r.sensors.Radiation.Read(); err != nil {
		rep.RadiationErr = err
		r.log.WithError(err).Warn("radiation read failed")
	} else {
		st.Count = n
	}

	return rep
}

// Transmit hands the encoded packet to the radio, blocks until it is
// confirmed, then puts the radio to sleep. The radio is put to sleep even
// when sending failed. Returns the first failure.
func (r *Runner) Transmit(ctx context.Context, p packet.WeatherPacket) error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	if err := r.radio.Send(packet.Encode(p)); err != nil {
		keep(errors.Wrap(err, "send"))
	} else {
		keep(errors.Wrap(r.radio.WaitSent(), "wait sent"))
	}
	keep(errors.Wrap(r.radio.Sleep(), "radio sleep"))

	if first != nil {
		r.log.WithError(first).WithField("packetnum", p.PacketNum).Warn("transmission failed")
	}
	return first
}

// Run loops cycles until ctx is done. ctx is only checked between cycles
// and while idle; a started cycle always finishes.
func (r *Runner) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		r.RunOnce(ctx)

		if err := r.sleep(ctx, r.idle); err != nil {
			return
		}
	}
}

func (r *Runner) logSummary(rep Report) {
	p := rep.Packet
	r.log.WithFields(logrus.Fields{
		"node":       p.NodeID,
		"packetnum":  p.PacketNum,
		"temp_c":     p.TempC,
		"press_pa":   p.PressPa,
		"hum":        p.Hum,
		"altitude_m": rep.Altitude,
		"co2_ppm":    p.CO2ppm,
		"tvoc_ppb":   p.TVOCppb,
		"count":      p.Count,
		"deviceinfo": p.DeviceInfo.Binary(),
		"faults":     p.DeviceInfo.String(),
	}).Info("cycle")
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
