// internal/sensor/sim/sim.go
package sim

import (
	"math"
	"sync"

	"github.com/tamzrod/weather-node/internal/health"
	"github.com/tamzrod/weather-node/internal/sensor"
)

// Simulated collaborators for running the node on a host without hardware.
// Values drift slowly and deterministically with each read.

// Baseline is the steady-state environment the simulators oscillate around.
type Baseline struct {
	TempC       float32
	PressPa     float32
	Hum         float32
	CO2ppm      float32
	TVOCppb     float32
	CountsPerRd uint32
	SeaLevelHPa float32
}

// DefaultBaseline is a mild indoor environment.
func DefaultBaseline() Baseline {
	return Baseline{
		TempC:       21.5,
		PressPa:     101300,
		Hum:         45,
		CO2ppm:      410,
		TVOCppb:     120,
		CountsPerRd: 3,
		SeaLevelHPa: 1013.25,
	}
}

func wobble(step int, amplitude float64) float32 {
	return float32(amplitude * math.Sin(float64(step)/8))
}

// ---- ATMOSPHERE ----

type Atmosphere struct {
	mu   sync.Mutex
	base Baseline
	step int
	init bool
}

func NewAtmosphere(b Baseline) *Atmosphere { return &Atmosphere{base: b} }

func (a *Atmosphere) Init() error {
	a.mu.Lock()
	a.init = true
	a.mu.Unlock()
	return nil
}

func (a *Atmosphere) Read() (sensor.Atmospherics, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.init {
		return sensor.Atmospherics{}, sensor.ErrNotInitialized
	}
	a.step++
	return a.sample(), nil
}

func (a *Atmosphere) Altitude() (float32, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.init {
		return 0, sensor.ErrNotInitialized
	}
	return sensor.PressureAltitude(a.sample().PressPa, a.base.SeaLevelHPa), nil
}

func (a *Atmosphere) sample() sensor.Atmospherics {
	return sensor.Atmospherics{
		TempC:   a.base.TempC + wobble(a.step, 0.8),
		PressPa: a.base.PressPa + wobble(a.step, 120),
		Hum:     a.base.Hum + wobble(a.step, 3),
	}
}

// ---- AIR QUALITY ----

type AirQuality struct {
	mu   sync.Mutex
	base Baseline
	step int
	init bool

	// compensation last written by the node
	hum, tempC float32
}

func NewAirQuality(b Baseline) *AirQuality { return &AirQuality{base: b} }

func (q *AirQuality) Init() error {
	q.mu.Lock()
	q.init = true
	q.mu.Unlock()
	return nil
}

func (q *AirQuality) Read() (sensor.AirSample, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.init {
		return sensor.AirSample{}, sensor.ErrNotInitialized
	}
	q.step++
	return sensor.AirSample{
		CO2ppm:  q.base.CO2ppm + wobble(q.step, 25),
		TVOCppb: q.base.TVOCppb + wobble(q.step, 10),
	}, nil
}

func (q *AirQuality) SetCompensation(humidity, tempC float32) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.init {
		return sensor.ErrNotInitialized
	}
	q.hum, q.tempC = humidity, tempC
	return nil
}

// Compensation returns the last compensation values written.
func (q *AirQuality) Compensation() (humidity, tempC float32) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.hum, q.tempC
}

func (q *AirQuality) LastFault() health.Bits { return 0 }

// ---- RADIATION ----

type Radiation struct {
	mu   sync.Mutex
	base Baseline
	init bool
}

func NewRadiation(b Baseline) *Radiation { return &Radiation{base: b} }

func (r *Radiation) Init() error {
	r.mu.Lock()
	r.init = true
	r.mu.Unlock()
	return nil
}

func (r *Radiation) Read() (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.init {
		return 0, sensor.ErrNotInitialized
	}
	return r.base.CountsPerRd, nil
}
