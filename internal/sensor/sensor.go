// internal/sensor/sensor.go
package sensor

import (
	"github.com/pkg/errors"

	"github.com/tamzrod/weather-node/internal/health"
)

// Collaborator contracts. The cycle depends on these only;
// wire protocols stay inside the adapters.

// ErrNotInitialized is returned by adapters used before Init succeeded.
var ErrNotInitialized = errors.New("sensor: not initialized")

// Atmospherics is one atmospheric reading.
type Atmospherics struct {
	TempC   float32 // degrees Celsius
	PressPa float32 // pascals
	Hum     float32 // % relative humidity
}

// AirSample is one air-quality reading.
type AirSample struct {
	CO2ppm  float32
	TVOCppb float32
}

// Atmosphere is the temperature/pressure/humidity sensor.
type Atmosphere interface {
	// Init fails when the hardware is not present.
	Init() error
	Read() (Atmospherics, error)
	// Altitude is derived by the sensor driver, independently of Read.
	Altitude() (float32, error)
}

// AirQuality is the eCO2/tVOC sensor with its own fault register.
type AirQuality interface {
	Init() error
	Read() (AirSample, error)
	// SetCompensation feeds ambient conditions back into the sensor.
	SetCompensation(humidity, tempC float32) error
	// LastFault returns the sensor's current fault code.
	LastFault() health.Bits
}

// Radiation is the pulse counter. Failures carry no fault detail.
type Radiation interface {
	Init() error
	// Read returns the pulses counted since the previous Read.
	Read() (uint32, error)
}
