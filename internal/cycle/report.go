// internal/cycle/report.go
package cycle

import "github.com/tamzrod/weather-node/internal/packet"

// Report is the outcome of one cycle. Errors are informational; the
// cycle has already completed when a Report exists.
type Report struct {
	Packet   packet.WeatherPacket
	Altitude float32

	AtmosphereErr   error
	AltitudeErr     error
	AirQualityErr   error
	CompensationErr error
	RadiationErr    error
	SendErr         error
}

// Failed lists the stages that failed, in cycle order.
func (r Report) Failed() []string {
	var out []string
	for _, f := range []struct {
		name string
		err  error
	}{
		{"atmosphere", r.AtmosphereErr},
		{"altitude", r.AltitudeErr},
		{"air_quality", r.AirQualityErr},
		{"compensation", r.CompensationErr},
		{"radiation", r.RadiationErr},
		{"send", r.SendErr},
	} {
		if f.err != nil {
			out = append(out, f.name)
		}
	}
	return out
}

// Observer receives every completed cycle.
type Observer interface {
	ObserveCycle(r Report)
}
