// internal/node/builder.go
package node

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	cfg "github.com/tamzrod/weather-node/internal/config"
	"github.com/tamzrod/weather-node/internal/indicator"
	"github.com/tamzrod/weather-node/internal/indicator/gpioled"
	"github.com/tamzrod/weather-node/internal/radio"
	"github.com/tamzrod/weather-node/internal/radio/ingest"
	"github.com/tamzrod/weather-node/internal/radio/mqttlink"
	"github.com/tamzrod/weather-node/internal/radio/rylr"
	"github.com/tamzrod/weather-node/internal/radio/stub"
	"github.com/tamzrod/weather-node/internal/sensor"
	"github.com/tamzrod/weather-node/internal/sensor/bme280"
	"github.com/tamzrod/weather-node/internal/sensor/geiger"
	"github.com/tamzrod/weather-node/internal/sensor/modbusaq"
	"github.com/tamzrod/weather-node/internal/sensor/sim"
)

// Parts is every collaborator selected by config, not yet initialized.
type Parts struct {
	Atmosphere sensor.Atmosphere
	AirQuality sensor.AirQuality
	Radiation  sensor.Radiation
	Radio      radio.Radio
	LED        indicator.LED
}

// Build constructs collaborators from a validated, normalized config.
// No hardware is touched here; Init happens at boot. The returned closer
// releases whatever the adapters opened.
func Build(c *cfg.Config, log logrus.FieldLogger) (Parts, func() error, error) {
	var p Parts
	base := sim.DefaultBaseline()
	base.SeaLevelHPa = c.Atmosphere.SeaLevelHPa

	switch c.Atmosphere.Driver {
	case "bme280":
		p.Atmosphere = bme280.New(bme280.Config{
			Bus:         c.Atmosphere.Bus,
			Address:     c.Atmosphere.Address,
			SeaLevelHPa: c.Atmosphere.SeaLevelHPa,
		})
	case "sim":
		p.Atmosphere = sim.NewAtmosphere(base)
	default:
		return Parts{}, nil, errors.Errorf("node: unknown atmosphere driver %q", c.Atmosphere.Driver)
	}

	switch c.AirQuality.Driver {
	case "modbus":
		r := c.AirQuality.Registers
		p.AirQuality = modbusaq.New(modbusaq.Config{
			Endpoint: c.AirQuality.Endpoint,
			SlaveID:  c.AirQuality.Address,
			BaudRate: c.AirQuality.BaudRate,
			Timeout:  ms(c.AirQuality.TimeoutMs),
			Registers: modbusaq.Registers{
				CO2:         r.CO2,
				TVOC:        r.TVOC,
				Status:      r.Status,
				Humidity:    r.Humidity,
				Temperature: r.Temperature,
			},
		})
	case "sim":
		p.AirQuality = sim.NewAirQuality(base)
	default:
		return Parts{}, nil, errors.Errorf("node: unknown air quality driver %q", c.AirQuality.Driver)
	}

	switch c.Radiation.Driver {
	case "gpio":
		p.Radiation = geiger.New(c.Radiation.Pin)
	case "sim":
		p.Radiation = sim.NewRadiation(base)
	default:
		return Parts{}, nil, errors.Errorf("node: unknown radiation driver %q", c.Radiation.Driver)
	}

	rc := c.Radio
	switch rc.Driver {
	case "rylr":
		p.Radio = rylr.New(rylr.Config{
			Port:        rc.Port,
			BaudRate:    rc.BaudRate,
			Destination: rc.Destination,
			Timeout:     ms(rc.TimeoutMs),
		})
	case "mqtt":
		p.Radio = mqttlink.New(mqttlink.Config{
			Broker:   rc.Broker,
			ClientID: rc.ClientID,
			Topic:    rc.Topic,
			NodeID:   c.Node.ID,
			Timeout:  ms(rc.TimeoutMs),
		}, log.WithField("radio", "mqtt"))
	case "ingest":
		p.Radio = ingest.New(ingest.Config{
			Endpoint: rc.Endpoint,
			Timeout:  ms(rc.TimeoutMs),
		})
	case "stub":
		p.Radio = stub.New()
	default:
		return Parts{}, nil, errors.Errorf("node: unknown radio driver %q", rc.Driver)
	}

	switch c.Indicator.Driver {
	case "gpio":
		led, err := gpioled.Open(c.Indicator.Pin)
		if err != nil {
			// the node still runs; faults are only logged
			log.WithError(err).Warn("indicator led unavailable, logging instead")
			p.LED = indicator.NewLogLED(log)
		} else {
			p.LED = led
		}
	case "log":
		p.LED = indicator.NewLogLED(log)
	default:
		return Parts{}, nil, errors.Errorf("node: unknown indicator driver %q", c.Indicator.Driver)
	}

	return p, closer(p), nil
}

// closer releases every collaborator that holds a resource.
func closer(p Parts) func() error {
	var closers []io.Closer
	for _, v := range []interface{}{p.Atmosphere, p.AirQuality, p.Radiation, p.Radio} {
		if c, ok := v.(io.Closer); ok {
			closers = append(closers, c)
		}
	}

	return func() error {
		var last error
		for _, c := range closers {
			if err := c.Close(); err != nil {
				last = err
			}
		}
		return last
	}
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
