// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// NODE
	// ------------------------------------------------------------

	if cfg.Node.ID == 0 {
		return fmt.Errorf("node.id must be non-zero")
	}
	if cfg.Node.CycleDelayS <= 0 {
		return fmt.Errorf("node.cycle_delay_s must be > 0, got %d", cfg.Node.CycleDelayS)
	}

	// ------------------------------------------------------------
	// COLLABORATORS
	// ------------------------------------------------------------

	if err := validateAtmosphere(cfg.Atmosphere); err != nil {
		return err
	}
	if err := validateAirQuality(cfg.AirQuality); err != nil {
		return err
	}
	if err := validateRadiation(cfg.Radiation); err != nil {
		return err
	}
	if err := validateRadio(cfg.Radio); err != nil {
		return err
	}
	if err := validateIndicator(cfg.Indicator); err != nil {
		return err
	}

	// ------------------------------------------------------------
	// AMBIENT
	// ------------------------------------------------------------

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %v", err)
	}
	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q (allowed: text, json)", cfg.Log.Format)
	}

	return nil
}

func validateAtmosphere(a AtmosphereConfig) error {
	switch a.Driver {
	case "sim":
	case "bme280":
		if a.Address != 0x76 && a.Address != 0x77 {
			return fmt.Errorf("atmosphere.address 0x%02X (bme280 answers on 0x76 or 0x77)", a.Address)
		}
	default:
		return fmt.Errorf("atmosphere.driver %q (allowed: bme280, sim)", a.Driver)
	}

	if a.SeaLevelHPa <= 0 {
		return fmt.Errorf("atmosphere.sea_level_hpa must be > 0")
	}
	return nil
}

func validateAirQuality(q AirQualityConfig) error {
	switch q.Driver {
	case "sim":
		return nil
	case "modbus":
	default:
		return fmt.Errorf("air_quality.driver %q (allowed: modbus, sim)", q.Driver)
	}

	if q.Endpoint == "" {
		return fmt.Errorf("air_quality.endpoint is required for the modbus driver")
	}
	if q.Address == 0 || q.Address > 247 {
		return fmt.Errorf("air_quality.address %d out of range 1-247", q.Address)
	}
	if q.TimeoutMs <= 0 {
		return fmt.Errorf("air_quality.timeout_ms must be > 0")
	}
	if !strings.Contains(q.Endpoint, ":") && q.BaudRate <= 0 {
		return fmt.Errorf("air_quality.baud_rate must be > 0 for serial endpoint %s", q.Endpoint)
	}

	// register map must not alias
	r := q.Registers
	seen := map[uint16]string{}
	for _, reg := range []struct {
		name string
		addr uint16
	}{
		{"co2", r.CO2},
		{"tvoc", r.TVOC},
		{"status", r.Status},
		{"humidity", r.Humidity},
		{"temperature", r.Temperature},
	} {
		if prev, ok := seen[reg.addr]; ok {
			return fmt.Errorf(
				"air_quality.registers: %s and %s share address %d",
				prev,
				reg.name,
				reg.addr,
			)
		}
		seen[reg.addr] = reg.name
	}

	return nil
}

func validateRadiation(r RadiationConfig) error {
	switch r.Driver {
	case "sim":
	case "gpio":
		if r.Pin == "" {
			return fmt.Errorf("radiation.pin is required for the gpio driver")
		}
	default:
		return fmt.Errorf("radiation.driver %q (allowed: gpio, sim)", r.Driver)
	}
	return nil
}

func validateRadio(r RadioConfig) error {
	if r.FrequencyHz == 0 {
		return fmt.Errorf("radio.frequency_hz is required")
	}
	if r.TimeoutMs <= 0 {
		return fmt.Errorf("radio.timeout_ms must be > 0")
	}

	switch r.Driver {
	case "stub":
	case "rylr":
		if r.Port == "" {
			return fmt.Errorf("radio.port is required for the rylr driver")
		}
		if r.BaudRate <= 0 {
			return fmt.Errorf("radio.baud_rate must be > 0")
		}
		if r.FrequencyHz < 433000000 || r.FrequencyHz > 915000000 {
			return fmt.Errorf("radio.frequency_hz %d out of band 433000000-915000000", r.FrequencyHz)
		}
		if r.TxPowerDBm < 0 || r.TxPowerDBm > 15 {
			return fmt.Errorf("radio.tx_power_dbm %d out of range 0-15", r.TxPowerDBm)
		}
	case "ingest":
		if r.Endpoint == "" {
			return fmt.Errorf("radio.endpoint is required for the ingest driver")
		}
	case "mqtt":
		if r.Broker == "" {
			return fmt.Errorf("radio.broker is required for the mqtt driver")
		}
		if r.Topic == "" {
			return fmt.Errorf("radio.topic is required for the mqtt driver")
		}
	default:
		return fmt.Errorf("radio.driver %q (allowed: rylr, mqtt, ingest, stub)", r.Driver)
	}
	return nil
}

func validateIndicator(i IndicatorConfig) error {
	switch i.Driver {
	case "log":
	case "gpio":
		if i.Pin == "" {
			return fmt.Errorf("indicator.pin is required for the gpio driver")
		}
	default:
		return fmt.Errorf("indicator.driver %q (allowed: gpio, log)", i.Driver)
	}

	if i.OnMs <= 0 || i.OffMs <= 0 {
		return fmt.Errorf("indicator.on_ms and indicator.off_ms must be > 0")
	}
	if i.GapMs < 0 {
		return fmt.Errorf("indicator.gap_ms must be >= 0")
	}
	return nil
}
