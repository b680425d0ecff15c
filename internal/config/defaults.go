// internal/config/defaults.go
package config

// Build-time constants. A YAML file only overrides what it names.
const (
	DefaultNodeID      uint32 = 1
	DefaultCycleDelayS        = 60

	DefaultBME280Address  uint16  = 0x77
	DefaultAirQualityAddr uint8   = 0x5A
	DefaultSeaLevelHPa    float32 = 1013.25

	DefaultFrequencyHz uint32 = 915000000
	DefaultTxPowerDBm  int8   = 15
)

// Default returns the compiled configuration.
// Hardware-free drivers are selected so the node boots on any host.
func Default() *Config {
	return &Config{
		Node: NodeConfig{
			ID:          DefaultNodeID,
			CycleDelayS: DefaultCycleDelayS,
		},
		Atmosphere: AtmosphereConfig{
			Driver:      "sim",
			Address:     DefaultBME280Address,
			SeaLevelHPa: DefaultSeaLevelHPa,
		},
		AirQuality: AirQualityConfig{
			Driver:    "sim",
			Address:   DefaultAirQualityAddr,
			BaudRate:  9600,
			TimeoutMs: 1000,
			Registers: AirQualityRegisters{
				CO2:         0,
				TVOC:        1,
				Status:      2,
				Humidity:    16,
				Temperature: 17,
			},
		},
		Radiation: RadiationConfig{
			Driver: "sim",
		},
		Radio: RadioConfig{
			Driver:      "stub",
			FrequencyHz: DefaultFrequencyHz,
			TxPowerDBm:  DefaultTxPowerDBm,
			TimeoutMs:   5000,
			BaudRate:    115200,
			Topic:       "weather/packets",
		},
		Indicator: IndicatorConfig{
			Driver: "log",
			OnMs:   200,
			OffMs:  200,
			GapMs:  1500,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
