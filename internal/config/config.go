// internal/config/config.go
package config

type Config struct {
	Node       NodeConfig       `yaml:"node"`
	Atmosphere AtmosphereConfig `yaml:"atmosphere"`
	AirQuality AirQualityConfig `yaml:"air_quality"`
	Radiation  RadiationConfig  `yaml:"radiation"`
	Radio      RadioConfig      `yaml:"radio"`
	Indicator  IndicatorConfig  `yaml:"indicator"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ---- NODE ----

type NodeConfig struct {
	// ID must be unique per deployed node. Fixed for the process lifetime.
	ID uint32 `yaml:"id"`

	// CycleDelayS is the idle time between cycles (duty-cycle control).
	CycleDelayS int `yaml:"cycle_delay_s"`
}

// ---- SENSORS ----

type AtmosphereConfig struct {
	Driver  string `yaml:"driver"` // bme280 | sim
	Bus     string `yaml:"bus"`    // i2c bus name; "" = first available
	Address uint16 `yaml:"address"`

	// SeaLevelHPa is the reference pressure used to derive altitude.
	SeaLevelHPa float32 `yaml:"sea_level_hpa"`
}

type AirQualityConfig struct {
	Driver    string `yaml:"driver"`   // modbus | sim
	Endpoint  string `yaml:"endpoint"` // tcp "host:port" or serial device path
	Address   uint8  `yaml:"address"`  // device address (modbus slave id)
	BaudRate  int    `yaml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms"`

	Registers AirQualityRegisters `yaml:"registers"`
}

// AirQualityRegisters is the register map of the air-quality transmitter.
type AirQualityRegisters struct {
	CO2         uint16 `yaml:"co2"`
	TVOC        uint16 `yaml:"tvoc"`
	Status      uint16 `yaml:"status"`
	Humidity    uint16 `yaml:"humidity"`
	Temperature uint16 `yaml:"temperature"`
}

type RadiationConfig struct {
	Driver string `yaml:"driver"` // gpio | sim
	Pin    string `yaml:"pin"`
}

// ---- RADIO ----

type RadioConfig struct {
	Driver      string `yaml:"driver"` // rylr | mqtt | ingest | stub
	FrequencyHz uint32 `yaml:"frequency_hz"`
	TxPowerDBm  int8   `yaml:"tx_power_dbm"`
	TimeoutMs   int    `yaml:"timeout_ms"`

	// rylr
	Port        string `yaml:"port"`
	BaudRate    int    `yaml:"baud_rate"`
	Destination uint16 `yaml:"destination"`

	// ingest
	Endpoint string `yaml:"endpoint"`

	// mqtt
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
}

// ---- INDICATOR ----

type IndicatorConfig struct {
	Driver string `yaml:"driver"` // gpio | log
	Pin    string `yaml:"pin"`
	OnMs   int    `yaml:"on_ms"`
	OffMs  int    `yaml:"off_ms"`
	GapMs  int    `yaml:"gap_ms"`
}

// ---- AMBIENT ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

type MetricsConfig struct {
	// Listen enables the /metrics endpoint when non-empty.
	Listen string `yaml:"listen"`
}
