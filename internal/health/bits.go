// internal/health/bits.go
package health

// Device health bitfield layout.
// These values are shared with the base station and MUST NOT be configurable.

// Bits is the per-cycle health bitfield carried in deviceinfo.
type Bits uint32

// ---- AIR-QUALITY SENSOR FAULTS ----

// WriteRegInvalid: the sensor rejected a command (invalid register write).
const WriteRegInvalid Bits = 1 << 0

// ReadRegInvalid: the sensor rejected a register read.
const ReadRegInvalid Bits = 1 << 1

// MeasModeInvalid: the requested measurement is not valid.
const MeasModeInvalid Bits = 1 << 2

// MaxResistance: heater resistance out of range.
const MaxResistance Bits = 1 << 3

// HeaterFault: heater current out of range.
const HeaterFault Bits = 1 << 4

// HeaterSupply: heater supply voltage not applied correctly.
const HeaterSupply Bits = 1 << 5

// ---- RESERVED (never set by this firmware) ----

const RadioFault Bits = 1 << 6
const BatteryLow Bits = 1 << 7
const SolarFault Bits = 1 << 8
const ChargeFault Bits = 1 << 9

// AirQualityMask covers every bit an air-quality sensor may report.
const AirQualityMask = WriteRegInvalid | ReadRegInvalid | MeasModeInvalid |
	MaxResistance | HeaterFault | HeaterSupply

// Has reports whether every bit in flag is set.
func (b Bits) Has(flag Bits) bool {
	return b&flag == flag
}
