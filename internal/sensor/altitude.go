// internal/sensor/altitude.go
package sensor

import "math"

// PressureAltitude converts station pressure into metres above the given
// sea-level reference using the international barometric formula.
func PressureAltitude(pressPa, seaLevelHPa float32) float32 {
	if pressPa <= 0 || seaLevelHPa <= 0 {
		return 0
	}
	hPa := float64(pressPa) / 100.0
	return float32(44330.0 * (1.0 - math.Pow(hPa/float64(seaLevelHPa), 0.1903)))
}
