// internal/health/format.go
package health

import (
	"strconv"
	"strings"
)

var names = []struct {
	bit  Bits
	name string
}{
	{WriteRegInvalid, "write_reg_invalid"},
	{ReadRegInvalid, "read_reg_invalid"},
	{MeasModeInvalid, "measmode_invalid"},
	{MaxResistance, "max_resistance"},
	{HeaterFault, "heater_fault"},
	{HeaterSupply, "heater_supply"},
	{RadioFault, "radio_fault"},
	{BatteryLow, "battery_low"},
	{SolarFault, "solar_fault"},
	{ChargeFault, "charge_fault"},
}

// Binary renders the bitfield in base 2, as printed on the diagnostic line.
func (b Bits) Binary() string {
	return strconv.FormatUint(uint64(b), 2)
}

// Flags returns the names of the set bits in bit order.
// Unknown bits are reported as bitN.
func (b Bits) Flags() []string {
	var out []string
	known := Bits(0)
	for _, n := range names {
		known |= n.bit
		if b&n.bit != 0 {
			out = append(out, n.name)
		}
	}
	for i := 0; i < 32; i++ {
		bit := Bits(1) << uint(i)
		if bit&known == 0 && b&bit != 0 {
			out = append(out, "bit"+strconv.Itoa(i))
		}
	}
	return out
}

func (b Bits) String() string {
	if b == 0 {
		return "ok"
	}
	return strings.Join(b.Flags(), "|")
}
