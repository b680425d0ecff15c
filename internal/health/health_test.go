// internal/health/health_test.go
package health

import "testing"

func TestAggregator_AccumulatesAcrossMerges(t *testing.T) {
	var a Aggregator

	a.Merge(MeasModeInvalid)
	a.Merge(HeaterFault)
	a.Merge(MeasModeInvalid)

	want := MeasModeInvalid | HeaterFault
	if a.Bits() != want {
		t.Fatalf("bits=%v want=%v", a.Bits(), want)
	}
}

func TestAggregator_ResetClears(t *testing.T) {
	var a Aggregator
	a.Merge(HeaterSupply | WriteRegInvalid)

	a.Reset()

	if a.Bits() != 0 {
		t.Fatalf("expected zero after reset, got %v", a.Bits())
	}
}

func TestAggregator_MergeZeroIsNoop(t *testing.T) {
	var a Aggregator
	a.Merge(ReadRegInvalid)
	a.Merge(0)

	if a.Bits() != ReadRegInvalid {
		t.Fatalf("bits=%v want=%v", a.Bits(), ReadRegInvalid)
	}
}

func TestBits_LayoutLocked(t *testing.T) {
	cases := []struct {
		bit  Bits
		want uint32
	}{
		{WriteRegInvalid, 0x001},
		{ReadRegInvalid, 0x002},
		{MeasModeInvalid, 0x004},
		{MaxResistance, 0x008},
		{HeaterFault, 0x010},
		{HeaterSupply, 0x020},
		{RadioFault, 0x040},
		{BatteryLow, 0x080},
		{SolarFault, 0x100},
		{ChargeFault, 0x200},
	}

	for _, c := range cases {
		if uint32(c.bit) != c.want {
			t.Fatalf("bit %s = %#x, want %#x", c.bit, uint32(c.bit), c.want)
		}
	}
}

func TestBits_BinaryAndString(t *testing.T) {
	b := MeasModeInvalid | HeaterFault

	if got := b.Binary(); got != "10100" {
		t.Fatalf("binary=%q", got)
	}
	if got := b.String(); got != "measmode_invalid|heater_fault" {
		t.Fatalf("string=%q", got)
	}
	if got := Bits(0).String(); got != "ok" {
		t.Fatalf("zero string=%q", got)
	}
	if got := Bits(1 << 31).String(); got != "bit31" {
		t.Fatalf("unknown bit string=%q", got)
	}
}

func TestBits_Has(t *testing.T) {
	b := MaxResistance | HeaterSupply
	if !b.Has(MaxResistance) {
		t.Fatalf("expected MaxResistance set")
	}
	if b.Has(MaxResistance | HeaterFault) {
		t.Fatalf("Has must require every bit")
	}
}
