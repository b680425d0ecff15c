// internal/health/aggregator.go
package health

// Aggregator folds fault codes observed during one cycle.
// It only ever ORs; clearing happens through Reset at cycle boundaries.
type Aggregator struct {
	bits Bits
}

// Reset zeroes the bitfield. Called at the top and at the end of every cycle.
func (a *Aggregator) Reset() {
	a.bits = 0
}

// Merge ORs fault bits into the current cycle.
func (a *Aggregator) Merge(b Bits) {
	a.bits |= b
}

// Bits returns the union of every fault observed since the last Reset.
func (a *Aggregator) Bits() Bits {
	return a.bits
}
