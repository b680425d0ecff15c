// internal/cycle/state.go
package cycle

import (
	"github.com/tamzrod/weather-node/internal/health"
	"github.com/tamzrod/weather-node/internal/packet"
)

// State is the node's mutable cycle state. It is owned by one Runner and
// lives for the process; nothing is persisted across restarts.
type State struct {
	nodeID uint32

	// last successful readings; stale on failure
	TempC    float32
	PressPa  float32
	Hum      float32
	CO2ppm   float32
	TVOCppb  float32
	Count    uint32
	Altitude float32

	counter uint32
	health  health.Aggregator
}

func NewState(nodeID uint32) *State {
	return &State{nodeID: nodeID}
}

func (s *State) NodeID() uint32 { return s.nodeID }

// Next is the packet number the next Stamp will use.
func (s *State) Next() uint32 { return s.counter }

// Health is the bitfield accumulated so far this cycle.
func (s *State) Health() health.Bits { return s.health.Bits() }

// Stamp snapshots the state into a packet. The counter's current value
// becomes packetnum, then the counter advances (wrapping at 2^32).
func (s *State) Stamp() packet.WeatherPacket {
	p := packet.WeatherPacket{
		NodeID:     s.nodeID,
		TempC:      s.TempC,
		PressPa:    s.PressPa,
		Hum:        s.Hum,
		CO2ppm:     s.CO2ppm,
		TVOCppb:    s.TVOCppb,
		Count:      s.Count,
		PacketNum:  s.counter,
		DeviceInfo: s.health.Bits(),
	}
	s.counter++
	return p
}
