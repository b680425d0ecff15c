// internal/packet/packet.go
package packet

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/tamzrod/weather-node/internal/health"
)

// Version identifies the wire layout below. Bump it on ANY layout change;
// receivers must not assume compatibility between versions.
//
// v1: count was uint16 and deviceinfo was absent.
// v2: count is uint32, deviceinfo appended.
const Version = 2

// ---- LAYOUT (LOCKED) ----
//
// Little-endian, no padding, 36 bytes:
//
// 0–3    nodeID      uint32
// 4–7    tempC       float32
// 8–11   pressPa     float32
// 12–15  hum         float32
// 16–19  CO2ppm      float32
// 20–23  tVOCppb     float32
// 24–27  count       uint32
// 28–31  packetnum   uint32
// 32–35  deviceinfo  uint32
const (
	offNodeID     = 0
	offTempC      = 4
	offPressPa    = 8
	offHum        = 12
	offCO2        = 16
	offTVOC       = 20
	offCount      = 24
	offPacketNum  = 28
	offDeviceInfo = 32

	// Size is the exact encoded length of a WeatherPacket.
	Size = 36
)

// ErrShortPacket is returned when decoding fewer than Size bytes.
var ErrShortPacket = errors.New("packet: short buffer")

// WeatherPacket is one cycle's record as seen by the base station.
type WeatherPacket struct {
	NodeID     uint32
	TempC      float32
	PressPa    float32
	Hum        float32
	CO2ppm     float32
	TVOCppb    float32
	Count      uint32
	PacketNum  uint32
	DeviceInfo health.Bits
}

// Encode serializes p into its fixed wire layout.
// No IO. No side effects.
func Encode(p WeatherPacket) []byte {
	b := make([]byte, Size)
	put(b, p)
	return b
}

// Decode parses exactly one packet from the head of b.
// Trailing bytes are ignored.
func Decode(b []byte) (WeatherPacket, error) {
	if len(b) < Size {
		return WeatherPacket{}, errors.Wrapf(ErrShortPacket, "got %d bytes, want %d", len(b), Size)
	}

	le := binary.LittleEndian
	return WeatherPacket{
		NodeID:     le.Uint32(b[offNodeID:]),
		TempC:      math.Float32frombits(le.Uint32(b[offTempC:])),
		PressPa:    math.Float32frombits(le.Uint32(b[offPressPa:])),
		Hum:        math.Float32frombits(le.Uint32(b[offHum:])),
		CO2ppm:     math.Float32frombits(le.Uint32(b[offCO2:])),
		TVOCppb:    math.Float32frombits(le.Uint32(b[offTVOC:])),
		Count:      le.Uint32(b[offCount:]),
		PacketNum:  le.Uint32(b[offPacketNum:]),
		DeviceInfo: health.Bits(le.Uint32(b[offDeviceInfo:])),
	}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p WeatherPacket) MarshalBinary() ([]byte, error) {
	return Encode(p), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *WeatherPacket) UnmarshalBinary(b []byte) error {
	v, err := Decode(b)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func put(b []byte, p WeatherPacket) {
	le := binary.LittleEndian
	le.PutUint32(b[offNodeID:], p.NodeID)
	le.PutUint32(b[offTempC:], math.Float32bits(p.TempC))
	le.PutUint32(b[offPressPa:], math.Float32bits(p.PressPa))
	le.PutUint32(b[offHum:], math.Float32bits(p.Hum))
	le.PutUint32(b[offCO2:], math.Float32bits(p.CO2ppm))
	le.PutUint32(b[offTVOC:], math.Float32bits(p.TVOCppb))
	le.PutUint32(b[offCount:], p.Count)
	le.PutUint32(b[offPacketNum:], p.PacketNum)
	le.PutUint32(b[offDeviceInfo:], uint32(p.DeviceInfo))
}
