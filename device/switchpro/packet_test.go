package switchpro

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestU24RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		var b [3]byte
		rng.Read(b[:])

		axis0, axis1 := SplitU24(b)
		assert.LessOrEqual(t, axis0, uint16(0xFFF))
		assert.LessOrEqual(t, axis1, uint16(0xFFF))

		packed := PackU24(axis0, axis1)
		assert.Equal(t, b, packed, "pack(split(v)) must equal v")
	}
}

func TestIterateVisitsEveryFrameInOrder(t *testing.T) {
	buf := make([]byte, PacketSize*3)
	for i := 0; i < 3; i++ {
		buf[i*PacketSize] = byte(TypeFullStates)
		buf[i*PacketSize+1] = byte(i) // timestamp distinguishes each frame
	}

	var seen []uint8
	stopped := Iterate(buf, func(p Packet) bool {
		seen = append(seen, p.CommonStates().Timestamp)
		return true
	})

	assert.False(t, stopped)
	assert.Equal(t, []uint8{0, 1, 2}, seen)
}

func TestIterateStopsEarly(t *testing.T) {
	buf := make([]byte, PacketSize*3)
	for i := 0; i < 3; i++ {
		buf[i*PacketSize] = byte(TypeFullStates)
	}

	count := 0
	stopped := Iterate(buf, func(p Packet) bool {
		count++
		return count < 2
	})

	assert.True(t, stopped)
	assert.Equal(t, 2, count)
}

func TestIterateIgnoresTrailingPartialFrame(t *testing.T) {
	buf := make([]byte, PacketSize+10)
	buf[0] = byte(TypeFullStates)

	count := 0
	Iterate(buf, func(p Packet) bool { count++; return true })
	assert.Equal(t, 1, count)
}

func TestIterateSkipsUnrecognizedType(t *testing.T) {
	buf := make([]byte, PacketSize*2)
	buf[0] = 0xFF // not a recognized type
	buf[PacketSize] = byte(TypeFullStates)

	count := 0
	Iterate(buf, func(p Packet) bool { count++; return true })
	assert.Equal(t, 1, count)
}

func TestLastFullStatesPicksLastMatch(t *testing.T) {
	buf := make([]byte, PacketSize*3)
	buf[0*PacketSize] = byte(TypeFullStates)
	buf[0*PacketSize+1] = 0xA

	buf[1*PacketSize] = byte(TypeCommandReply)

	buf[2*PacketSize] = byte(TypeFullStates)
	buf[2*PacketSize+1] = 0xB

	pkt, found := LastFullStates(buf)
	require.True(t, found)
	assert.Equal(t, uint8(0xB), pkt.CommonStates().Timestamp)
}

func TestCommonStatesDecodesTimestampBatteryAndKeys(t *testing.T) {
	raw := EncodeCommand(0) // start from zeroed frame, type overwritten below
	raw[0] = byte(TypeFullStates)
	raw[bodyOffset] = 0x42   // timestamp
	raw[bodyOffset+1] = 0x80 // batteryAndWired

	// keys: bit 3 (A) set
	raw[bodyOffset+2] = 0x08
	raw[bodyOffset+3] = 0x00
	raw[bodyOffset+4] = 0x00

	pkt, ok := Decode(raw)
	require.True(t, ok)

	cs := pkt.CommonStates()
	assert.Equal(t, uint8(0x42), cs.Timestamp)
	assert.Equal(t, uint8(0x80), cs.BatteryAndWired)
	assert.True(t, cs.HasButton(ButtonA))
	assert.False(t, cs.HasButton(ButtonB))
}

func TestEncodeSubcommandFields(t *testing.T) {
	raw := EncodeSubcommand(SubcommandSetPlayerLights, 1, 1)
	pkt, ok := Decode(raw)
	require.True(t, ok)
	assert.Equal(t, TypeRumbleAndSubcommand, pkt.Type)
	assert.Equal(t, uint8(1), pkt.Raw[bodyOffset]) // serialId
}
