package input

import (
	"encoding/binary"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func record(etype uint16, code uint16, value int32) []byte {
	buf := make([]byte, eventSize)
	binary.LittleEndian.PutUint16(buf[2*wordSize:], etype)
	binary.LittleEndian.PutUint16(buf[2*wordSize+2:], code)
	binary.LittleEndian.PutUint32(buf[2*wordSize+4:], uint32(value))
	return buf
}

func TestEventSizeMatchesPlatform(t *testing.T) {
	if strconv.IntSize == 64 {
		assert.Equal(t, 24, eventSize)
	} else {
		assert.Equal(t, 16, eventSize)
	}
}

func TestEventParser_DecodesRecords(t *testing.T) {
	parser := &eventParser{}

	var stream []byte
	stream = append(stream, record(evKey, btnTouch, 1)...)
	stream = append(stream, record(evKey, btnTouch, 0)...)
	stream = append(stream, record(evAbs, absPressure, 512)...)

	var types []uint16
	var codes []uint16
	var values []int32
	parser.feed(stream, func(etype uint16, code uint16, value int32) {
		types = append(types, etype)
		codes = append(codes, code)
		values = append(values, value)
	})

	assert.Equal(t, []uint16{evKey, evKey, evAbs}, types)
	assert.Equal(t, []uint16{btnTouch, btnTouch, absPressure}, codes)
	assert.Equal(t, []int32{1, 0, 512}, values)
	assert.Empty(t, parser.buf)
}

func TestEventParser_PartialRecords(t *testing.T) {
	parser := &eventParser{}
	full := append(record(evKey, btnTouch, 1), record(evKey, btnTouch, 0)...)

	var decoded int
	cb := func(uint16, uint16, int32) { decoded++ }

	// Split mid-record; the remainder is carried to the next feed.
	split := eventSize + eventSize/2
	parser.feed(full[:split], cb)
	assert.Equal(t, 1, decoded)

	parser.feed(full[split:], cb)
	assert.Equal(t, 2, decoded)
}

func TestIsTouchEvent(t *testing.T) {
	assert.True(t, isTouchEvent(evKey, btnTouch))
	assert.True(t, isTouchEvent(evKey, btnToolPen))
	assert.True(t, isTouchEvent(evAbs, absPressure))
	assert.False(t, isTouchEvent(evKey, 0x30))
	assert.False(t, isTouchEvent(0x00, 0x00))
}
