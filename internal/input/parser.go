package input

import (
	"encoding/binary"
	"strconv"
)

// Event types and codes from linux/input-event-codes.h, limited to what the
// coordinator cares about.
const (
	evKey = 0x01
	evAbs = 0x03

	btnTouch    = 0x14A
	btnToolPen  = 0x140
	absPressure = 0x18
)

// struct input_event opens with a struct timeval (two C longs), so the
// record size is fixed by the platform word size: 24 bytes on 64-bit
// systems, 16 on 32-bit ones.
const (
	wordSize  = strconv.IntSize / 8
	eventSize = 2*wordSize + 8
)

func isTouchEvent(etype uint16, code uint16) bool {
	switch etype {
	case evKey:
		return code == btnTouch || code == btnToolPen
	case evAbs:
		return true
	default:
		return false
	}
}

// eventParser parses struct input_event records from a byte stream,
// carrying partial records across feeds.
type eventParser struct {
	buf []byte
}

func (p *eventParser) feed(chunk []byte, cb func(etype uint16, code uint16, value int32)) {
	p.buf = append(p.buf, chunk...)

	for len(p.buf) >= eventSize {
		record := p.buf[:eventSize]
		p.buf = p.buf[eventSize:]

		etype := binary.LittleEndian.Uint16(record[2*wordSize:])
		code := binary.LittleEndian.Uint16(record[2*wordSize+2:])
		value := int32(binary.LittleEndian.Uint32(record[2*wordSize+4:]))
		cb(etype, code, value)
	}
}
