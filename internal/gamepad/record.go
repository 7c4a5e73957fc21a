package gamepad

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// RecordSize is the size of one joystick device record.
const RecordSize = 8

// Record type bits.
const (
	EventButton uint8 = 0x01
	EventAxis   uint8 = 0x02
	EventInit   uint8 = 0x80
)

var ErrShortRecord = errors.New("gamepad: short record")

// Record is one little-endian joystick device record:
// u32 time_ms, i16 value, u8 type, u8 number.
type Record struct {
	TimeMS uint32
	Value  int16
	Type   uint8
	Number uint8
}

// DecodeRecord decodes the first RecordSize bytes of b.
func DecodeRecord(b []byte) (Record, error) {
	if len(b) < RecordSize {
		return Record{}, fmt.Errorf("%w: %d bytes", ErrShortRecord, len(b))
	}
	return Record{
		TimeMS: binary.LittleEndian.Uint32(b[0:4]),
		Value:  int16(binary.LittleEndian.Uint16(b[4:6])),
		Type:   b[6],
		Number: b[7],
	}, nil
}

// Encode writes the record in wire order, mainly for fixtures.
func (r Record) Encode() []byte {
	b := make([]byte, RecordSize)
	binary.LittleEndian.PutUint32(b[0:4], r.TimeMS)
	binary.LittleEndian.PutUint16(b[4:6], uint16(r.Value))
	b[6] = r.Type
	b[7] = r.Number
	return b
}

// IsInit reports a synthetic record the driver emits to describe initial state.
func (r Record) IsInit() bool {
	return r.Type&EventInit != 0
}

func (r Record) IsButton() bool {
	return !r.IsInit() && r.Type&EventButton != 0
}

func (r Record) IsAxis() bool {
	return !r.IsInit() && r.Type&EventAxis != 0
}
