// Package ams implements the byte-level encoding and decoding of AMS/ADS
// frames: the TCP/AMS header pair, the port-open handshake, and the
// request/response payloads for the ADS commands this client speaks.
// Nothing in this package performs I/O; callers own the transport.
package ams

import (
	"encoding/binary"
	"io"
)

// Buffer is a small append/consume byte buffer used to encode and decode
// AMS wire structures. It carries a sticky first error, mirroring the
// style of the teacher package: callers chain Write*/Read* calls and
// check Err() once at the end instead of after every field.
type Buffer struct {
	out []byte
	in  []byte
	err error
}

// NewBuffer wraps data for reading. The returned Buffer's Write* methods
// still work and append to a separate output slice.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{in: data}
}

// Err returns the first error encountered by any Read*/Write* call.
func (b *Buffer) Err() error {
	return b.err
}

// Bytes returns everything written so far.
func (b *Buffer) Bytes() []byte {
	return b.out
}

func (b *Buffer) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Write appends p verbatim.
func (b *Buffer) Write(p []byte) {
	if b.err != nil {
		return
	}
	b.out = append(b.out, p...)
}

// WriteN appends p padded or truncated to exactly n bytes.
func (b *Buffer) WriteN(p []byte, n uint32) {
	if b.err != nil {
		return
	}
	buf := make([]byte, n)
	copy(buf, p)
	b.out = append(b.out, buf...)
}

func (b *Buffer) WriteUint8(v uint8) {
	if b.err != nil {
		return
	}
	b.out = append(b.out, v)
}

func (b *Buffer) WriteUint16(v uint16) {
	if b.err != nil {
		return
	}
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.out = append(b.out, tmp[:]...)
}

func (b *Buffer) WriteUint32(v uint32) {
	if b.err != nil {
		return
	}
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.out = append(b.out, tmp[:]...)
}

func (b *Buffer) WriteUint64(v uint64) {
	if b.err != nil {
		return
	}
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.out = append(b.out, tmp[:]...)
}

// Read copies exactly len(p) bytes into p.
func (b *Buffer) Read(p []byte) {
	copy(p, b.ReadN(len(p)))
}

// ReadN consumes and returns exactly n bytes. On underrun it records an
// error and returns a nil slice; subsequent Read* calls become no-ops.
func (b *Buffer) ReadN(n int) []byte {
	if b.err != nil {
		return nil
	}
	if n < 0 || len(b.in) < n {
		b.fail(io.ErrUnexpectedEOF)
		return nil
	}
	v := b.in[:n]
	b.in = b.in[n:]
	return v
}

func (b *Buffer) ReadUint8() uint8 {
	v := b.ReadN(1)
	if v == nil {
		return 0
	}
	return v[0]
}

func (b *Buffer) ReadUint16() uint16 {
	v := b.ReadN(2)
	if v == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(v)
}

func (b *Buffer) ReadUint32() uint32 {
	v := b.ReadN(4)
	if v == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(v)
}

func (b *Buffer) ReadUint64() uint64 {
	v := b.ReadN(8)
	if v == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(v)
}

// Remaining reports how many unread bytes are left in the input.
func (b *Buffer) Remaining() int {
	return len(b.in)
}

// structCodec is implemented by the fixed header types so Buffer can
// expose teacher-style WriteStruct/ReadStruct helpers.
type structCodec interface {
	encode(b *Buffer)
	decode(b *Buffer)
}

func (b *Buffer) WriteStruct(s structCodec) {
	s.encode(b)
}

func (b *Buffer) ReadStruct(s structCodec) {
	s.decode(b)
}
