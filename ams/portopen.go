package ams

import (
	"fmt"
	"io"
)

// portOpenRequest is the fixed 8-byte literal that opens an AMS router
// port on the loopback router when no explicit route is configured
// (§6 "Port-open handshake").
var portOpenRequest = []byte{0x00, 0x10, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00}

// PortOpenRequest returns the literal bytes sent to request a local
// AMS port.
func PortOpenRequest() []byte {
	out := make([]byte, len(portOpenRequest))
	copy(out, portOpenRequest)
	return out
}

// portOpenResponseLen is the fixed size of the port-open handshake
// response: the source AmsAddress is encoded starting at byte offset 6.
const portOpenResponseLen = 14

// DecodePortOpenResponse extracts the local AmsAddress assigned by the
// router from a 14-byte port-open response.
func DecodePortOpenResponse(data []byte) (Addr, error) {
	if len(data) < portOpenResponseLen {
		return Addr{}, fmt.Errorf("ams: port-open response too short: got %d want %d: %w", len(data), portOpenResponseLen, io.ErrUnexpectedEOF)
	}
	var addr Addr
	b := NewBuffer(data[6:])
	addr.decode(b)
	return addr, b.Err()
}
