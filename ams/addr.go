package ams

import (
	"fmt"
	"strconv"
	"strings"
)

// Addr is an AMS address: a six-byte NetId plus a 16-bit port, together
// identifying one endpoint (target or source) of an ADS exchange.
type Addr struct {
	NetID [6]byte
	Port  uint16
}

// NewAddr builds an Addr from a NetId and port.
func NewAddr(netID [6]byte, port uint16) Addr {
	return Addr{NetID: netID, Port: port}
}

// ParseAddr parses the conventional "a.b.c.d.e.f:port" notation used for
// AMS Net Ids, e.g. "192.168.0.150.1.1:851".
func ParseAddr(s string) (Addr, error) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		return Addr{}, fmt.Errorf("ams: invalid address %q: missing port", s)
	}
	netIDPart, portPart := s[:idx], s[idx+1:]
	port, err := strconv.ParseUint(portPart, 10, 16)
	if err != nil {
		return Addr{}, fmt.Errorf("ams: invalid address %q: %w", s, err)
	}
	netID, err := ParseNetID(netIDPart)
	if err != nil {
		return Addr{}, fmt.Errorf("ams: invalid address %q: %w", s, err)
	}
	return Addr{NetID: netID, Port: uint16(port)}, nil
}

// ParseNetID parses a six-octet dotted NetId, e.g. "192.168.0.150.1.1".
func ParseNetID(s string) ([6]byte, error) {
	var out [6]byte
	parts := strings.Split(s, ".")
	if len(parts) != 6 {
		return out, fmt.Errorf("ams: invalid net id %q: want 6 octets, got %d", s, len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return out, fmt.Errorf("ams: invalid net id %q: %w", s, err)
		}
		out[i] = byte(v)
	}
	return out, nil
}

func (a Addr) String() string {
	n := a.NetID
	return fmt.Sprintf("%d.%d.%d.%d.%d.%d:%d", n[0], n[1], n[2], n[3], n[4], n[5], a.Port)
}

func (a Addr) encode(b *Buffer) {
	b.Write(a.NetID[:])
	b.WriteUint16(a.Port)
}

func (a *Addr) decode(b *Buffer) {
	copy(a.NetID[:], b.ReadN(6))
	a.Port = b.ReadUint16()
}
