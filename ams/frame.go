package ams

import (
	"encoding/binary"
	"io"
)

// ReadFrame reads exactly one AMS/TCP frame (§6 framing): the 6-byte
// TCP prefix, then exactly Length bytes of AMSHeader+payload. It
// returns the parsed Header alongside the full raw frame (TCP prefix
// included) so the caller can re-decode the command-specific payload
// with a fresh Buffer. A read that stops partway through the prefix or
// the payload is reported as io.ErrUnexpectedEOF via io.ReadFull, never
// as a partial frame; a stream that ends before the first prefix byte
// yields io.EOF.
func ReadFrame(r io.Reader) (*Header, []byte, error) {
	prefix := make([]byte, 6)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, nil, err
	}
	length := binary.LittleEndian.Uint32(prefix[2:6])
	payload := make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, nil, err
		}
	}

	full := make([]byte, 0, len(prefix)+len(payload))
	full = append(full, prefix...)
	full = append(full, payload...)

	var hdr Header
	if err := hdr.Decode(NewBuffer(full)); err != nil {
		return nil, nil, err
	}
	return &hdr, full, nil
}
