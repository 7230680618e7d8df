package adsmux

import (
	"testing"

	"github.com/mrpasztoradam/adsmux/ams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildGetHandleRequestEncodesNullTerminatedName checks the wire
// bytes of the symbol-handle lookup request: the name must be written
// null-terminated into WriteData, per request_factory.rs's
// get_var_handle_request.
func TestBuildGetHandleRequestEncodesNullTerminatedName(t *testing.T) {
	req := buildGetHandleRequest(fakeTarget, fakeTarget, "Main.counter")

	assert.Equal(t, ams.IdxGetSymHandleByName, req.IndexGroup)
	assert.Equal(t, uint32(0), req.IndexOffset)
	assert.Equal(t, uint32(4), req.ReadLength)
	require.Equal(t, append([]byte("Main.counter"), 0), req.WriteData)
}

func TestBuildReleaseHandleRequestEncodesHandleLittleEndian(t *testing.T) {
	req := buildReleaseHandleRequest(fakeTarget, fakeTarget, 0x00000102)

	assert.Equal(t, ams.IdxReleaseSymHandle, req.IndexGroup)
	assert.Equal(t, []byte{0x02, 0x01, 0x00, 0x00}, req.Data)
}

func TestBuildReadByHandleRequestUsesHandleAsOffset(t *testing.T) {
	req := buildReadByHandleRequest(fakeTarget, fakeTarget, 9001, 2)

	assert.Equal(t, ams.IdxReadWriteSymValueByHandle, req.IndexGroup)
	assert.Equal(t, uint32(9001), req.IndexOffset)
	assert.Equal(t, uint32(2), req.Length)
}

func TestBuildSumupReadRequestPacksHandleLengthPairsInOrder(t *testing.T) {
	entries := []sumupReadEntry{{handle: 1, length: 2}, {handle: 2, length: 4}}
	req := buildSumupReadRequest(fakeTarget, fakeTarget, entries)

	assert.Equal(t, ams.IdxSumupRead, req.IndexGroup)
	assert.Equal(t, uint32(2), req.IndexOffset) // entry count
	assert.Equal(t, uint32(4+2+4+4), req.ReadLength)
	want := []byte{
		0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00,
	}
	assert.Equal(t, want, req.WriteData)
}

func TestBuildSumupWriteRequestPacksHeadersThenData(t *testing.T) {
	entries := []sumupWriteEntry{
		{handle: 1, data: []byte{0xAA}},
		{handle: 2, data: []byte{0xBB, 0xCC}},
	}
	req := buildSumupWriteRequest(fakeTarget, fakeTarget, entries)

	assert.Equal(t, ams.IdxSumupWrite, req.IndexGroup)
	assert.Equal(t, uint32(2), req.IndexOffset)
	assert.Equal(t, uint32(8), req.ReadLength) // one 4-byte result per entry
	want := []byte{
		0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00,
		0xAA,
		0xBB, 0xCC,
	}
	assert.Equal(t, want, req.WriteData)
}

func TestUint32LERoundTrip(t *testing.T) {
	b := make([]byte, 4)
	putUint32LE(b, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), uint32LE(b))
}
