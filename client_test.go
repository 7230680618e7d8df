package adsmux

import (
	"context"
	"testing"
	"time"

	"github.com/mrpasztoradam/adsmux/ams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctxTimeout(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// TestConnectIdempotent is §8 property 6: two successive Connect calls
// without an intervening drop produce one transport and one reader.
func TestConnectIdempotent(t *testing.T) {
	server := newFakeServer(t)
	client := newTestClient(server)
	t.Cleanup(func() { client.Close() })

	connectErrs := make(chan error, 2)
	go func() {
		connectErrs <- client.Connect(ctxTimeout(t))
		// Second call must be a no-op: no second connection is opened,
		// so if Connect tried to dial again this would block until the
		// fake server (which never accepts twice) times the test out.
		connectErrs <- client.Connect(ctxTimeout(t))
	}()

	acceptAndHandshake(t, server)
	require.NoError(t, <-connectErrs)
	require.NoError(t, <-connectErrs)
}

// TestReadByNameCacheMissThenHit is §8 scenario S1: the first call
// issues a handle lookup then a read; the second, cache-warm call
// issues only the read.
func TestReadByNameCacheMissThenHit(t *testing.T) {
	server := newFakeServer(t)
	client := newTestClient(server)
	t.Cleanup(func() { client.Close() })

	type result struct {
		resp *ams.ReadResponse
		err  error
	}
	results := make(chan result, 2)
	go func() {
		if err := client.Connect(ctxTimeout(t)); err != nil {
			results <- result{err: err}
			results <- result{err: err}
			return
		}
		resp, err := client.ReadByName(ctxTimeout(t), "Main.counter", 2)
		results <- result{resp, err}
		resp, err = client.ReadByName(ctxTimeout(t), "Main.counter", 2)
		results <- result{resp, err}
	}()

	conn := acceptAndHandshake(t, server)

	hdr, frame := recvFrame(t, conn)
	require.Equal(t, ams.CmdReadWrite, hdr.AMSHeader.CmdID)
	var getHandle ams.ReadWriteRequest
	require.NoError(t, getHandle.Decode(ams.NewBuffer(frame)))
	require.Equal(t, ams.IdxGetSymHandleByName, getHandle.IndexGroup)
	handleBytes := make([]byte, 4)
	putUint32LE(handleBytes, 0xCAFEBABE)
	sendResponse(t, conn, ams.NewReadWriteResponse(hdr.AMSHeader.Sender, hdr.AMSHeader.Target, ams.NoError, handleBytes), hdr.AMSHeader.InvokeID)

	hdr, frame = recvFrame(t, conn)
	require.Equal(t, ams.CmdRead, hdr.AMSHeader.CmdID)
	var readReq ams.ReadRequest
	require.NoError(t, readReq.Decode(ams.NewBuffer(frame)))
	require.Equal(t, uint32(0xCAFEBABE), readReq.IndexOffset)
	sendResponse(t, conn, ams.NewReadResponse(hdr.AMSHeader.Sender, hdr.AMSHeader.Target, ams.NoError, []byte{0x2A, 0x00}), hdr.AMSHeader.InvokeID)

	first := <-results
	require.NoError(t, first.err)
	assert.Equal(t, uint32(0), first.resp.Result)
	assert.Equal(t, []byte{0x2A, 0x00}, first.resp.Data)

	// Cache-warm call: exactly one frame, a Read (no handle lookup).
	hdr, _ = recvFrame(t, conn)
	require.Equal(t, ams.CmdRead, hdr.AMSHeader.CmdID)
	sendResponse(t, conn, ams.NewReadResponse(hdr.AMSHeader.Sender, hdr.AMSHeader.Target, ams.NoError, []byte{0x2A, 0x00}), hdr.AMSHeader.InvokeID)

	second := <-results
	require.NoError(t, second.err)
	assert.Equal(t, uint32(0), second.resp.Result)
	assert.Len(t, second.resp.Data, 2)
}

// TestWriteByName is §8 scenario S2: write 65530 (0xFFFA little-endian)
// to a u16 variable.
func TestWriteByName(t *testing.T) {
	server := newFakeServer(t)
	client := newTestClient(server)
	t.Cleanup(func() { client.Close() })

	type result struct {
		resp *ams.WriteResponse
		err  error
	}
	results := make(chan result, 1)
	go func() {
		if err := client.Connect(ctxTimeout(t)); err != nil {
			results <- result{err: err}
			return
		}
		resp, err := client.WriteByName(ctxTimeout(t), "Main.mi_uint", []byte{0xFA, 0xFF})
		results <- result{resp, err}
	}()

	conn := acceptAndHandshake(t, server)

	hdr, _ := recvFrame(t, conn)
	handleBytes := make([]byte, 4)
	putUint32LE(handleBytes, 7)
	sendResponse(t, conn, ams.NewReadWriteResponse(hdr.AMSHeader.Sender, hdr.AMSHeader.Target, ams.NoError, handleBytes), hdr.AMSHeader.InvokeID)

	hdr, frame := recvFrame(t, conn)
	var writeReq ams.WriteRequest
	require.NoError(t, writeReq.Decode(ams.NewBuffer(frame)))
	assert.Equal(t, uint32(7), writeReq.IndexOffset)
	assert.Equal(t, []byte{0xFA, 0xFF}, writeReq.Data)
	sendResponse(t, conn, ams.NewWriteResponse(hdr.AMSHeader.Sender, hdr.AMSHeader.Target, ams.NoError), hdr.AMSHeader.InvokeID)

	res := <-results
	require.NoError(t, res.err)
	assert.Equal(t, uint32(0), res.resp.Result)
}

// TestSumupReadByNameOrdering is §8 scenario S6: one outgoing ReadWrite
// frame after handle resolution, correlated back to names by the same
// order used to build the request.
func TestSumupReadByNameOrdering(t *testing.T) {
	server := newFakeServer(t)
	client := newTestClient(server)
	t.Cleanup(func() { client.Close() })

	lengths := map[string]uint32{"a": 1, "b": 2, "c": 1}
	handles := map[string]uint32{"a": 101, "b": 102, "c": 103}
	payload := map[string][]byte{"a": {0xAA}, "b": {0xBB, 0xCC}, "c": {0xDD}}
	handleToName := map[uint32]string{101: "a", 102: "b", 103: "c"}

	type result struct {
		data map[string]*ams.ReadResponse
		err  error
	}
	results := make(chan result, 1)
	go func() {
		if err := client.Connect(ctxTimeout(t)); err != nil {
			results <- result{err: err}
			return
		}
		data, err := client.SumupReadByName(ctxTimeout(t), lengths)
		results <- result{data, err}
	}()

	conn := acceptAndHandshake(t, server)

	for i := 0; i < len(lengths); i++ {
		hdr, frame := recvFrame(t, conn)
		require.Equal(t, ams.CmdReadWrite, hdr.AMSHeader.CmdID)
		var req ams.ReadWriteRequest
		require.NoError(t, req.Decode(ams.NewBuffer(frame)))
		name := trimNull(req.WriteData)
		handle, ok := handles[name]
		require.True(t, ok, "unexpected handle lookup for %q", name)
		handleBytes := make([]byte, 4)
		putUint32LE(handleBytes, handle)
		sendResponse(t, conn, ams.NewReadWriteResponse(hdr.AMSHeader.Sender, hdr.AMSHeader.Target, ams.NoError, handleBytes), hdr.AMSHeader.InvokeID)
	}

	hdr, frame := recvFrame(t, conn)
	require.Equal(t, ams.CmdReadWrite, hdr.AMSHeader.CmdID)
	var sumReq ams.ReadWriteRequest
	require.NoError(t, sumReq.Decode(ams.NewBuffer(frame)))
	require.Equal(t, ams.IdxSumupRead, sumReq.IndexGroup)

	count := int(sumReq.IndexOffset)
	var respData []byte
	for i := 0; i < count; i++ {
		off := i * 8
		handle := uint32LE(sumReq.WriteData[off : off+4])
		name := handleToName[handle]
		resultBytes := make([]byte, 4)
		putUint32LE(resultBytes, ams.NoError)
		respData = append(respData, resultBytes...)
		respData = append(respData, payload[name]...)
	}
	sendResponse(t, conn, ams.NewReadWriteResponse(hdr.AMSHeader.Sender, hdr.AMSHeader.Target, ams.NoError, respData), hdr.AMSHeader.InvokeID)

	res := <-results
	require.NoError(t, res.err)
	require.Len(t, res.data, 3)
	for name, want := range payload {
		got, ok := res.data[name]
		require.True(t, ok, name)
		assert.Equal(t, uint32(0), got.Result)
		assert.Equal(t, want, got.Data)
	}
}

func trimNull(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
