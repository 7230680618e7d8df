package ams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDeviceInfoResponseGetDeviceNameTrimsNulls(t *testing.T) {
	resp := NewReadDeviceInfoResponse(testTarget, testSender, NoError, 3, 1, 4020, "CX-Runtime")
	assert.Equal(t, "CX-Runtime", resp.GetDeviceName())
}

func TestReadDeviceInfoResponseGetDeviceNameFullyPopulated(t *testing.T) {
	resp := NewReadDeviceInfoResponse(testTarget, testSender, NoError, 3, 1, 4020, "1234567890123456")
	assert.Equal(t, "1234567890123456", resp.GetDeviceName())
}

func TestReadDeviceInfoEncodeDecodeRoundTrip(t *testing.T) {
	req := NewReadDeviceInfoRequest(testTarget, testSender)
	req.Header().InvokeID = 5
	buf := NewBuffer(nil)
	require.NoError(t, req.Encode(buf))

	var decoded ReadDeviceInfoRequest
	require.NoError(t, decoded.Decode(NewBuffer(buf.Bytes())))
	assert.Equal(t, *req.Header(), *decoded.Header())

	resp := NewReadDeviceInfoResponse(testTarget, testSender, NoError, 3, 1, 4020, "CX-Runtime")
	resp.Header().InvokeID = 5
	respBuf := NewBuffer(nil)
	require.NoError(t, resp.Encode(respBuf))

	var decodedResp ReadDeviceInfoResponse
	require.NoError(t, decodedResp.Decode(NewBuffer(respBuf.Bytes())))
	assert.Equal(t, "CX-Runtime", decodedResp.GetDeviceName())
	assert.Equal(t, uint8(3), decodedResp.MajorVersion)
	assert.Equal(t, uint8(1), decodedResp.MinorVersion)
	assert.Equal(t, uint16(4020), decodedResp.BuildVersion)
}
