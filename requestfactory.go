package adsmux

import "github.com/mrpasztoradam/adsmux/ams"

// This file collects pure functions building typed request values from
// high-level parameters (§4.6 "Request Factory"). None perform I/O;
// they only know the well-known ADS index-groups/offsets, grounded on
// the original_source request_factory.rs (get_var_handle_request,
// get_read_request, get_write_request) generalized to cover the rest
// of the commands this client speaks.

func buildGetHandleRequest(target, sender ams.Addr, name string) *ams.ReadWriteRequest {
	nameBytes := append([]byte(name), 0)
	return ams.NewReadWriteRequest(target, sender, ams.IdxGetSymHandleByName, 0, 4, nameBytes)
}

func buildReleaseHandleRequest(target, sender ams.Addr, handle uint32) *ams.WriteRequest {
	data := make([]byte, 4)
	putUint32LE(data, handle)
	return ams.NewWriteRequest(target, sender, ams.IdxReleaseSymHandle, 0, data)
}

func buildReadByHandleRequest(target, sender ams.Addr, handle, length uint32) *ams.ReadRequest {
	return ams.NewReadRequest(target, sender, ams.IdxReadWriteSymValueByHandle, handle, length)
}

func buildWriteByHandleRequest(target, sender ams.Addr, handle uint32, data []byte) *ams.WriteRequest {
	return ams.NewWriteRequest(target, sender, ams.IdxReadWriteSymValueByHandle, handle, data)
}

func buildReadStateRequest(target, sender ams.Addr) *ams.ReadStateRequest {
	return ams.NewReadStateRequest(target, sender)
}

func buildReadDeviceInfoRequest(target, sender ams.Addr) *ams.ReadDeviceInfoRequest {
	return ams.NewReadDeviceInfoRequest(target, sender)
}

func buildWriteControlRequest(target, sender ams.Addr, adsState, deviceState uint16, data []byte) *ams.WriteControlRequest {
	return ams.NewWriteControlRequest(target, sender, adsState, deviceState, data)
}

func buildAddNotificationRequest(target, sender ams.Addr, handle uint32, length uint32, mode NotificationMode, transMode NotificationTransMode, maxDelay, cycleTime uint32) *ams.AddDeviceNotificationRequest {
	_ = mode // mode selects TransMode/cycle semantics at the caller; kept for call-site clarity
	return ams.NewAddDeviceNotificationRequest(target, sender, ams.IdxReadWriteSymValueByHandle, handle, length, uint32(transMode), maxDelay, cycleTime)
}

func buildDeleteNotificationRequest(target, sender ams.Addr, handle uint32) *ams.DeleteDeviceNotificationRequest {
	return ams.NewDeleteDeviceNotificationRequest(target, sender, handle)
}

// sumupReadEntry is one sub-request folded into a sumup ReadWrite frame.
type sumupReadEntry struct {
	handle uint32
	length uint32
}

// buildSumupReadRequest batches n handle-based reads into a single
// ReadWrite frame against the sumup read index group (§4.1
// sumup_read_by_name). The write payload is n fixed (handle, length)
// headers back to back; the read payload the controller returns is n
// (result, data) blocks in the same order.
func buildSumupReadRequest(target, sender ams.Addr, entries []sumupReadEntry) *ams.ReadWriteRequest {
	write := make([]byte, 0, len(entries)*8)
	readLen := uint32(0)
	for _, e := range entries {
		hdr := make([]byte, 8)
		putUint32LE(hdr[0:4], e.handle)
		putUint32LE(hdr[4:8], e.length)
		write = append(write, hdr...)
		readLen += 4 + e.length // result(4) + data
	}
	return ams.NewReadWriteRequest(target, sender, ams.IdxSumupRead, uint32(len(entries)), readLen, write)
}

// sumupWriteEntry is one sub-request folded into a sumup write frame.
type sumupWriteEntry struct {
	handle uint32
	data   []byte
}

// buildSumupWriteRequest batches n handle-based writes into a single
// ReadWrite frame against the sumup write index group. The write
// payload is n (handle, length) headers followed by all n data blocks;
// the controller returns n 4-byte result codes in the same order.
func buildSumupWriteRequest(target, sender ams.Addr, entries []sumupWriteEntry) *ams.ReadWriteRequest {
	write := make([]byte, 0, len(entries)*8)
	for _, e := range entries {
		hdr := make([]byte, 8)
		putUint32LE(hdr[0:4], e.handle)
		putUint32LE(hdr[4:8], uint32(len(e.data)))
		write = append(write, hdr...)
	}
	for _, e := range entries {
		write = append(write, e.data...)
	}
	return ams.NewReadWriteRequest(target, sender, ams.IdxSumupWrite, uint32(len(entries)), uint32(len(entries))*4, write)
}

func putUint32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func uint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
