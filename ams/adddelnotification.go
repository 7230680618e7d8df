// Copyright 2021 gotwincat authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package ams

// AddDeviceNotificationRequest registers a notification on a value at
// (IndexGroup, IndexOffset), delivered per TransMode/MaxDelay/CycleTime
// (§4.6 "notifications").
type AddDeviceNotificationRequest struct {
	tcpHeader  TCPHeader
	amsHeader  AMSHeader
	IndexGroup uint32
	IndexOff   uint32
	Length     uint32
	TransMode  uint32
	MaxDelay   uint32
	CycleTime  uint32
	Reserved   [16]byte
}

func NewAddDeviceNotificationRequest(target, sender Addr, indexGroup, indexOffset, length, transMode, maxDelay, cycleTime uint32) *AddDeviceNotificationRequest {
	return &AddDeviceNotificationRequest{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdAddDeviceNotification,
			StateFlags: StateADSCommand,
		},
		IndexGroup: indexGroup,
		IndexOff:   indexOffset,
		Length:     length,
		TransMode:  transMode,
		MaxDelay:   maxDelay,
		CycleTime:  cycleTime,
	}
}

func (r *AddDeviceNotificationRequest) Header() *AMSHeader { return &r.amsHeader }

func (r *AddDeviceNotificationRequest) Encode(b *Buffer) error {
	r.amsHeader.Length = 40
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.IndexGroup)
	b.WriteUint32(r.IndexOff)
	b.WriteUint32(r.Length)
	b.WriteUint32(r.TransMode)
	b.WriteUint32(r.MaxDelay)
	b.WriteUint32(r.CycleTime)
	b.WriteN(r.Reserved[:], 16)
	return b.Err()
}

func (r *AddDeviceNotificationRequest) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.IndexGroup = b.ReadUint32()
	r.IndexOff = b.ReadUint32()
	r.Length = b.ReadUint32()
	r.TransMode = b.ReadUint32()
	r.MaxDelay = b.ReadUint32()
	r.CycleTime = b.ReadUint32()
	copy(r.Reserved[:], b.ReadN(16))
	return b.Err()
}

// IsAddDeviceNotificationRequest reports whether h is an
// AddDeviceNotification request.
func IsAddDeviceNotificationRequest(h AMSHeader) bool {
	return h.CmdID == CmdAddDeviceNotification && !HasState(h, StateResponse)
}

// AddDeviceNotificationResponse carries the result code and, on
// success, the handle used to correlate future DeviceNotification
// frames and to unsubscribe later.
type AddDeviceNotificationResponse struct {
	tcpHeader          TCPHeader
	amsHeader          AMSHeader
	Result             uint32
	NotificationHandle uint32
}

func NewAddDeviceNotificationResponse(target, sender Addr, result, handle uint32) *AddDeviceNotificationResponse {
	return &AddDeviceNotificationResponse{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdAddDeviceNotification,
			StateFlags: StateADSCommand | StateResponse,
		},
		Result:             result,
		NotificationHandle: handle,
	}
}

func (r *AddDeviceNotificationResponse) Header() *AMSHeader { return &r.amsHeader }

func (r *AddDeviceNotificationResponse) Encode(b *Buffer) error {
	r.amsHeader.Length = 8
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.Result)
	b.WriteUint32(r.NotificationHandle)
	return b.Err()
}

func (r *AddDeviceNotificationResponse) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.Result = b.ReadUint32()
	r.NotificationHandle = b.ReadUint32()
	return b.Err()
}

// IsAddDeviceNotificationResponse reports whether h is an
// AddDeviceNotification response.
func IsAddDeviceNotificationResponse(h AMSHeader) bool {
	return h.CmdID == CmdAddDeviceNotification && HasState(h, StateResponse)
}

// DeleteDeviceNotificationRequest cancels a previously registered
// notification.
type DeleteDeviceNotificationRequest struct {
	tcpHeader          TCPHeader
	amsHeader          AMSHeader
	NotificationHandle uint32
}

func NewDeleteDeviceNotificationRequest(target, sender Addr, handle uint32) *DeleteDeviceNotificationRequest {
	return &DeleteDeviceNotificationRequest{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdDeleteDeviceNotification,
			StateFlags: StateADSCommand,
		},
		NotificationHandle: handle,
	}
}

func (r *DeleteDeviceNotificationRequest) Header() *AMSHeader { return &r.amsHeader }

func (r *DeleteDeviceNotificationRequest) Encode(b *Buffer) error {
	r.amsHeader.Length = 4
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.NotificationHandle)
	return b.Err()
}

func (r *DeleteDeviceNotificationRequest) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.NotificationHandle = b.ReadUint32()
	return b.Err()
}

// IsDeleteDeviceNotificationRequest reports whether h is a
// DeleteDeviceNotification request.
func IsDeleteDeviceNotificationRequest(h AMSHeader) bool {
	return h.CmdID == CmdDeleteDeviceNotification && !HasState(h, StateResponse)
}

// DeleteDeviceNotificationResponse carries just the result code.
type DeleteDeviceNotificationResponse struct {
	tcpHeader TCPHeader
	amsHeader AMSHeader
	Result    uint32
}

func NewDeleteDeviceNotificationResponse(target, sender Addr, result uint32) *DeleteDeviceNotificationResponse {
	return &DeleteDeviceNotificationResponse{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdDeleteDeviceNotification,
			StateFlags: StateADSCommand | StateResponse,
		},
		Result: result,
	}
}

func (r *DeleteDeviceNotificationResponse) Header() *AMSHeader { return &r.amsHeader }

func (r *DeleteDeviceNotificationResponse) Encode(b *Buffer) error {
	r.amsHeader.Length = 4
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.Result)
	return b.Err()
}

func (r *DeleteDeviceNotificationResponse) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.Result = b.ReadUint32()
	return b.Err()
}

// IsDeleteDeviceNotificationResponse reports whether h is a
// DeleteDeviceNotification response.
func IsDeleteDeviceNotificationResponse(h AMSHeader) bool {
	return h.CmdID == CmdDeleteDeviceNotification && HasState(h, StateResponse)
}
