// Copyright 2021 gotwincat authors. All rights reserved.
// Use of this source code is governed by a MIT-style license that can be
// found in the LICENSE file.

package ams

// DeviceNotificationRequest is the unsolicited frame the target sends
// for every notification cycle: one or more stamps, each carrying one
// or more samples keyed by notification handle (§4.6). It has no
// response; InvokeID is meaningless on this command.
type DeviceNotificationRequest struct {
	tcpHeader  TCPHeader
	amsHeader  AMSHeader
	Length     uint32
	StampCount uint32
	Stamps     []NotificationStamp
}

// NotificationStamp groups the samples that shared one sampling instant.
type NotificationStamp struct {
	Timestamp   uint64 // Windows FILETIME, 100ns ticks since 1601-01-01
	SampleCount uint32
	Samples     []NotificationSample
}

// NotificationSample is one delivered value, keyed by the handle
// returned from AddDeviceNotification.
type NotificationSample struct {
	Handle uint32
	Size   uint32
	Data   []byte
}

func (r *DeviceNotificationRequest) Header() *AMSHeader { return &r.amsHeader }

// Encode computes Length and StampCount from Stamps itself, the way
// every other request in this package derives its header lengths at
// encode time rather than requiring the caller to keep them in sync.
func (r *DeviceNotificationRequest) Encode(b *Buffer) error {
	r.StampCount = uint32(len(r.Stamps))
	stampsLen := uint32(0)
	for i := range r.Stamps {
		stampsLen += 12 // timestamp(8) + sample count(4)
		for j := range r.Stamps[i].Samples {
			r.Stamps[i].Samples[j].Size = uint32(len(r.Stamps[i].Samples[j].Data))
			stampsLen += 8 + r.Stamps[i].Samples[j].Size // handle(4) + size(4) + data
		}
	}
	r.Length = stampsLen
	r.amsHeader.Length = 8 + stampsLen // Length(4) + StampCount(4) + stamps
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length

	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.Length)
	b.WriteUint32(r.StampCount)
	for i := range r.Stamps {
		b.WriteUint32(uint32(r.Stamps[i].Timestamp))
		b.WriteUint32(uint32(r.Stamps[i].Timestamp >> 32))
		b.WriteUint32(r.Stamps[i].SampleCount)
		for j := range r.Stamps[i].Samples {
			b.WriteUint32(r.Stamps[i].Samples[j].Handle)
			b.WriteUint32(r.Stamps[i].Samples[j].Size)
			b.WriteN(r.Stamps[i].Samples[j].Data, r.Stamps[i].Samples[j].Size)
		}
	}
	return b.Err()
}

func (r *DeviceNotificationRequest) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	if b.Err() != nil {
		return b.Err()
	}

	r.Length = b.ReadUint32()
	r.StampCount = b.ReadUint32()
	if b.Err() != nil {
		return b.Err()
	}

	if r.StampCount == 0 {
		r.Stamps = nil
		return b.Err()
	}

	r.Stamps = make([]NotificationStamp, r.StampCount)
	for i := uint32(0); i < r.StampCount; i++ {
		low := b.ReadUint32()
		high := b.ReadUint32()
		r.Stamps[i].Timestamp = uint64(low) | uint64(high)<<32
		r.Stamps[i].SampleCount = b.ReadUint32()
		if b.Err() != nil {
			return b.Err()
		}

		r.Stamps[i].Samples = make([]NotificationSample, r.Stamps[i].SampleCount)
		for j := uint32(0); j < r.Stamps[i].SampleCount; j++ {
			r.Stamps[i].Samples[j].Handle = b.ReadUint32()
			r.Stamps[i].Samples[j].Size = b.ReadUint32()
			if b.Err() != nil {
				return b.Err()
			}
			r.Stamps[i].Samples[j].Data = append([]byte(nil), b.ReadN(int(r.Stamps[i].Samples[j].Size))...)
			if b.Err() != nil {
				return b.Err()
			}
		}
	}
	return b.Err()
}

// IsDeviceNotificationRequest reports whether h is an unsolicited
// DeviceNotification frame.
func IsDeviceNotificationRequest(h AMSHeader) bool {
	return h.CmdID == CmdDeviceNotification
}
