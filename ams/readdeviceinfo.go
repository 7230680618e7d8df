package ams

// ReadDeviceInfoRequest is the ADS "ReadDeviceInfo" command, adapted
// from the teacher's ams/readdeviceinfo.go to the Buffer/Header API.
type ReadDeviceInfoRequest struct {
	tcpHeader TCPHeader
	amsHeader AMSHeader
}

func NewReadDeviceInfoRequest(target, sender Addr) *ReadDeviceInfoRequest {
	return &ReadDeviceInfoRequest{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdReadDeviceInfo,
			StateFlags: StateADSCommand,
		},
	}
}

func (r *ReadDeviceInfoRequest) Header() *AMSHeader { return &r.amsHeader }

func (r *ReadDeviceInfoRequest) Encode(b *Buffer) error {
	r.amsHeader.Length = 0
	r.tcpHeader.Length = amsHeaderLen
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	return b.Err()
}

func (r *ReadDeviceInfoRequest) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	return b.Err()
}

// IsReadDeviceInfoRequest reports whether h is a ReadDeviceInfo request.
func IsReadDeviceInfoRequest(h AMSHeader) bool {
	return h.CmdID == CmdReadDeviceInfo && !HasState(h, StateResponse)
}

// ReadDeviceInfoResponse reports the controller's version and name.
type ReadDeviceInfoResponse struct {
	tcpHeader    TCPHeader
	amsHeader    AMSHeader
	Result       uint32
	MajorVersion uint8
	MinorVersion uint8
	BuildVersion uint16
	DeviceName   [16]byte
}

func NewReadDeviceInfoResponse(target, sender Addr, result uint32, major, minor uint8, build uint16, deviceName string) *ReadDeviceInfoResponse {
	resp := &ReadDeviceInfoResponse{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdReadDeviceInfo,
			StateFlags: StateADSCommand | StateResponse,
			Length:     24,
		},
		Result:       result,
		MajorVersion: major,
		MinorVersion: minor,
		BuildVersion: build,
	}
	copy(resp.DeviceName[:], deviceName)
	return resp
}

func (r *ReadDeviceInfoResponse) Header() *AMSHeader { return &r.amsHeader }

func (r *ReadDeviceInfoResponse) Encode(b *Buffer) error {
	r.amsHeader.Length = 24
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.Result)
	b.WriteUint8(r.MajorVersion)
	b.WriteUint8(r.MinorVersion)
	b.WriteUint16(r.BuildVersion)
	b.Write(r.DeviceName[:])
	return b.Err()
}

func (r *ReadDeviceInfoResponse) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.Result = b.ReadUint32()
	r.MajorVersion = b.ReadUint8()
	r.MinorVersion = b.ReadUint8()
	r.BuildVersion = b.ReadUint16()
	b.Read(r.DeviceName[:])
	return b.Err()
}

// GetDeviceName returns the device name with the trailing null bytes
// trimmed.
func (r *ReadDeviceInfoResponse) GetDeviceName() string {
	for i, c := range r.DeviceName {
		if c == 0 {
			return string(r.DeviceName[:i])
		}
	}
	return string(r.DeviceName[:])
}

// IsReadDeviceInfoResponse reports whether h is a ReadDeviceInfo response.
func IsReadDeviceInfoResponse(h AMSHeader) bool {
	return h.CmdID == CmdReadDeviceInfo && HasState(h, StateResponse)
}
