package ams

// WriteControlRequest is the ADS "WriteControl" command: request an
// ADS-state transition (e.g. Run/Stop) on the target, optionally with
// a device-specific payload.
type WriteControlRequest struct {
	tcpHeader   TCPHeader
	amsHeader   AMSHeader
	AdsState    uint16
	DeviceState uint16
	Data        []byte
}

func NewWriteControlRequest(target, sender Addr, adsState, deviceState uint16, data []byte) *WriteControlRequest {
	return &WriteControlRequest{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdWriteControl,
			StateFlags: StateADSCommand,
		},
		AdsState:    adsState,
		DeviceState: deviceState,
		Data:        data,
	}
}

func (r *WriteControlRequest) Header() *AMSHeader { return &r.amsHeader }

func (r *WriteControlRequest) Encode(b *Buffer) error {
	r.amsHeader.Length = 8 + uint32(len(r.Data))
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint16(r.AdsState)
	b.WriteUint16(r.DeviceState)
	b.WriteUint32(uint32(len(r.Data)))
	b.Write(r.Data)
	return b.Err()
}

func (r *WriteControlRequest) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.AdsState = b.ReadUint16()
	r.DeviceState = b.ReadUint16()
	length := b.ReadUint32()
	r.Data = append([]byte(nil), b.ReadN(int(length))...)
	return b.Err()
}

// IsWriteControlRequest reports whether h is a WriteControl request.
func IsWriteControlRequest(h AMSHeader) bool {
	return h.CmdID == CmdWriteControl && !HasState(h, StateResponse)
}

// WriteControlResponse carries just the result code.
type WriteControlResponse struct {
	tcpHeader TCPHeader
	amsHeader AMSHeader
	Result    uint32
}

func NewWriteControlResponse(target, sender Addr, result uint32) *WriteControlResponse {
	return &WriteControlResponse{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdWriteControl,
			StateFlags: StateADSCommand | StateResponse,
		},
		Result: result,
	}
}

func (r *WriteControlResponse) Header() *AMSHeader { return &r.amsHeader }

func (r *WriteControlResponse) Encode(b *Buffer) error {
	r.amsHeader.Length = 4
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.Result)
	return b.Err()
}

func (r *WriteControlResponse) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.Result = b.ReadUint32()
	return b.Err()
}

// IsWriteControlResponse reports whether h is a WriteControl response.
func IsWriteControlResponse(h AMSHeader) bool {
	return h.CmdID == CmdWriteControl && HasState(h, StateResponse)
}
