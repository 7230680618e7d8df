package ams

// ADS device states as reported by ReadState (§6, GLOSSARY "ADS state").
const (
	AdsStateInvalid     uint16 = 0
	AdsStateIdle        uint16 = 1
	AdsStateReset       uint16 = 2
	AdsStateInit        uint16 = 3
	AdsStateStart       uint16 = 4
	AdsStateRun         uint16 = 5
	AdsStateStop        uint16 = 6
	AdsStateSaveCfg     uint16 = 7
	AdsStateLoadCfg     uint16 = 8
	AdsStatePowerFailure uint16 = 9
	AdsStatePowerGood   uint16 = 10
	AdsStateError       uint16 = 11
	AdsStateShutdown    uint16 = 12
)

// ReadStateRequest is the ADS "ReadState" command, used both to query
// ADS/device state and as the idempotent-connect handshake (§4.2).
type ReadStateRequest struct {
	tcpHeader TCPHeader
	amsHeader AMSHeader
}

func NewReadStateRequest(target, sender Addr) *ReadStateRequest {
	return &ReadStateRequest{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdReadState,
			StateFlags: StateADSCommand,
		},
	}
}

func (r *ReadStateRequest) Header() *AMSHeader { return &r.amsHeader }

func (r *ReadStateRequest) Encode(b *Buffer) error {
	r.amsHeader.Length = 0
	r.tcpHeader.Length = amsHeaderLen
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	return b.Err()
}

func (r *ReadStateRequest) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	return b.Err()
}

// IsReadStateRequest reports whether h is a ReadState request.
func IsReadStateRequest(h AMSHeader) bool {
	return h.CmdID == CmdReadState && !HasState(h, StateResponse)
}

// ReadStateResponse reports the ADS and device state of the target.
type ReadStateResponse struct {
	tcpHeader   TCPHeader
	amsHeader   AMSHeader
	Result      uint32
	AdsState    uint16
	DeviceState uint16
}

func NewReadStateResponse(target, sender Addr, result uint32, adsState, deviceState uint16) *ReadStateResponse {
	return &ReadStateResponse{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdReadState,
			StateFlags: StateADSCommand | StateResponse,
		},
		Result:      result,
		AdsState:    adsState,
		DeviceState: deviceState,
	}
}

func (r *ReadStateResponse) Header() *AMSHeader { return &r.amsHeader }

func (r *ReadStateResponse) Encode(b *Buffer) error {
	r.amsHeader.Length = 8
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.Result)
	b.WriteUint16(r.AdsState)
	b.WriteUint16(r.DeviceState)
	return b.Err()
}

func (r *ReadStateResponse) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.Result = b.ReadUint32()
	r.AdsState = b.ReadUint16()
	r.DeviceState = b.ReadUint16()
	return b.Err()
}

// IsReadStateResponse reports whether h is a ReadState response.
func IsReadStateResponse(h AMSHeader) bool {
	return h.CmdID == CmdReadState && HasState(h, StateResponse)
}
