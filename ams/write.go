package ams

// WriteRequest is the ADS "Write" command: write Data to
// (IndexGroup, IndexOffset).
type WriteRequest struct {
	tcpHeader   TCPHeader
	amsHeader   AMSHeader
	IndexGroup  uint32
	IndexOffset uint32
	Data        []byte
}

func NewWriteRequest(target, sender Addr, indexGroup, indexOffset uint32, data []byte) *WriteRequest {
	return &WriteRequest{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdWrite,
			StateFlags: StateADSCommand,
		},
		IndexGroup:  indexGroup,
		IndexOffset: indexOffset,
		Data:        data,
	}
}

func (r *WriteRequest) Header() *AMSHeader { return &r.amsHeader }

func (r *WriteRequest) Encode(b *Buffer) error {
	r.amsHeader.Length = 12 + uint32(len(r.Data))
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.IndexGroup)
	b.WriteUint32(r.IndexOffset)
	b.WriteUint32(uint32(len(r.Data)))
	b.Write(r.Data)
	return b.Err()
}

func (r *WriteRequest) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.IndexGroup = b.ReadUint32()
	r.IndexOffset = b.ReadUint32()
	length := b.ReadUint32()
	r.Data = append([]byte(nil), b.ReadN(int(length))...)
	return b.Err()
}

// IsWriteRequest reports whether h is a Write request (not a response).
func IsWriteRequest(h AMSHeader) bool {
	return h.CmdID == CmdWrite && !HasState(h, StateResponse)
}

// WriteResponse carries just the ADS result code; a Write has no
// other payload.
type WriteResponse struct {
	tcpHeader TCPHeader
	amsHeader AMSHeader
	Result    uint32
}

func NewWriteResponse(target, sender Addr, result uint32) *WriteResponse {
	return &WriteResponse{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdWrite,
			StateFlags: StateADSCommand | StateResponse,
		},
		Result: result,
	}
}

func (r *WriteResponse) Header() *AMSHeader { return &r.amsHeader }

func (r *WriteResponse) Encode(b *Buffer) error {
	r.amsHeader.Length = 4
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.Result)
	return b.Err()
}

func (r *WriteResponse) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.Result = b.ReadUint32()
	return b.Err()
}

// IsWriteResponse reports whether h is a Write response.
func IsWriteResponse(h AMSHeader) bool {
	return h.CmdID == CmdWrite && HasState(h, StateResponse)
}
