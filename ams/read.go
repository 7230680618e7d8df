package ams

// ReadRequest is the ADS "Read" command: read Length bytes from
// (IndexGroup, IndexOffset).
type ReadRequest struct {
	tcpHeader  TCPHeader
	amsHeader  AMSHeader
	IndexGroup uint32
	IndexOffset uint32
	Length     uint32
}

// NewReadRequest builds a Read request. InvokeID is assigned by the
// client at send time.
func NewReadRequest(target, sender Addr, indexGroup, indexOffset, length uint32) *ReadRequest {
	return &ReadRequest{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdRead,
			StateFlags: StateADSCommand,
		},
		IndexGroup:  indexGroup,
		IndexOffset: indexOffset,
		Length:      length,
	}
}

func (r *ReadRequest) Header() *AMSHeader { return &r.amsHeader }

func (r *ReadRequest) Encode(b *Buffer) error {
	r.amsHeader.Length = 12
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.IndexGroup)
	b.WriteUint32(r.IndexOffset)
	b.WriteUint32(r.Length)
	return b.Err()
}

func (r *ReadRequest) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.IndexGroup = b.ReadUint32()
	r.IndexOffset = b.ReadUint32()
	r.Length = b.ReadUint32()
	return b.Err()
}

// IsReadRequest reports whether h is a Read request (not a response).
func IsReadRequest(h AMSHeader) bool {
	return h.CmdID == CmdRead && !HasState(h, StateResponse)
}

// ReadResponse is the response to a Read request: a result code
// followed by the data actually read.
type ReadResponse struct {
	tcpHeader TCPHeader
	amsHeader AMSHeader
	Result    uint32
	Data      []byte
}

func NewReadResponse(target, sender Addr, result uint32, data []byte) *ReadResponse {
	return &ReadResponse{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdRead,
			StateFlags: StateADSCommand | StateResponse,
		},
		Result: result,
		Data:   data,
	}
}

func (r *ReadResponse) Header() *AMSHeader { return &r.amsHeader }

func (r *ReadResponse) Encode(b *Buffer) error {
	r.amsHeader.Length = 8 + uint32(len(r.Data))
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.Result)
	b.WriteUint32(uint32(len(r.Data)))
	b.Write(r.Data)
	return b.Err()
}

func (r *ReadResponse) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.Result = b.ReadUint32()
	length := b.ReadUint32()
	r.Data = append([]byte(nil), b.ReadN(int(length))...)
	return b.Err()
}

// IsReadResponse reports whether h is a Read response.
func IsReadResponse(h AMSHeader) bool {
	return h.CmdID == CmdRead && HasState(h, StateResponse)
}
