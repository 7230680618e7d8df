package ams

// ReadWriteRequest is the ADS "ReadWrite" command: write WriteData to
// (IndexGroup, IndexOffset), then read ReadLength bytes back in the
// same round trip. Used for symbol handle lookups, handle-based
// reads/writes, and sumup batching (§4.4, §4.6).
type ReadWriteRequest struct {
	tcpHeader   TCPHeader
	amsHeader   AMSHeader
	IndexGroup  uint32
	IndexOffset uint32
	ReadLength  uint32
	WriteData   []byte
}

func NewReadWriteRequest(target, sender Addr, indexGroup, indexOffset, readLength uint32, writeData []byte) *ReadWriteRequest {
	return &ReadWriteRequest{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdReadWrite,
			StateFlags: StateADSCommand,
		},
		IndexGroup:  indexGroup,
		IndexOffset: indexOffset,
		ReadLength:  readLength,
		WriteData:   writeData,
	}
}

func (r *ReadWriteRequest) Header() *AMSHeader { return &r.amsHeader }

func (r *ReadWriteRequest) Encode(b *Buffer) error {
	r.amsHeader.Length = 16 + uint32(len(r.WriteData))
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.IndexGroup)
	b.WriteUint32(r.IndexOffset)
	b.WriteUint32(r.ReadLength)
	b.WriteUint32(uint32(len(r.WriteData)))
	b.Write(r.WriteData)
	return b.Err()
}

func (r *ReadWriteRequest) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.IndexGroup = b.ReadUint32()
	r.IndexOffset = b.ReadUint32()
	r.ReadLength = b.ReadUint32()
	writeLength := b.ReadUint32()
	r.WriteData = append([]byte(nil), b.ReadN(int(writeLength))...)
	return b.Err()
}

// IsReadWriteRequest reports whether h is a ReadWrite request.
func IsReadWriteRequest(h AMSHeader) bool {
	return h.CmdID == CmdReadWrite && !HasState(h, StateResponse)
}

// ReadWriteResponse carries the result code followed by whatever data
// the command read.
type ReadWriteResponse struct {
	tcpHeader TCPHeader
	amsHeader AMSHeader
	Result    uint32
	Data      []byte
}

func NewReadWriteResponse(target, sender Addr, result uint32, data []byte) *ReadWriteResponse {
	return &ReadWriteResponse{
		amsHeader: AMSHeader{
			Target:     target,
			Sender:     sender,
			CmdID:      CmdReadWrite,
			StateFlags: StateADSCommand | StateResponse,
		},
		Result: result,
		Data:   data,
	}
}

func (r *ReadWriteResponse) Header() *AMSHeader { return &r.amsHeader }

func (r *ReadWriteResponse) Encode(b *Buffer) error {
	r.amsHeader.Length = 8 + uint32(len(r.Data))
	r.tcpHeader.Length = amsHeaderLen + r.amsHeader.Length
	b.WriteStruct(&r.tcpHeader)
	b.WriteStruct(&r.amsHeader)
	b.WriteUint32(r.Result)
	b.WriteUint32(uint32(len(r.Data)))
	b.Write(r.Data)
	return b.Err()
}

func (r *ReadWriteResponse) Decode(b *Buffer) error {
	b.ReadStruct(&r.tcpHeader)
	b.ReadStruct(&r.amsHeader)
	r.Result = b.ReadUint32()
	length := b.ReadUint32()
	r.Data = append([]byte(nil), b.ReadN(int(length))...)
	return b.Err()
}

// IsReadWriteResponse reports whether h is a ReadWrite response.
func IsReadWriteResponse(h AMSHeader) bool {
	return h.CmdID == CmdReadWrite && HasState(h, StateResponse)
}
