package ams

// amsHeaderLen is the fixed size, in bytes, of an AMSHeader: two 8-byte
// Addr values plus five uint32/uint16 fields (6+2 + 6+2 + 2+2+4+4+4).
const amsHeaderLen = 32

// TCPHeader is the 6-byte AMS/TCP framing prefix: a reserved word
// (always zero) followed by the little-endian length, in bytes, of the
// AMSHeader plus its command-specific payload.
type TCPHeader struct {
	Reserved uint16
	Length   uint32
}

func (h *TCPHeader) encode(b *Buffer) {
	b.WriteUint16(h.Reserved)
	b.WriteUint32(h.Length)
}

func (h *TCPHeader) decode(b *Buffer) {
	h.Reserved = b.ReadUint16()
	h.Length = b.ReadUint32()
}

// AMSHeader is the 32-byte header carried by every ADS command.
type AMSHeader struct {
	Target     Addr
	Sender     Addr
	CmdID      uint16
	StateFlags uint16
	Length     uint32 // length, in bytes, of the command-specific payload
	ErrorCode  uint32 // ADS error field; zero means the payload is valid
	InvokeID   uint32
}

func (h *AMSHeader) encode(b *Buffer) {
	h.Target.encode(b)
	h.Sender.encode(b)
	b.WriteUint16(h.CmdID)
	b.WriteUint16(h.StateFlags)
	b.WriteUint32(h.Length)
	b.WriteUint32(h.ErrorCode)
	b.WriteUint32(h.InvokeID)
}

func (h *AMSHeader) decode(b *Buffer) {
	h.Target.decode(b)
	h.Sender.decode(b)
	h.CmdID = b.ReadUint16()
	h.StateFlags = b.ReadUint16()
	h.Length = b.ReadUint32()
	h.ErrorCode = b.ReadUint32()
	h.InvokeID = b.ReadUint32()
}

// HasState reports whether all bits of flag are set in h.StateFlags.
func HasState(h AMSHeader, flag uint16) bool {
	return h.StateFlags&flag == flag
}

// State flag bits (ADS state flags, §6).
const (
	StateADSCommand uint16 = 0x0004 // this is an ADS command (vs. a raw AMS router command)
	StateResponse   uint16 = 0x0001 // this is a response, not a request
)

// Command ids (§6 "Command-ids handled").
const (
	CmdReadDeviceInfo           uint16 = 0x0001
	CmdRead                     uint16 = 0x0002
	CmdWrite                    uint16 = 0x0003
	CmdReadState                uint16 = 0x0004
	CmdWriteControl             uint16 = 0x0005
	CmdAddDeviceNotification    uint16 = 0x0006
	CmdDeleteDeviceNotification uint16 = 0x0007
	CmdDeviceNotification       uint16 = 0x0008
	CmdReadWrite                uint16 = 0x0009
)

// Header is the common (TCPHeader, AMSHeader) prefix shared by every
// frame. Decoding just the Header lets the reader inspect CmdID and
// InvokeID before dispatching to the command-specific Decode.
type Header struct {
	TCPHeader TCPHeader
	AMSHeader AMSHeader
}

func (h *Header) Decode(b *Buffer) error {
	b.ReadStruct(&h.TCPHeader)
	b.ReadStruct(&h.AMSHeader)
	return b.Err()
}

// Request is satisfied by every outbound command's request type.
type Request interface {
	Header() *AMSHeader
	Encode(b *Buffer) error
}

// Response is satisfied by every command's response type.
type Response interface {
	Header() *AMSHeader
	Decode(b *Buffer) error
}
