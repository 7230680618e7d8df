package adsmux

import (
	"net"
	"testing"

	"github.com/mrpasztoradam/adsmux/ams"
	"github.com/stretchr/testify/require"
)

// fakeTarget is the literal AMS address spec.md §8 uses in its concrete
// scenarios (e.g. S1, S2).
var fakeTarget = ams.NewAddr([6]byte{192, 168, 0, 150, 1, 1}, 851)

// fakeServer is a minimal ADS peer: it accepts TCP connections one at
// a time and lets a test drive each frame by frame, standing in
// for a TwinCAT controller so the facade/reader/correlation-table
// behavior can be exercised over a real socket without a live device.
type fakeServer struct {
	t  *testing.T
	ln net.Listener
}

func newFakeServer(t *testing.T) *fakeServer {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	return &fakeServer{t: t, ln: ln}
}

func (s *fakeServer) hostPort() (string, uint16) {
	addr := s.ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), uint16(addr.Port)
}

func (s *fakeServer) accept() net.Conn {
	conn, err := s.ln.Accept()
	require.NoError(s.t, err)
	return conn
}

// recvFrame reads one framed AMS message from conn.
func recvFrame(t *testing.T, conn net.Conn) (*ams.Header, []byte) {
	hdr, frame, err := ams.ReadFrame(conn)
	require.NoError(t, err)
	return hdr, frame
}

// sendResponse stamps resp with invokeID and writes its encoded frame
// to conn. Every concrete response type in ams/ satisfies ams.Request
// (Header+Encode), so it doubles as the "encodable" interface here.
func sendResponse(t *testing.T, conn net.Conn, resp ams.Request, invokeID uint32) {
	resp.Header().InvokeID = invokeID
	buf := ams.NewBuffer(nil)
	require.NoError(t, resp.Encode(buf))
	_, err := conn.Write(buf.Bytes())
	require.NoError(t, err)
}

// newTestClient builds a Client pointed at server with the default
// timeouts plus any extra opts; tests bound their calls with ctxTimeout
// so a protocol mistake never hangs the suite.
func newTestClient(server *fakeServer, opts ...Option) *Client {
	host, port := server.hostPort()
	base := []Option{WithRoute(host), WithTargetPort(port)}
	return New(fakeTarget, append(base, opts...)...)
}

// acceptAndHandshake accepts the client's connection and answers the
// ReadState round trip Connect always performs (§4.1).
func acceptAndHandshake(t *testing.T, server *fakeServer) net.Conn {
	conn := server.accept()
	hdr, _ := recvFrame(t, conn)
	require.Equal(t, ams.CmdReadState, hdr.AMSHeader.CmdID)
	resp := ams.NewReadStateResponse(hdr.AMSHeader.Sender, hdr.AMSHeader.Target, ams.NoError, ams.AdsStateRun, 0)
	sendResponse(t, conn, resp, hdr.AMSHeader.InvokeID)
	return conn
}
