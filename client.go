// Package adsmux implements a synchronous client for the ADS/AMS
// protocol used to talk to Beckhoff TwinCAT controllers over TCP. A
// Client multiplexes concurrent request/response exchanges over one
// connection, fans out asynchronous device notifications to
// subscribers, and layers read/write-by-name, bulk "sumup" operations,
// and handle caching on top.
package adsmux

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mrpasztoradam/adsmux/ams"
	"github.com/sirupsen/logrus"
)

const adsTCPServerPort uint16 = 48898

// Client is a single ADS/AMS session to one target controller. Not
// safe for concurrent calls from multiple goroutines (§5): the
// transport write side and the invoke-id counter are mutated by every
// request. The background reader goroutine is the only other party
// touching the connection.
type Client struct {
	cfg config
	log *logrus.Entry

	target ams.Addr
	sender ams.Addr

	lifecycleMu sync.Mutex
	connMu      sync.Mutex
	conn        net.Conn

	nextInvokeID uint32

	generalRegister  chan generalRegistration
	notifyRegister   chan notificationRegistration
	notifyUnregister chan uint32
	streamUpdate     chan net.Conn
	shutdown         chan struct{}
	readerDone       chan struct{}
	readerStarted    bool

	symbolHandles *handleCache
	notifyHandles *handleCache

	closeOnce sync.Once
}

// New builds a Client targeting the given AMS address. Connect must be
// called before any request is issued.
func New(target ams.Addr, opts ...Option) *Client {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger
	if log == nil {
		log = logrus.WithField("component", "adsmux")
	} else {
		log = log.WithField("component", "adsmux")
	}
	return &Client{
		cfg:              cfg,
		log:              log,
		target:           target,
		generalRegister:  make(chan generalRegistration, 8),
		notifyRegister:   make(chan notificationRegistration, 8),
		notifyUnregister: make(chan uint32, 8),
		streamUpdate:     make(chan net.Conn, 1),
		shutdown:         make(chan struct{}),
		readerDone:       make(chan struct{}),
		symbolHandles:    newHandleCache(),
		notifyHandles:    newHandleCache(),
	}
}

// Connect is idempotent (§8 property 6, §4.1). If no transport exists,
// it dials the target, derives (or learns) the source AmsAddress,
// starts the reader goroutine on first success, and finishes with a
// read_state round trip. On later calls with a live transport it is a
// no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	c.connMu.Lock()
	alreadyConnected := c.conn != nil
	c.connMu.Unlock()
	if alreadyConnected {
		return nil
	}

	conn, sender, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("adsmux: connect: %w", err)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	c.sender = sender

	if !c.readerStarted {
		c.readerStarted = true
		go c.runReader(conn)
	} else {
		select {
		case c.streamUpdate <- conn:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if _, err := c.ReadState(ctx); err != nil {
		return fmt.Errorf("adsmux: connect: read_state handshake: %w", err)
	}
	c.log.WithField("target", c.target.String()).Info("connected")
	return nil
}

// dial opens the TCP transport and determines the source AmsAddress
// (§4.1): via the loopback port-open handshake when no route is
// configured, otherwise derived from the local socket address (first
// four IPv4 octets plus ".1.1"), grounded on the yatesdr-warlogix
// reference client's Connect.
func (c *Client) dial(ctx context.Context) (net.Conn, ams.Addr, error) {
	host := c.cfg.route
	if host == "" {
		host = "127.0.0.1"
	}
	addr := fmt.Sprintf("%s:%d", host, c.cfg.targetPort)

	dialer := net.Dialer{Timeout: c.cfg.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, ams.Addr{}, err
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}

	if c.cfg.route == "" {
		sender, err := c.portOpenHandshake(conn)
		if err != nil {
			conn.Close()
			return nil, ams.Addr{}, err
		}
		return conn, sender, nil
	}

	sender, err := c.deriveSourceAddr(conn)
	if err != nil {
		conn.Close()
		return nil, ams.Addr{}, err
	}
	return conn, sender, nil
}

func (c *Client) portOpenHandshake(conn net.Conn) (ams.Addr, error) {
	conn.SetWriteDeadline(time.Now().Add(c.cfg.writeTimeout))
	if _, err := conn.Write(ams.PortOpenRequest()); err != nil {
		return ams.Addr{}, fmt.Errorf("port-open write: %w", err)
	}
	conn.SetReadDeadline(time.Now().Add(c.cfg.readTimeout))
	resp := make([]byte, 14)
	if _, err := readFull(conn, resp); err != nil {
		return ams.Addr{}, fmt.Errorf("port-open read: %w", err)
	}
	conn.SetReadDeadline(time.Time{})
	return ams.DecodePortOpenResponse(resp)
}

func (c *Client) deriveSourceAddr(conn net.Conn) (ams.Addr, error) {
	local, ok := conn.LocalAddr().(*net.TCPAddr)
	if !ok || local.IP.To4() == nil {
		return ams.Addr{}, fmt.Errorf("adsmux: cannot derive source AMS address from %v", conn.LocalAddr())
	}
	ip4 := local.IP.To4()
	netID := [6]byte{ip4[0], ip4[1], ip4[2], ip4[3], 1, 1}
	return ams.NewAddr(netID, uint16(local.Port)), nil
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Close shuts down the transport and signals the reader to exit. Safe
// to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.shutdown)
		c.connMu.Lock()
		if c.conn != nil {
			err = c.conn.Close()
		}
		c.connMu.Unlock()
		if c.readerStarted {
			<-c.readerDone
		}
	})
	return err
}

// nextID returns the next invoke-id (§3): monotonically increasing,
// scoped to this Client, not reset on reconnect. Wrap-around after 2^32
// requests is unspecified upstream; this implementation lets it wrap.
func (c *Client) nextID() uint32 {
	return atomic.AddUint32(&c.nextInvokeID, 1)
}

// RequestRx allocates an invoke-id, registers a fresh one-shot sink,
// writes the request, and returns the sink without waiting for a reply
// (§4.1 request_rx). Registration happens strictly before the write so
// the reader's pre-read drain can never miss it (§5 ordering
// guarantee).
func (c *Client) RequestRx(req ams.Request) (oneShotSink, uint32, error) {
	select {
	case <-c.shutdown:
		return nil, 0, ErrClosed
	default:
	}

	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()
	if conn == nil {
		return nil, 0, ErrNotConnected
	}

	invokeID := c.nextID()
	req.Header().InvokeID = invokeID

	sink := newOneShotSink()
	c.generalRegister <- generalRegistration{invokeID: invokeID, sink: sink}

	buf := ams.NewBuffer(nil)
	if err := req.Encode(buf); err != nil {
		return sink, invokeID, fmt.Errorf("adsmux: encode request: %w", err)
	}

	conn.SetWriteDeadline(time.Now().Add(c.cfg.writeTimeout))
	if _, err := conn.Write(buf.Bytes()); err != nil {
		return sink, invokeID, fmt.Errorf("adsmux: write request: %w", err)
	}
	return sink, invokeID, nil
}

// Request is the blocking form of RequestRx (§4.1 request). It returns
// the raw response frame for the caller to decode with the matching
// Response type. On a terminal disconnect error from the reader it runs
// facade-side cleanup (§4.7): shut down the transport, clear both
// handle caches, and drop the transport reference so a later Connect
// redials.
func (c *Client) Request(ctx context.Context, req ams.Request) ([]byte, error) {
	sink, _, err := c.RequestRx(req)
	if err != nil {
		return nil, err
	}
	select {
	case res := <-sink:
		if res.err != nil {
			if errors.Is(res.err, ErrNotConnected) {
				c.handleDisconnect()
			}
			return nil, res.err
		}
		return res.frame, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// handleDisconnect performs the facade side of §4.7's disconnect
// recovery: close and forget the current transport and clear both
// handle caches (§8 property 5), so the next Connect reopens cleanly
// and the next ReadByName/AddDeviceNotification resolves fresh
// handles instead of reusing stale ones from the dead session.
func (c *Client) handleDisconnect() {
	c.connMu.Lock()
	conn := c.conn
	c.conn = nil
	c.connMu.Unlock()
	if conn != nil {
		conn.Close()
	}
	c.symbolHandles.clear()
	c.notifyHandles.clear()
}

// ReadDeviceInfo reports the controller's version and name.
func (c *Client) ReadDeviceInfo(ctx context.Context) (*ams.ReadDeviceInfoResponse, error) {
	req := buildReadDeviceInfoRequest(c.target, c.sender)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := &ams.ReadDeviceInfoResponse{}
	if err := resp.Decode(ams.NewBuffer(frame)); err != nil {
		return nil, err
	}
	return resp, adsResultErr(resp.Result)
}

// ReadState reports the ADS and device state of the target; also used
// internally as the idempotent-connect handshake (§4.1).
func (c *Client) ReadState(ctx context.Context) (*ams.ReadStateResponse, error) {
	req := buildReadStateRequest(c.target, c.sender)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := &ams.ReadStateResponse{}
	if err := resp.Decode(ams.NewBuffer(frame)); err != nil {
		return nil, err
	}
	return resp, adsResultErr(resp.Result)
}

// WriteControl requests an ADS-state transition on the target.
func (c *Client) WriteControl(ctx context.Context, adsState, deviceState uint16, data []byte) error {
	req := buildWriteControlRequest(c.target, c.sender, adsState, deviceState, data)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return err
	}
	resp := &ams.WriteControlResponse{}
	if err := resp.Decode(ams.NewBuffer(frame)); err != nil {
		return err
	}
	return adsResultErr(resp.Result)
}

// ReadWrite is a thin wrapper producing a ReadWriteResponse for an
// arbitrary (index group, index offset) pair (§4.1).
func (c *Client) ReadWrite(ctx context.Context, indexGroup, indexOffset, readLength uint32, writeData []byte) (*ams.ReadWriteResponse, error) {
	req := ams.NewReadWriteRequest(c.target, c.sender, indexGroup, indexOffset, readLength, writeData)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := &ams.ReadWriteResponse{}
	if err := resp.Decode(ams.NewBuffer(frame)); err != nil {
		return nil, err
	}
	return resp, adsResultErr(resp.Result)
}

// adsResultErr converts a non-zero ADS result code into an *ams.AdsError
// (§7). It does not trigger disconnect handling itself; the reader does
// that when a frame's header error field is ErrPortNotConnected.
func adsResultErr(result uint32) error {
	if result == ams.NoError {
		return nil
	}
	return &ams.AdsError{Code: result}
}
