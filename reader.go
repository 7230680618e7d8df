package adsmux

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/mrpasztoradam/adsmux/ams"
)

// runReader is the background reader goroutine, started once per
// Client lifetime (§3 invariant, §4.3). It owns the two correlation
// tables exclusively; the facade only ever reaches them through the
// generalRegister/notifyRegister/notifyUnregister/streamUpdate
// channels, so the tables never need a lock.
func (c *Client) runReader(conn net.Conn) {
	defer close(c.readerDone)

	general := make(map[uint32]oneShotSink)
	notify := make(map[uint32]durableSink)

	drainRegistrations := func() {
		for {
			select {
			case reg := <-c.generalRegister:
				general[reg.invokeID] = reg.sink
			case reg := <-c.notifyRegister:
				notify[reg.handle] = reg.sink
			case handle := <-c.notifyUnregister:
				if sink, ok := notify[handle]; ok {
					delete(notify, handle)
					close(sink)
				}
			default:
				return
			}
		}
	}

	disconnectFanout := func(err error) {
		for id, sink := range general {
			sendOneShot(sink, responseResult{err: err})
			delete(general, id)
		}
		for handle, sink := range notify {
			sendDurable(sink, notificationResult{err: err})
			close(sink)
			delete(notify, handle)
		}
	}

	for {
		drainRegistrations()

		if conn == nil {
			select {
			case <-c.shutdown:
				return
			case conn = <-c.streamUpdate:
				continue
			}
		}

		if c.cfg.readTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(c.cfg.readTimeout))
		}
		hdr, frame, err := ams.ReadFrame(conn)

		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				// Safety valve (§4.5): not a disconnect, just a chance
				// to re-check shutdown/registrations.
				select {
				case <-c.shutdown:
					return
				default:
				}
				continue
			}

			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				drainRegistrations()
				disconnectFanout(ErrNotConnected)
				conn = nil
				continue
			}

			// Other I/O errors: await a new transport without fan-out,
			// per the literal (asymmetric) wording of §4.3 step 4.
			conn = nil
			continue
		}

		drainRegistrations()

		if ams.IsDeviceNotificationRequest(hdr.AMSHeader) {
			c.dispatchNotification(frame, notify)
			continue
		}

		if sink, ok := general[hdr.AMSHeader.InvokeID]; ok {
			delete(general, hdr.AMSHeader.InvokeID)
			sendOneShot(sink, responseResult{hdr: hdr.AMSHeader, frame: frame})
		}
		// else: response for an unknown invoke-id, dropped silently (§4.3 tie-break).

		if hdr.AMSHeader.ErrorCode == ams.ErrPortNotConnected {
			disconnectFanout(ErrNotConnected)
			conn = nil
		}
	}
}

func (c *Client) dispatchNotification(frame []byte, notify map[uint32]durableSink) {
	var req ams.DeviceNotificationRequest
	if err := req.Decode(ams.NewBuffer(frame)); err != nil {
		c.log.WithError(err).Warn("malformed device notification frame")
		return
	}
	for _, stamp := range req.Stamps {
		for _, sample := range stamp.Samples {
			sink, ok := notify[sample.Handle]
			if !ok {
				continue // unknown handle, dropped silently (§4.3 tie-break)
			}
			res := notificationResult{handle: sample.Handle, timestamp: stamp.Timestamp, data: sample.Data}
			if !sendDurable(sink, res) {
				// Subscriber gone: de-register (§4.3 tie-break, §4.2).
				delete(notify, sample.Handle)
				close(sink)
			}
		}
	}
}

// sendOneShot delivers res without blocking; the sink is buffered by
// one so this never fails in practice, but a defensive non-blocking
// send keeps the reader from ever stalling on a caller.
func sendOneShot(sink oneShotSink, res responseResult) {
	select {
	case sink <- res:
	default:
	}
}

// sendDurable attempts a non-blocking delivery and reports whether it
// succeeded; a full buffer is treated as an abandoned subscriber.
func sendDurable(sink durableSink, res notificationResult) bool {
	select {
	case sink <- res:
		return true
	default:
		return false
	}
}
