package adsmux

import "github.com/mrpasztoradam/adsmux/ams"

// responseResult is what the reader delivers to a one-shot sink: the
// decoded header plus the raw frame bytes (so the caller can re-decode
// the command-specific payload), or a terminal error.
type responseResult struct {
	hdr   ams.AMSHeader
	frame []byte
	err   error
}

// oneShotSink carries exactly zero or one responseResult during its
// lifetime (§8 property 2). Buffered by one so the reader never blocks
// delivering to it.
type oneShotSink chan responseResult

func newOneShotSink() oneShotSink {
	return make(oneShotSink, 1)
}

// notificationResult is what the reader delivers to a durable sink: one
// decoded (handle, timestamp, data) sample, or a terminal disconnect
// error.
type notificationResult struct {
	handle    uint32
	timestamp uint64
	data      []byte
	err       error
}

// durableSink receives every DeviceNotification frame referencing its
// handle until unsubscribe or disconnect (§8 property 3). Buffered so a
// slow subscriber doesn't stall the reader on a single delivery; the
// reader treats a full buffer as an abandoned sink (§4.3 tie-break).
type durableSink chan notificationResult

func newDurableSink() durableSink {
	return make(durableSink, 16)
}

// generalRegistration installs a one-shot sink under invokeID in the
// reader-owned general table, sent over the facade→reader control
// channel described in §4.2.
type generalRegistration struct {
	invokeID uint32
	sink     oneShotSink
}

// notificationRegistration installs a durable sink under handle in the
// reader-owned notification table.
type notificationRegistration struct {
	handle uint32
	sink   durableSink
}
