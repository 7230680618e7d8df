package adsmux

import (
	"time"

	"github.com/sirupsen/logrus"
)

// config holds the tunables a Client is built with. Defaults match the
// teacher's hardcoded behavior; Option values override them.
type config struct {
	route        string
	targetPort   uint16
	dialTimeout  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       *logrus.Entry
}

func defaultConfig() config {
	return config{
		targetPort:   adsTCPServerPort,
		dialTimeout:  5 * time.Second,
		readTimeout:  time.Second,
		writeTimeout: time.Second,
	}
}

// Option configures a Client at construction time. Grounded on the
// yatesdr-warlogix reference client's functional-options constructor
// (WithAmsNetId/WithAmsPort/WithTimeout).
type Option func(*config)

// WithRoute sets the target host or IP the Client dials. If unset,
// Connect dials loopback and performs the port-open handshake to learn
// the local AMS address instead of deriving it from the socket.
func WithRoute(route string) Option {
	return func(c *config) { c.route = route }
}

// WithTargetPort overrides the AMS TCP server port (default 48898).
func WithTargetPort(port uint16) Option {
	return func(c *config) { c.targetPort = port }
}

// WithDialTimeout bounds the initial TCP connect.
func WithDialTimeout(d time.Duration) Option {
	return func(c *config) { c.dialTimeout = d }
}

// WithReadTimeout sets the reader's periodic read deadline, the safety
// valve described in §4.5: a timed-out read is not a disconnect, just a
// chance for the reader loop to re-check its control channels.
func WithReadTimeout(d time.Duration) Option {
	return func(c *config) { c.readTimeout = d }
}

// WithWriteTimeout bounds each frame write.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *config) { c.writeTimeout = d }
}

// WithLogger injects a logrus entry the Client and its reader log
// through, instead of the package-level default. Useful for attaching
// caller-specific fields (request id, subsystem) ahead of this
// package's own "component"/"target" fields.
func WithLogger(entry *logrus.Entry) Option {
	return func(c *config) { c.logger = entry }
}
