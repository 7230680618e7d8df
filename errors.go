package adsmux

import "errors"

// Sentinel errors surfaced by the facade (§7 error taxonomy). Wrap with
// fmt.Errorf("...: %w", err) where additional context (a name, a
// handle) is useful; compare with errors.Is.
var (
	// ErrNotConnected is returned by operations attempted before a
	// successful Connect, and by in-flight sinks on disconnect.
	ErrNotConnected = errors.New("adsmux: not connected")

	// ErrSymbolNotFound is returned when GET_SYMHANDLE_BY_NAME comes
	// back with anything other than a 4-byte handle payload.
	ErrSymbolNotFound = errors.New("adsmux: variable not found")

	// ErrNoSubscription is returned by DeleteDeviceNotification when
	// no cached notification handle exists for the given name.
	ErrNoSubscription = errors.New("adsmux: no cached subscription for name")

	// ErrNoHandle is returned by ReleaseHandle when no cached symbol
	// handle exists for the given name.
	ErrNoHandle = errors.New("adsmux: no cached handle for name")

	// ErrClosed is returned by RequestRx, and so by every method that
	// sends a request, on a Client after Close.
	ErrClosed = errors.New("adsmux: client closed")

	// errSinkAbandoned names a sink whose receiver gave up. No code path
	// produces it: the reader detects an abandoned sink by a failed
	// send and removes it without an error value.
	errSinkAbandoned = errors.New("adsmux: sink abandoned")
)
