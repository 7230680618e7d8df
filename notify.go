package adsmux

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrpasztoradam/adsmux/ams"
)

// Subscription is the durable sink returned by AddDeviceNotification
// (§4.1's Sink<NotificationStream>). C receives one NotificationStream
// for each sample carrying this subscription's handle, in the order the
// controller emits them, until Unsubscribe is called or the connection
// drops. C is buffered; a sample that arrives while C's buffer is full
// is dropped, not queued.
type Subscription struct {
	Name   string
	Handle uint32
	C      <-chan NotificationStream

	client *Client
	raw    durableSink
	done   chan struct{}
}

// Unsubscribe issues DeleteDeviceNotification and stops delivery. See
// Client.DeleteDeviceNotification for the cached-lookup failure mode.
func (s *Subscription) Unsubscribe(ctx context.Context) error {
	return s.client.DeleteDeviceNotification(ctx, s.Name)
}

// AddDeviceNotification subscribes to value changes/cycles at name
// (§4.1 add_device_notification). It obtains a notification handle via
// a synchronous request, registers a durable sink under that handle,
// and caches name→handle locally so DeleteDeviceNotification can find
// it again without a second round trip.
func (c *Client) AddDeviceNotification(ctx context.Context, name string, length uint32, mode NotificationMode, maxDelay, cycleTime uint32) (*Subscription, error) {
	handle, err := c.getOrCreateHandle(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("adsmux: add notification for %q: %w", name, err)
	}

	transMode := TransModeServerOnChange
	if mode == NotificationModeCyclic {
		transMode = TransModeServerCycle
	}

	req := buildAddNotificationRequest(c.target, c.sender, handle, length, mode, transMode, maxDelay, cycleTime)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := &ams.AddDeviceNotificationResponse{}
	if err := resp.Decode(ams.NewBuffer(frame)); err != nil {
		return nil, err
	}
	if err := adsResultErr(resp.Result); err != nil {
		return nil, fmt.Errorf("adsmux: add notification for %q: %w", name, err)
	}

	sink := newDurableSink()
	c.notifyRegister <- notificationRegistration{handle: resp.NotificationHandle, sink: sink}
	c.notifyHandles.set(name, resp.NotificationHandle)

	out := make(chan NotificationStream, cap(sink))
	done := make(chan struct{})
	go forwardNotifications(c, sink, out, done)

	return &Subscription{
		Name:   name,
		Handle: resp.NotificationHandle,
		C:      out,
		client: c,
		raw:    sink,
		done:   done,
	}, nil
}

func forwardNotifications(c *Client, sink durableSink, out chan<- NotificationStream, done chan struct{}) {
	defer close(out)
	defer close(done)
	for res := range sink {
		if res.err != nil {
			if errors.Is(res.err, ErrNotConnected) {
				c.handleDisconnect()
			}
			return
		}
		select {
		case out <- NotificationStream{Handle: res.handle, Timestamp: res.timestamp, Data: res.data}:
		default:
			// subscriber too slow; drop this sample rather than block the forwarder
		}
	}
}

// DeleteDeviceNotification looks up name's cached notification handle,
// sends the unsubscribe request, and removes the cache entry on
// success. Fails locally with ErrNoSubscription if nothing is cached
// (§7 "State" error kind).
func (c *Client) DeleteDeviceNotification(ctx context.Context, name string) error {
	handle, ok := c.notifyHandles.get(name)
	if !ok {
		return fmt.Errorf("adsmux: delete notification for %q: %w", name, ErrNoSubscription)
	}

	req := buildDeleteNotificationRequest(c.target, c.sender, handle)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return err
	}
	resp := &ams.DeleteDeviceNotificationResponse{}
	if err := resp.Decode(ams.NewBuffer(frame)); err != nil {
		return err
	}
	if err := adsResultErr(resp.Result); err != nil {
		return err
	}

	select {
	case c.notifyUnregister <- handle:
	case <-c.shutdown:
	}
	c.notifyHandles.delete(name)
	return nil
}
