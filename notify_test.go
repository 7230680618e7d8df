package adsmux

import (
	"testing"
	"time"

	"github.com/mrpasztoradam/adsmux/ams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotificationFanout is §8 scenario S3: a DeviceNotification frame
// with one stamp and one sample referencing the subscribed handle is
// delivered exactly once to the subscriber, and the general
// correlation table is left untouched by it.
func TestNotificationFanout(t *testing.T) {
	server := newFakeServer(t)
	client := newTestClient(server)
	t.Cleanup(func() { client.Close() })

	type subResult struct {
		sub *Subscription
		err error
	}
	subResults := make(chan subResult, 1)
	go func() {
		if err := client.Connect(ctxTimeout(t)); err != nil {
			subResults <- subResult{err: err}
			return
		}
		sub, err := client.AddDeviceNotification(ctxTimeout(t), "Main.counter", 2, NotificationModeOnChange, 1, 1)
		subResults <- subResult{sub, err}
	}()

	conn := acceptAndHandshake(t, server)

	// AddDeviceNotification resolves the symbol handle first.
	hdr, frame := recvFrame(t, conn)
	require.Equal(t, ams.CmdReadWrite, hdr.AMSHeader.CmdID)
	var getHandle ams.ReadWriteRequest
	require.NoError(t, getHandle.Decode(ams.NewBuffer(frame)))
	require.Equal(t, ams.IdxGetSymHandleByName, getHandle.IndexGroup)
	handleBytes := make([]byte, 4)
	putUint32LE(handleBytes, 77)
	sendResponse(t, conn, ams.NewReadWriteResponse(hdr.AMSHeader.Sender, hdr.AMSHeader.Target, ams.NoError, handleBytes), hdr.AMSHeader.InvokeID)

	hdr, frame = recvFrame(t, conn)
	require.Equal(t, ams.CmdAddDeviceNotification, hdr.AMSHeader.CmdID)
	var addReq ams.AddDeviceNotificationRequest
	require.NoError(t, addReq.Decode(ams.NewBuffer(frame)))
	sendResponse(t, conn, ams.NewAddDeviceNotificationResponse(hdr.AMSHeader.Sender, hdr.AMSHeader.Target, ams.NoError, 9001), hdr.AMSHeader.InvokeID)

	res := <-subResults
	require.NoError(t, res.err)
	sub := res.sub
	require.Equal(t, uint32(9001), sub.Handle)

	notif := &ams.DeviceNotificationRequest{}
	*notif = ams.DeviceNotificationRequest{
		StampCount: 1,
		Stamps: []ams.NotificationStamp{{
			Timestamp:   132000000000000000,
			SampleCount: 1,
			Samples: []ams.NotificationSample{
				{Handle: 9001, Size: 2, Data: []byte{0x07, 0x00}},
			},
		}},
	}
	notif.Header().CmdID = ams.CmdDeviceNotification
	notif.Header().StateFlags = ams.StateADSCommand
	notif.Header().Target = hdr.AMSHeader.Sender
	notif.Header().Sender = hdr.AMSHeader.Target
	buf := ams.NewBuffer(nil)
	require.NoError(t, notif.Encode(buf))
	_, err := conn.Write(buf.Bytes())
	require.NoError(t, err)

	select {
	case got, ok := <-sub.C:
		require.True(t, ok)
		assert.Equal(t, uint32(9001), got.Handle)
		assert.Equal(t, []byte{0x07, 0x00}, got.Data)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never received the notification")
	}

	select {
	case extra, ok := <-sub.C:
		t.Fatalf("subscriber received a second, unexpected notification: ok=%v %+v", ok, extra)
	case <-time.After(100 * time.Millisecond):
	}
}

// TestDeleteDeviceNotificationRequiresCachedSubscription is the §7
// "State" error kind: unsubscribing with nothing cached fails locally,
// without a network round trip.
func TestDeleteDeviceNotificationRequiresCachedSubscription(t *testing.T) {
	client := New(fakeTarget)
	err := client.DeleteDeviceNotification(ctxTimeout(t), "Main.counter")
	require.ErrorIs(t, err, ErrNoSubscription)
}

// TestReleaseHandleRequiresCachedHandle mirrors the above for
// ReleaseHandle.
func TestReleaseHandleRequiresCachedHandle(t *testing.T) {
	client := New(fakeTarget)
	err := client.ReleaseHandle(ctxTimeout(t), "Main.counter")
	require.ErrorIs(t, err, ErrNoHandle)
}
