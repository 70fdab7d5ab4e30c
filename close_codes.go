package wsguard

import (
	"github.com/fasthttp/websocket"
)

// Close codes callers are most likely to pass to Close or receive in close
// events, re-exported so importing the websocket package is not required.
const (
	CloseNormalClosure    = websocket.CloseNormalClosure
	CloseGoingAway        = websocket.CloseGoingAway
	CloseNoStatusReceived = websocket.CloseNoStatusReceived
	CloseAbnormalClosure  = websocket.CloseAbnormalClosure
)

// reasonReconnecting is sent when the supervisor closes a handle it is about
// to replace. The normal code keeps that handle's own close event from being
// classified as abnormal and cascading a second reconnect.
const reasonReconnecting = "Reconnecting"

// isExpectedCloseCode reports whether a close code means a normal, expected
// shutdown. Everything outside this set is reconnect-worthy.
func isExpectedCloseCode(code int) bool {
	switch code {
	case websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived:
		return true
	default:
		return false
	}
}
