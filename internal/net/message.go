package net

import (
	"encoding/json"
	"errors"
	"fmt"

	"Kreate/internal/input"
)

// ErrBadMessage is returned for a gesture message that cannot be decoded.
var ErrBadMessage = errors.New("bad gesture message")

// gestureMessage is the wire form sent by the device page:
//
//	{"type": "tap", "clientX": 120.5, "clientY": 88}
//
// clientX and clientY are window-client coordinates measured from the top
// left of the drawing window's content, the space Fyne reports as
// AbsolutePosition. They are not canvas-local; the title bar height is
// subtracted later along with the rest of the canvas origin.
type gestureMessage struct {
	Type    string   `json:"type"`
	ClientX *float64 `json:"clientX"`
	ClientY *float64 `json:"clientY"`
}

// DecodeGesture parses one websocket message. A message without
// coordinates decodes to an event with HasPosition unset; dropping it is
// left to the normalizer.
func DecodeGesture(data []byte) (input.GestureEvent, error) {
	var msg gestureMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return input.GestureEvent{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}

	var ev input.GestureEvent
	switch msg.Type {
	case "tap":
		ev.Kind = input.GestureTap
	case "swipe":
		ev.Kind = input.GestureSwipe
	default:
		return input.GestureEvent{}, fmt.Errorf("%w: type %q", ErrBadMessage, msg.Type)
	}
	if msg.ClientX != nil && msg.ClientY != nil {
		ev.ClientX, ev.ClientY, ev.HasPosition = *msg.ClientX, *msg.ClientY, true
	}
	return ev, nil
}
