package wsstream

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrUnknownChannel reports a frame whose leading byte does not resolve
// within the fixed channel set. The violation is per-frame: callers drop the
// frame and keep the session open.
var ErrUnknownChannel = errors.New("unknown channel index")

// Message is a decoded frame: the channel it arrived on and its text payload.
type Message struct {
	Channel Channel
	Text    string
}

// Decode parses one inbound frame: byte 0 is the zero-based channel index,
// the remaining bytes are the base64-encoded payload.
func Decode(frame []byte) (Message, error) {
	if len(frame) == 0 {
		return Message{}, fmt.Errorf("empty frame: %w", ErrUnknownChannel)
	}
	channel := Channel(frame[0])
	if !channel.Valid() {
		return Message{}, fmt.Errorf("index %d: %w", frame[0], ErrUnknownChannel)
	}
	payload, err := base64.StdEncoding.DecodeString(string(frame[1:]))
	if err != nil {
		return Message{}, fmt.Errorf("failed to decode %v payload: %w", channel, err)
	}
	return Message{Channel: channel, Text: string(payload)}, nil
}

// EncodeFrame builds an outbound frame: the channel index byte followed by
// the base64-encoded payload.
func EncodeFrame(channel Channel, payload []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(payload)
	frame := make([]byte, 0, 1+len(encoded))
	frame = append(frame, byte(channel))
	frame = append(frame, encoded...)
	return frame
}
