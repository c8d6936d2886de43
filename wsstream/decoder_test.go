package wsstream

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	frame := append([]byte{1}, []byte("aGVsbG8=")...)
	message, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, Stdout, message.Channel)
	assert.Equal(t, "stdout", message.Channel.String())
	assert.Equal(t, "hello", message.Text)
}

func TestDecode_UnknownChannel(t *testing.T) {
	frame := append([]byte{9}, []byte(base64.StdEncoding.EncodeToString([]byte("x")))...)
	_, err := Decode(frame)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestDecode_EmptyFrame(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestDecode_InvalidPayload(t *testing.T) {
	_, err := Decode([]byte{2, '%', '%'})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownChannel)
}

func TestEncodeFrame(t *testing.T) {
	frame := EncodeFrame(Stdin, []byte("foo\n"))
	assert.Equal(t, byte(0), frame[0])
	message, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, Stdin, message.Channel)
	assert.Equal(t, "foo\n", message.Text)
}

func TestChannel_Valid(t *testing.T) {
	assert.True(t, Resize.Valid())
	assert.False(t, Channel(5).Valid())
	assert.Equal(t, "channel(9)", Channel(9).String())
}
