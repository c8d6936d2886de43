package wsstream

import "fmt"

// Channel identifies the logical stream a multiplexed frame belongs to. The
// first three indices follow the POSIX file descriptor convention for stdin,
// stdout and stderr; error and resize are control channels.
type Channel byte

const (
	Stdin  Channel = 0
	Stdout Channel = 1
	Stderr Channel = 2
	Error  Channel = 3
	Resize Channel = 4
)

var channelNames = [...]string{"stdin", "stdout", "stderr", "error", "resize"}

// Valid reports whether the channel index falls within the fixed set.
func (c Channel) Valid() bool {
	return int(c) < len(channelNames)
}

// IsData reports whether the channel carries process output rather than
// control traffic.
func (c Channel) IsData() bool {
	return c == Stdin || c == Stdout || c == Stderr
}

func (c Channel) String() string {
	if c.Valid() {
		return channelNames[c]
	}
	return fmt.Sprintf("channel(%d)", byte(c))
}
