package wsstream

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Protocol is the sub-protocol negotiated for upgraded calls.
const Protocol = "base64.channel.k8s.io"

const defaultHandshakeTimeout = 15 * time.Second

// State describes where a session is in its lifecycle.
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
	StateErrored
)

// Result is the terminal outcome of a closed session: the full ordered
// message log, the concatenated text of the data channels in arrival order,
// and the close code/reason reported by the remote.
type Result struct {
	Messages  []Message
	Output    string
	CloseCode int
	Reason    string
}

// SessionError is a terminal socket failure. It carries the frames decoded
// before the failure so already-captured output is not lost to diagnostics.
type SessionError struct {
	Err      error
	Messages []Message
	Output   string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session failed: %v", e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// Options configure a session dial.
type Options struct {
	// URL is the ws(s) endpoint, already carrying the original call's path
	// and re-encoded query.
	URL string
	// BearerToken is attached as the Authorization header. It must not be
	// empty: dialing without a credential is a configuration defect, not a
	// request to send a placeholder header.
	BearerToken string
	// Header carries the original call's headers.
	Header http.Header
	// TLS is the client TLS material for wss endpoints.
	TLS *tls.Config
	// HandshakeTimeout bounds the dial; defaults to 15s.
	HandshakeTimeout time.Duration
	// Logger receives session lifecycle events; defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Session owns a duplex connection substituted for a plain request after an
// upgrade. Inbound frames are decoded as they arrive and appended to an
// ordered in-memory log for the session's lifetime; there is no backpressure
// to the remote, so long-running high-volume channels need an external cap.
type Session struct {
	id     string
	conn   *websocket.Conn
	logger zerolog.Logger
	state  atomic.Int32

	frames chan Message
	done   chan struct{}

	mu       sync.Mutex
	messages []Message
	output   []byte
	result   *Result
	err      *SessionError
}

// Dial opens the duplex socket and starts the session's read loop. The
// returned session is Open; terminal state is delivered through Wait.
func Dial(ctx context.Context, options *Options) (*Session, error) {
	if options.URL == "" {
		return nil, fmt.Errorf("session URL was empty")
	}
	if options.BearerToken == "" {
		return nil, fmt.Errorf("cannot upgrade %v: no credential available", options.URL)
	}
	logger := zerolog.Nop()
	if options.Logger != nil {
		logger = *options.Logger
	}
	handshakeTimeout := options.HandshakeTimeout
	if handshakeTimeout == 0 {
		handshakeTimeout = defaultHandshakeTimeout
	}
	dialer := &websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		TLSClientConfig:  options.TLS,
		Subprotocols:     []string{Protocol},
	}
	header := http.Header{}
	for key, values := range options.Header {
		header[key] = values
	}
	header.Set("Authorization", "Bearer "+options.BearerToken)

	session := &Session{
		id:     uuid.New().String(),
		frames: make(chan Message, 128),
		done:   make(chan struct{}),
	}
	session.logger = logger.With().Str("session", session.id).Logger()
	session.state.Store(int32(StateConnecting))

	conn, response, err := dialer.DialContext(ctx, options.URL, header)
	if response != nil && response.Body != nil {
		_ = response.Body.Close()
	}
	if err != nil {
		session.state.Store(int32(StateErrored))
		return nil, fmt.Errorf("failed to dial %v: %w", options.URL, err)
	}
	session.conn = conn
	session.state.Store(int32(StateOpen))
	session.logger.Debug().Str("url", options.URL).Msg("session open")
	go session.readLoop()
	return session, nil
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Frames returns a live tap of decoded frames. The tap is buffered and lossy
// when unconsumed; the authoritative ordered log is always available from the
// terminal Result.
func (s *Session) Frames() <-chan Message {
	return s.frames
}

// Send writes payload on channel, encoding it per the wire format.
func (s *Session) Send(channel Channel, payload []byte) error {
	if s.State() != StateOpen {
		return fmt.Errorf("session is not open")
	}
	frame := EncodeFrame(channel, payload)
	if err := s.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return fmt.Errorf("failed to send %v frame: %w", channel, err)
	}
	return nil
}

// Wait blocks until the session reaches a terminal state. A clean close
// yields a Result; a socket failure yields a *SessionError carrying the
// partial message log.
func (s *Session) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// Messages returns a snapshot of the ordered message log captured so far.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]Message, len(s.messages))
	copy(snapshot, s.messages)
	return snapshot
}

// Output returns the concatenated data-channel text captured so far.
func (s *Session) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.output)
}

func (s *Session) readLoop() {
	defer close(s.done)
	defer close(s.frames)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.finish(err)
			return
		}
		message, err := Decode(data)
		if err != nil {
			// Protocol violation is per-frame: drop it, keep the session.
			s.logger.Warn().Err(err).Msg("dropping frame")
			continue
		}
		s.append(message)
		select {
		case s.frames <- message:
		default:
		}
	}
}

func (s *Session) append(message Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	if message.Channel.IsData() {
		s.output = append(s.output, message.Text...)
	}
}

func (s *Session) finish(cause error) {
	_ = s.conn.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	if closeErr, ok := cause.(*websocket.CloseError); ok {
		s.result = &Result{
			Messages:  s.messages,
			Output:    string(s.output),
			CloseCode: closeErr.Code,
			Reason:    closeErr.Text,
		}
		s.state.Store(int32(StateClosed))
		s.logger.Debug().Int("code", closeErr.Code).Str("reason", closeErr.Text).Msg("session closed")
		return
	}
	s.err = &SessionError{Err: cause, Messages: s.messages, Output: string(s.output)}
	s.state.Store(int32(StateErrored))
	s.logger.Debug().Err(cause).Msg("session errored")
}
