package remote

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/maderarasto/cordova-jsx/internal/errors"
	"github.com/maderarasto/cordova-jsx/pkg/protocol"
)

// SessionConfig configures a Session.
type SessionConfig struct {
	// MaxMessageSize caps a single client message.
	MaxMessageSize int64

	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration

	// IdleTimeout closes the session when the client stays silent. Zero
	// disables it.
	IdleTimeout time.Duration
}

// DefaultSessionConfig returns the defaults used by Handler.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxMessageSize: 64 * 1024,
		WriteTimeout:   10 * time.Second,
	}
}

// StartFunc mounts an application on s. It runs on the session goroutine.
// A non-nil stop is called on that goroutine once the session ends, after
// the last event has been dispatched.
type StartFunc func(ctx context.Context, s *Surface) (stop func(), err error)

// Session drives one websocket client.
type Session struct {
	conn    *websocket.Conn
	surface *Surface
	config  SessionConfig
	logger  *slog.Logger
}

// NewSession wraps an established connection.
func NewSession(conn *websocket.Conn, cfg SessionConfig, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{conn: conn, surface: NewSurface(), config: cfg, logger: logger}
}

// Surface returns the session's surface.
func (s *Session) Surface() *Surface {
	return s.surface
}

// Run greets the client, calls start, and then dispatches client events
// until ctx is done or the connection closes. start, every listener and the
// stop func start returned run on the calling goroutine; buffered ops are
// flushed after start and after each listener.
func (s *Session) Run(ctx context.Context, start StartFunc) error {
	defer s.conn.Close()

	if err := s.write(protocol.NewHello()); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop, err := start(ctx, s.surface)
	if stop != nil {
		defer stop()
	}
	if err != nil {
		s.sendError(codeOf(err), err.Error())
		return err
	}
	if err := s.flush(); err != nil {
		return err
	}

	events := make(chan *protocol.Event)
	readErr := make(chan error, 1)
	go s.readLoop(ctx, events, readErr)

	for {
		select {
		case <-ctx.Done():
			s.close(websocket.CloseGoingAway)
			return ctx.Err()
		case err := <-readErr:
			return err
		case ev := <-events:
			if err := s.surface.Dispatch(ev); err != nil {
				s.logger.Warn("event dropped", "error", err)
				continue
			}
			if err := s.flush(); err != nil {
				return err
			}
		}
	}
}

// readLoop decodes client frames and hands events to Run. It never writes
// to the connection; gorilla/websocket allows a single writer.
func (s *Session) readLoop(ctx context.Context, events chan<- *protocol.Event, errc chan<- error) {
	if s.config.MaxMessageSize > 0 {
		s.conn.SetReadLimit(s.config.MaxMessageSize)
	}
	for {
		if s.config.IdleTimeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(s.config.IdleTimeout))
		}
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				errc <- err
				return
			}
			errc <- nil
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			continue
		}
		if frame.Type != protocol.FrameEvent {
			s.logger.Warn("unexpected frame type", "type", frame.Type)
			continue
		}
		ev, err := protocol.DecodeEvent(frame.Payload)
		if err != nil {
			s.logger.Error("event decode error", "error", err)
			continue
		}

		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) flush() error {
	frames, err := s.surface.Flush()
	if err != nil {
		return err
	}
	for _, b := range frames {
		if err := s.writeRaw(b); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) write(f *protocol.Frame) error {
	b, err := f.Encode()
	if err != nil {
		return err
	}
	return s.writeRaw(b)
}

func (s *Session) writeRaw(b []byte) error {
	if s.config.WriteTimeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, b)
}

func (s *Session) sendError(code, message string) {
	if err := s.write(protocol.NewError(code, message)); err != nil {
		s.logger.Error("error frame write failed", "error", err)
	}
}

func codeOf(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return "runtime"
}

func (s *Session) close(code int) {
	s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, ""),
		time.Now().Add(time.Second))
}
