package remote

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests to websocket sessions and runs start for
// each of them.
type Handler struct {
	upgrader websocket.Upgrader
	start    StartFunc
	config   SessionConfig
	logger   *slog.Logger
}

// NewHandler creates a Handler. checkOrigin may be nil to accept only
// same-origin requests.
func NewHandler(start StartFunc, cfg SessionConfig, checkOrigin func(*http.Request) bool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		start:  start,
		config: cfg,
		logger: logger,
	}
}

// ServeHTTP implements http.Handler. It blocks for the session's lifetime.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	logger := h.logger.With("remote", r.RemoteAddr)
	logger.Debug("session started")

	s := NewSession(conn, h.config, logger)
	if err := s.Run(r.Context(), h.start); err != nil {
		logger.Debug("session ended", "error", err)
		return
	}
	logger.Debug("session ended")
}
