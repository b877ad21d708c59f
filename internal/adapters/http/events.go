package httpadapter

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/PabloGalante/career-companion/internal/app/conversation"
	"github.com/PabloGalante/career-companion/internal/observability"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     localOrigin,
}

// localOrigin accepts same-host requests and pages served from localhost.
func localOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return u.Host == r.Host
}

// handleEvents streams a state snapshot on every change. Slow clients skip
// intermediate snapshots but always receive the latest one.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	log := observability.LoggerFromContext(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates := make(chan conversation.State, 1)
	unsubscribe := s.svc.Subscribe(func(st conversation.State) {
		select {
		case updates <- st:
		default:
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- st:
			default:
			}
		}
	})
	defer unsubscribe()

	// The client never sends anything meaningful; reading detects close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(st conversation.State) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(toStateResponse(st)); err != nil {
			log.Info("websocket client gone", "error", err)
			return false
		}
		return true
	}

	if !send(s.svc.State()) {
		return
	}
	for {
		select {
		case st := <-updates:
			if !send(st) {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
