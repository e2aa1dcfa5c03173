package handlers

import (
	"net/http"

	"github.com/dom/league-ledger/internal/service"
	"github.com/dom/league-ledger/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"
)

type WebSocketHandler struct {
	hub           *websocket.Hub
	leagueService *service.LeagueService
	upgrader      ws.Upgrader
}

// NewWebSocketHandler accepts feed connections from allowedOrigins; "*"
// accepts any origin.
func NewWebSocketHandler(hub *websocket.Hub, leagueService *service.LeagueService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:           hub,
		leagueService: leagueService,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// Feed upgrades the request and subscribes it to one league's events.
func (h *WebSocketHandler) Feed(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.leagueService.Get(r.Context(), leagueID, false); err != nil {
		writeServiceError(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn, leagueID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}
