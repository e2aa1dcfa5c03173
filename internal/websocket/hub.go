package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/dom/league-ledger/internal/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SnapshotFunc returns the current state of a league for STATE_SYNC messages.
type SnapshotFunc func(ctx context.Context, leagueID uuid.UUID) (interface{}, error)

type leagueMessage struct {
	leagueID uuid.UUID
	data     []byte
}

// Hub fans league events out to the websocket clients subscribed to that
// league. Subscription maps are only mutated by Run.
type Hub struct {
	leagues    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan leagueMessage
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopOnce   sync.Once
	snapshot   SnapshotFunc
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		leagues:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan leagueMessage, 256),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// SetSnapshotFunc installs the state provider used for STATE_SYNC. Call it
// before Run.
func (h *Hub) SetSnapshotFunc(fn SnapshotFunc) {
	h.mu.Lock()
	h.snapshot = fn
	h.mu.Unlock()
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			for _, clients := range h.leagues {
				for client := range clients {
					client.Close()
				}
			}
			h.leagues = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			clients, ok := h.leagues[client.leagueID]
			if !ok {
				clients = make(map[*Client]bool)
				h.leagues[client.leagueID] = clients
			}
			clients[client] = true
			h.mu.Unlock()
			go h.sendSnapshot(client)

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.leagues[msg.leagueID] {
				if !client.trySend(msg.data) {
					log.Warn().
						Str("league_id", msg.leagueID.String()).
						Msg("dropping slow websocket subscriber")
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with h.mu held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.leagues[client.leagueID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	client.Close()
	if len(clients) == 0 {
		delete(h.leagues, client.leagueID)
	}
}

// Stop shuts the hub down and blocks until Run has returned.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish implements events.Publisher by queueing the event for the
// league's subscribers.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	data, err := EventMessage(event)
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- leagueMessage{leagueID: event.LeagueID, data: data}:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) SubscriberCount(leagueID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.leagues[leagueID])
}

func (h *Hub) sendSnapshot(client *Client) {
	h.mu.RLock()
	fn := h.snapshot
	h.mu.RUnlock()
	if fn == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	state, err := fn(ctx, client.leagueID)
	if err != nil {
		log.Error().Err(err).Str("league_id", client.leagueID.String()).Msg("failed to build league snapshot")
		client.sendError("SYNC_FAILED", "Could not load league state")
		return
	}

	msg, err := NewMessage(MessageTypeStateSync, state)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal league snapshot")
		return
	}
	client.Send(msg)
}
