package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	LeagueInitialized Type = "LEAGUE_INITIALIZED"
	PickMade          Type = "PICK_MADE"
	PickUndone        Type = "PICK_UNDONE"
	DraftCompleted    Type = "DRAFT_COMPLETED"
	TradeExecuted     Type = "TRADE_EXECUTED"
)

// Event is the envelope published after a league mutation commits.
type Event struct {
	ID        uuid.UUID       `json:"event_id"`
	Type      Type            `json:"event_type"`
	LeagueID  uuid.UUID       `json:"league_id"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

func New(eventType Type, leagueID uuid.UUID, at time.Time, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		LeagueID:  leagueID,
		Timestamp: at.UTC(),
		Payload:   data,
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
