package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultNumRounds = 3

type League struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name              string    `json:"name" gorm:"size:100;not null"`
	Description       string    `json:"description"`
	NumRounds         int       `json:"num_rounds" gorm:"not null;default:3"`
	DraftStarted      bool      `json:"draft_started" gorm:"not null;default:false"`
	DraftCompleted    bool      `json:"draft_completed" gorm:"not null;default:false"`
	CurrentPickNumber int       `json:"current_pick_number" gorm:"not null;default:1"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relations
	Teams      []Team      `json:"teams,omitempty" gorm:"foreignKey:LeagueID;constraint:OnDelete:CASCADE"`
	Prospects  []Prospect  `json:"prospects,omitempty" gorm:"foreignKey:LeagueID;constraint:OnDelete:CASCADE"`
	DraftPicks []DraftPick `json:"draft_picks,omitempty" gorm:"foreignKey:LeagueID;constraint:OnDelete:CASCADE"`
	Trades     []Trade     `json:"-" gorm:"foreignKey:LeagueID;constraint:OnDelete:CASCADE"`
}

// AdvanceCursor consumes the current pick. totalPicks is the size of the
// league's pick ledger.
func (l *League) AdvanceCursor(totalPicks int) {
	l.CurrentPickNumber++
	l.DraftStarted = true
	if l.CurrentPickNumber > totalPicks {
		l.DraftCompleted = true
	}
}

// RetreatCursor moves the cursor back to pickNumber when that pick has
// already been passed. Picks at or ahead of the cursor leave it untouched.
// It reports whether the cursor moved.
func (l *League) RetreatCursor(pickNumber int) bool {
	if pickNumber >= l.CurrentPickNumber {
		return false
	}
	l.CurrentPickNumber = pickNumber
	l.DraftCompleted = false
	return true
}

// SetCursor places the cursor explicitly and recomputes completion.
func (l *League) SetCursor(pickNumber, totalPicks int) error {
	if pickNumber < 1 || pickNumber > totalPicks+1 {
		return ErrCursorOutOfRange
	}
	l.CurrentPickNumber = pickNumber
	l.DraftCompleted = totalPicks > 0 && pickNumber > totalPicks
	return nil
}

type Team struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LeagueID   uuid.UUID `json:"league_id" gorm:"type:uuid;index;not null"`
	Name       string    `json:"name" gorm:"size:100;not null"`
	Icon       string    `json:"icon" gorm:"size:50;default:'Shield'"`
	Color      string    `json:"color" gorm:"size:50;default:'text-blue-500'"`
	BgColor    string    `json:"bg_color" gorm:"size:50;default:'bg-blue-50'"`
	DraftOrder int       `json:"draft_order" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Roster []Prospect `json:"roster,omitempty" gorm:"foreignKey:DraftedBy"`
}

const (
	DefaultTeamIcon    = "Shield"
	DefaultTeamColor   = "text-blue-500"
	DefaultTeamBgColor = "bg-blue-50"
)
