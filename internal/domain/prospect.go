package domain

import (
	"time"

	"github.com/google/uuid"
)

type Prospect struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LeagueID        uuid.UUID  `json:"league_id" gorm:"type:uuid;index;not null"`
	Name            string     `json:"name" gorm:"size:100;not null"`
	Position        string     `json:"position" gorm:"size:20;not null;index"`
	College         string     `json:"college" gorm:"size:100"`
	IsDrafted       bool       `json:"is_drafted" gorm:"not null;default:false"`
	DraftedBy       *uuid.UUID `json:"drafted_by" gorm:"type:uuid;index"`
	DraftPickNumber *int       `json:"draft_pick_number"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// MarkDrafted records that teamID took this prospect with pickNumber.
func (p *Prospect) MarkDrafted(teamID uuid.UUID, pickNumber int) {
	p.IsDrafted = true
	p.DraftedBy = &teamID
	p.DraftPickNumber = &pickNumber
}

// ClearDraft returns the prospect to the undrafted pool.
func (p *Prospect) ClearDraft() {
	p.IsDrafted = false
	p.DraftedBy = nil
	p.DraftPickNumber = nil
}
