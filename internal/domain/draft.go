package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type DraftPick struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LeagueID       uuid.UUID  `json:"league_id" gorm:"type:uuid;not null;uniqueIndex:idx_draft_picks_league_number,priority:1"`
	PickNumber     int        `json:"pick_number" gorm:"not null;uniqueIndex:idx_draft_picks_league_number,priority:2"`
	RoundNumber    int        `json:"round_number" gorm:"not null"`
	PickInRound    int        `json:"pick_in_round" gorm:"not null"`
	OriginalTeamID uuid.UUID  `json:"original_team_id" gorm:"type:uuid;not null;index"`
	CurrentTeamID  uuid.UUID  `json:"current_team_id" gorm:"type:uuid;not null;index"`
	ProspectID     *uuid.UUID `json:"prospect_id" gorm:"type:uuid;index"`
	IsUsed         bool       `json:"is_used" gorm:"not null;default:false"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	OriginalTeam *Team     `json:"-" gorm:"foreignKey:OriginalTeamID"`
	CurrentTeam  *Team     `json:"-" gorm:"foreignKey:CurrentTeamID"`
	Prospect     *Prospect `json:"-" gorm:"foreignKey:ProspectID"`
}

// Use links the pick to the drafted prospect.
func (p *DraftPick) Use(prospectID uuid.UUID) {
	p.ProspectID = &prospectID
	p.IsUsed = true
}

// Release returns the pick to the unused state. Ownership is unchanged.
func (p *DraftPick) Release() {
	p.ProspectID = nil
	p.IsUsed = false
}

type Trade struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LeagueID   uuid.UUID `json:"league_id" gorm:"type:uuid;index;not null"`
	FromTeamID uuid.UUID `json:"from_team_id" gorm:"type:uuid;not null"`
	ToTeamID   uuid.UUID `json:"to_team_id" gorm:"type:uuid;not null"`
	ExecutedAt time.Time `json:"executed_at" gorm:"not null;index"`

	// Relations
	Picks    []TradePick `json:"-" gorm:"foreignKey:TradeID;constraint:OnDelete:CASCADE"`
	FromTeam *Team       `json:"-" gorm:"foreignKey:FromTeamID"`
	ToTeam   *Team       `json:"-" gorm:"foreignKey:ToTeamID"`
}

// TradePick is one entry of a trade's ordered pick list.
type TradePick struct {
	TradeID  uuid.UUID `json:"trade_id" gorm:"type:uuid;primaryKey"`
	Position int       `json:"position" gorm:"primaryKey"`
	PickID   uuid.UUID `json:"pick_id" gorm:"type:uuid;not null;index"`
}

// NewTradePicks builds the ordered side-table rows for pickIDs.
func NewTradePicks(tradeID uuid.UUID, pickIDs []uuid.UUID) []TradePick {
	rows := make([]TradePick, len(pickIDs))
	for i, id := range pickIDs {
		rows[i] = TradePick{TradeID: tradeID, Position: i, PickID: id}
	}
	return rows
}

// PickIDs returns the traded pick ids in the order they were submitted.
func (t *Trade) PickIDs() []uuid.UUID {
	rows := make([]TradePick, len(t.Picks))
	copy(rows, t.Picks)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.PickID
	}
	return ids
}

// PickSlot is one position of a generated draft board. TeamIndex is the
// 0-based index into the teams sorted by draft order.
type PickSlot struct {
	PickNumber  int
	RoundNumber int
	PickInRound int
	TeamIndex   int
}

// SnakeOrder lays out rounds*teamCount picks. Odd rounds run in draft order,
// even rounds in reverse. Pick numbers are a single 1-based sequence.
func SnakeOrder(teamCount, rounds int) []PickSlot {
	if teamCount <= 0 || rounds <= 0 {
		return nil
	}

	slots := make([]PickSlot, 0, teamCount*rounds)
	pickNumber := 1
	for round := 1; round <= rounds; round++ {
		for i := 0; i < teamCount; i++ {
			teamIndex := i
			if round%2 == 0 {
				teamIndex = teamCount - 1 - i
			}
			slots = append(slots, PickSlot{
				PickNumber:  pickNumber,
				RoundNumber: round,
				PickInRound: i + 1,
				TeamIndex:   teamIndex,
			})
			pickNumber++
		}
	}
	return slots
}
