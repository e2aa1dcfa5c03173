package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeOrder(t *testing.T) {
	tests := []struct {
		name      string
		teams     int
		rounds    int
		wantTeams []int
	}{
		{
			name:      "two teams one round",
			teams:     2,
			rounds:    1,
			wantTeams: []int{0, 1},
		},
		{
			name:      "three teams three rounds",
			teams:     3,
			rounds:    3,
			wantTeams: []int{0, 1, 2, 2, 1, 0, 0, 1, 2},
		},
		{
			name:      "single team",
			teams:     1,
			rounds:    2,
			wantTeams: []int{0, 0},
		},
		{
			name:   "no teams",
			teams:  0,
			rounds: 3,
		},
		{
			name:   "no rounds",
			teams:  4,
			rounds: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := SnakeOrder(tt.teams, tt.rounds)
			require.Len(t, slots, len(tt.wantTeams))

			for i, slot := range slots {
				assert.Equal(t, i+1, slot.PickNumber, "pick numbers must be gapless")
				assert.Equal(t, tt.wantTeams[i], slot.TeamIndex, "pick %d", slot.PickNumber)
				assert.Equal(t, i/tt.teams+1, slot.RoundNumber)
				assert.Equal(t, i%tt.teams+1, slot.PickInRound)
			}
		})
	}
}

func TestLeague_AdvanceCursor(t *testing.T) {
	league := &League{CurrentPickNumber: 1}

	league.AdvanceCursor(2)
	assert.Equal(t, 2, league.CurrentPickNumber)
	assert.True(t, league.DraftStarted)
	assert.False(t, league.DraftCompleted)

	league.AdvanceCursor(2)
	assert.Equal(t, 3, league.CurrentPickNumber)
	assert.True(t, league.DraftCompleted)
}

func TestLeague_RetreatCursor(t *testing.T) {
	tests := []struct {
		name          string
		cursor        int
		completed     bool
		pickNumber    int
		wantMoved     bool
		wantCursor    int
		wantCompleted bool
	}{
		{name: "behind cursor", cursor: 5, pickNumber: 4, wantMoved: true, wantCursor: 4},
		{name: "at cursor", cursor: 5, pickNumber: 5, wantCursor: 5},
		{name: "ahead of cursor", cursor: 5, pickNumber: 7, wantCursor: 5},
		{name: "reopens completed draft", cursor: 7, completed: true, pickNumber: 6, wantMoved: true, wantCursor: 6},
		{name: "completed draft, pick ahead", cursor: 7, completed: true, pickNumber: 7, wantCursor: 7, wantCompleted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			league := &League{CurrentPickNumber: tt.cursor, DraftCompleted: tt.completed}
			moved := league.RetreatCursor(tt.pickNumber)
			assert.Equal(t, tt.wantMoved, moved)
			assert.Equal(t, tt.wantCursor, league.CurrentPickNumber)
			assert.Equal(t, tt.wantCompleted, league.DraftCompleted)
		})
	}
}

func TestLeague_SetCursor(t *testing.T) {
	league := &League{CurrentPickNumber: 1}

	assert.ErrorIs(t, league.SetCursor(0, 6), ErrCursorOutOfRange)
	assert.ErrorIs(t, league.SetCursor(8, 6), ErrCursorOutOfRange)

	require.NoError(t, league.SetCursor(7, 6))
	assert.True(t, league.DraftCompleted)

	require.NoError(t, league.SetCursor(3, 6))
	assert.Equal(t, 3, league.CurrentPickNumber)
	assert.False(t, league.DraftCompleted)
}

func TestTrade_PickIDsKeepsSubmissionOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	trade := &Trade{ID: uuid.New()}
	rows := NewTradePicks(trade.ID, ids)

	// Loaded rows may come back in any order.
	trade.Picks = []TradePick{rows[2], rows[0], rows[1]}

	assert.Equal(t, ids, trade.PickIDs())
}

func TestDraftPick_UseAndRelease(t *testing.T) {
	pick := &DraftPick{}
	prospectID := uuid.New()

	pick.Use(prospectID)
	assert.True(t, pick.IsUsed)
	require.NotNil(t, pick.ProspectID)
	assert.Equal(t, prospectID, *pick.ProspectID)

	pick.Release()
	assert.False(t, pick.IsUsed)
	assert.Nil(t, pick.ProspectID)
}

func TestExpense_SplitsBalance(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name   string
		amount string
		splits []string
		want   bool
	}{
		{name: "exact", amount: "30.00", splits: []string{"10.00", "20.00"}, want: true},
		{name: "within a cent", amount: "10.00", splits: []string{"3.33", "3.33", "3.33"}, want: true},
		{name: "off by more than a cent", amount: "10.00", splits: []string{"3.00", "3.00", "3.00"}, want: false},
		{name: "no splits", amount: "5.00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Expense{Amount: d(tt.amount)}
			for _, s := range tt.splits {
				e.Splits = append(e.Splits, ExpenseSplit{Amount: d(s)})
			}
			assert.Equal(t, tt.want, e.SplitsBalance())
		})
	}
}
