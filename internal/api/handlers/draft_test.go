package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/events"
	"github.com/dom/league-ledger/internal/testutil"
	"github.com/dom/league-ledger/internal/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draftResponse struct {
	Message  string            `json:"message"`
	Prospect domain.Prospect   `json:"prospect"`
	Pick     *domain.DraftPick `json:"pick"`
	League   domain.League     `json:"league"`
}

func TestLeagueHandler_CreateAndInitialize(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	resp := testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/leagues"), map[string]interface{}{
		"name": "Dynasty", "num_rounds": 2,
	}, ""))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var league domain.League
	testutil.AssertJSONResponse(t, resp, &league)
	assert.Equal(t, "Dynasty", league.Name)
	assert.Equal(t, 2, league.NumRounds)
	assert.Equal(t, 1, league.CurrentPickNumber)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/leagues"), map[string]interface{}{
		"name": "Broken", "num_rounds": 0,
	}, ""))
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "num_rounds")

	initURL := ts.APIURL(fmt.Sprintf("/leagues/%s/initialize", league.ID))
	body := map[string]interface{}{
		"teams": []map[string]string{
			{"name": "Hawks", "color": "text-red-500"},
			{"name": "Owls"},
			{"name": "Bears"},
		},
	}

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, initURL, body, ""))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var initialized domain.League
	testutil.AssertJSONResponse(t, resp, &initialized)
	require.Len(t, initialized.Teams, 3)
	require.Len(t, initialized.DraftPicks, 6)
	assert.Equal(t, "text-red-500", initialized.Teams[0].Color)
	assert.Equal(t, domain.DefaultTeamIcon, initialized.Teams[1].Icon)

	// Round two reverses the order.
	owners := make([]uuid.UUID, len(initialized.DraftPicks))
	for i, p := range initialized.DraftPicks {
		owners[i] = p.OriginalTeamID
	}
	hawks, owls, bears := initialized.Teams[0].ID, initialized.Teams[1].ID, initialized.Teams[2].ID
	assert.Equal(t, []uuid.UUID{hawks, owls, bears, bears, owls, hawks}, owners)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, initURL, body, ""))
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "already initialized")

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL("/leagues/"+uuid.NewString()), nil, ""))
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "league not found")

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL("/leagues/not-a-uuid"), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestDraftHandler_Flow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	league := testutil.NewLeagueBuilder().WithRounds(1).WithTeams("A", "B").Build(t, ts.Services)
	prospects := testutil.SeedProspects(t, ts.DB.DB, league.ID, 3)
	teamA, teamB := league.Teams[0], league.Teams[1]

	resp := testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL("/draft/current"), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)

	currentURL := ts.APIURL("/draft/current?league_id=" + league.ID.String())
	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, currentURL, nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var current domain.DraftPick
	testutil.AssertJSONResponse(t, resp, &current)
	assert.Equal(t, 1, current.PickNumber)

	execute := func(teamID, prospectID uuid.UUID) *http.Response {
		return testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/draft/execute"), map[string]string{
			"league_id":   league.ID.String(),
			"team_id":     teamID.String(),
			"prospect_id": prospectID.String(),
		}, ""))
	}

	resp = execute(teamA.ID, prospects[0].ID)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var first draftResponse
	testutil.AssertJSONResponse(t, resp, &first)
	assert.Equal(t, "Draft executed successfully", first.Message)
	assert.True(t, first.Prospect.IsDrafted)
	require.NotNil(t, first.Pick)
	assert.Equal(t, 1, first.Pick.PickNumber)
	assert.Equal(t, 2, first.League.CurrentPickNumber)

	resp = execute(teamB.ID, prospects[0].ID)
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "already drafted")

	resp = execute(teamB.ID, prospects[1].ID)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var second draftResponse
	testutil.AssertJSONResponse(t, resp, &second)
	assert.True(t, second.League.DraftCompleted)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, currentURL, nil, ""))
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "no current pick")

	resp = execute(teamA.ID, prospects[2].ID)
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "no current pick")

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/draft/undraft"), map[string]string{
		"league_id":   league.ID.String(),
		"prospect_id": prospects[0].ID.String(),
	}, ""))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var undone draftResponse
	testutil.AssertJSONResponse(t, resp, &undone)
	assert.Equal(t, "Prospect undrafted successfully", undone.Message)
	assert.False(t, undone.Prospect.IsDrafted)
	assert.Equal(t, 1, undone.League.CurrentPickNumber)
	assert.False(t, undone.League.DraftCompleted)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL("/draft/picks?team_id="+teamB.ID.String()), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var picks []domain.DraftPick
	testutil.AssertJSONResponse(t, resp, &picks)
	require.Len(t, picks, 1)
	assert.True(t, picks[0].IsUsed)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL(fmt.Sprintf("/teams/%s/roster", teamB.ID)), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var roster []domain.Prospect
	testutil.AssertJSONResponse(t, resp, &roster)
	require.Len(t, roster, 1)
	assert.Equal(t, prospects[1].ID, roster[0].ID)
}

func TestTradeHandler_Execute(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	league := testutil.NewLeagueBuilder().WithRounds(2).WithTeams("A", "B").Build(t, ts.Services)
	teamA, teamB := league.Teams[0], league.Teams[1]
	pick1, pick2, pick4 := league.DraftPicks[0], league.DraftPicks[1], league.DraftPicks[3]

	trade := func(pickIDs ...uuid.UUID) *http.Response {
		return testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/trades"), map[string]interface{}{
			"league_id":    league.ID,
			"from_team_id": teamA.ID,
			"to_team_id":   teamB.ID,
			"pick_ids":     pickIDs,
		}, ""))
	}

	resp := trade()
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "non-empty")

	resp = trade(pick1.ID, pick2.ID)
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "does not belong")

	resp = trade(pick4.ID, pick1.ID)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var result struct {
		Message string `json:"message"`
		Trade   struct {
			ID         string    `json:"id"`
			PickIDs    []string  `json:"pick_ids"`
			ExecutedAt time.Time `json:"executed_at"`
		} `json:"trade"`
		Picks []domain.DraftPick `json:"picks"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, "Trade executed successfully", result.Message)
	assert.Equal(t, []string{pick4.ID.String(), pick1.ID.String()}, result.Trade.PickIDs)
	assert.True(t, ts.Clock.Now().Equal(result.Trade.ExecutedAt))
	require.Len(t, result.Picks, 2)
	for _, p := range result.Picks {
		assert.Equal(t, teamB.ID, p.CurrentTeamID)
	}

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL("/trades?league_id="+league.ID.String()), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var trades []map[string]interface{}
	testutil.AssertJSONResponse(t, resp, &trades)
	assert.Len(t, trades, 1)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodDelete, ts.APIURL("/trades/"+result.Trade.ID), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL("/trades/"+result.Trade.ID), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

func TestProspectHandler_Bulk(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	league := testutil.NewLeagueBuilder().Build(t, ts.Services)

	resp := testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/prospects/bulk"), map[string]interface{}{
		"league_id": league.ID,
		"prospects": []map[string]string{
			{"name": "Caleb Carter", "position": "QB"},
			{"name": "", "position": "WR"},
			{"name": "Drake Morris", "position": "OT", "college": "Iowa"},
		},
	}, ""))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var bulk struct {
		Message   string            `json:"message"`
		Prospects []domain.Prospect `json:"prospects"`
	}
	testutil.AssertJSONResponse(t, resp, &bulk)
	assert.Equal(t, "2 prospects created successfully", bulk.Message)
	assert.Len(t, bulk.Prospects, 2)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL("/prospects?league_id="+league.ID.String()+"&is_drafted=maybe"), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL("/prospects?league_id="+league.ID.String()+"&position=QB"), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var qbs []domain.Prospect
	testutil.AssertJSONResponse(t, resp, &qbs)
	require.Len(t, qbs, 1)
	assert.Equal(t, "Caleb Carter", qbs[0].Name)
}

func TestWebSocketHandler_Feed(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	league := testutil.NewLeagueBuilder().WithRounds(1).WithTeams("A", "B").Build(t, ts.Services)
	prospects := testutil.SeedProspects(t, ts.DB.DB, league.ID, 1)

	client := testutil.NewFeedClient(t, ts.FeedURL(league.ID))
	client.ExpectMessage(websocket.MessageTypeStateSync, 5*time.Second)

	require.Eventually(t, func() bool {
		return ts.Hub.SubscriberCount(league.ID) == 1
	}, 2*time.Second, 20*time.Millisecond)

	resp := testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/draft/execute"), map[string]string{
		"league_id":   league.ID.String(),
		"team_id":     league.Teams[0].ID.String(),
		"prospect_id": prospects[0].ID.String(),
	}, ""))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	event := client.ExpectEvent(events.PickMade, 5*time.Second)
	assert.Equal(t, league.ID, event.LeagueID)

	client.Send(websocket.MessageTypePing)
	client.ExpectMessage(websocket.MessageTypePong, 5*time.Second)
}

func TestWebSocketHandler_UnknownLeague(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL(fmt.Sprintf("/leagues/%s/feed", uuid.New())), nil, ""))
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}
