package service_test

import (
	"context"
	"testing"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/service"
	"github.com/dom/league-ledger/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProspectService_CreateBulkSkipsInvalid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	league := testutil.NewLeagueBuilder().Build(t, env.services)

	created, err := env.services.Prospect.CreateBulk(ctx, league.ID, []service.ProspectInput{
		{Name: "Caleb Carter", Position: "QB", College: "USC"},
		{Name: "", Position: "WR"},
		{Name: "Marvin Hall", Position: ""},
		{Name: "Drake Morris", Position: "OT"},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	_, err = env.services.Prospect.CreateBulk(ctx, uuid.New(), []service.ProspectInput{{Name: "X", Position: "QB"}})
	assert.ErrorIs(t, err, domain.ErrLeagueNotFound)
}

func TestProspectService_Filters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	league := testutil.NewLeagueBuilder().WithRounds(1).WithTeams("A", "B").Build(t, env.services)
	for _, in := range []service.ProspectInput{
		{Name: "One", Position: "QB"},
		{Name: "Two", Position: "QB"},
		{Name: "Three", Position: "WR"},
	} {
		_, err := env.services.Prospect.Create(ctx, league.ID, in)
		require.NoError(t, err)
	}

	qbs, err := env.services.Prospect.List(ctx, prospectFilter(league.ID, nil))
	require.NoError(t, err)
	assert.Len(t, qbs, 3)

	filter := prospectFilter(league.ID, nil)
	filter.Position = "QB"
	qbs, err = env.services.Prospect.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, qbs, 2)

	_, err = env.services.Draft.Execute(ctx, service.ExecuteDraftInput{
		LeagueID: league.ID, TeamID: league.Teams[0].ID, ProspectID: qbs[0].ID,
	})
	require.NoError(t, err)

	undrafted := false
	available, err := env.services.Prospect.List(ctx, prospectFilter(league.ID, &undrafted))
	require.NoError(t, err)
	assert.Len(t, available, 2)
}

func TestProspectService_DeleteDrafted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	league := testutil.NewLeagueBuilder().WithRounds(1).WithTeams("A", "B").Build(t, env.services)
	prospects := testutil.SeedProspects(t, env.db.DB, league.ID, 2)

	_, err := env.services.Draft.Execute(ctx, service.ExecuteDraftInput{
		LeagueID: league.ID, TeamID: league.Teams[0].ID, ProspectID: prospects[0].ID,
	})
	require.NoError(t, err)

	err = env.services.Prospect.Delete(ctx, prospects[0].ID)
	assert.ErrorIs(t, err, domain.ErrProspectDrafted)

	require.NoError(t, env.services.Prospect.Delete(ctx, prospects[1].ID))
	_, err = env.services.Prospect.Get(ctx, prospects[1].ID)
	assert.ErrorIs(t, err, domain.ErrProspectNotFound)

	err = env.services.Prospect.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrProspectNotFound)
}

func TestProspectService_UpdateKeepsDraft(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	league := testutil.NewLeagueBuilder().WithRounds(1).WithTeams("A", "B").Build(t, env.services)
	prospects := testutil.SeedProspects(t, env.db.DB, league.ID, 2)
	teamID := league.Teams[0].ID

	t.Run("edit written from a copy read before the draft", func(t *testing.T) {
		stale, err := env.repos.Prospect.GetByID(ctx, prospects[0].ID)
		require.NoError(t, err)
		require.False(t, stale.IsDrafted)

		_, err = env.services.Draft.Execute(ctx, service.ExecuteDraftInput{
			LeagueID: league.ID, TeamID: teamID, ProspectID: prospects[0].ID,
		})
		require.NoError(t, err)

		stale.College = "Oregon"
		require.NoError(t, env.repos.Prospect.UpdateDetails(ctx, stale))

		got, err := env.services.Prospect.Get(ctx, prospects[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Oregon", got.College)
		assert.True(t, got.IsDrafted)
		require.NotNil(t, got.DraftedBy)
		assert.Equal(t, teamID, *got.DraftedBy)
		require.NotNil(t, got.DraftPickNumber)
		assert.Equal(t, 1, *got.DraftPickNumber)

		_, err = env.services.Draft.Undraft(ctx, service.UndraftInput{LeagueID: league.ID, ProspectID: prospects[0].ID})
		require.NoError(t, err)
	})

	t.Run("update returns current draft state", func(t *testing.T) {
		_, err := env.services.Draft.Execute(ctx, service.ExecuteDraftInput{
			LeagueID: league.ID, TeamID: teamID, ProspectID: prospects[1].ID,
		})
		require.NoError(t, err)

		name := "  Renamed  "
		updated, err := env.services.Prospect.Update(ctx, prospects[1].ID, service.UpdateProspectInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.True(t, updated.IsDrafted)

		again, err := env.services.Draft.Execute(ctx, service.ExecuteDraftInput{
			LeagueID: league.ID, TeamID: teamID, ProspectID: prospects[1].ID,
		})
		assert.Nil(t, again)
		assert.ErrorIs(t, err, domain.ErrAlreadyDrafted)
	})
}

func TestTeamService_DeleteAndRoster(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	league := testutil.NewLeagueBuilder().WithRounds(1).WithTeams("A", "B").Build(t, env.services)
	prospects := testutil.SeedProspects(t, env.db.DB, league.ID, 1)

	_, err := env.services.Draft.Execute(ctx, service.ExecuteDraftInput{
		LeagueID: league.ID, TeamID: league.Teams[0].ID, ProspectID: prospects[0].ID,
	})
	require.NoError(t, err)

	roster, err := env.services.Team.Roster(ctx, league.Teams[0].ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, prospects[0].ID, roster[0].ID)

	withRoster, err := env.services.Team.Get(ctx, league.Teams[0].ID, true)
	require.NoError(t, err)
	assert.Len(t, withRoster.Roster, 1)

	err = env.services.Team.Delete(ctx, league.Teams[0].ID)
	assert.ErrorIs(t, err, domain.ErrTeamHasPicks)

	_, err = env.services.Team.Roster(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestTeamService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	league := testutil.NewLeagueBuilder().WithRounds(1).WithTeams("A", "B").Build(t, env.services)
	name := "Renamed"
	color := "text-red-500"

	team, err := env.services.Team.Update(ctx, league.Teams[0].ID, service.UpdateTeamInput{Name: &name, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", team.Name)
	assert.Equal(t, "text-red-500", team.Color)
	assert.Equal(t, domain.DefaultTeamBgColor, team.BgColor)

	_, err = env.services.Team.Update(ctx, league.Teams[0].ID, service.UpdateTeamInput{DraftOrder: intPtr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
