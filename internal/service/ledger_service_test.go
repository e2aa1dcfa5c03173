package service_test

import (
	"context"
	"testing"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/service"
	"github.com/dom/league-ledger/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGroupService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, env.db.DB)
	bob, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, env.db.DB)
	carol, _ := testutil.NewUserBuilder().WithUsername("carol").Build(t, env.db.DB)

	group, err := env.services.Group.Create(ctx, alice.ID, service.CreateGroupInput{Name: "Trip"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, group.CreatedBy)
	require.Len(t, group.Members, 1)
	assert.Equal(t, alice.ID, group.Members[0].ID)

	_, err = env.services.Group.Create(ctx, alice.ID, service.CreateGroupInput{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.services.Group.Get(ctx, bob.ID, group.ID)
	assert.ErrorIs(t, err, domain.ErrNotGroupMember)

	_, err = env.services.Group.AddMember(ctx, bob.ID, group.ID, carol.ID)
	assert.ErrorIs(t, err, domain.ErrNotGroupMember)

	_, err = env.services.Group.AddMember(ctx, alice.ID, group.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = env.services.Group.AddMember(ctx, alice.ID, group.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.services.Group.AddMember(ctx, alice.ID, group.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)

	fetched, err := env.services.Group.Get(ctx, bob.ID, group.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Members, 2)
	assert.Equal(t, "alice", fetched.Members[0].Username)
	assert.Equal(t, "bob", fetched.Members[1].Username)

	mine, err := env.services.Group.ListMine(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = env.services.Group.Get(ctx, alice.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrGroupNotFound)
}

func TestExpenseService_CreateRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, env.db.DB)
	bob, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, env.db.DB)
	missingGroup := uuid.New()

	valid := func() service.CreateExpenseInput {
		return service.CreateExpenseInput{
			Description: "Dinner",
			Amount:      dec("30.00"),
			Date:        "2025-04-24",
			Splits: []service.SplitInput{
				{UserID: alice.ID, Amount: dec("15.00")},
				{UserID: bob.ID, Amount: dec("15.00")},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(in *service.CreateExpenseInput)
		wantErr error
	}{
		{"missing description", func(in *service.CreateExpenseInput) { in.Description = "" }, domain.ErrInvalidInput},
		{"zero amount", func(in *service.CreateExpenseInput) { in.Amount = decimal.Zero }, domain.ErrInvalidAmount},
		{"bad date", func(in *service.CreateExpenseInput) { in.Date = "04/24/2025" }, domain.ErrInvalidDate},
		{"negative split", func(in *service.CreateExpenseInput) { in.Splits[1].Amount = dec("-1") }, domain.ErrInvalidAmount},
		{"unknown split user", func(in *service.CreateExpenseInput) { in.Splits[1].UserID = uuid.New() }, domain.ErrUserNotFound},
		{"splits short", func(in *service.CreateExpenseInput) { in.Splits[1].Amount = dec("14.98") }, domain.ErrSplitMismatch},
		{"unknown group", func(in *service.CreateExpenseInput) { in.GroupID = &missingGroup }, domain.ErrGroupNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			_, err := env.services.Expense.Create(ctx, alice.ID, in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("one cent of drift is accepted", func(t *testing.T) {
		in := valid()
		in.Splits[1].Amount = dec("14.99")
		expense, err := env.services.Expense.Create(ctx, alice.ID, in)
		require.NoError(t, err)
		assert.True(t, expense.Amount.Equal(dec("30")))
		assert.Len(t, expense.Splits, 2)
	})
}

func TestExpenseService_BalancesAndSettle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, _ := testutil.NewUserBuilder().WithUsername("alice").Build(t, env.db.DB)
	bob, _ := testutil.NewUserBuilder().WithUsername("bob").Build(t, env.db.DB)
	carol, _ := testutil.NewUserBuilder().WithUsername("carol").Build(t, env.db.DB)

	group, err := env.services.Group.Create(ctx, alice.ID, service.CreateGroupInput{Name: "Flat"})
	require.NoError(t, err)
	_, err = env.services.Group.AddMember(ctx, alice.ID, group.ID, bob.ID)
	require.NoError(t, err)

	rent, err := env.services.Expense.Create(ctx, alice.ID, service.CreateExpenseInput{
		Description: "Rent",
		Amount:      dec("100.00"),
		Date:        "2025-04-01",
		GroupID:     &group.ID,
		Splits: []service.SplitInput{
			{UserID: alice.ID, Amount: dec("50.00")},
			{UserID: bob.ID, Amount: dec("50.00")},
		},
	})
	require.NoError(t, err)

	// Outside the group; only shows up in the global balances.
	_, err = env.services.Expense.Create(ctx, carol.ID, service.CreateExpenseInput{
		Description: "Taxi",
		Amount:      dec("20.00"),
		Date:        "2025-04-02",
		Splits:      []service.SplitInput{{UserID: bob.ID, Amount: dec("20.00")}},
	})
	require.NoError(t, err)

	net := func(balances []domain.Balance) map[uuid.UUID]string {
		out := make(map[uuid.UUID]string, len(balances))
		for _, b := range balances {
			out[b.User.ID] = b.NetBalance.StringFixed(2)
		}
		return out
	}

	groupBalances, err := env.services.Expense.Balances(ctx, bob.ID, &group.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]string{alice.ID: "50.00", bob.ID: "-50.00"}, net(groupBalances))

	all, err := env.services.Expense.Balances(ctx, bob.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]string{alice.ID: "50.00", bob.ID: "-70.00", carol.ID: "20.00"}, net(all))

	_, err = env.services.Expense.Balances(ctx, carol.ID, &group.ID)
	assert.ErrorIs(t, err, domain.ErrNotGroupMember)

	_, err = env.services.Expense.Settle(ctx, bob.ID, rent.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrNotPayer)

	_, err = env.services.Expense.Settle(ctx, alice.ID, rent.ID, carol.ID)
	assert.ErrorIs(t, err, domain.ErrSplitNotFound)

	settled, err := env.services.Expense.Settle(ctx, alice.ID, rent.ID, bob.ID)
	require.NoError(t, err)
	for _, split := range settled.Splits {
		assert.Equal(t, split.UserID == bob.ID, split.IsSettled)
	}

	groupBalances, err = env.services.Expense.Balances(ctx, alice.ID, &group.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]string{alice.ID: "50.00", bob.ID: "0.00"}, net(groupBalances))

	listed, err := env.services.Expense.List(ctx, bob.ID, nil)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	listed, err = env.services.Expense.List(ctx, carol.ID, nil)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
