package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dom/league-ledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type groupResponse struct {
	Message string `json:"message"`
	Group   struct {
		ID      string                 `json:"id"`
		Name    string                 `json:"name"`
		Members []testutil.UserResponse `json:"members"`
	} `json:"group"`
}

type expenseResponse struct {
	Message string `json:"message"`
	Expense struct {
		ID     string      `json:"id"`
		Amount json.Number `json:"amount"`
		Date   string      `json:"date"`
		Splits []struct {
			UserID    string      `json:"user_id"`
			Amount    json.Number `json:"amount"`
			IsSettled bool        `json:"is_settled"`
		} `json:"splits"`
	} `json:"expense"`
}

type balanceResponse struct {
	User       testutil.UserResponse `json:"user"`
	Paid       json.Number           `json:"paid"`
	Owed       json.Number           `json:"owed"`
	NetBalance json.Number           `json:"net_balance"`
}

func TestLedgerEndpointsRequireAuth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	for _, path := range []string{"/groups", "/expenses", "/expenses/balances"} {
		resp := testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL(path), nil, ""))
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	}
}

func TestExpenseHandler_Flow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.DB.Truncate(t)

	alice, aliceToken := testutil.NewUserBuilder().WithUsername("alice").BuildAndAuthenticate(t, ts)
	bob, bobToken := testutil.NewUserBuilder().WithUsername("bob").BuildAndAuthenticate(t, ts)
	_, carolToken := testutil.NewUserBuilder().WithUsername("carol").BuildAndAuthenticate(t, ts)

	resp := testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/groups"), map[string]string{
		"name": "Flat",
	}, aliceToken))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var created groupResponse
	testutil.AssertJSONResponse(t, resp, &created)
	assert.Equal(t, "Group created successfully", created.Message)
	require.Len(t, created.Group.Members, 1)

	membersURL := ts.APIURL("/groups/" + created.Group.ID + "/members")
	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, membersURL, map[string]string{
		"user_id": bob.ID.String(),
	}, aliceToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var added groupResponse
	testutil.AssertJSONResponse(t, resp, &added)
	assert.Len(t, added.Group.Members, 2)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL("/groups/"+created.Group.ID), nil, carolToken))
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/expenses"), map[string]interface{}{
		"description": "Groceries",
		"amount":      "42.50",
		"date":        "2025-04-20",
		"group_id":    created.Group.ID,
		"splits": []map[string]interface{}{
			{"user_id": alice.ID, "amount": "21.25"},
			{"user_id": bob.ID, "amount": "20.00"},
		},
	}, aliceToken))
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "sum of splits")

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/expenses"), map[string]interface{}{
		"description": "Groceries",
		"amount":      42.5,
		"date":        "2025-04-20",
		"group_id":    created.Group.ID,
		"splits": []map[string]interface{}{
			{"user_id": alice.ID, "amount": 21.25},
			{"user_id": bob.ID, "amount": 21.25},
		},
	}, aliceToken))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var expense expenseResponse
	testutil.AssertJSONResponse(t, resp, &expense)
	assert.Equal(t, "Expense created successfully", expense.Message)
	assert.Equal(t, json.Number("42.50"), expense.Expense.Amount)
	assert.Equal(t, "2025-04-20", expense.Expense.Date)
	require.Len(t, expense.Expense.Splits, 2)

	balancesURL := ts.APIURL("/expenses/balances?group_id=" + created.Group.ID)
	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, balancesURL, nil, bobToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var balances map[string]balanceResponse
	testutil.AssertJSONResponse(t, resp, &balances)
	require.Len(t, balances, 2)
	assert.Equal(t, json.Number("42.50"), balances[alice.ID.String()].Paid)
	assert.Equal(t, json.Number("21.25"), balances[alice.ID.String()].NetBalance)
	assert.Equal(t, json.Number("-21.25"), balances[bob.ID.String()].NetBalance)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, balancesURL, nil, carolToken))
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)

	settle := map[string]string{"expense_id": expense.Expense.ID, "user_id": bob.ID.String()}

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/expenses/settle"), settle, bobToken))
	testutil.AssertStatusCode(t, resp, http.StatusForbidden)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodPost, ts.APIURL("/expenses/settle"), settle, aliceToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var settled expenseResponse
	testutil.AssertJSONResponse(t, resp, &settled)
	assert.Equal(t, "Expense settled successfully", settled.Message)
	for _, split := range settled.Expense.Splits {
		assert.Equal(t, split.UserID == bob.ID.String(), split.IsSettled)
	}

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL("/expenses"), nil, bobToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var listed []map[string]interface{}
	testutil.AssertJSONResponse(t, resp, &listed)
	assert.Len(t, listed, 1)

	resp = testutil.Do(t, testutil.CreateRequest(t, http.MethodGet, ts.APIURL("/expenses"), nil, carolToken))
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	listed = nil
	testutil.AssertJSONResponse(t, resp, &listed)
	assert.Empty(t, listed)
}
