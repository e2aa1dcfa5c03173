package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/league-ledger/internal/domain"
	"github.com/dom/league-ledger/internal/service"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with unique defaults
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: "testuser_" + suffix,
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// BuildAndAuthenticate registers the user through the API and returns the
// user and its access token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username": b.username,
		"email":    b.email,
		"password": b.password,
	})

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:       userID,
		Username: authResp.User.Username,
		Email:    authResp.User.Email,
	}

	return user, authResp.AccessToken
}

// LeagueBuilder creates leagues, optionally initialized with teams.
type LeagueBuilder struct {
	name   string
	rounds int
	teams  []string
}

func NewLeagueBuilder() *LeagueBuilder {
	return &LeagueBuilder{
		name:   "League " + uuid.New().String()[:8],
		rounds: domain.DefaultNumRounds,
	}
}

func (b *LeagueBuilder) WithName(name string) *LeagueBuilder {
	b.name = name
	return b
}

func (b *LeagueBuilder) WithRounds(rounds int) *LeagueBuilder {
	b.rounds = rounds
	return b
}

// WithTeams initializes the league with teams named in draft order.
func (b *LeagueBuilder) WithTeams(names ...string) *LeagueBuilder {
	b.teams = names
	return b
}

// Build creates the league through the services. When teams were given the
// returned league carries its teams and picks.
func (b *LeagueBuilder) Build(t *testing.T, services *service.Services) *domain.League {
	t.Helper()

	ctx := context.Background()
	rounds := b.rounds
	league, err := services.League.Create(ctx, service.CreateLeagueInput{
		Name:      b.name,
		NumRounds: &rounds,
	})
	if err != nil {
		t.Fatalf("failed to create league: %v", err)
	}

	if len(b.teams) == 0 {
		return league
	}

	teams := make([]service.TeamInput, len(b.teams))
	for i, name := range b.teams {
		teams[i] = service.TeamInput{Name: name}
	}
	league, err = services.League.Initialize(ctx, league.ID, teams)
	if err != nil {
		t.Fatalf("failed to initialize league: %v", err)
	}
	return league
}

// SeedProspects adds count undrafted prospects to a league.
func SeedProspects(t *testing.T, db *gorm.DB, leagueID uuid.UUID, count int) []*domain.Prospect {
	t.Helper()

	positions := []string{"QB", "RB", "WR", "TE", "OL", "DL", "LB", "CB", "S"}
	prospects := make([]*domain.Prospect, count)
	for i := 0; i < count; i++ {
		prospects[i] = &domain.Prospect{
			ID:       uuid.New(),
			LeagueID: leagueID,
			Name:     fmt.Sprintf("Prospect %d", i+1),
			Position: positions[i%len(positions)],
			College:  "State",
		}
	}

	if err := db.Create(&prospects).Error; err != nil {
		t.Fatalf("failed to seed prospects: %v", err)
	}
	return prospects
}

// CreateRequest creates an HTTP request with a JSON body and an optional
// bearer token.
func CreateRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	bodyReader := bytes.NewBuffer(nil)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// Do sends req with the default client and fails the test on transport errors.
func Do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
