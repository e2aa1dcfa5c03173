package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
		check   func(*testing.T, *Scenario)
	}{
		{
			name: "defaults",
			yaml: `
teams:
  - name: Hawks
    color: text-red-500
prospects:
  - {name: A, position: QB}
  - {name: B, position: WR}
  - {name: C, position: TE}
`,
			check: func(t *testing.T, sc *Scenario) {
				assert.Equal(t, "Simulated League", sc.Name)
				assert.Equal(t, 3, sc.Rounds)
				assert.Equal(t, "text-red-500", sc.Teams[0].Color)
			},
		},
		{
			name:    "no teams",
			yaml:    "name: Empty\n",
			wantErr: "at least one team",
		},
		{
			name: "too few prospects",
			yaml: `
rounds: 2
teams: [{name: A}, {name: B}]
prospects: [{name: X, position: QB}]
`,
			wantErr: "the draft needs 4",
		},
		{
			name:    "invalid yaml",
			yaml:    "teams: [",
			wantErr: "parse scenario",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := ParseScenario([]byte(tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, sc)
		})
	}
}

func TestDefaultScenario(t *testing.T) {
	sc := DefaultScenario(4, 2)

	assert.Len(t, sc.Teams, 4)
	assert.Len(t, sc.Prospects, 12)
	assert.Equal(t, "Team 1", sc.Teams[0].Name)
}
