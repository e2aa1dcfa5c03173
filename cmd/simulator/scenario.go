package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes a league to build and draft.
type Scenario struct {
	Name      string             `yaml:"name"`
	Rounds    int                `yaml:"rounds"`
	Teams     []ScenarioTeam     `yaml:"teams"`
	Prospects []ScenarioProspect `yaml:"prospects"`
}

type ScenarioTeam struct {
	Name    string `yaml:"name" json:"name"`
	Icon    string `yaml:"icon" json:"icon,omitempty"`
	Color   string `yaml:"color" json:"color,omitempty"`
	BgColor string `yaml:"bg_color" json:"bg_color,omitempty"`
}

type ScenarioProspect struct {
	Name     string `yaml:"name" json:"name"`
	Position string `yaml:"position" json:"position"`
	College  string `yaml:"college" json:"college,omitempty"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario and fills in defaults.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.Name == "" {
		sc.Name = "Simulated League"
	}
	if sc.Rounds == 0 {
		sc.Rounds = 3
	}
	if sc.Rounds < 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", sc.Rounds)
	}
	if len(sc.Teams) == 0 {
		return nil, fmt.Errorf("scenario needs at least one team")
	}
	if need := len(sc.Teams) * sc.Rounds; len(sc.Prospects) < need {
		return nil, fmt.Errorf("scenario has %d prospects, the draft needs %d", len(sc.Prospects), need)
	}
	return &sc, nil
}

// DefaultScenario builds a league of the given size with generated prospects.
func DefaultScenario(teams, rounds int) *Scenario {
	sc := &Scenario{Name: "Simulated League", Rounds: rounds}
	for i := 0; i < teams; i++ {
		sc.Teams = append(sc.Teams, ScenarioTeam{Name: fmt.Sprintf("Team %d", i+1)})
	}

	positions := []string{"QB", "RB", "WR", "TE", "OT", "EDGE", "DT", "LB", "CB", "S"}
	// Leave some slack so the last picks still have a choice.
	for i := 0; i < teams*rounds+teams; i++ {
		sc.Prospects = append(sc.Prospects, ScenarioProspect{
			Name:     fmt.Sprintf("Prospect %d", i+1),
			Position: positions[i%len(positions)],
		})
	}
	return sc
}
