package agent

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed agent.json
var agentCardJSON []byte

// AgentCard is the subset of the A2A agent card the service reads back.
type AgentCard struct {
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	Version string  `json:"version"`
	Skills  []Skill `json:"skills"`
}

type Skill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var (
	loadOnce sync.Once
	loadErr  error

	// AgentCardData is the validated card, set by LoadAgentCard.
	AgentCardData []byte
)

// LoadAgentCard validates the embedded card once and caches its bytes.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		var card AgentCard
		if err := json.Unmarshal(agentCardJSON, &card); err != nil {
			loadErr = fmt.Errorf("failed to parse agent card: %w", err)
			return
		}
		if card.Name == "" || len(card.Skills) == 0 {
			loadErr = fmt.Errorf("agent card incomplete: name and skills required")
			return
		}
		AgentCardData = agentCardJSON
	})
	return loadErr
}

// WithURL returns the card with its url replaced by the address the agent is served on.
func WithURL(url string) ([]byte, error) {
	if err := LoadAgentCard(); err != nil {
		return nil, err
	}

	var card map[string]any
	if err := json.Unmarshal(AgentCardData, &card); err != nil {
		return nil, fmt.Errorf("failed to parse agent card: %w", err)
	}
	card["url"] = url

	b, err := json.Marshal(card)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal agent card: %w", err)
	}
	return b, nil
}
