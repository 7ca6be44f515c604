package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAgentCard(t *testing.T) {
	require.NoError(t, LoadAgentCard())
	require.NotEmpty(t, AgentCardData)

	var card AgentCard
	require.NoError(t, json.Unmarshal(AgentCardData, &card))
	assert.Equal(t, "Style Advisor Agent", card.Name)
	require.Len(t, card.Skills, 1)
	assert.Equal(t, "style-advice", card.Skills[0].ID)
}

func TestWithURL(t *testing.T) {
	b, err := WithURL("https://agents.example.com/a2a/advisor")
	require.NoError(t, err)

	var card AgentCard
	require.NoError(t, json.Unmarshal(b, &card))
	assert.Equal(t, "https://agents.example.com/a2a/advisor", card.URL)
	assert.Equal(t, "1.0.0", card.Version)
}
