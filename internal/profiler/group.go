package profiler

import "github.com/BerylCAtieno/style-advisor-agent/internal/models"

// groupRule is one named group and the predicate that selects it.
type groupRule struct {
	group   models.GroupAssignment
	matches func(p models.ScoreProfile) bool
}

var (
	GroupA = models.GroupAssignment{
		Name:        "Group A",
		Description: "Highly susceptible to persuasion and emotional manipulation, prone to biases.",
	}
	GroupB = models.GroupAssignment{
		Name:        "Group B",
		Description: "Balanced group with moderate susceptibility to persuasion and deception.",
	}
	GroupC = models.GroupAssignment{
		Name:        "Group C",
		Description: "Highly logical, aware of deception, and resistant to persuasion.",
	}
	GroupD = models.GroupAssignment{
		Name:        "Group D",
		Description: "Custom group with mixed characteristics.",
	}
)

// groupRules are evaluated in order; the first match wins.
var groupRules = []groupRule{
	{
		group: GroupA,
		matches: func(p models.ScoreProfile) bool {
			return p.CognitiveBiasAwareness <= lowCeiling &&
				p.PersuasionReceptivity > midCeiling &&
				p.DeceptionSusceptibility <= lowCeiling &&
				p.EmotionalResponseBias > midCeiling
		},
	},
	{
		group: GroupB,
		matches: func(p models.ScoreProfile) bool {
			return isMid(p.CognitiveBiasAwareness) &&
				isMid(p.PersuasionReceptivity) &&
				isMid(p.DeceptionSusceptibility) &&
				isMid(p.EmotionalResponseBias)
		},
	},
	{
		group: GroupC,
		matches: func(p models.ScoreProfile) bool {
			return p.CognitiveBiasAwareness > midCeiling &&
				p.PersuasionReceptivity <= lowCeiling &&
				p.DeceptionSusceptibility > midCeiling &&
				p.EmotionalResponseBias <= lowCeiling
		},
	},
}

// Classify assigns a profile to a group. Profiles matching no rule fall into Group D.
func Classify(p models.ScoreProfile) models.GroupAssignment {
	for _, r := range groupRules {
		if r.matches(p) {
			return r.group
		}
	}
	return GroupD
}
