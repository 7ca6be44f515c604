package profiler

import "github.com/BerylCAtieno/style-advisor-agent/internal/models"

// Bucket is the score range a directive is chosen from.
type Bucket int

const (
	BucketLow  Bucket = iota // <= 40
	BucketMid                // 41-70
	BucketHigh               // > 70
)

const (
	lowCeiling = 40
	midFloor   = 41
	midCeiling = 70
)

func (b Bucket) String() string {
	switch b {
	case BucketLow:
		return "low"
	case BucketMid:
		return "mid"
	default:
		return "high"
	}
}

// BucketOf places a score in its bucket.
func BucketOf(score int) Bucket {
	switch {
	case score <= lowCeiling:
		return BucketLow
	case isMid(score):
		return BucketMid
	default:
		return BucketHigh
	}
}

func isMid(score int) bool {
	return score >= midFloor && score <= midCeiling
}

// Advise derives the response style directives for a profile. Each directive
// depends on exactly one score.
func Advise(p models.ScoreProfile) models.StyleDirectives {
	return models.StyleDirectives{
		Format:             adviseFormat(p.CognitiveBiasAwareness),
		Tone:               adviseTone(p.EmotionalResponseBias),
		PersuasionStrategy: advisePersuasion(p.PersuasionReceptivity),
		DisclosurePolicy:   adviseDisclosure(p.DeceptionSusceptibility),
	}
}

func adviseFormat(cognitiveBiasAwareness int) string {
	if cognitiveBiasAwareness <= lowCeiling {
		return "Highly structured, use authority and social proof with bullet points."
	} else if isMid(cognitiveBiasAwareness) {
		return "Mix structured explanations with some persuasive elements."
	}
	return "Use direct, logical arguments without appealing to authority."
}

func adviseTone(emotionalResponseBias int) string {
	if emotionalResponseBias > midCeiling {
		return "Motivational and emotionally charged, appealing to emotions like hope or urgency."
	} else if isMid(emotionalResponseBias) {
		return "Empathetic but neutral, balancing emotion with facts."
	}
	return "Analytical and logical tone, no emotional appeals."
}

func advisePersuasion(persuasionReceptivity int) string {
	if persuasionReceptivity > midCeiling {
		return "Use scarcity, authority bias, and social proof to persuade."
	} else if isMid(persuasionReceptivity) {
		return "Use logical appeals with subtle emotional cues like reciprocity."
	}
	return "Stick to logical deduction and evidence-based reasoning."
}

func adviseDisclosure(deceptionSusceptibility int) string {
	if deceptionSusceptibility > midCeiling {
		return "Be fully transparent and offer all sides of the argument."
	} else if isMid(deceptionSusceptibility) {
		return "Provide balanced information but emphasize positives."
	}
	return "Use careful framing and selective omission to maintain focus on positive aspects."
}
