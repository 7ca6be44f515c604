package models

// StyleDirectives tells the downstream agent how to shape its replies.
type StyleDirectives struct {
	Format             string `json:"format"`
	Tone               string `json:"tone"`
	PersuasionStrategy string `json:"persuasion_strategy"`
	DisclosurePolicy   string `json:"deception_usage"`
}

type GroupAssignment struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Assessment is the combined result for one ScoreProfile.
type Assessment struct {
	AdjustedResponse StyleDirectives `json:"adjusted_response"`
	UserGroup        GroupAssignment `json:"user_group"`
}
