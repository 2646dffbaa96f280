package model

// Tier is a coarse display bucket derived from the relevance score.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// tierThresholds is the ordered score→tier table. The first row whose
// minimum the score meets wins; the final row is the catch-all.
var tierThresholds = []struct {
	min  float64
	tier Tier
}{
	{8.0, TierHigh},
	{6.0, TierMedium},
	{0.0, TierLow},
}

// TierFor maps a relevance score to its display tier.
func TierFor(score float64) Tier {
	for _, t := range tierThresholds {
		if score >= t.min {
			return t.tier
		}
	}
	return TierLow
}

// Suggestion is one scored, deduplicated entry in a run's output. Created
// fresh per run and not mutated after aggregation completes.
type Suggestion struct {
	Candidate
	RelevanceScore     float64  `json:"relevanceScore"`
	MatchedKeywords    []string `json:"matchedKeywords"`
	ContributingTopics []string `json:"contributingTopics"`
	ChannelStars       int      `json:"channelStars,omitempty"`
	Tier               Tier     `json:"tier"`
}

// RunStatus describes how complete a suggestion run was.
type RunStatus string

const (
	RunComplete     RunStatus = "complete"
	RunPartial      RunStatus = "partial"
	RunPartialQuota RunStatus = "partial_quota"
)
