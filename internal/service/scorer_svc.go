package service

import (
	"strings"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
)

const (
	// NeutralScore is the base relevance and the score assigned when no
	// topical signal exists (channel-sourced candidates, empty keyword sets,
	// scoring faults).
	NeutralScore = 5.0
	// MaxRelevanceScore is the upper clamp. No lower clamp is needed: every
	// increment is non-negative and the base is neutral.
	MaxRelevanceScore = 10.0

	titleKeywordBonus = 1.5
	descKeywordBonus  = 0.5
	multiTitleBonus   = 0.5
	phraseBonus       = 2.0

	// Words this short ("ai", "go", "of") are dropped from keyword sets;
	// they substring-match everything.
	minKeywordLen = 3
)

// ScorerService computes how relevant a candidate video is to a topic.
// Pure: a function of (topic name, title, description) only.
type ScorerService struct{}

func NewScorerService() *ScorerService {
	return &ScorerService{}
}

// Keywords derives the topic's keyword set: lowercase whitespace-split words
// longer than two characters, first occurrence order, duplicates dropped.
func (s *ScorerService) Keywords(topicName string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(topicName)) {
		if len(word) < minKeywordLen {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}

// Score rates a candidate against a topic on the [0, 10] relevance scale.
//
//	base 5.0
//	+1.5 per keyword found in the title (+0.5 per description-only keyword)
//	+titleMatches*0.5 when more than one keyword hits the title
//	+2.0 when the full topic name appears in the title
//	clamped at 10.0
//
// The multi-match bonus stacks on top of the per-keyword increments; that is
// the established scoring contract and callers depend on it.
func (s *ScorerService) Score(topic model.Topic, c model.Candidate) (float64, []string) {
	keywords := s.Keywords(topic.Name)
	if len(keywords) == 0 {
		// Topics made of only short words carry no usable signal.
		return NeutralScore, nil
	}

	title := strings.ToLower(c.Title)
	description := strings.ToLower(c.Description)

	score := NeutralScore
	titleMatches := 0
	var matched []string

	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			titleMatches++
			matched = append(matched, kw)
			score += titleKeywordBonus
		} else if strings.Contains(description, kw) {
			matched = append(matched, kw)
			score += descKeywordBonus
		}
	}

	if titleMatches > 1 {
		score += float64(titleMatches) * multiTitleBonus
	}

	if strings.Contains(title, strings.ToLower(topic.Name)) {
		score += phraseBonus
	}

	if score > MaxRelevanceScore {
		score = MaxRelevanceScore
	}
	return score, matched
}
