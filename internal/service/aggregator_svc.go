package service

import (
	"fmt"
	"log"
	"sort"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
)

// AggregatorService merges the candidates of a run's fetches into one
// ordered, deduplicated suggestion list.
type AggregatorService struct {
	scorer *ScorerService
}

func NewAggregatorService(scorer *ScorerService) *AggregatorService {
	return &AggregatorService{scorer: scorer}
}

// entry accumulates the merged state of one video across fetches.
type entry struct {
	candidate model.Candidate
	score     float64
	keywords  map[string]struct{}
	topics    map[string]struct{}
}

// Aggregate flattens all fetch results, drops excluded entities, scores each
// candidate against its originating topic, deduplicates by video id (keeping
// the max score, unioning keyword and topic sets), sorts by score then
// recency, and assigns tiers. A fault on one candidate drops that candidate
// only.
func (s *AggregatorService) Aggregate(userID string, index *model.RatingIndex, results []model.FetchResult) []model.Suggestion {
	byID := make(map[string]*entry)

	for _, res := range results {
		// Failed fetches normally carry no candidates; a quota-tripping
		// fetch may carry partial ones, and those were paid for.
		for _, c := range res.Candidates {
			if c.VideoID == "" {
				log.Printf("aggregator: dropping candidate with empty video id (user=%s, source=%s)", userID, res.Source.Label())
				continue
			}
			if index.ExcludesVideo(c.VideoID) || index.ExcludesChannel(c.ChannelID) {
				continue
			}

			score, matched, err := s.scoreCandidate(res.Source, c)
			if err != nil {
				log.Printf("aggregator: scoring fault on %s, using neutral score: %v", c.VideoID, err)
			}

			e, ok := byID[c.VideoID]
			if !ok {
				e = &entry{
					candidate: c,
					score:     score,
					keywords:  make(map[string]struct{}),
					topics:    make(map[string]struct{}),
				}
				byID[c.VideoID] = e
			} else if score > e.score {
				e.score = score
			}

			for _, kw := range matched {
				e.keywords[kw] = struct{}{}
			}
			if res.Source.Kind == model.FetchByTopic {
				e.topics[res.Source.Topic.Name] = struct{}{}
			}
		}
	}

	suggestions := make([]model.Suggestion, 0, len(byID))
	for _, e := range byID {
		suggestions = append(suggestions, model.Suggestion{
			Candidate:          e.candidate,
			RelevanceScore:     e.score,
			MatchedKeywords:    sortedSet(e.keywords),
			ContributingTopics: sortedSet(e.topics),
			ChannelStars:       index.ChannelStars[e.candidate.ChannelID],
			Tier:               model.TierFor(e.score),
		})
	}

	// Score descending, then newest first, then video id for a total order.
	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if !a.PublishedAt.Equal(b.PublishedAt) {
			return a.PublishedAt.After(b.PublishedAt)
		}
		return a.VideoID < b.VideoID
	})

	return suggestions
}

// scoreCandidate scores topic-sourced candidates via the scorer; channel
// listings have no originating topic and get the neutral score. A panic in
// scoring substitutes the neutral result — scoring never aborts a run.
func (s *AggregatorService) scoreCandidate(src model.FetchSource, c model.Candidate) (score float64, matched []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			score, matched = NeutralScore, nil
			err = &Error{Code: CodeInternalScoring, Message: fmt.Sprintf("scorer panic: %v", r)}
		}
	}()

	if src.Kind != model.FetchByTopic {
		return NeutralScore, nil, nil
	}
	score, matched = s.scorer.Score(src.Topic, c)
	return score, matched, nil
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
