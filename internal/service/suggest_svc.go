package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
)

// TopicProvider is the read-only source of a user's active interest topics.
type TopicProvider interface {
	GetUserTopics(ctx context.Context, userID string) ([]model.Topic, error)
}

// ChannelProvider is the read-only source of the channels a user tracks.
type ChannelProvider interface {
	GetTrackedChannels(ctx context.Context, userID string) ([]model.TrackedChannel, error)
}

// SuggestionStore is the downstream persistence collaborator that receives a
// run's ordered output.
type SuggestionStore interface {
	ReplaceForUser(ctx context.Context, userID, runID string, suggestions []model.Suggestion) error
	ListForUser(ctx context.Context, userID string) ([]model.Suggestion, error)
}

// RunResult is everything a refresh produced, plus enough bookkeeping for
// the caller to schedule a retry.
type RunResult struct {
	RunID          string
	Status         model.RunStatus
	Suggestions    []model.Suggestion
	QuotaExhausted bool
	Stats          FetchStats
}

// FetchStats summarizes how the run's fetches went.
type FetchStats struct {
	Sources   int
	Succeeded int
	Failed    int
	Skipped   int
}

// SuggestService wires the four engine pieces together: rating index first,
// then the bounded fetch fan-out, then scoring and aggregation, then handoff
// to the store and cache.
type SuggestService struct {
	topics     TopicProvider
	channels   ChannelProvider
	index      *RatingIndexService
	fetcher    *FetcherService
	aggregator *AggregatorService
	store      SuggestionStore
	cache      *CacheService
}

func NewSuggestService(
	topics TopicProvider,
	channels ChannelProvider,
	index *RatingIndexService,
	fetcher *FetcherService,
	aggregator *AggregatorService,
	store SuggestionStore,
	cache *CacheService,
) *SuggestService {
	return &SuggestService{
		topics:     topics,
		channels:   channels,
		index:      index,
		fetcher:    fetcher,
		aggregator: aggregator,
		store:      store,
		cache:      cache,
	}
}

// Refresh runs the engine for one user. It returns QuotaExceededError
// immediately when a previous run already hit the provider's daily quota;
// otherwise the run always completes with whatever it could collect.
func (s *SuggestService) Refresh(ctx context.Context, userID string) (*RunResult, error) {
	if exhausted, ttl := s.cache.QuotaExhausted(ctx); exhausted {
		return nil, NewQuotaError("search quota exhausted, retry after reset", int(ttl.Seconds())+1)
	}

	runID := uuid.NewString()
	start := time.Now()

	topics, err := s.topics.GetUserTopics(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load topics: %w", err)
	}

	partial := false
	channels, err := s.channels.GetTrackedChannels(ctx, userID)
	if err != nil {
		// Topic searches can still run; the result is just partial.
		log.Printf("suggest: run %s tracked channels fetch failed: %v", runID, err)
		partial = true
		channels = nil
	}

	index := s.index.BuildExclusions(ctx, userID)
	sources := buildSources(topics, channels, index)

	results, quotaExhausted := s.fetcher.FetchAll(ctx, sources)
	suggestions := s.aggregator.Aggregate(userID, index, results)

	stats := FetchStats{Sources: len(sources)}
	for _, res := range results {
		if res.Success {
			stats.Succeeded++
		} else {
			stats.Failed++
			partial = true
		}
	}
	stats.Skipped = stats.Sources - len(results)
	if stats.Skipped > 0 {
		partial = true
	}

	status := model.RunComplete
	switch {
	case quotaExhausted:
		status = model.RunPartialQuota
	case partial:
		status = model.RunPartial
	}

	if quotaExhausted {
		if err := s.cache.MarkQuotaExhausted(ctx, time.Now()); err != nil {
			log.Printf("suggest: run %s quota marker write failed: %v", runID, err)
		}
	}

	// Persistence and cache handoff. A store failure does not discard the
	// run; the caller still gets the list, the next refresh overwrites. The
	// cached list is invalidated rather than rewritten; the read path refills.
	if err := s.store.ReplaceForUser(ctx, userID, runID, suggestions); err != nil {
		log.Printf("suggest: run %s store failed: %v", runID, err)
	}
	if err := s.cache.InvalidateSuggestions(ctx, userID); err != nil {
		log.Printf("suggest: run %s cache invalidation failed: %v", runID, err)
	}

	log.Printf("suggest: run %s complete — user=%s status=%s sources=%d ok=%d failed=%d skipped=%d suggestions=%d (%s)",
		runID, userID, status, stats.Sources, stats.Succeeded, stats.Failed, stats.Skipped,
		len(suggestions), time.Since(start).Round(time.Millisecond))

	return &RunResult{
		RunID:          runID,
		Status:         status,
		Suggestions:    suggestions,
		QuotaExhausted: quotaExhausted,
		Stats:          stats,
	}, nil
}

// List returns the user's last run, cache first, store second. The second
// return value reports whether the cache served it.
func (s *SuggestService) List(ctx context.Context, userID string) ([]model.Suggestion, bool, error) {
	cached, err := s.cache.GetSuggestions(ctx, userID)
	if err != nil {
		log.Printf("suggest: cache read failed for user %s: %v", userID, err)
	} else if cached != nil {
		return cached, true, nil
	}

	suggestions, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.SetSuggestions(ctx, userID, suggestions); err != nil {
		log.Printf("suggest: cache fill failed for user %s: %v", userID, err)
	}
	return suggestions, false, nil
}

// buildSources turns topics and tracked channels into fetch descriptors.
// One-star channels are dropped here, before any quota is spent on them.
func buildSources(topics []model.Topic, channels []model.TrackedChannel, index *model.RatingIndex) []model.FetchSource {
	sources := make([]model.FetchSource, 0, len(topics)+len(channels))
	for _, t := range topics {
		sources = append(sources, model.FetchSource{Kind: model.FetchByTopic, Topic: t})
	}
	for _, ch := range channels {
		if index.ExcludesChannel(ch.ChannelID) {
			continue
		}
		sources = append(sources, model.FetchSource{
			Kind:        model.FetchByChannel,
			ChannelID:   ch.ChannelID,
			ChannelName: ch.ChannelName,
		})
	}
	return sources
}
