package service

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
)

// VideoSearchProvider is the quota-limited external search collaborator.
// Quota exhaustion and per-call failures are reported inside the FetchResult.
type VideoSearchProvider interface {
	SearchByTopic(ctx context.Context, keyword string, publishedAfter time.Time, maxResults int) model.FetchResult
	SearchByChannel(ctx context.Context, channelID string, maxResults int) model.FetchResult
}

// FetcherService fans fetch sources out over a bounded worker pool. The
// first quota-exceeded result stops further dispatch for the run; fetches
// already in flight run to completion and their candidates are kept.
type FetcherService struct {
	provider   VideoSearchProvider
	workers    int
	maxResults int
	lookback   time.Duration
}

func NewFetcherService(provider VideoSearchProvider, workers, maxResults, lookbackDays int) *FetcherService {
	if workers < 1 {
		workers = 1
	}
	return &FetcherService{
		provider:   provider,
		workers:    workers,
		maxResults: maxResults,
		lookback:   time.Duration(lookbackDays) * 24 * time.Hour,
	}
}

// FetchAll executes one fetch per source and returns every result collected
// plus whether the provider quota ran out mid-run. Result order is not
// meaningful; the aggregator re-sorts deterministically after the join.
func (s *FetcherService) FetchAll(ctx context.Context, sources []model.FetchSource) ([]model.FetchResult, bool) {
	if len(sources) == 0 {
		return nil, false
	}

	// runCtx only gates dispatch. In-flight provider calls get the parent
	// context so a quota trip never aborts work that is already paid for.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	publishedAfter := time.Now().Add(-s.lookback)

	var (
		mu      sync.Mutex
		results []model.FetchResult
		quota   atomic.Bool
		wg      sync.WaitGroup
	)

	jobs := make(chan model.FetchSource)
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				if runCtx.Err() != nil {
					// Quota tripped while this source sat in the queue.
					log.Printf("fetcher: skipping %s (run cancelled)", src.Label())
					continue
				}

				res := s.fetchOne(ctx, src, publishedAfter)
				if res.QuotaExceeded {
					quota.Store(true)
					cancel()
					log.Printf("fetcher: quota exceeded on %s, halting dispatch", src.Label())
				} else if !res.Success {
					log.Printf("fetcher: %s failed: %s", src.Label(), res.Error)
				}

				mu.Lock()
				results = append(results, res)
				mu.Unlock()
			}
		}()
	}

feed:
	for _, src := range sources {
		select {
		case jobs <- src:
		case <-runCtx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	return results, quota.Load()
}

func (s *FetcherService) fetchOne(ctx context.Context, src model.FetchSource, publishedAfter time.Time) model.FetchResult {
	var res model.FetchResult
	switch src.Kind {
	case model.FetchByTopic:
		res = s.provider.SearchByTopic(ctx, src.Topic.Name, publishedAfter, s.maxResults)
	case model.FetchByChannel:
		res = s.provider.SearchByChannel(ctx, src.ChannelID, s.maxResults)
	default:
		res = model.FetchResult{Error: "unknown fetch kind"}
	}
	res.Source = src
	return res
}
