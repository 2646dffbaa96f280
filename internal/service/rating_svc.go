package service

import (
	"context"
	"log"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
)

// RatingProvider is the read-only rating source consumed by the index. It
// must not filter anything itself; the exclusion policy lives here.
type RatingProvider interface {
	GetChannelRatings(ctx context.Context, userID string) (map[string]int, error)
	GetLowRatedChannelIds(ctx context.Context, userID string) ([]string, error)
	GetLowRatedVideoIds(ctx context.Context, userID string) ([]string, error)
}

// RatingIndexService turns a user's rating history into the exclusion sets
// and boost signal used by a suggestion run.
type RatingIndexService struct {
	ratings RatingProvider
}

func NewRatingIndexService(ratings RatingProvider) *RatingIndexService {
	return &RatingIndexService{ratings: ratings}
}

// BuildExclusions builds the per-run rating index. One-star channels and
// videos go into the exclusion sets; channels rated 2–5 stars are exposed as
// a boost signal for downstream consumers. Rating fetch errors fail open: an
// empty index includes everything rather than killing the run.
func (s *RatingIndexService) BuildExclusions(ctx context.Context, userID string) *model.RatingIndex {
	index := model.NewRatingIndex()

	lowChannels, err := s.ratings.GetLowRatedChannelIds(ctx, userID)
	if err != nil {
		log.Printf("rating-index: low-rated channels fetch failed, excluding nothing: %v", err)
		return index
	}
	for _, id := range lowChannels {
		index.ExcludedChannels[id] = struct{}{}
	}

	lowVideos, err := s.ratings.GetLowRatedVideoIds(ctx, userID)
	if err != nil {
		log.Printf("rating-index: low-rated videos fetch failed, excluding nothing: %v", err)
		return model.NewRatingIndex()
	}
	for _, id := range lowVideos {
		index.ExcludedVideos[id] = struct{}{}
	}

	ratings, err := s.ratings.GetChannelRatings(ctx, userID)
	if err != nil {
		// The boost signal is optional; keep the exclusions we already have.
		log.Printf("rating-index: channel ratings fetch failed, no boost signal: %v", err)
		return index
	}
	for channelID, stars := range ratings {
		if stars > model.ExcludedStars && stars <= model.MaxStars {
			index.ChannelStars[channelID] = stars
		}
	}

	return index
}
