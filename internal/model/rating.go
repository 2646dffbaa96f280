package model

// Star rating bounds. Entities rated exactly MinStars are excluded from
// suggestions entirely.
const (
	MinStars      = 1
	MaxStars      = 5
	ExcludedStars = 1
)

// RatingIndex holds the per-user exclusion sets and boost signal derived
// from rating history. Built once per run.
type RatingIndex struct {
	ExcludedChannels map[string]struct{}
	ExcludedVideos   map[string]struct{}
	// ChannelStars maps channel id → stars (2–5). One-star channels live in
	// ExcludedChannels only; they are never boosted.
	ChannelStars map[string]int
}

// NewRatingIndex returns an empty index (excludes nothing, boosts nothing).
func NewRatingIndex() *RatingIndex {
	return &RatingIndex{
		ExcludedChannels: make(map[string]struct{}),
		ExcludedVideos:   make(map[string]struct{}),
		ChannelStars:     make(map[string]int),
	}
}

// ExcludesChannel reports whether the user rated the channel one star.
func (i *RatingIndex) ExcludesChannel(channelID string) bool {
	_, ok := i.ExcludedChannels[channelID]
	return ok
}

// ExcludesVideo reports whether the user rated the video one star.
func (i *RatingIndex) ExcludesVideo(videoID string) bool {
	_, ok := i.ExcludedVideos[videoID]
	return ok
}
