package model

import "time"

// Candidate is a video returned by the external search provider, before
// exclusion filtering and scoring. Immutable once fetched.
type Candidate struct {
	VideoID         string    `json:"videoId"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	ChannelID       string    `json:"channelId"`
	ChannelName     string    `json:"channelName,omitempty"`
	PublishedAt     time.Time `json:"publishedAt"`
	DurationSeconds float64   `json:"durationSeconds,omitempty"`
	ViewCount       int64     `json:"viewCount,omitempty"`
	LikeCount       int64     `json:"likeCount,omitempty"`
	CommentCount    int64     `json:"commentCount,omitempty"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty"`
}
