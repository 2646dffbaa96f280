package service

import (
	"context"
	"errors"
	"testing"
)

type fakeRatingProvider struct {
	channelRatings map[string]int
	lowChannels    []string
	lowVideos      []string

	channelRatingsErr error
	lowChannelsErr    error
	lowVideosErr      error
}

func (f *fakeRatingProvider) GetChannelRatings(_ context.Context, _ string) (map[string]int, error) {
	return f.channelRatings, f.channelRatingsErr
}

func (f *fakeRatingProvider) GetLowRatedChannelIds(_ context.Context, _ string) ([]string, error) {
	return f.lowChannels, f.lowChannelsErr
}

func (f *fakeRatingProvider) GetLowRatedVideoIds(_ context.Context, _ string) ([]string, error) {
	return f.lowVideos, f.lowVideosErr
}

func TestBuildExclusions(t *testing.T) {
	provider := &fakeRatingProvider{
		channelRatings: map[string]int{
			"UC-one-star":  1,
			"UC-two-star":  2,
			"UC-five-star": 5,
		},
		lowChannels: []string{"UC-one-star"},
		lowVideos:   []string{"vid-bad"},
	}
	svc := NewRatingIndexService(provider)

	index := svc.BuildExclusions(context.Background(), "user-1")

	if !index.ExcludesChannel("UC-one-star") {
		t.Error("one-star channel should be excluded")
	}
	if index.ExcludesChannel("UC-two-star") {
		t.Error("two-star channel should not be excluded")
	}
	if !index.ExcludesVideo("vid-bad") {
		t.Error("one-star video should be excluded")
	}
	if index.ExcludesVideo("vid-good") {
		t.Error("unrated video should not be excluded")
	}
}

func TestBuildExclusions_OneStarNeverBoosted(t *testing.T) {
	provider := &fakeRatingProvider{
		channelRatings: map[string]int{"UC-one-star": 1, "UC-four-star": 4},
		lowChannels:    []string{"UC-one-star"},
	}
	svc := NewRatingIndexService(provider)

	index := svc.BuildExclusions(context.Background(), "user-1")

	if _, ok := index.ChannelStars["UC-one-star"]; ok {
		t.Error("excluded channel must not appear in the boost map")
	}
	if stars := index.ChannelStars["UC-four-star"]; stars != 4 {
		t.Errorf("ChannelStars[UC-four-star] = %d, want 4", stars)
	}
}

func TestBuildExclusions_FailsOpen(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeRatingProvider
	}{
		{"channel fetch error", &fakeRatingProvider{lowChannelsErr: errors.New("db down")}},
		{"video fetch error", &fakeRatingProvider{
			lowChannels:  []string{"UC-one-star"},
			lowVideosErr: errors.New("db down"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRatingIndexService(tt.provider)
			index := svc.BuildExclusions(context.Background(), "user-1")

			if len(index.ExcludedChannels) != 0 || len(index.ExcludedVideos) != 0 {
				t.Errorf("index should be empty on provider error, got %d/%d exclusions",
					len(index.ExcludedChannels), len(index.ExcludedVideos))
			}
		})
	}
}

func TestBuildExclusions_BoostErrorKeepsExclusions(t *testing.T) {
	provider := &fakeRatingProvider{
		lowChannels:       []string{"UC-one-star"},
		channelRatingsErr: errors.New("db down"),
	}
	svc := NewRatingIndexService(provider)

	index := svc.BuildExclusions(context.Background(), "user-1")

	if !index.ExcludesChannel("UC-one-star") {
		t.Error("exclusions should survive a boost-signal fetch error")
	}
	if len(index.ChannelStars) != 0 {
		t.Error("boost map should be empty when the ratings fetch fails")
	}
}
