package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const searchBody = `{
	"items": [
		{
			"id": {"videoId": "abc123"},
			"snippet": {
				"title": "Sourdough basics",
				"description": "short snippet",
				"channelId": "UC-bread",
				"channelTitle": "Bread Channel",
				"publishedAt": "2026-08-01T12:00:00Z",
				"thumbnails": {"medium": {"url": "https://img.example/abc123.jpg"}}
			}
		}
	]
}`

const videosBody = `{
	"items": [
		{
			"id": "abc123",
			"snippet": {"description": "the full, untruncated description"},
			"contentDetails": {"duration": "PT11M30S"},
			"statistics": {"viewCount": "1500", "likeCount": "120", "commentCount": "9"}
		}
	]
}`

const quotaBody = `{
	"error": {
		"code": 403,
		"message": "Daily Limit Exceeded",
		"errors": [{"reason": "quotaExceeded", "domain": "youtube.quota"}]
	}
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient("test-key", 1000)
	c.baseURL = server.URL
	return c
}

func TestSearchByTopic_HydratesCandidates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			if got := r.URL.Query().Get("q"); got != "sourdough" {
				t.Errorf("q = %q, want sourdough", got)
			}
			if r.URL.Query().Get("publishedAfter") == "" {
				t.Error("publishedAfter missing")
			}
			w.Write([]byte(searchBody))
		case "/videos":
			if got := r.URL.Query().Get("id"); got != "abc123" {
				t.Errorf("id = %q, want abc123", got)
			}
			w.Write([]byte(videosBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	res := c.SearchByTopic(context.Background(), "sourdough", time.Now().AddDate(0, 0, -14), 10)

	if !res.Success {
		t.Fatalf("fetch failed: %s", res.Error)
	}
	if len(res.Candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(res.Candidates))
	}

	got := res.Candidates[0]
	if got.VideoID != "abc123" || got.ChannelID != "UC-bread" {
		t.Errorf("identity = (%s, %s), want (abc123, UC-bread)", got.VideoID, got.ChannelID)
	}
	if got.Description != "the full, untruncated description" {
		t.Errorf("description not hydrated: %q", got.Description)
	}
	if got.DurationSeconds != 690 {
		t.Errorf("duration = %.0f, want 690", got.DurationSeconds)
	}
	if got.ViewCount != 1500 || got.LikeCount != 120 || got.CommentCount != 9 {
		t.Errorf("stats = (%d, %d, %d), want (1500, 120, 9)", got.ViewCount, got.LikeCount, got.CommentCount)
	}
}

func TestSearchByChannel_OrdersByDate(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			if got := r.URL.Query().Get("channelId"); got != "UC-bread" {
				t.Errorf("channelId = %q, want UC-bread", got)
			}
			if got := r.URL.Query().Get("order"); got != "date" {
				t.Errorf("order = %q, want date", got)
			}
			w.Write([]byte(searchBody))
		case "/videos":
			w.Write([]byte(videosBody))
		}
	})

	res := c.SearchByChannel(context.Background(), "UC-bread", 10)
	if !res.Success || len(res.Candidates) != 1 {
		t.Fatalf("result = %+v, want 1 candidate", res)
	}
}

func TestSearch_QuotaExceeded(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(quotaBody))
	})

	res := c.SearchByTopic(context.Background(), "anything", time.Now(), 10)

	if !res.QuotaExceeded {
		t.Error("QuotaExceeded not set on 403 quota response")
	}
	if res.Success {
		t.Error("quota-exceeded fetch must not report success")
	}
}

func TestSearch_ServerErrorIsTransient(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	res := c.SearchByTopic(context.Background(), "anything", time.Now(), 10)

	if res.Success || res.QuotaExceeded {
		t.Errorf("result = %+v, want plain transient failure", res)
	}
	if res.Error == "" {
		t.Error("transient failure should carry an error message")
	}
}

func TestSearch_HydrationFailureKeepsSnippets(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			w.Write([]byte(searchBody))
		case "/videos":
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	res := c.SearchByTopic(context.Background(), "sourdough", time.Now(), 10)

	if !res.Success {
		t.Fatalf("fetch should succeed with truncated candidates: %s", res.Error)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Description != "short snippet" {
		t.Errorf("candidates = %+v, want the un-hydrated snippet", res.Candidates)
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		iso  string
		want float64
	}{
		{"PT11M30S", 690},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"P1DT2H", 0}, // day components unsupported, treated as malformed
		{"garbage", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := parseISODuration(tt.iso); got != tt.want {
			t.Errorf("parseISODuration(%q) = %.0f, want %.0f", tt.iso, got, tt.want)
		}
	}
}
