package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client calls the YouTube Data API v3. All calls share a QPS limiter so a
// parallel fetch run cannot burst past the per-second limit. Daily quota
// exhaustion is reported through FetchResult.QuotaExceeded rather than as an
// error; a run is expected to finish with whatever it collected.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(apiKey string, qps float64) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(qps), 1),
	}
}

// SearchByTopic searches videos matching a topic keyword published after the
// given time.
func (c *Client) SearchByTopic(ctx context.Context, keyword string, publishedAfter time.Time, maxResults int) model.FetchResult {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("order", "relevance")
	params.Set("q", keyword)
	params.Set("publishedAfter", publishedAfter.UTC().Format(time.RFC3339))
	params.Set("maxResults", strconv.Itoa(maxResults))

	return c.search(ctx, params)
}

// SearchByChannel lists a channel's most recent uploads.
func (c *Client) SearchByChannel(ctx context.Context, channelID string, maxResults int) model.FetchResult {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("order", "date")
	params.Set("channelId", channelID)
	params.Set("maxResults", strconv.Itoa(maxResults))

	return c.search(ctx, params)
}

func (c *Client) search(ctx context.Context, params url.Values) model.FetchResult {
	var resp searchResponse
	if res, ok := c.get(ctx, "/search", params, &resp); !ok {
		return res
	}

	candidates := make([]model.Candidate, 0, len(resp.Items))
	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		candidates = append(candidates, model.Candidate{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelID:    item.Snippet.ChannelID,
			ChannelName:  item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
		})
		ids = append(ids, item.ID.VideoID)
	}

	// Search snippets omit duration, statistics, and the full description.
	// Hydrate them with a videos.list call; if it fails the truncated
	// candidates are still usable.
	if len(ids) > 0 {
		if res, ok := c.hydrate(ctx, ids, candidates); !ok {
			if res.QuotaExceeded {
				res.Candidates = candidates
				return res
			}
		}
	}

	return model.FetchResult{Success: true, Candidates: candidates}
}

// hydrate fills duration, statistics, and full descriptions from videos.list.
// Returns ok=false with the failing FetchResult when the call did not succeed.
func (c *Client) hydrate(ctx context.Context, ids []string, candidates []model.Candidate) (model.FetchResult, bool) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", strings.Join(ids, ","))

	var resp videosResponse
	if res, ok := c.get(ctx, "/videos", params, &resp); !ok {
		return res, false
	}

	details := make(map[string]videoItem, len(resp.Items))
	for _, item := range resp.Items {
		details[item.ID] = item
	}

	for i := range candidates {
		item, ok := details[candidates[i].VideoID]
		if !ok {
			continue
		}
		if item.Snippet.Description != "" {
			candidates[i].Description = item.Snippet.Description
		}
		candidates[i].DurationSeconds = parseISODuration(item.ContentDetails.Duration)
		candidates[i].ViewCount = item.Statistics.ViewCount.value
		candidates[i].LikeCount = item.Statistics.LikeCount.value
		candidates[i].CommentCount = item.Statistics.CommentCount.value
	}

	return model.FetchResult{Success: true}, true
}

// get performs one API call and decodes the body into out. On failure it
// returns ok=false and a FetchResult describing the fault: quota exhaustion
// when the API says so, a transient error otherwise.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) (model.FetchResult, bool) {
	if err := c.limiter.Wait(ctx); err != nil {
		return transient(fmt.Sprintf("rate limiter: %v", err)), false
	}

	params.Set("key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return transient(fmt.Sprintf("build request: %v", err)), false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transient(fmt.Sprintf("request failed: %v", err)), false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transient(fmt.Sprintf("read body: %v", err)), false
	}

	if resp.StatusCode != http.StatusOK {
		if isQuotaExceeded(resp.StatusCode, body) {
			return model.FetchResult{QuotaExceeded: true, Error: "youtube api quota exceeded"}, false
		}
		return transient(fmt.Sprintf("youtube api status %d", resp.StatusCode)), false
	}

	if err := json.Unmarshal(body, out); err != nil {
		return transient(fmt.Sprintf("decode response: %v", err)), false
	}
	return model.FetchResult{}, true
}

func transient(msg string) model.FetchResult {
	return model.FetchResult{Error: msg}
}

// isQuotaExceeded checks the API error body for the daily-quota reasons. Only
// these stop a run; everything else is a per-source transient failure.
func isQuotaExceeded(status int, body []byte) bool {
	if status != http.StatusForbidden && status != http.StatusTooManyRequests {
		return false
	}

	var apiErr struct {
		Error struct {
			Errors []struct {
				Reason string `json:"reason"`
			} `json:"errors"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return false
	}
	for _, e := range apiErr.Error.Errors {
		switch e.Reason {
		case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
			return true
		}
	}
	return false
}

// parseISODuration converts an ISO 8601 duration like "PT1H2M3S" to seconds.
// Malformed input yields 0; duration is display metadata, not worth failing a
// fetch over.
func parseISODuration(iso string) float64 {
	s, ok := strings.CutPrefix(iso, "PT")
	if !ok {
		return 0
	}

	var total, n float64
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			n = n*10 + float64(r-'0')
		case r == 'H':
			total += n * 3600
			n = 0
		case r == 'M':
			total += n * 60
			n = 0
		case r == 'S':
			total += n
			n = 0
		default:
			return 0
		}
	}
	return total
}

// searchResponse is the subset of the search.list response we consume.
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID             string  `json:"id"`
	Snippet        snippet `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
	Statistics struct {
		ViewCount    apiCount `json:"viewCount"`
		LikeCount    apiCount `json:"likeCount"`
		CommentCount apiCount `json:"commentCount"`
	} `json:"statistics"`
}

type snippet struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	PublishedAt  time.Time `json:"publishedAt"`
	Thumbnails   struct {
		Medium struct {
			URL string `json:"url"`
		} `json:"medium"`
	} `json:"thumbnails"`
}

// apiCount handles the API's quoted numeric strings.
type apiCount struct {
	value int64
}

func (c *apiCount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		c.value = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	c.value = v
	return nil
}
