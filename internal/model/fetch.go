package model

// FetchKind distinguishes the two kinds of external fetch.
type FetchKind string

const (
	FetchByTopic   FetchKind = "topic"
	FetchByChannel FetchKind = "channel"
)

// FetchSource describes one independent external fetch: either a keyword
// search for a topic or an upload listing for a tracked channel.
type FetchSource struct {
	Kind        FetchKind
	Topic       Topic  // set when Kind == FetchByTopic
	ChannelID   string // set when Kind == FetchByChannel
	ChannelName string
}

// Label returns a short identifier for logs.
func (s FetchSource) Label() string {
	if s.Kind == FetchByTopic {
		return "topic:" + s.Topic.Name
	}
	return "channel:" + s.ChannelID
}

// FetchResult is the outcome of one external search call. Quota exhaustion
// and transient failures are carried as data rather than errors so a run can
// degrade gracefully.
type FetchResult struct {
	Source        FetchSource
	Success       bool
	Candidates    []Candidate
	QuotaExceeded bool
	Error         string
}
