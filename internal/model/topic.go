package model

// Topic is a user-defined interest used to search for candidate videos.
type Topic struct {
	TopicID string `json:"topicId"`
	Name    string `json:"name"`
}

// TrackedChannel is a channel the user follows for new uploads.
type TrackedChannel struct {
	ChannelID   string `json:"channelId"`
	ChannelName string `json:"channelName,omitempty"`
}
