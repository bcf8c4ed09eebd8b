package broker

// Sender is the outbound handle held for each topic member. Implementations
// must be safe for concurrent use: broadcasts from different goroutines may
// target the same member at once.
type Sender interface {
	SendJSON(v any) error
}

// Message is a chat message stored in its topic until it expires.
// The JSON encoding is the broadcast frame sent to topic members.
type Message struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Body      string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// TopicInfo is a point-in-time view of a topic for listings.
type TopicInfo struct {
	Name     string `json:"name"`
	Members  int    `json:"members"`
	Messages int    `json:"messages"`
}

// topic is the registry-internal state of one topic. Access is guarded by
// the Registry mutex; topic values never escape the registry.
type topic struct {
	members  map[string]Sender
	messages []Message
}

func newTopic() *topic {
	return &topic{members: make(map[string]Sender)}
}
