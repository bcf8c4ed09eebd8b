package broker

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Registry is the single owner of all topic, member, and message state.
// Safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	topics map[string]*topic

	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Registry with the default message TTL and a no-op logger.
func New(opts ...Option) *Registry {
	r := &Registry{
		topics: make(map[string]*topic),
		ttl:    DefaultMessageTTL,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ResolveUsername returns the username a join with the requested name would
// receive right now: the requested name if free, otherwise the first unused
// of "name#2", "name#3", and so on. The answer is computed against a
// consistent snapshot but may be stale by the time a separate Join runs;
// Join performs its own resolution atomically with the insert.
func (r *Registry) ResolveUsername(topicName, requested string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(topicName, requested)
}

// resolveLocked must be called with r.mu held.
func (r *Registry) resolveLocked(topicName, requested string) string {
	t, ok := r.topics[topicName]
	if !ok {
		return requested
	}
	if _, taken := t.members[requested]; !taken {
		return requested
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s#%d", requested, i)
		if _, taken := t.members[candidate]; !taken {
			return candidate
		}
	}
}

// Join inserts a member into the topic, creating the topic if absent, and
// returns the member's resolved username. Name resolution and insertion
// happen in one critical section, so two concurrent joins with the same
// requested name always receive distinct usernames.
func (r *Registry) Join(topicName, requested string, sender Sender) string {
	r.mu.Lock()
	username := r.resolveLocked(topicName, requested)
	t, ok := r.topics[topicName]
	if !ok {
		t = newTopic()
		r.topics[topicName] = t
	}
	t.members[username] = sender
	members := len(t.members)
	r.mu.Unlock()

	r.logger.Info("member joined topic",
		slog.String("topic", topicName),
		slog.String("username", username),
		slog.Int("members", members),
	)
	return username
}

// Leave removes the member from the topic. When the last member leaves, the
// topic is deleted along with any pending messages; their expiry timers fire
// harmlessly against the missing topic. Leaving a topic or username that
// does not exist is a no-op.
func (r *Registry) Leave(topicName, username string) {
	r.mu.Lock()
	t, ok := r.topics[topicName]
	if !ok {
		r.mu.Unlock()
		return
	}
	if _, member := t.members[username]; !member {
		r.mu.Unlock()
		return
	}
	delete(t.members, username)
	empty := len(t.members) == 0
	if empty {
		delete(r.topics, topicName)
	}
	r.mu.Unlock()

	r.logger.Info("member left topic",
		slog.String("topic", topicName),
		slog.String("username", username),
	)
	if empty {
		r.logger.Info("topic removed, no members remain", slog.String("topic", topicName))
	}
}

// ListTopics returns a snapshot of all topics sorted by name.
func (r *Registry) ListTopics() []TopicInfo {
	r.mu.Lock()
	infos := make([]TopicInfo, 0, len(r.topics))
	for name, t := range r.topics {
		infos = append(infos, TopicInfo{
			Name:     name,
			Members:  len(t.members),
			Messages: len(t.messages),
		})
	}
	r.mu.Unlock()

	slices.SortFunc(infos, func(a, b TopicInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos
}

// MemberCount reports the current number of members in the topic,
// zero when the topic does not exist.
func (r *Registry) MemberCount(topicName string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.topics[topicName]; ok {
		return len(t.members)
	}
	return 0
}
