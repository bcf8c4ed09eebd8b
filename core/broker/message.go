package broker

import (
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
)

// CreateMessage stamps a new message with a fresh id and the current unix
// timestamp, stores it in the topic, and schedules its expiry after the
// configured TTL. The message is returned for immediate broadcast and
// acknowledgment. Scheduling is fire-and-forget: the caller never waits on
// the expiry timer.
func (r *Registry) CreateMessage(topicName, author, body string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Username:  author,
		Body:      body,
		Timestamp: r.now().Unix(),
	}

	r.mu.Lock()
	if t, ok := r.topics[topicName]; ok {
		t.messages = append(t.messages, msg)
	}
	r.mu.Unlock()

	time.AfterFunc(r.ttl, func() {
		r.ExpireMessage(topicName, msg.ID)
	})
	return msg
}

// ExpireMessage removes the message with the given id from the topic.
// A missing topic or message is a silent no-op: the topic may have been
// deleted between scheduling and firing.
func (r *Registry) ExpireMessage(topicName, id string) {
	r.mu.Lock()
	t, ok := r.topics[topicName]
	if !ok {
		r.mu.Unlock()
		return
	}
	before := len(t.messages)
	kept := t.messages[:0]
	for _, m := range t.messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	t.messages = kept
	removed := before - len(kept)
	r.mu.Unlock()

	if removed > 0 {
		r.logger.Info("message expired",
			slog.String("topic", topicName),
			slog.String("message_id", id),
		)
	}
}

// Messages returns a snapshot of the topic's live messages in arrival order,
// nil when the topic does not exist.
func (r *Registry) Messages(topicName string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.topics[topicName]
	if !ok {
		return nil
	}
	return slices.Clone(t.messages)
}
