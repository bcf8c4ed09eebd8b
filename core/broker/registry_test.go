package broker_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/topichat/core/broker"
)

// fakeSender records everything sent to it and optionally fails every send.
type fakeSender struct {
	mu     sync.Mutex
	frames []any
	err    error
}

func (s *fakeSender) SendJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.frames = append(s.frames, v)
	return nil
}

func (s *fakeSender) sent() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]any(nil), s.frames...)
}

func TestRegistry_JoinResolvesUniqueUsernames(t *testing.T) {
	t.Parallel()

	t.Run("first_join_keeps_requested_name", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		got := reg.Join("sports", "alice", &fakeSender{})
		assert.Equal(t, "alice", got)
	})

	t.Run("collisions_get_numeric_suffixes", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		assert.Equal(t, "alice", reg.Join("sports", "alice", &fakeSender{}))
		assert.Equal(t, "alice#2", reg.Join("sports", "alice", &fakeSender{}))
		assert.Equal(t, "alice#3", reg.Join("sports", "alice", &fakeSender{}))
	})

	t.Run("same_name_in_different_topic_is_unchanged", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		assert.Equal(t, "alice", reg.Join("sports", "alice", &fakeSender{}))
		assert.Equal(t, "alice", reg.Join("news", "alice", &fakeSender{}))
	})

	t.Run("suffix_gap_is_reused", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		reg.Join("sports", "bob", &fakeSender{})
		reg.Join("sports", "bob", &fakeSender{})
		reg.Leave("sports", "bob#2")
		assert.Equal(t, "bob#2", reg.Join("sports", "bob", &fakeSender{}))
	})
}

func TestRegistry_ResolveUsername(t *testing.T) {
	t.Parallel()

	reg := broker.New()
	assert.Equal(t, "carol", reg.ResolveUsername("sports", "carol"))

	reg.Join("sports", "carol", &fakeSender{})
	assert.Equal(t, "carol#2", reg.ResolveUsername("sports", "carol"))
}

func TestRegistry_ConcurrentJoinsGetDistinctNames(t *testing.T) {
	t.Parallel()

	const joiners = 32

	reg := broker.New()
	names := make(chan string, joiners)

	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			names <- reg.Join("sports", "bob", &fakeSender{})
		}()
	}
	wg.Wait()
	close(names)

	seen := make(map[string]bool)
	for name := range names {
		assert.False(t, seen[name], "username %q assigned twice", name)
		seen[name] = true
	}
	assert.Len(t, seen, joiners)
	assert.Equal(t, joiners, reg.MemberCount("sports"))
}

func TestRegistry_TopicLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("topic_exists_only_while_it_has_members", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		assert.Empty(t, reg.ListTopics())

		reg.Join("news", "alice", &fakeSender{})
		require.Len(t, reg.ListTopics(), 1)

		reg.Leave("news", "alice")
		assert.Empty(t, reg.ListTopics())
		assert.Zero(t, reg.MemberCount("news"))
	})

	t.Run("last_leave_drops_pending_messages", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		reg.Join("news", "alice", &fakeSender{})
		reg.CreateMessage("news", "alice", "hello")
		require.Len(t, reg.Messages("news"), 1)

		reg.Leave("news", "alice")
		assert.Nil(t, reg.Messages("news"))
	})

	t.Run("leave_is_idempotent", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		reg.Join("sports", "alice", &fakeSender{})

		require.NotPanics(t, func() {
			reg.Leave("sports", "ghost")
			reg.Leave("missing", "alice")
			reg.Leave("sports", "alice")
			reg.Leave("sports", "alice")
		})
		assert.Empty(t, reg.ListTopics())
	})
}

func TestRegistry_ListTopics(t *testing.T) {
	t.Parallel()

	reg := broker.New()
	reg.Join("sports", "alice", &fakeSender{})
	reg.Join("sports", "bob", &fakeSender{})
	reg.Join("news", "carol", &fakeSender{})

	infos := reg.ListTopics()
	require.Len(t, infos, 2)
	assert.Equal(t, "news", infos[0].Name)
	assert.Equal(t, 1, infos[0].Members)
	assert.Equal(t, "sports", infos[1].Name)
	assert.Equal(t, 2, infos[1].Members)
}

func TestRegistry_Broadcast(t *testing.T) {
	t.Parallel()

	t.Run("excluded_member_receives_nothing", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		alice := &fakeSender{}
		bob := &fakeSender{}
		carol := &fakeSender{}
		reg.Join("sports", "alice", alice)
		reg.Join("sports", "bob", bob)
		reg.Join("sports", "carol", carol)

		reg.Broadcast("sports", "payload", "bob")

		assert.Equal(t, []any{"payload"}, alice.sent())
		assert.Equal(t, []any{"payload"}, carol.sent())
		assert.Empty(t, bob.sent())
	})

	t.Run("empty_exclusion_reaches_everyone", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		alice := &fakeSender{}
		bob := &fakeSender{}
		reg.Join("sports", "alice", alice)
		reg.Join("sports", "bob", bob)

		reg.Broadcast("sports", "payload", "")

		assert.Len(t, alice.sent(), 1)
		assert.Len(t, bob.sent(), 1)
	})

	t.Run("one_failing_member_does_not_abort_delivery", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		broken := &fakeSender{err: errors.New("connection reset")}
		healthy := &fakeSender{}
		reg.Join("sports", "alice", broken)
		reg.Join("sports", "bob", healthy)

		require.NotPanics(t, func() {
			reg.Broadcast("sports", "payload", "")
		})
		assert.Len(t, healthy.sent(), 1)
	})

	t.Run("missing_topic_is_a_noop", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		require.NotPanics(t, func() {
			reg.Broadcast("missing", "payload", "")
		})
	})
}

func TestRegistry_CreateMessage(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	reg := broker.New(broker.WithClock(func() time.Time { return stamp }))
	reg.Join("sports", "alice", &fakeSender{})

	first := reg.CreateMessage("sports", "alice", "hello")
	second := reg.CreateMessage("sports", "alice", "world")

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "alice", first.Username)
	assert.Equal(t, "hello", first.Body)
	assert.Equal(t, stamp.Unix(), first.Timestamp)

	msgs := reg.Messages("sports")
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Body)
	assert.Equal(t, "world", msgs[1].Body)
}

func TestRegistry_MessageExpiry(t *testing.T) {
	t.Parallel()

	t.Run("message_expires_after_ttl", func(t *testing.T) {
		t.Parallel()

		reg := broker.New(broker.WithMessageTTL(60 * time.Millisecond))
		reg.Join("sports", "alice", &fakeSender{})
		reg.CreateMessage("sports", "alice", "ephemeral")

		// Well before the TTL elapses the message is still stored.
		time.Sleep(20 * time.Millisecond)
		assert.Len(t, reg.Messages("sports"), 1)

		assert.Eventually(t, func() bool {
			return len(reg.Messages("sports")) == 0
		}, time.Second, 10*time.Millisecond)

		// The topic itself survives expiry.
		assert.Equal(t, 1, reg.MemberCount("sports"))
	})

	t.Run("expiry_against_deleted_topic_is_a_noop", func(t *testing.T) {
		t.Parallel()

		reg := broker.New(broker.WithMessageTTL(30 * time.Millisecond))
		reg.Join("news", "alice", &fakeSender{})
		reg.CreateMessage("news", "alice", "doomed")
		reg.Leave("news", "alice")

		time.Sleep(60 * time.Millisecond)
		assert.Empty(t, reg.ListTopics())
	})

	t.Run("explicit_expire_is_idempotent", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		reg.Join("sports", "alice", &fakeSender{})
		msg := reg.CreateMessage("sports", "alice", "hello")

		reg.ExpireMessage("sports", msg.ID)
		require.NotPanics(t, func() {
			reg.ExpireMessage("sports", msg.ID)
			reg.ExpireMessage("missing", msg.ID)
			reg.ExpireMessage("sports", "no-such-id")
		})
		assert.Empty(t, reg.Messages("sports"))
	})

	t.Run("only_the_expired_message_is_removed", func(t *testing.T) {
		t.Parallel()

		reg := broker.New()
		reg.Join("sports", "alice", &fakeSender{})
		first := reg.CreateMessage("sports", "alice", "first")
		reg.CreateMessage("sports", "alice", "second")

		reg.ExpireMessage("sports", first.ID)

		msgs := reg.Messages("sports")
		require.Len(t, msgs, 1)
		assert.Equal(t, "second", msgs[0].Body)
	})
}

func TestRegistry_ConcurrentMixedOperations(t *testing.T) {
	t.Parallel()

	reg := broker.New(broker.WithMessageTTL(10 * time.Millisecond))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			topicName := fmt.Sprintf("topic-%d", i%4)
			username := reg.Join(topicName, "user", &fakeSender{})
			msg := reg.CreateMessage(topicName, username, "hi")
			reg.Broadcast(topicName, msg, username)
			reg.ListTopics()
			reg.Leave(topicName, username)
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool {
		return len(reg.ListTopics()) == 0
	}, time.Second, 10*time.Millisecond)
}
