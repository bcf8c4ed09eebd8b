// Package broker implements an in-memory, topic-scoped pub/sub registry for
// real-time chat. A Registry owns all topic state: the members of each topic
// keyed by username, and the topic's live messages until they expire.
//
// # Design
//
// All topic, member, and message state lives behind a single mutex held only
// for the duration of in-memory mutations, never across a network send.
// Broadcast snapshots the recipient list under the lock and performs sends
// outside it, so one slow or broken connection cannot stall topic traffic.
//
// Topics exist exactly as long as they have members: Join creates a topic on
// first use and Leave deletes it when the last member departs, dropping any
// pending messages. Message expiry timers fire independently and become
// no-ops when their target is already gone.
//
// # Usage
//
//	reg := broker.New(
//		broker.WithLogger(log),
//		broker.WithMessageTTL(30*time.Second),
//	)
//
//	username := reg.Join("sports", "alice", sender)
//	msg := reg.CreateMessage("sports", username, "hello")
//	reg.Broadcast("sports", msg, username)
//	reg.Leave("sports", username)
//
// Username collisions are resolved per topic by suffixing "#2", "#3", and so
// on; resolution and insertion happen in one critical section, so concurrent
// joins with the same requested name always end up with distinct usernames.
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use. Leave and ExpireMessage
// are idempotent: repeating them, or targeting state that no longer exists,
// is a silent no-op.
package broker
