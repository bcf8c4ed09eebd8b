// Package chat implements the per-connection session protocol on top of a
// broker.Registry: WebSocket upgrade, the mandatory join handshake, the
// message dispatch loop, and cleanup on disconnect.
//
// # Protocol
//
// The first frame of every connection must be a JSON join request:
//
//	{"username": "alice", "topic": "sports"}
//
// The server resolves username collisions within the topic (alice, alice#2,
// ...), acknowledges the join to the connection, and notifies the rest of
// the topic. A malformed join payload receives an error frame and the
// connection is closed without joining.
//
// After joining, each inbound frame is dispatched by content:
//
//   - the literal text "/list" returns the active topic listing to the
//     requester only
//   - a JSON object with a "message" field becomes a chat message
//   - a JSON payload without a "message" field receives an error frame
//   - anything else is treated as a raw text message body
//
// Chat messages are stored with a TTL, broadcast to the other topic members,
// and acknowledged to the sender with the message id. The "/list" check runs
// before JSON detection, so a chat body that is literally "/list" cannot be
// sent; this matches the original protocol and is kept deliberately.
package chat
