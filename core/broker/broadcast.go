package broker

import "log/slog"

// recipient pairs a username with its send handle for delivery outside the
// registry lock.
type recipient struct {
	username string
	sender   Sender
}

// Broadcast sends the payload to every current member of the topic except
// the excluded username (pass "" to exclude nobody). The member list is
// snapshotted under the lock and sends happen outside it, so a member who
// leaves mid-broadcast may still receive one final frame. Individual send
// failures are logged and skipped; they never abort delivery to the rest.
func (r *Registry) Broadcast(topicName string, payload any, exclude string) {
	r.mu.Lock()
	t, ok := r.topics[topicName]
	if !ok {
		r.mu.Unlock()
		return
	}
	recipients := make([]recipient, 0, len(t.members))
	for username, sender := range t.members {
		if username == exclude {
			continue
		}
		recipients = append(recipients, recipient{username: username, sender: sender})
	}
	r.mu.Unlock()

	for _, rcpt := range recipients {
		if err := rcpt.sender.SendJSON(payload); err != nil {
			r.logger.Warn("failed to deliver to member",
				slog.String("topic", topicName),
				slog.String("username", rcpt.username),
				slog.Any("error", err),
			)
		}
	}
}
