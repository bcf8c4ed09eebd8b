package chat

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/topichat/core/broker"
	"github.com/dmitrymomot/topichat/core/logger"
)

// session is the control loop for one connection. It holds no authoritative
// state: username and topic are a reference back into the registry, used
// only for dispatch and cleanup.
type session struct {
	registry *broker.Registry
	logger   *slog.Logger
	conn     *websocket.Conn
	sender   *wsSender
	remote   string

	username string
	topic    string
	joined   bool
}

// run drives the session from handshake to disconnect. Cleanup runs exactly
// once on every exit path, including handshake failures before a join.
func (s *session) run() {
	defer s.cleanup()

	if !s.handshake() {
		return
	}

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("session read failed",
					logger.Component("chat.session"),
					logger.ClientIP(s.remote),
					logger.Error(err),
				)
			} else {
				s.logger.Info("client disconnected",
					logger.Component("chat.session"),
					logger.ClientIP(s.remote),
					slog.String("username", s.username),
					slog.String("topic", s.topic),
				)
			}
			return
		}
		s.dispatch(raw)
	}
}

// handshake performs the join exchange. Reports whether the session may
// enter the active loop.
func (s *session) handshake() bool {
	_, raw, err := s.conn.ReadMessage()
	if err != nil {
		return false
	}

	req, err := parseJoinRequest(raw)
	if err != nil {
		_ = s.sender.SendJSON(errorFrame{Error: invalidJoinError})
		s.logger.Warn("invalid join payload",
			logger.Component("chat.session"),
			logger.ClientIP(s.remote),
			slog.String("payload", string(raw)),
			logger.Error(err),
		)
		return false
	}

	s.username = s.registry.Join(req.Topic, req.Username, s.sender)
	s.topic = req.Topic
	s.joined = true

	if err := s.sender.SendJSON(joinAck{Status: "joined", Username: s.username, Topic: s.topic}); err != nil {
		return false
	}

	s.registry.Broadcast(s.topic, systemNotice{
		System:    true,
		Message:   fmt.Sprintf("%s joined the topic", s.username),
		Timestamp: time.Now().Unix(),
	}, s.username)
	return true
}

// dispatch handles one inbound frame in the active state.
func (s *session) dispatch(raw []byte) {
	if strings.TrimSpace(string(raw)) == listCommand {
		infos := s.registry.ListTopics()
		lines := make([]string, 0, len(infos))
		for _, info := range infos {
			lines = append(lines, fmt.Sprintf("%s (%d users)", info.Name, info.Members))
		}
		_ = s.sender.SendJSON(listResponse{ActiveTopics: lines})
		return
	}

	body, missingField := messageBody(raw)
	if missingField {
		_ = s.sender.SendJSON(errorFrame{Error: missingMessageError})
		return
	}

	msg := s.registry.CreateMessage(s.topic, s.username, body)
	s.registry.Broadcast(s.topic, msg, s.username)
	_ = s.sender.SendJSON(deliveryAck{
		Status:    "delivered",
		MessageID: msg.ID,
		Timestamp: time.Now().Unix(),
	})
}

// cleanup removes the member and notifies the remaining topic members. The
// departing connection is already gone, so the leave notice excludes nobody.
func (s *session) cleanup() {
	if !s.joined {
		return
	}
	s.registry.Leave(s.topic, s.username)
	s.registry.Broadcast(s.topic, systemNotice{
		System:    true,
		Message:   fmt.Sprintf("%s left the topic", s.username),
		Timestamp: time.Now().Unix(),
	}, "")
}
