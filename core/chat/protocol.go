package chat

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// listCommand is matched against trimmed frame text before JSON detection,
// so a chat body equal to the command cannot be sent as a message.
const listCommand = "/list"

const (
	invalidJoinError    = `Invalid initial payload. Send JSON: {"username":"alice","topic":"sports"}`
	missingMessageError = "JSON payload must contain 'message' field"
)

var validate = validator.New()

// joinRequest is the mandatory first frame of every connection.
type joinRequest struct {
	Username string `json:"username" validate:"required"`
	Topic    string `json:"topic" validate:"required"`
}

// parseJoinRequest decodes and validates a join frame. Non-string fields
// fail decoding, missing or empty fields fail validation.
func parseJoinRequest(raw []byte) (joinRequest, error) {
	var req joinRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return joinRequest{}, fmt.Errorf("decode join request: %w", err)
	}
	if err := validate.Struct(req); err != nil {
		return joinRequest{}, fmt.Errorf("validate join request: %w", err)
	}
	return req, nil
}

// messageBody extracts the chat body from an inbound frame. Frames that are
// not valid JSON are used verbatim as the body. Valid JSON that is not an
// object carrying a "message" field reports missingField instead; the
// session answers those with an error frame and creates nothing.
func messageBody(raw []byte) (body string, missingField bool) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return string(raw), false
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return "", true
	}
	v, ok := obj["message"]
	if !ok {
		return "", true
	}
	if s, ok := v.(string); ok {
		return s, false
	}
	return fmt.Sprint(v), false
}

type joinAck struct {
	Status   string `json:"status"`
	Username string `json:"username"`
	Topic    string `json:"topic"`
}

type deliveryAck struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id"`
	Timestamp int64  `json:"timestamp"`
}

type systemNotice struct {
	System    bool   `json:"system"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

type listResponse struct {
	ActiveTopics []string `json:"active_topics"`
}

type errorFrame struct {
	Error string `json:"error"`
}
