package chat

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/topichat/core/broker"
)

// TopicsHandler returns a read-only JSON snapshot of the active topics with
// their member and live message counts. Intended for dashboards and tests;
// it never mutates registry state.
func TopicsHandler(registry *broker.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos := registry.ListTopics()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(infos)
	}
}
