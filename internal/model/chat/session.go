package chat

import "time"

// Turn is one completed question/response exchange inside a session.
type Turn struct {
	ID        string    `json:"id,omitempty"`
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionRecord groups the turns of one browser session for auditing.
// The turn list is append-only and ordered by occurrence.
type SessionRecord struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	Turns     []Turn    `json:"conversationData"`
	Timestamp time.Time `json:"timestamp"`
}
