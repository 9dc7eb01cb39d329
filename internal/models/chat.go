package models

import "time"

// Message is one chat line. It is never edited after being appended.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// ThreadSummary describes a thread from one participant's point of view.
type ThreadSummary struct {
	ThreadID string
	Peer     string
	Last     Message
	Count    int
}
