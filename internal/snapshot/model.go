package snapshot

import (
	"time"
)

// WritingSnapshot is a periodic point-in-time capture of a writer's document,
// recorded every 10 seconds by the writer surface. Snapshots are append-only:
// the live surfaces never read them back, they exist for offline analysis.
type WritingSnapshot struct {
	ID            uint64    `json:"id"`
	UserID        uint64    `json:"user_id" gorm:"index"`
	SessionID     string    `json:"session_id"`
	Timestamp     time.Time `json:"timestamp"`
	TextLength    int       `json:"text_length"`
	WordCount     int       `json:"word_count"`
	SentenceCount int       `json:"sentence_count"`
	LastSentence  string    `json:"last_sentence"`
	TypingSpeed   float64   `json:"typing_speed"`
	FullText      string    `json:"full_text"`
}
