package snapshot

import (
	defError "errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// sentence terminators cover latin and CJK punctuation, matching the writer
// surface's counting rules
const sentenceTerminators = ".!?。！？"

type Service interface {
	Record(userID uint64, sessionID string, fullText string) (*WritingSnapshot, error)
	ListByUser(userID uint64) ([]WritingSnapshot, error)
}

type DefaultService struct {
	repository SnapshotRepository
	now        func() time.Time
}

func NewService(repository SnapshotRepository) Service {
	return &DefaultService{repository: repository, now: func() time.Time { return time.Now().UTC() }}
}

// Record captures the writer's current text. Typing speed is the character
// delta against the previous snapshot of the same session, in characters per
// minute; the first snapshot of a session records 0.
func (s *DefaultService) Record(userID uint64, sessionID string, fullText string) (*WritingSnapshot, error) {
	capturedAt := s.now()

	snapshot := &WritingSnapshot{
		UserID:        userID,
		SessionID:     sessionID,
		Timestamp:     capturedAt,
		TextLength:    len([]rune(fullText)),
		WordCount:     countWords(fullText),
		SentenceCount: countSentences(fullText),
		LastSentence:  lastSentence(fullText),
		FullText:      fullText,
	}

	previous, err := s.repository.Latest(userID, sessionID)
	if err != nil && !defError.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if previous != nil {
		elapsed := capturedAt.Sub(previous.Timestamp).Minutes()
		if elapsed > 0 {
			delta := snapshot.TextLength - previous.TextLength
			if delta < 0 {
				delta = 0
			}
			snapshot.TypingSpeed = float64(delta) / elapsed
		}
	}

	if err := s.repository.Create(snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (s *DefaultService) ListByUser(userID uint64) ([]WritingSnapshot, error) {
	return s.repository.ListByUserID(userID)
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

func countSentences(text string) int {
	count := 0
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(sentenceTerminators, r)
	}) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

// lastSentence returns the trailing sentence fragment the writer is working
// on, or the final full sentence when the text ends on a terminator
func lastSentence(text string) string {
	trimmed := strings.TrimRight(text, " \t\n\r")
	if trimmed == "" {
		return ""
	}

	// byte offsets just past the last two terminators
	last, prev := -1, -1
	for i, r := range trimmed {
		if strings.ContainsRune(sentenceTerminators, r) {
			prev = last
			last = i + utf8.RuneLen(r)
		}
	}

	if last < 0 {
		return strings.TrimSpace(trimmed)
	}

	fragment := trimmed[last:]
	if strings.TrimSpace(fragment) == "" {
		start := 0
		if prev >= 0 {
			start = prev
		}
		fragment = trimmed[start:last]
	}

	return strings.TrimSpace(fragment)
}
