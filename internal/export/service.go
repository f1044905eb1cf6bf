package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"math"
	"time"

	"wizard-writing-study/internal/document"
	"wizard-writing-study/internal/snapshot"
	"wizard-writing-study/internal/suggestion"
	"wizard-writing-study/internal/user"
)

// Provider interfaces cover the slices of the other services the exporter
// reads. Export is a pure batch read: nothing here writes.
type UserProvider interface {
	ListUsers() ([]user.User, error)
	GetUserByID(id uint64) (*user.User, error)
}

type DocumentProvider interface {
	ListByUser(userID uint64) ([]document.Document, error)
}

type SuggestionProvider interface {
	ListForUser(userID uint64) (*suggestion.Refresh, error)
}

type SnapshotProvider interface {
	ListByUser(userID uint64) ([]snapshot.WritingSnapshot, error)
}

// UserData bundles everything exported for one participant
type UserData struct {
	User        user.User
	Documents   []document.Document
	Suggestions []suggestion.Suggestion
	Snapshots   []snapshot.WritingSnapshot
}

func (d *UserData) acceptedCount() int {
	n := 0
	for _, s := range d.Suggestions {
		if s.IsAccepted != nil && *s.IsAccepted {
			n++
		}
	}
	return n
}

func (d *UserData) rejectedCount() int {
	n := 0
	for _, s := range d.Suggestions {
		if s.IsAccepted != nil && !*s.IsAccepted {
			n++
		}
	}
	return n
}

func (d *UserData) reactionCount(reaction string) int {
	n := 0
	for _, s := range d.Suggestions {
		if s.Reaction == reaction {
			n++
		}
	}
	return n
}

func (d *UserData) typeCount(suggestionType string) int {
	n := 0
	for _, s := range d.Suggestions {
		if s.Type == suggestionType {
			n++
		}
	}
	return n
}

type Service interface {
	UserDetailCSV(userID uint64) (string, string, error)
	SummaryCSV() (string, error)
	Archive(userIDs []uint64) ([]byte, error)
}

type DefaultService struct {
	users       UserProvider
	documents   DocumentProvider
	suggestions SuggestionProvider
	snapshots   SnapshotProvider
	now         func() time.Time
}

func NewService(
	users UserProvider,
	documents DocumentProvider,
	suggestions SuggestionProvider,
	snapshots SnapshotProvider,
) *DefaultService {
	return &DefaultService{
		users:       users,
		documents:   documents,
		suggestions: suggestions,
		snapshots:   snapshots,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *DefaultService) collect(userID uint64) (*UserData, error) {
	u, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	refresh, err := s.suggestions.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	snaps, err := s.snapshots.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	return &UserData{
		User:        *u,
		Documents:   docs,
		Suggestions: refresh.Suggestions,
		Snapshots:   snaps,
	}, nil
}

var detailHeader = []interface{}{
	"user_id", "user_name", "session_id", "user_created_at",
	"document_id", "document_content_length", "document_content", "document_created_at", "document_updated_at", "document_edit_duration_minutes",
	"suggestion_id", "suggestion_type", "suggestion_content_length", "suggestion_content", "suggestion_is_accepted",
	"suggestion_reaction", "suggestion_created_at", "wizard_session_id", "suggestion_position", "suggestion_end_position", "selected_text",
	"user_suggestion_count", "user_acceptance_rate", "user_document_count",
}

// UserDetailCSV builds the per-user detail export: one row per
// document x suggestion combination, falling back to document-only or
// suggestion-only rows so a participant with sparse data still exports. The
// second return value is a suggested filename.
func (s *DefaultService) UserDetailCSV(userID uint64) (string, string, error) {
	data, err := s.collect(userID)
	if err != nil {
		return "", "", err
	}

	suggestionCount := len(data.Suggestions)
	acceptanceRate := "0.00%"
	if suggestionCount > 0 {
		acceptanceRate = fmt.Sprintf("%.2f%%", float64(data.acceptedCount())/float64(suggestionCount)*100)
	}

	userFields := []interface{}{data.User.ID, data.User.Name, data.User.SessionID, data.User.CreatedAt}
	tailFields := []interface{}{suggestionCount, acceptanceRate, len(data.Documents)}
	emptyDoc := []interface{}{"", "", "", "", "", ""}
	emptySuggestion := []interface{}{"", "", "", "", "", "", "", "", "", "", ""}

	docFields := func(doc document.Document) []interface{} {
		editDuration := int(math.Round(doc.UpdatedAt.Sub(doc.CreatedAt).Minutes()))
		return []interface{}{
			doc.ID, len([]rune(doc.Content)), doc.Content, doc.CreatedAt, doc.UpdatedAt, editDuration,
		}
	}
	suggestionFields := func(sg suggestion.Suggestion) []interface{} {
		return []interface{}{
			sg.ID, sg.Type, len([]rune(sg.Content)), sg.Content, sg.IsAccepted,
			sg.Reaction, sg.CreatedAt, sg.WizardSessionID, sg.Position, sg.EndPosition, sg.SelectedText,
		}
	}

	rows := [][]interface{}{detailHeader}
	addRow := func(doc, sg []interface{}) {
		row := make([]interface{}, 0, len(detailHeader))
		row = append(row, userFields...)
		row = append(row, doc...)
		row = append(row, sg...)
		row = append(row, tailFields...)
		rows = append(rows, row)
	}

	switch {
	case len(data.Documents) > 0 && len(data.Suggestions) > 0:
		for _, doc := range data.Documents {
			for _, sg := range data.Suggestions {
				addRow(docFields(doc), suggestionFields(sg))
			}
		}
	case len(data.Documents) > 0:
		for _, doc := range data.Documents {
			addRow(docFields(doc), emptySuggestion)
		}
	case len(data.Suggestions) > 0:
		for _, sg := range data.Suggestions {
			addRow(emptyDoc, suggestionFields(sg))
		}
	default:
		addRow(emptyDoc, emptySuggestion)
	}

	filename := fmt.Sprintf("user-%s-details-%s.csv", data.User.Name, s.now().Format("2006-01-02"))
	return buildCSV(rows), filename, nil
}

var snapshotHeader = []interface{}{
	"user_id", "session_id", "timestamp", "text_length", "word_count",
	"sentence_count", "last_sentence", "typing_speed", "full_text",
}

func (s *DefaultService) userSnapshotCSV(data *UserData) string {
	rows := [][]interface{}{snapshotHeader}
	for _, snap := range data.Snapshots {
		rows = append(rows, []interface{}{
			snap.UserID, snap.SessionID, snap.Timestamp, snap.TextLength, snap.WordCount,
			snap.SentenceCount, snap.LastSentence, snap.TypingSpeed, snap.FullText,
		})
	}
	return buildCSV(rows)
}

var summaryHeader = []interface{}{
	"user_id", "user_name", "session_id", "user_created_at",
	"document_count", "suggestion_count", "accepted_suggestions", "rejected_suggestions", "pending_suggestions",
	"acceptance_rate", "rejection_rate", "append_suggestions", "comment_suggestions",
	"total_document_length", "average_document_length", "latest_document_content_length", "latest_document_updated_at",
	"first_suggestion_date", "last_suggestion_date", "activity_span_days", "suggestions_with_reaction",
	"liked_suggestions", "applied_suggestions",
}

// SummaryCSV builds the all-users study overview: one row per participant
func (s *DefaultService) SummaryCSV() (string, error) {
	users, err := s.users.ListUsers()
	if err != nil {
		return "", err
	}

	rows := [][]interface{}{summaryHeader}
	for _, u := range users {
		data, err := s.collect(u.ID)
		if err != nil {
			return "", err
		}
		rows = append(rows, s.summaryRow(data))
	}

	return buildCSV(rows), nil
}

func (s *DefaultService) summaryRow(data *UserData) []interface{} {
	suggestionCount := len(data.Suggestions)
	accepted := data.acceptedCount()
	rejected := data.rejectedCount()

	acceptanceRate, rejectionRate := "0.00%", "0.00%"
	if suggestionCount > 0 {
		acceptanceRate = fmt.Sprintf("%.2f%%", float64(accepted)/float64(suggestionCount)*100)
		rejectionRate = fmt.Sprintf("%.2f%%", float64(rejected)/float64(suggestionCount)*100)
	}

	totalDocLength := 0
	for _, doc := range data.Documents {
		totalDocLength += len([]rune(doc.Content))
	}
	avgDocLength := 0
	if len(data.Documents) > 0 {
		avgDocLength = int(math.Round(float64(totalDocLength) / float64(len(data.Documents))))
	}

	var latestLength interface{} = ""
	var latestUpdatedAt interface{} = ""
	if len(data.Documents) > 0 {
		// ListByUser orders by updated_at desc
		latestLength = len([]rune(data.Documents[0].Content))
		latestUpdatedAt = data.Documents[0].UpdatedAt
	}

	firstDate, lastDate := "", ""
	activitySpanDays := 0
	if suggestionCount > 0 {
		first, last := data.Suggestions[0].CreatedAt, data.Suggestions[0].CreatedAt
		for _, sg := range data.Suggestions {
			if sg.CreatedAt.Before(first) {
				first = sg.CreatedAt
			}
			if sg.CreatedAt.After(last) {
				last = sg.CreatedAt
			}
		}
		firstDate = first.UTC().Format("2006-01-02")
		lastDate = last.UTC().Format("2006-01-02")
		if suggestionCount > 1 {
			activitySpanDays = int(math.Ceil(last.Sub(first).Hours() / 24))
		}
	}

	withReaction := suggestionCount - data.reactionCount(suggestion.ReactionAbsent)

	return []interface{}{
		data.User.ID, data.User.Name, data.User.SessionID, data.User.CreatedAt,
		len(data.Documents), suggestionCount, accepted, rejected, suggestionCount - accepted - rejected,
		acceptanceRate, rejectionRate, data.typeCount(suggestion.TypeAppend), data.typeCount(suggestion.TypeComment),
		totalDocLength, avgDocLength, latestLength, latestUpdatedAt,
		firstDate, lastDate, activitySpanDays, withReaction,
		data.reactionCount(suggestion.ReactionLike), data.reactionCount(suggestion.ReactionApply),
	}
}

// Archive bundles one detail CSV and one snapshot CSV per selected user into
// a single ZIP for offline analysis
func (s *DefaultService) Archive(userIDs []uint64) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	date := s.now().Format("2006-01-02")

	for _, userID := range userIDs {
		data, err := s.collect(userID)
		if err != nil {
			return nil, err
		}

		detailCSV, _, err := s.UserDetailCSV(userID)
		if err != nil {
			return nil, err
		}

		detailFile, err := zw.Create(fmt.Sprintf("user-%s-details-%s.csv", data.User.Name, date))
		if err != nil {
			return nil, err
		}
		if _, err := detailFile.Write([]byte(detailCSV)); err != nil {
			return nil, err
		}

		snapshotFile, err := zw.Create(fmt.Sprintf("user-%s-snapshots-%s.csv", data.User.Name, date))
		if err != nil {
			return nil, err
		}
		if _, err := snapshotFile.Write([]byte(s.userSnapshotCSV(data))); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
