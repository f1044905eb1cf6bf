package suggestion

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepository(t *testing.T) (SuggestionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewRepository(gormDB), mock, func() { sqlDB.Close() }
}

func suggestionColumns() []string {
	return []string{
		"id", "content", "wizard_session_id", "user_id", "is_accepted",
		"type", "position", "end_position", "selected_text", "reaction", "created_at",
	}
}

func TestRepositoryListByUserID(t *testing.T) {
	repo, mock, cleanup := newMockRepository(t)
	defer cleanup()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(suggestionColumns()).
		AddRow(2, " and then", "wizard-abc", 7, nil, TypeAppend, nil, nil, nil, "", now).
		AddRow(1, "nice", "wizard-abc", 7, nil, TypeComment, 4, 8, "sky ", "", now.Add(-time.Minute))

	mock.ExpectQuery(`SELECT \* FROM "suggestions" WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(uint64(7)).
		WillReturnRows(rows)

	suggestions, err := repo.ListByUserID(7)

	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, uint64(2), suggestions[0].ID)
	assert.True(t, suggestions[0].Pending())
	require.NotNil(t, suggestions[1].Position)
	assert.Equal(t, 4, *suggestions[1].Position)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryResolve_SuggestionAndDocumentCommitTogether(t *testing.T) {
	repo, mock, cleanup := newMockRepository(t)
	defer cleanup()

	accepted := true
	text := "Story. The end."
	outcome := &Outcome{IsAccepted: &accepted, Reaction: ReactionApply, DocumentText: &text}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "suggestions" SET`).
		WithArgs(true, ReactionApply, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "documents" SET`).
		WithArgs(text, sqlmock.AnyArg(), uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Resolve(3, outcome, 11)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryResolve_NoTextEffectSkipsDocument(t *testing.T) {
	repo, mock, cleanup := newMockRepository(t)
	defer cleanup()

	rejected := false
	outcome := &Outcome{IsAccepted: &rejected, Reaction: ReactionReject}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "suggestions" SET`).
		WithArgs(false, ReactionReject, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Resolve(3, outcome, 11)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
