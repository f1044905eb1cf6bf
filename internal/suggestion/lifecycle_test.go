package suggestion

import (
	"testing"
	"time"

	appError "wizard-writing-study/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingAppend(content string) *Suggestion {
	return &Suggestion{ID: 1, Type: TypeAppend, Content: content}
}

func intPtr(n int) *int { return &n }

// TestPendingPair checks that (null, absent) is the only pending combination
func TestPendingPair(t *testing.T) {
	accepted := true
	rejected := false

	cases := []struct {
		name       string
		isAccepted *bool
		reaction   string
		pending    bool
	}{
		{"null and absent is pending", nil, ReactionAbsent, true},
		{"accepted is terminal", &accepted, ReactionApply, false},
		{"rejected is terminal", &rejected, ReactionReject, false},
		{"liked is terminal even with null is_accepted", nil, ReactionLike, false},
		{"reaction alone is terminal", nil, ReactionApply, false},
	}

	for _, tc := range cases {
		s := Suggestion{Type: TypeAppend, IsAccepted: tc.isAccepted, Reaction: tc.reaction}
		assert.Equal(t, tc.pending, s.Pending(), tc.name)
	}
}

// TestAccept_AppendsContent tests that accepting an append suggestion yields T + C
func TestAccept_AppendsContent(t *testing.T) {
	s := pendingAppend(" there was a king.")

	out, err := Accept(s, "Once upon a time")

	require.NoError(t, err)
	require.NotNil(t, out.DocumentText)
	assert.Equal(t, "Once upon a time there was a king.", *out.DocumentText)
	require.NotNil(t, out.IsAccepted)
	assert.True(t, *out.IsAccepted)
	assert.Equal(t, ReactionApply, out.Reaction)
}

// TestAccept_AlreadyResolved tests that terminal suggestions reject further actions
func TestAccept_AlreadyResolved(t *testing.T) {
	accepted := true
	s := &Suggestion{ID: 1, Type: TypeAppend, IsAccepted: &accepted, Reaction: ReactionApply}

	_, err := Accept(s, "text")

	var appErr *appError.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}

// TestPartialAccept_UsesEditedText tests appending the writer-edited substring
func TestPartialAccept_UsesEditedText(t *testing.T) {
	s := pendingAppend(" there was a king and a queen.")

	out, err := PartialAccept(s, "Once upon a time", " there was a king.")

	require.NoError(t, err)
	require.NotNil(t, out.DocumentText)
	assert.Equal(t, "Once upon a time there was a king.", *out.DocumentText)
	require.NotNil(t, out.IsAccepted)
	assert.True(t, *out.IsAccepted)
	assert.Equal(t, ReactionApply, out.Reaction)
}

// TestPartialAccept_CommentLeavesDocument tests that comment rows resolve
// without a text effect
func TestPartialAccept_CommentLeavesDocument(t *testing.T) {
	s := &Suggestion{ID: 1, Type: TypeComment, Content: "nice"}

	out, err := PartialAccept(s, "text", "edited")

	require.NoError(t, err)
	assert.Nil(t, out.DocumentText)
}

// TestReject_NeverTouchesDocument tests the reject transition
func TestReject_NeverTouchesDocument(t *testing.T) {
	s := pendingAppend(" extra")

	out, err := Reject(s)

	require.NoError(t, err)
	assert.Nil(t, out.DocumentText)
	require.NotNil(t, out.IsAccepted)
	assert.False(t, *out.IsAccepted)
	assert.Equal(t, ReactionReject, out.Reaction)
}

// TestLike_LeavesIsAcceptedNull tests that liking only sets the reaction
func TestLike_LeavesIsAcceptedNull(t *testing.T) {
	s := pendingAppend(" extra")

	out, err := Like(s)

	require.NoError(t, err)
	assert.Nil(t, out.DocumentText)
	assert.Nil(t, out.IsAccepted)
	assert.Equal(t, ReactionLike, out.Reaction)
}

// TestApply_CommentReplacesSpan tests T[0:p] + C + T[e:]
func TestApply_CommentReplacesSpan(t *testing.T) {
	s := &Suggestion{
		ID:          1,
		Type:        TypeComment,
		Content:     "ocean ",
		Position:    intPtr(4),
		EndPosition: intPtr(8),
	}

	out, err := Apply(s, "The sky was blue.")

	require.NoError(t, err)
	require.NotNil(t, out.DocumentText)
	assert.Equal(t, "The ocean was blue.", *out.DocumentText)
}

// TestApply_CommentWithoutEndInserts tests insertion at position when no end
// position was recorded
func TestApply_CommentWithoutEndInserts(t *testing.T) {
	s := &Suggestion{
		ID:       1,
		Type:     TypeComment,
		Content:  "bright ",
		Position: intPtr(4),
	}

	out, err := Apply(s, "The sky was blue.")

	require.NoError(t, err)
	require.NotNil(t, out.DocumentText)
	assert.Equal(t, "The bright sky was blue.", *out.DocumentText)
}

// TestApply_CommentWithoutPositionFails tests that the undefined-span apply
// fails instead of silently resolving the row
func TestApply_CommentWithoutPositionFails(t *testing.T) {
	s := &Suggestion{ID: 1, Type: TypeComment, Content: "nice"}

	_, err := Apply(s, "The sky was blue.")

	var appErr *appError.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.Code)
}

// TestApply_AppendBehavesLikeAccept tests apply on an append suggestion
func TestApply_AppendBehavesLikeAccept(t *testing.T) {
	s := pendingAppend(" The end.")

	out, err := Apply(s, "Story.")

	require.NoError(t, err)
	require.NotNil(t, out.DocumentText)
	assert.Equal(t, "Story. The end.", *out.DocumentText)
}

// TestSpliceText_ClampsOutOfRangeOffsets tests span clamping
func TestSpliceText_ClampsOutOfRangeOffsets(t *testing.T) {
	assert.Equal(t, "abcX", spliceText("abc", "X", 10, nil))
	assert.Equal(t, "Xbc", spliceText("abc", "X", -2, intPtr(1)))
	assert.Equal(t, "abX", spliceText("abc", "X", 2, intPtr(50)))
	// end before start degrades to insertion
	assert.Equal(t, "abXc", spliceText("abc", "X", 2, intPtr(1)))
}

// TestSelectActive_PicksMostRecentPendingAppend tests the selection rule
func TestSelectActive_PicksMostRecentPendingAppend(t *testing.T) {
	accepted := true
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	suggestions := []Suggestion{
		{ID: 1, Type: TypeAppend, CreatedAt: base},
		{ID: 2, Type: TypeComment, CreatedAt: base.Add(3 * time.Minute)},
		{ID: 3, Type: TypeAppend, IsAccepted: &accepted, Reaction: ReactionApply, CreatedAt: base.Add(4 * time.Minute)},
		{ID: 4, Type: TypeAppend, CreatedAt: base.Add(2 * time.Minute)},
		{ID: 5, Type: TypeAppend, Reaction: ReactionLike, CreatedAt: base.Add(5 * time.Minute)},
	}

	active := SelectActive(suggestions)

	require.NotNil(t, active)
	assert.Equal(t, uint64(4), active.ID)
}

// TestSelectActive_NoPendingAppend tests the empty slot
func TestSelectActive_NoPendingAppend(t *testing.T) {
	accepted := true

	suggestions := []Suggestion{
		{ID: 1, Type: TypeComment},
		{ID: 2, Type: TypeAppend, IsAccepted: &accepted, Reaction: ReactionApply},
	}

	assert.Nil(t, SelectActive(suggestions))
	assert.Nil(t, SelectActive(nil))
}
