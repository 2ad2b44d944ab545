package transcript

import (
	"testing"

	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userMessage(content string) *entity.ChatMessage {
	return &entity.ChatMessage{
		Type:    constant.MessageTypeUser,
		Content: content,
	}
}

func TestAppendOptimisticIsVisibleBeforeConfirm(t *testing.T) {
	r := NewReconciler()
	r.Prime("s1", nil)

	provisional := r.AppendOptimistic("s1", userMessage("solve 2x + 3 = 7"))

	messages, found := r.Transcript("s1")
	require.True(t, found)
	require.Len(t, messages, 1)
	assert.Equal(t, provisional, messages[0].Id)
	assert.Equal(t, "solve 2x + 3 = 7", messages[0].Content)
}

func TestConfirmSwapsInPersistedRecordKeepingPosition(t *testing.T) {
	r := NewReconciler()
	r.Prime("s1", nil)

	first := r.AppendOptimistic("s1", userMessage("first"))
	r.AppendOptimistic("s1", userMessage("second"))

	persisted := &entity.ChatMessage{
		Id:      uuid.New(),
		Type:    constant.MessageTypeUser,
		Content: "first",
	}
	r.Confirm(first, persisted)

	messages, found := r.Transcript("s1")
	require.True(t, found)
	require.Len(t, messages, 2)
	assert.Equal(t, persisted.Id, messages[0].Id)
	assert.Equal(t, "second", messages[1].Content)
}

func TestRollbackRemovesOnlyTheProvisionalEntry(t *testing.T) {
	r := NewReconciler()
	r.Prime("s1", []*entity.ChatMessage{
		{Id: uuid.New(), Type: constant.MessageTypeAssistant, Content: "existing"},
	})

	failed := r.AppendOptimistic("s1", userMessage("doomed"))
	r.AppendOptimistic("s1", userMessage("later"))

	r.Rollback(failed)

	messages, found := r.Transcript("s1")
	require.True(t, found)
	require.Len(t, messages, 2)
	assert.Equal(t, "existing", messages[0].Content)
	assert.Equal(t, "later", messages[1].Content)
}

func TestRollbackUnknownIdentifierIsNoOp(t *testing.T) {
	r := NewReconciler()
	r.Prime("s1", nil)
	r.AppendOptimistic("s1", userMessage("kept"))

	r.Rollback(uuid.New())

	messages, _ := r.Transcript("s1")
	require.Len(t, messages, 1)
	assert.Equal(t, "kept", messages[0].Content)
}

func TestConfirmAfterInvalidateIsNoOp(t *testing.T) {
	r := NewReconciler()
	r.Prime("s1", nil)
	provisional := r.AppendOptimistic("s1", userMessage("gone"))

	r.Invalidate("s1")
	r.Confirm(provisional, &entity.ChatMessage{Id: uuid.New()})

	_, found := r.Transcript("s1")
	assert.False(t, found)
}

func TestTranscriptReturnsCopy(t *testing.T) {
	r := NewReconciler()
	r.Prime("s1", nil)
	r.AppendOptimistic("s1", userMessage("a"))

	messages, _ := r.Transcript("s1")
	messages[0] = nil

	again, _ := r.Transcript("s1")
	require.NotNil(t, again[0])
	assert.Equal(t, "a", again[0].Content)
}
