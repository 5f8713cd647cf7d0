package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resqnet/internal/domain/entity"
	"resqnet/pkg/errors"
)

func TestChatUseCase_SendMessageNotifiesBothParties(t *testing.T) {
	n := &fakeNotifier{}
	uc := NewChatUseCase(seededStore(t), nil, testOptions("c-", WithNotifier(n))...)
	ctx := context.Background()

	msg, err := uc.SendMessage(ctx, "1", "2", "  Street 14, blue gate  ")
	require.NoError(t, err)
	assert.Equal(t, "Street 14, blue gate", msg.Text)

	require.Len(t, n.sent, 2)
	assert.Equal(t, "2", n.sent[0].userID)
	assert.Equal(t, "1", n.sent[1].userID)
	assert.Equal(t, EventChatMessage, n.sent[0].msgType)

	conv, err := uc.Conversation(ctx, "2", "1")
	require.NoError(t, err)
	require.Len(t, conv, 2)
	assert.Equal(t, "c3", conv[0].ID)
	assert.Equal(t, msg.ID, conv[1].ID)
}

func TestChatUseCase_SendMessageValidation(t *testing.T) {
	uc := NewChatUseCase(seededStore(t), nil)
	ctx := context.Background()

	_, err := uc.SendMessage(ctx, "1", "2", "   ")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.SendMessage(ctx, "1", "1", "hi")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.SendMessage(ctx, "1", "99", "hi")
	assert.True(t, errors.Is(err, "INVALID_REFERENCE"))
}

func TestChatUseCase_RateLimited(t *testing.T) {
	uc := NewChatUseCase(seededStore(t), fakeLimiter{allow: false})

	_, err := uc.SendMessage(context.Background(), "1", "2", "hi")

	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}

func TestChatUseCase_ConversationExcludesOthers(t *testing.T) {
	uc := NewChatUseCase(seededStore(t), nil)

	conv, err := uc.Conversation(context.Background(), "4", "3")

	require.NoError(t, err)
	var ids []string
	for _, m := range conv {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"c1", "c2"}, ids)
	assert.IsType(t, []entity.ChatMessage{}, conv)
}
