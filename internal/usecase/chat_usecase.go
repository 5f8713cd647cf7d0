package usecase

import (
	"context"
	"fmt"
	"strings"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/workflow"
	"resqnet/pkg/errors"
	"resqnet/pkg/logger"
)

const ActionSendMessage = "send_message"

type ChatUseCase struct {
	base
	rateLimiter Limiter
}

func NewChatUseCase(store repository.EntityStore, rateLimiter Limiter, opts ...Option) *ChatUseCase {
	if rateLimiter == nil {
		rateLimiter = unlimited{}
	}
	return &ChatUseCase{
		base:        newBase(store, opts),
		rateLimiter: rateLimiter,
	}
}

// SendMessage appends a direct message and pushes it to both parties.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, receiverID, text string) (entity.ChatMessage, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, ActionSendMessage)
	if !allowed {
		logger.Warn("SendMessage rate limited: user %s must wait %v", senderID, waitTime)
		return entity.ChatMessage{}, errors.TooManyRequests(
			fmt.Sprintf("You are sending messages too quickly. Try again in %.0f seconds", waitTime.Seconds()))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return entity.ChatMessage{}, errors.BadRequest("Message text is required", nil)
	}
	if senderID == receiverID {
		return entity.ChatMessage{}, errors.BadRequest("Cannot send a message to yourself", nil)
	}

	users, err := load[entity.User](ctx, &uc.base, repository.UsersKey)
	if err != nil {
		return entity.ChatMessage{}, err
	}
	if _, ok := workflow.FindUser(users, receiverID); !ok {
		return entity.ChatMessage{}, errors.InvalidReference("User", receiverID)
	}

	stamp := uc.stamp()
	msg, err := mutate(ctx, &uc.base, "send_message", repository.ChatsKey,
		func(current []entity.ChatMessage) ([]entity.ChatMessage, entity.ChatMessage, error) {
			next, msg := workflow.SendMessage(current, senderID, receiverID, text, stamp)
			return next, msg, nil
		})
	if err != nil {
		return entity.ChatMessage{}, err
	}

	uc.notifier.SendToUser(receiverID, EventChatMessage, msg)
	uc.notifier.SendToUser(senderID, EventChatMessage, msg)
	return msg, nil
}

// Conversation returns the messages exchanged between a and b, oldest first.
func (uc *ChatUseCase) Conversation(ctx context.Context, a, b string) ([]entity.ChatMessage, error) {
	messages, err := load[entity.ChatMessage](ctx, &uc.base, repository.ChatsKey)
	if err != nil {
		return nil, err
	}
	return workflow.Conversation(messages, a, b), nil
}
