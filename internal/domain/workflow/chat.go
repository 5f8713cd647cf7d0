package workflow

import (
	"sort"

	"resqnet/internal/domain/entity"
)

// SendMessage appends a directed message. Ordering beyond insertion order is
// left to Conversation.
func SendMessage(current []entity.ChatMessage, senderID, receiverID, text string, stamp Stamp) ([]entity.ChatMessage, entity.ChatMessage) {
	m := entity.ChatMessage{
		ID:         stamp.ID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Timestamp:  stamp.At,
	}
	return appendCopy(current, m), m
}

// Conversation returns the messages exchanged between a and b in either
// direction, oldest first. Messages sharing a timestamp keep insertion order.
func Conversation(messages []entity.ChatMessage, a, b string) []entity.ChatMessage {
	out := filter(messages, func(m entity.ChatMessage) bool {
		return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
