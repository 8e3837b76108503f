package services

import (
	"context"
	"time"

	"minitwit/models"
	"minitwit/monitoring"
	"minitwit/repositories"
)

type MessageService struct {
	messages repositories.MessageRepository
	now      func() time.Time
}

func NewMessageService(messages repositories.MessageRepository) *MessageService {
	return &MessageService{messages: messages, now: time.Now}
}

// Post stores text as a new message by author, stamped with the current
// time. The text is stored as given, including the empty string.
func (s *MessageService) Post(ctx context.Context, author *models.User, text string) (*models.Message, error) {
	if author == nil {
		return nil, ErrUnauthorized
	}

	msg := &models.Message{
		AuthorID: author.ID,
		Author:   *author,
		Text:     text,
		PubDate:  s.now().Unix(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	monitoring.MessagesPosted.Inc()
	return msg, nil
}
