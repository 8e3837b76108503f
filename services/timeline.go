package services

import (
	"context"
	"errors"

	"minitwit/models"
	"minitwit/repositories"
)

// Timeline is one page of messages, newest first.
type Timeline struct {
	Messages []models.Message
	Page     int
	HasMore  bool
}

type TimelineService struct {
	users    repositories.UserRepository
	messages repositories.MessageRepository
	perPage  int
}

func NewTimelineService(users repositories.UserRepository, messages repositories.MessageRepository, perPage int) *TimelineService {
	return &TimelineService{users: users, messages: messages, perPage: perPage}
}

func (s *TimelineService) Public(ctx context.Context, page int) (*Timeline, error) {
	return s.load(page, func(p repositories.Page) ([]models.Message, error) {
		return s.messages.Public(ctx, p)
	})
}

// Personal is the viewer's own messages plus those of everyone they follow.
func (s *TimelineService) Personal(ctx context.Context, viewer *models.User, page int) (*Timeline, error) {
	if viewer == nil {
		return nil, ErrUnauthorized
	}
	return s.load(page, func(p repositories.Page) ([]models.Message, error) {
		return s.messages.Personal(ctx, viewer.ID, p)
	})
}

// ForUser returns the profile owner together with a page of their messages.
func (s *TimelineService) ForUser(ctx context.Context, username string, page int) (*models.User, *Timeline, error) {
	profile, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	timeline, err := s.load(page, func(p repositories.Page) ([]models.Message, error) {
		return s.messages.ByAuthor(ctx, profile.ID, p)
	})
	if err != nil {
		return nil, nil, err
	}
	return profile, timeline, nil
}

// load fetches one row past the page to learn whether a next page exists.
func (s *TimelineService) load(page int, query func(repositories.Page) ([]models.Message, error)) (*Timeline, error) {
	if page < 0 {
		page = 0
	}

	msgs, err := query(repositories.Page{Offset: page * s.perPage, Limit: s.perPage + 1})
	if err != nil {
		return nil, err
	}

	t := &Timeline{Messages: msgs, Page: page}
	if len(msgs) > s.perPage {
		t.Messages = msgs[:s.perPage]
		t.HasMore = true
	}
	return t, nil
}
