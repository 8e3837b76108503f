package services

import (
	"context"
	"errors"

	"minitwit/models"
	"minitwit/monitoring"
	"minitwit/repositories"

	"github.com/sirupsen/logrus"
)

type SocialService struct {
	users repositories.UserRepository
}

func NewSocialService(users repositories.UserRepository) *SocialService {
	return &SocialService{users: users}
}

// Follow makes viewer a follower of username. Following someone twice stores
// a second edge and following yourself is allowed.
func (s *SocialService) Follow(ctx context.Context, viewer *models.User, username string) (*models.User, error) {
	whom, err := s.target(ctx, viewer, username)
	if err != nil {
		return nil, err
	}
	if err := s.users.Follow(ctx, viewer.ID, whom.ID); err != nil {
		return nil, err
	}

	monitoring.FollowChanges.WithLabelValues("follow").Inc()
	logrus.WithFields(logrus.Fields{"who": viewer.Username, "whom": whom.Username}).Debug("follow")
	return whom, nil
}

func (s *SocialService) Unfollow(ctx context.Context, viewer *models.User, username string) (*models.User, error) {
	whom, err := s.target(ctx, viewer, username)
	if err != nil {
		return nil, err
	}
	if err := s.users.Unfollow(ctx, viewer.ID, whom.ID); err != nil {
		return nil, err
	}

	monitoring.FollowChanges.WithLabelValues("unfollow").Inc()
	logrus.WithFields(logrus.Fields{"who": viewer.Username, "whom": whom.Username}).Debug("unfollow")
	return whom, nil
}

// IsFollowing is false for anonymous viewers.
func (s *SocialService) IsFollowing(ctx context.Context, viewer, whom *models.User) (bool, error) {
	if viewer == nil || whom == nil {
		return false, nil
	}
	return s.users.IsFollowing(ctx, viewer.ID, whom.ID)
}

func (s *SocialService) target(ctx context.Context, viewer *models.User, username string) (*models.User, error) {
	if viewer == nil {
		return nil, ErrUnauthorized
	}
	whom, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return whom, err
}
