package repositories

import (
	"context"
	"errors"

	"minitwit/models"
)

var ErrNotFound = errors.New("record not found")

// Page is an offset/limit window over a timeline.
type Page struct {
	Offset int
	Limit  int
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Follow(ctx context.Context, whoID, whomID uint) error
	Unfollow(ctx context.Context, whoID, whomID uint) error
	IsFollowing(ctx context.Context, whoID, whomID uint) (bool, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	Public(ctx context.Context, page Page) ([]models.Message, error)
	Personal(ctx context.Context, userID uint, page Page) ([]models.Message, error)
	ByAuthor(ctx context.Context, authorID uint, page Page) ([]models.Message, error)
}
