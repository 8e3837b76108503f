package repositories

import (
	"context"
	"errors"
	"fmt"

	"minitwit/models"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user %d: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user %q: %w", username, err)
	}
	return &user, nil
}

// Check if a user exists by username
func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Follow(ctx context.Context, whoID, whomID uint) error {
	return r.db.WithContext(ctx).Create(&models.Follow{WhoID: whoID, WhomID: whomID}).Error
}

func (r *userRepository) Unfollow(ctx context.Context, whoID, whomID uint) error {
	return r.db.WithContext(ctx).
		Where("who_id = ? AND whom_id = ?", whoID, whomID).
		Delete(&models.Follow{}).Error
}

func (r *userRepository) IsFollowing(ctx context.Context, whoID, whomID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("who_id = ? AND whom_id = ?", whoID, whomID).
		Count(&count).Error
	return count > 0, err
}
