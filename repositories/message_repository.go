package repositories

import (
	"context"

	"minitwit/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(message).Error
}

func (r *messageRepository) Public(ctx context.Context, page Page) ([]models.Message, error) {
	return r.timeline(ctx, page, func(db *gorm.DB) *gorm.DB { return db })
}

// Personal returns messages written by userID or by anyone userID follows.
func (r *messageRepository) Personal(ctx context.Context, userID uint, page Page) ([]models.Message, error) {
	followees := r.db.Model(&models.Follow{}).Select("whom_id").Where("who_id = ?", userID)
	return r.timeline(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("message.author_id = ? OR message.author_id IN (?)", userID, followees)
	})
}

func (r *messageRepository) ByAuthor(ctx context.Context, authorID uint, page Page) ([]models.Message, error) {
	return r.timeline(ctx, page, func(db *gorm.DB) *gorm.DB {
		return db.Where("message.author_id = ?", authorID)
	})
}

func (r *messageRepository) timeline(ctx context.Context, page Page, authors func(*gorm.DB) *gorm.DB) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Joins("Author").
		Scopes(authors).
		Where("message.flagged = ?", 0).
		Order("message.pub_date DESC").
		Order("message.message_id DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&messages).Error
	return messages, err
}
