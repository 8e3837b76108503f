package models

// Message is a single post. Flagged messages are hidden from every timeline.
type Message struct {
	ID       uint   `gorm:"primaryKey;column:message_id"`
	AuthorID uint   `gorm:"column:author_id;not null;index"`
	Author   User   `gorm:"foreignKey:AuthorID"`
	Text     string `gorm:"column:text;type:text;not null"`
	PubDate  int64  `gorm:"column:pub_date;index"`
	Flagged  int32  `gorm:"column:flagged;not null;default:0"`
}

// TableName overrides the table name used by GORM
func (Message) TableName() string {
	return "message"
}
