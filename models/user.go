package models

// User is a registered account. Only the bcrypt hash of the password is kept.
type User struct {
	ID       uint   `gorm:"primaryKey;column:user_id"`
	Username string `gorm:"column:username;uniqueIndex;size:255;not null"`
	Email    string `gorm:"column:email;not null"`
	PwHash   string `gorm:"column:pw_hash;not null" json:"-"`
}

// TableName overrides the table name used by User to `user`
func (User) TableName() string {
	return "user"
}
