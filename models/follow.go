package models

// Follow is a directed edge: WhoID follows WhomID. There is no uniqueness
// constraint, so following twice stores two rows.
type Follow struct {
	WhoID  uint `gorm:"column:who_id;not null;index"`
	WhomID uint `gorm:"column:whom_id;not null;index"`
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follower"
}

// All lists the models that make up the schema, in creation order.
func All() []any {
	return []any{&User{}, &Message{}, &Follow{}}
}
