package models

import "time"

// Comment is a visitor comment on a post. ParentID threads replies.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	Author    string    `gorm:"not null" json:"author"`
	Email     string    `gorm:"not null" json:"email"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Approved  bool      `gorm:"default:true;index" json:"approved"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Comment model.
func (Comment) TableName() string {
	return "comments"
}
