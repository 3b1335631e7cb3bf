package models

import "time"

// PostView records that a session has viewed a post. The unique index on
// (post_id, session_id) is what makes view counting idempotent per session.
type PostView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"uniqueIndex:idx_views_post_session;not null" json:"post_id"`
	SessionID string    `gorm:"uniqueIndex:idx_views_post_session;not null" json:"session_id"`
	ClientIP  string    `json:"client_ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the PostView model.
func (PostView) TableName() string {
	return "post_views"
}
