package models

import "time"

// ContactMessage is a stored contact-form submission. Submissions the spam
// filter flags are still stored, tagged with the matched rule, so nothing a
// human might want to read is silently dropped.
type ContactMessage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FirstName  string    `gorm:"not null" json:"first_name"`
	LastName   string    `gorm:"not null" json:"last_name"`
	Email      string    `gorm:"not null" json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Service    string    `gorm:"not null" json:"service"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	SpamFlag   bool      `gorm:"default:false;index" json:"spam_flag"`
	SpamReason string    `json:"spam_reason,omitempty"`
	ClientIP   string    `json:"client_ip"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the ContactMessage model.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
