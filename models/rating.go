package models

import "time"

// Rating is a 1-5 star rating of a post. At most one row exists per
// (post, user) pair; submissions for an existing pair overwrite the value.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"uniqueIndex:idx_ratings_post_user;not null" json:"post_id"`
	UserID    string    `gorm:"uniqueIndex:idx_ratings_post_user;not null" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Rating model.
func (Rating) TableName() string {
	return "ratings"
}

// RatingSummary is the aggregate view of a post's ratings.
type RatingSummary struct {
	Ratings       []Rating `json:"ratings"`
	TotalRatings  int      `json:"total_ratings"`
	AverageRating float64  `json:"average_rating"`
}
