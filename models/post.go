package models

import (
	"time"

	"gorm.io/datatypes"
)

// StringSlice stores a []string as a JSON column.
type StringSlice []string

// Post represents a blog article on the agency site.
//
// Rating and TotalRatings are derived from the ratings table and are only
// ever written back by the rating service; ViewCount is only ever written
// by the view-tracking path. Comment count is computed per request, never
// stored.
type Post struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt      string         `gorm:"type:text" json:"excerpt"`
	Content      string         `gorm:"type:text;not null" json:"content"`
	Author       string         `gorm:"index" json:"author"`
	Category     string         `gorm:"index;not null" json:"category"`
	Tags         StringSlice    `gorm:"type:json;serializer:json" json:"tags"`
	Image        string         `json:"image"`
	Published    bool           `gorm:"default:true;index" json:"published"`
	Featured     bool           `gorm:"default:false" json:"featured"`
	ViewCount    int            `gorm:"default:0" json:"view_count"`
	Rating       float64        `gorm:"default:0" json:"rating"`
	TotalRatings int            `gorm:"default:0" json:"total_ratings"`
	ReadTime     string         `json:"read_time"` // e.g. "4 min read"
	SEO          datatypes.JSON `gorm:"type:json" json:"seo,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Post model.
func (Post) TableName() string {
	return "posts"
}

// PostFilters narrows a post listing. All set fields are AND-combined.
type PostFilters struct {
	Category  string
	Author    string
	Search    string // case-insensitive substring over title/excerpt/content
	Featured  *bool
	Published *bool
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// PostDetail is the full single-post payload: the post plus everything the
// article page renders alongside it.
type PostDetail struct {
	Post          Post      `json:"post"`
	Comments      []Comment `json:"comments"`
	CommentCount  int       `json:"comment_count"`
	AverageRating float64   `json:"average_rating"`
	RatingCount   int       `json:"rating_count"`
	RelatedPosts  []Post    `json:"related_posts"`
}
