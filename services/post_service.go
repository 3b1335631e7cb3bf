package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"pixelforge/models"
	"pixelforge/repository"
	"pixelforge/utils"

	"gorm.io/datatypes"
)

const (
	defaultPageSize  = 9
	maxPageSize      = 50
	relatedPostLimit = 3
	excerptLength    = 160
)

// ErrPostNotFound is returned when a post lookup by slug or ID misses.
var ErrPostNotFound = errors.New("post not found")

// CreatePostInput carries the fields accepted when creating a post.
// Title, Content and Category are required; everything else has a default.
type CreatePostInput struct {
	Title     string
	Content   string
	Category  string
	Excerpt   string
	Author    string
	Tags      []string
	Image     string
	Published *bool
	Featured  *bool
	SEO       datatypes.JSON
}

// UpdatePostInput carries a partial update: only non-nil fields are applied.
type UpdatePostInput struct {
	Title     *string
	Content   *string
	Category  *string
	Excerpt   *string
	Author    *string
	Tags      *[]string
	Image     *string
	Published *bool
	Featured  *bool
	SEO       datatypes.JSON
}

// PostService owns the business rules around posts: slug assignment,
// read-time derivation, pagination, related-post selection, cascade delete
// and session-deduplicated view counting.
type PostService interface {
	ListPosts(filters models.PostFilters, page, limit int) ([]models.Post, models.Pagination, error)
	GetPostDetail(slug string) (*models.PostDetail, error)
	CreatePost(input CreatePostInput) (*models.Post, error)
	UpdatePostBySlug(slug string, input UpdatePostInput) (*models.Post, error)
	DeletePost(id uint) error
	DeletePostBySlug(slug string) error
	RecordView(slug, sessionID, clientIP, userAgent string) (int, error)
	GetViewCount(slug string) (int, error)
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	ratingRepo  repository.RatingRepository
	viewRepo    repository.ViewRepository
}

// NewPostService creates a new instance of PostService.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	ratingRepo repository.RatingRepository,
	viewRepo repository.ViewRepository,
) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		ratingRepo:  ratingRepo,
		viewRepo:    viewRepo,
	}
}

// ListPosts returns one page of posts and the pagination envelope.
func (s *postService) ListPosts(filters models.PostFilters, page, limit int) ([]models.Post, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	posts, total, err := s.postRepo.ListPosts(filters, page, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	pagination := models.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	return posts, pagination, nil
}

// GetPostDetail fetches a post by slug together with its approved comments,
// rating aggregate and up to three related posts from the same category.
// Fetching a post does not touch its view count; counting goes through
// RecordView only.
func (s *postService) GetPostDetail(slug string) (*models.PostDetail, error) {
	post, err := s.postRepo.GetPostBySlug(slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.ListCommentsByPost(post.ID, true)
	if err != nil {
		return nil, err
	}

	average, count, err := s.ratingRepo.GetAggregate(post.ID)
	if err != nil {
		return nil, err
	}

	related, err := s.postRepo.GetRelatedPosts(post.Category, post.ID, relatedPostLimit)
	if err != nil {
		return nil, err
	}

	return &models.PostDetail{
		Post:          *post,
		Comments:      comments,
		CommentCount:  len(comments),
		AverageRating: roundRating(average),
		RatingCount:   count,
		RelatedPosts:  related,
	}, nil
}

// CreatePost validates required fields, assigns a unique slug and derived
// fields, and stores the post.
func (s *postService) CreatePost(input CreatePostInput) (*models.Post, error) {
	if input.Title == "" {
		return nil, invalidf("title is required")
	}
	if input.Content == "" {
		return nil, invalidf("content is required")
	}
	if input.Category == "" {
		return nil, invalidf("category is required")
	}

	postSlug, err := s.uniqueSlug(utils.Slugify(input.Title))
	if err != nil {
		return nil, err
	}

	excerpt := input.Excerpt
	if excerpt == "" {
		excerpt = utils.Excerpt(input.Content, excerptLength)
	}

	post := &models.Post{
		Title:     input.Title,
		Slug:      postSlug,
		Excerpt:   excerpt,
		Content:   input.Content,
		Author:    input.Author,
		Category:  input.Category,
		Tags:      input.Tags,
		Image:     input.Image,
		Published: true,
		ReadTime:  utils.ReadTime(input.Content),
		SEO:       input.SEO,
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	if input.Featured != nil {
		post.Featured = *input.Featured
	}
	if post.Tags == nil {
		post.Tags = models.StringSlice{}
	}

	if err := s.postRepo.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// uniqueSlug resolves slug collisions by appending "-2", "-3", ... to the
// base slug until a free one is found.
func (s *postService) uniqueSlug(base string) (string, error) {
	candidate := base
	for suffix := 2; ; suffix++ {
		exists, err := s.postRepo.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// UpdatePostBySlug applies a partial update to the post addressed by slug.
// The slug itself is never regenerated here, even when the title changes,
// so existing links keep working. Read time follows content changes.
func (s *postService) UpdatePostBySlug(slug string, input UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetPostBySlug(slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
		post.ReadTime = utils.ReadTime(*input.Content)
	}
	if input.Category != nil {
		post.Category = *input.Category
	}
	if input.Excerpt != nil {
		post.Excerpt = *input.Excerpt
	}
	if input.Author != nil {
		post.Author = *input.Author
	}
	if input.Tags != nil {
		post.Tags = *input.Tags
	}
	if input.Image != nil {
		post.Image = *input.Image
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	if input.Featured != nil {
		post.Featured = *input.Featured
	}
	if input.SEO != nil {
		post.SEO = input.SEO
	}

	if err := s.postRepo.UpdatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and everything referencing it.
func (s *postService) DeletePost(id uint) error {
	post, err := s.postRepo.GetPostByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	log.Printf("INFO: [PostService] Deleting post ID %d ('%s') with cascade.", id, post.Slug)
	return s.postRepo.DeletePostCascade(id)
}

// DeletePostBySlug removes the post addressed by slug and everything
// referencing it.
func (s *postService) DeletePostBySlug(slug string) error {
	post, err := s.postRepo.GetPostBySlug(slug)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	log.Printf("INFO: [PostService] Deleting post ID %d ('%s') with cascade.", post.ID, post.Slug)
	return s.postRepo.DeletePostCascade(post.ID)
}

// RecordView counts one view per session per post and returns the post's
// current view count. Repeat views from the same session are no-ops.
func (s *postService) RecordView(slug, sessionID, clientIP, userAgent string) (int, error) {
	if sessionID == "" {
		return 0, invalidf("session ID is required")
	}
	post, err := s.postRepo.GetPostBySlug(slug)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, ErrPostNotFound
	}

	count, _, err := s.viewRepo.RecordView(&models.PostView{
		PostID:    post.ID,
		SessionID: sessionID,
		ClientIP:  clientIP,
		UserAgent: userAgent,
	})
	return count, err
}

// GetViewCount reads the current view count for the post addressed by slug.
func (s *postService) GetViewCount(slug string) (int, error) {
	post, err := s.postRepo.GetPostBySlug(slug)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, ErrPostNotFound
	}
	return s.viewRepo.GetViewCount(post.ID)
}

// roundRating rounds an average rating to one decimal place.
func roundRating(value float64) float64 {
	return math.Round(value*10) / 10
}
