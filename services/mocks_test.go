package services

// Shared testify doubles for the repository interfaces, used across the
// service test files in this package.

import (
	"pixelforge/models"

	"github.com/stretchr/testify/mock"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetPostByID(id uint) (*models.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostBySlug(slug string) (*models.Post, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) SlugExists(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) ListPosts(filters models.PostFilters, page, limit int) ([]models.Post, int64, error) {
	args := m.Called(filters, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) UpdatePost(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) DeletePostCascade(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) GetRelatedPosts(category string, excludeID uint, limit int) ([]models.Post, error) {
	args := m.Called(category, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) CreateComment(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListCommentsByPost(postID uint, approvedOnly bool) ([]models.Comment, error) {
	args := m.Called(postID, approvedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) SetApproval(id uint, approved bool) error {
	args := m.Called(id, approved)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteComment(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) UpsertRating(postID uint, userID string, value int) (*models.Rating, error) {
	args := m.Called(postID, userID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListRatingsByPost(postID uint) ([]models.Rating, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetAggregate(postID uint) (float64, int, error) {
	args := m.Called(postID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func (m *MockRatingRepository) WriteAggregate(postID uint, average float64, count int) error {
	args := m.Called(postID, average, count)
	return args.Error(0)
}

func (m *MockRatingRepository) DeleteRating(postID uint, userID string) error {
	args := m.Called(postID, userID)
	return args.Error(0)
}

type MockViewRepository struct {
	mock.Mock
}

func (m *MockViewRepository) RecordView(view *models.PostView) (int, bool, error) {
	args := m.Called(view)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockViewRepository) GetViewCount(postID uint) (int, error) {
	args := m.Called(postID)
	return args.Int(0), args.Error(1)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) CreateMessage(msg *models.ContactMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockContactRepository) ListMessages(page, limit int) ([]models.ContactMessage, int64, error) {
	args := m.Called(page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.ContactMessage), args.Get(1).(int64), args.Error(2)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSetting(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) SetSetting(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}
