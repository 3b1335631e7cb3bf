package services

import (
	"errors"
	"net/mail"
	"strings"

	"pixelforge/models"
	"pixelforge/repository"
)

// ErrCommentNotFound is returned when a comment lookup misses.
var ErrCommentNotFound = errors.New("comment not found")

// CreateCommentInput carries the fields accepted when creating a comment.
type CreateCommentInput struct {
	Author   string
	Email    string
	Content  string
	ParentID *uint
}

// CommentService owns validation and moderation policy for comments.
type CommentService interface {
	ListForPost(postSlug string, includeUnapproved bool) ([]models.Comment, error)
	Create(postSlug string, input CreateCommentInput) (*models.Comment, error)
	SetApproval(id uint, approved bool) (*models.Comment, error)
	Delete(id uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	autoApprove bool
}

// NewCommentService creates a new instance of CommentService. autoApprove
// controls whether new comments are published immediately or held for
// moderation.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, autoApprove bool) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		autoApprove: autoApprove,
	}
}

// ListForPost returns the comments on the post addressed by slug, newest first.
func (s *commentService) ListForPost(postSlug string, includeUnapproved bool) ([]models.Comment, error) {
	post, err := s.postRepo.GetPostBySlug(postSlug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return s.commentRepo.ListCommentsByPost(post.ID, !includeUnapproved)
}

// Create validates and stores a visitor comment on the post addressed by slug.
func (s *commentService) Create(postSlug string, input CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(input.Author) == "" {
		return nil, invalidf("author name is required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, invalidf("a valid email address is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, invalidf("comment content is required")
	}

	post, err := s.postRepo.GetPostBySlug(postSlug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if input.ParentID != nil {
		parent, err := s.commentRepo.GetCommentByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.PostID != post.ID {
			return nil, invalidf("parent comment does not belong to this post")
		}
	}

	comment := &models.Comment{
		PostID:   post.ID,
		Author:   strings.TrimSpace(input.Author),
		Email:    input.Email,
		Content:  strings.TrimSpace(input.Content),
		Approved: s.autoApprove,
		ParentID: input.ParentID,
	}
	if err := s.commentRepo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// SetApproval toggles a comment's moderation flag and returns the updated comment.
func (s *commentService) SetApproval(id uint, approved bool) (*models.Comment, error) {
	comment, err := s.commentRepo.GetCommentByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if err := s.commentRepo.SetApproval(id, approved); err != nil {
		return nil, err
	}
	comment.Approved = approved
	return comment, nil
}

// Delete removes a comment.
func (s *commentService) Delete(id uint) error {
	comment, err := s.commentRepo.GetCommentByID(id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	return s.commentRepo.DeleteComment(id)
}
