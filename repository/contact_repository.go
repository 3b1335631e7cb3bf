package repository

import (
	"errors"
	"fmt"
	"log"

	"pixelforge/models"

	"gorm.io/gorm"
)

// ContactRepository defines the interface for stored contact submissions.
type ContactRepository interface {
	CreateMessage(msg *models.ContactMessage) error
	ListMessages(page, limit int) ([]models.ContactMessage, int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new instance of ContactRepository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// CreateMessage stores a contact-form submission.
func (r *contactRepository) CreateMessage(msg *models.ContactMessage) error {
	if msg == nil {
		log.Printf("ERROR: [ContactRepository] CreateMessage: message cannot be nil")
		return errors.New("message cannot be nil")
	}
	if err := r.db.Create(msg).Error; err != nil {
		log.Printf("ERROR: [ContactRepository] Failed to store contact message from '%s': %v", msg.Email, err)
		return fmt.Errorf("failed to store contact message: %w", err)
	}
	log.Printf("INFO: [ContactRepository] Stored contact message ID %d from '%s'.", msg.ID, msg.Email)
	return nil
}

// ListMessages returns one page of submissions, newest first, with the total count.
func (r *contactRepository) ListMessages(page, limit int) ([]models.ContactMessage, int64, error) {
	var total int64
	if err := r.db.Model(&models.ContactMessage{}).Count(&total).Error; err != nil {
		log.Printf("ERROR: [ContactRepository] Failed to count contact messages: %v", err)
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	var messages []models.ContactMessage
	offset := (page - 1) * limit
	err := r.db.Order("created_at desc").Offset(offset).Limit(limit).Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: [ContactRepository] Failed to list contact messages: %v", err)
		return nil, 0, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, total, nil
}
