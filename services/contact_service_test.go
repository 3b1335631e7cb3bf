package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"pixelforge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const adminInbox = "owner@example.com"

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	fail map[string]error
}

func (f *fakeMailer) Send(to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	if err, ok := f.fail[to]; ok {
		return err
	}
	return nil
}

func (f *fakeMailer) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

type fakeChat struct {
	received chan string
}

func (f *fakeChat) Notify(text string) error {
	f.received <- text
	return nil
}

func validSubmission() ContactSubmission {
	return ContactSubmission{
		FirstName: "Pat",
		LastName:  "Miller",
		Email:     "pat@example.com",
		Phone:     "+1 (555) 123-4567",
		Service:   "Web Design",
		Message:   "We would like to discuss a redesign of our company site.",
	}
}

func TestContactSubmit(t *testing.T) {
	t.Run("Valid submission is stored and both mails go out", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		mailer := &fakeMailer{}
		svc := NewContactService(contactRepo, mailer, nil, adminInbox)

		contactRepo.On("CreateMessage", mock.AnythingOfType("*models.ContactMessage")).Return(nil)

		result, err := svc.Submit(validSubmission(), "198.51.100.7", "Mozilla/5.0")

		assert.NoError(t, err)
		assert.True(t, result.AutoReplySent)
		assert.True(t, result.AdminNotified)
		assert.False(t, result.SpamFlagged)
		assert.ElementsMatch(t, []string{"pat@example.com", adminInbox}, mailer.recipients())
		contactRepo.AssertExpectations(t)
	})

	t.Run("Nine-character message is rejected", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		svc := NewContactService(contactRepo, &fakeMailer{}, nil, adminInbox)

		sub := validSubmission()
		sub.Message = "nine char"

		_, err := svc.Submit(sub, "", "")
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		contactRepo.AssertNotCalled(t, "CreateMessage", mock.Anything)
	})

	t.Run("Ten-character message is long enough", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		svc := NewContactService(contactRepo, &fakeMailer{}, nil, adminInbox)

		contactRepo.On("CreateMessage", mock.AnythingOfType("*models.ContactMessage")).Return(nil)

		sub := validSubmission()
		sub.Message = "ten chars!"

		_, err := svc.Submit(sub, "", "Mozilla/5.0")
		assert.NoError(t, err)
	})

	t.Run("Failed admin notification fails the submission", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		mailer := &fakeMailer{fail: map[string]error{adminInbox: errors.New("smtp refused")}}
		svc := NewContactService(contactRepo, mailer, nil, adminInbox)

		contactRepo.On("CreateMessage", mock.AnythingOfType("*models.ContactMessage")).Return(nil)

		result, err := svc.Submit(validSubmission(), "", "Mozilla/5.0")

		assert.Error(t, err)
		assert.True(t, result.AutoReplySent)
		assert.False(t, result.AdminNotified)
	})

	t.Run("Failed auto-reply does not fail the submission", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		mailer := &fakeMailer{fail: map[string]error{"pat@example.com": errors.New("mailbox full")}}
		svc := NewContactService(contactRepo, mailer, nil, adminInbox)

		contactRepo.On("CreateMessage", mock.AnythingOfType("*models.ContactMessage")).Return(nil)

		result, err := svc.Submit(validSubmission(), "", "Mozilla/5.0")

		assert.NoError(t, err)
		assert.False(t, result.AutoReplySent)
		assert.True(t, result.AdminNotified)
	})

	t.Run("Spam is stored flagged and never notified", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		mailer := &fakeMailer{}
		svc := NewContactService(contactRepo, mailer, nil, adminInbox)

		var stored *models.ContactMessage
		contactRepo.On("CreateMessage", mock.AnythingOfType("*models.ContactMessage")).
			Run(func(args mock.Arguments) {
				stored = args.Get(0).(*models.ContactMessage)
			}).Return(nil)

		sub := validSubmission()
		sub.Honeypot = "gotcha"

		result, err := svc.Submit(sub, "", "Mozilla/5.0")

		assert.NoError(t, err)
		assert.True(t, result.SpamFlagged)
		assert.False(t, result.AutoReplySent)
		assert.False(t, result.AdminNotified)
		assert.True(t, stored.SpamFlag)
		assert.NotEmpty(t, stored.SpamReason)
		assert.Empty(t, mailer.recipients())
	})

	t.Run("Unconfigured mailer is skipped without error", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		svc := NewContactService(contactRepo, nil, nil, adminInbox)

		contactRepo.On("CreateMessage", mock.AnythingOfType("*models.ContactMessage")).Return(nil)

		result, err := svc.Submit(validSubmission(), "", "Mozilla/5.0")

		assert.NoError(t, err)
		assert.False(t, result.AutoReplySent)
		assert.False(t, result.AdminNotified)
	})

	t.Run("Chat channel receives the inquiry", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		chat := &fakeChat{received: make(chan string, 1)}
		svc := NewContactService(contactRepo, &fakeMailer{}, chat, adminInbox)

		contactRepo.On("CreateMessage", mock.AnythingOfType("*models.ContactMessage")).Return(nil)

		_, err := svc.Submit(validSubmission(), "", "Mozilla/5.0")
		assert.NoError(t, err)

		select {
		case text := <-chat.received:
			assert.Contains(t, text, "Pat Miller")
			assert.Contains(t, text, "Web Design")
		case <-time.After(time.Second):
			t.Fatal("chat notification never arrived")
		}
	})

	t.Run("Invalid phone format is rejected", func(t *testing.T) {
		contactRepo := new(MockContactRepository)
		svc := NewContactService(contactRepo, nil, nil, adminInbox)

		sub := validSubmission()
		sub.Phone = "call me maybe"

		_, err := svc.Submit(sub, "", "")
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestListContactMessages(t *testing.T) {
	contactRepo := new(MockContactRepository)
	svc := NewContactService(contactRepo, nil, nil, adminInbox)

	contactRepo.On("ListMessages", 1, 9).
		Return([]models.ContactMessage{{ID: 1}, {ID: 2}}, int64(2), nil)

	messages, pagination, err := svc.ListMessages(1, 9)

	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	assert.Equal(t, 1, pagination.TotalPages)
	assert.False(t, pagination.HasNextPage)
}
