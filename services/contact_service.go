package services

import (
	"fmt"
	"log"
	"net/mail"
	"regexp"
	"strings"
	"sync"

	"pixelforge/models"
	"pixelforge/repository"
)

const (
	contactMessageMin = 10
	contactMessageMax = 2000
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s().-]{5,19}$`)

// ContactSubmission is a raw contact-form submission. Honeypot is a hidden
// form field real visitors never fill in.
type ContactSubmission struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Service   string
	Message   string
	Honeypot  string
}

// ContactResult reports what the dispatcher managed to deliver.
type ContactResult struct {
	AutoReplySent bool `json:"auto_reply_sent"`
	AdminNotified bool `json:"admin_notified"`
	SpamFlagged   bool `json:"spam_flagged"`
}

// ContactService validates contact submissions and fans them out to email
// and chat. The auto-reply and the chat notification are best-effort; only
// a failed admin notification fails the submission.
type ContactService interface {
	Submit(sub ContactSubmission, clientIP, userAgent string) (*ContactResult, error)
	ListMessages(page, limit int) ([]models.ContactMessage, models.Pagination, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
	mailer      Mailer
	chat        ChatNotifier
	adminEmail  string
}

// NewContactService creates a new instance of ContactService. mailer and
// chat may be nil when the corresponding channel is not configured; the
// service then skips that channel and logs.
func NewContactService(contactRepo repository.ContactRepository, mailer Mailer, chat ChatNotifier, adminEmail string) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		mailer:      mailer,
		chat:        chat,
		adminEmail:  adminEmail,
	}
}

// Submit validates, classifies, stores and dispatches one submission.
func (s *contactService) Submit(sub ContactSubmission, clientIP, userAgent string) (*ContactResult, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	verdict := ClassifySpam(sub.Message, sub.Honeypot, userAgent)
	if verdict.IsSpam {
		// Advisory by policy: tag and store, keep the submission out of
		// the notification channels, and still answer 200.
		log.Printf("WARN: [ContactService] Submission from '%s' flagged as spam (%s).", sub.Email, verdict.Reason)
	}

	msg := &models.ContactMessage{
		FirstName:  strings.TrimSpace(sub.FirstName),
		LastName:   strings.TrimSpace(sub.LastName),
		Email:      sub.Email,
		Phone:      strings.TrimSpace(sub.Phone),
		Service:    sub.Service,
		Message:    strings.TrimSpace(sub.Message),
		SpamFlag:   verdict.IsSpam,
		SpamReason: verdict.Reason,
		ClientIP:   clientIP,
		UserAgent:  userAgent,
	}
	if err := s.contactRepo.CreateMessage(msg); err != nil {
		return nil, err
	}

	result := &ContactResult{SpamFlagged: verdict.IsSpam}
	if verdict.IsSpam {
		return result, nil
	}

	// Best-effort chat ping, never blocks or fails the response.
	if s.chat != nil {
		go func() {
			if err := s.chat.Notify(chatText(msg)); err != nil {
				log.Printf("WARN: [ContactService] Chat notification failed: %v", err)
			}
		}()
	} else {
		log.Println("INFO: [ContactService] Chat notifier not configured, skipping notification.")
	}

	if s.mailer == nil {
		log.Println("INFO: [ContactService] Mailer not configured, skipping auto-reply and admin notification.")
		return result, nil
	}

	// Both mail branches run concurrently. Only the admin branch can fail
	// the submission.
	var wg sync.WaitGroup
	var autoReplyErr, adminErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		autoReplyErr = s.mailer.Send(msg.Email, "Thanks for reaching out", autoReplyBody(msg))
	}()
	go func() {
		defer wg.Done()
		adminErr = s.mailer.Send(s.adminEmail, fmt.Sprintf("New inquiry: %s", msg.Service), adminBody(msg))
	}()
	wg.Wait()

	if autoReplyErr != nil {
		log.Printf("WARN: [ContactService] Auto-reply to '%s' failed: %v", msg.Email, autoReplyErr)
	} else {
		result.AutoReplySent = true
	}
	if adminErr != nil {
		log.Printf("ERROR: [ContactService] Admin notification for message ID %d failed: %v", msg.ID, adminErr)
		return result, fmt.Errorf("failed to deliver admin notification: %w", adminErr)
	}
	result.AdminNotified = true
	return result, nil
}

// ListMessages pages through stored submissions for the admin UI.
func (s *contactService) ListMessages(page, limit int) ([]models.ContactMessage, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	messages, total, err := s.contactRepo.ListMessages(page, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return messages, models.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}, nil
}

func validateSubmission(sub ContactSubmission) error {
	if strings.TrimSpace(sub.FirstName) == "" {
		return invalidf("first name is required")
	}
	if strings.TrimSpace(sub.LastName) == "" {
		return invalidf("last name is required")
	}
	if _, err := mail.ParseAddress(sub.Email); err != nil {
		return invalidf("a valid email address is required")
	}
	if strings.TrimSpace(sub.Service) == "" {
		return invalidf("service is required")
	}
	msgLen := len(strings.TrimSpace(sub.Message))
	if msgLen < contactMessageMin {
		return invalidf("message must be at least %d characters", contactMessageMin)
	}
	if msgLen > contactMessageMax {
		return invalidf("message must be at most %d characters", contactMessageMax)
	}
	if phone := strings.TrimSpace(sub.Phone); phone != "" && !phonePattern.MatchString(phone) {
		return invalidf("phone number format is invalid")
	}
	return nil
}

func chatText(msg *models.ContactMessage) string {
	return fmt.Sprintf("New contact inquiry from %s %s (%s) about %s:\n%s",
		msg.FirstName, msg.LastName, msg.Email, msg.Service, msg.Message)
}

func autoReplyBody(msg *models.ContactMessage) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Thanks for getting in touch about <strong>%s</strong>. "+
			"We have received your message and will get back to you within one business day.</p>"+
			"<p>— The PixelForge team</p>",
		msg.FirstName, msg.Service)
}

func adminBody(msg *models.ContactMessage) string {
	return fmt.Sprintf(
		"<p><strong>From:</strong> %s %s &lt;%s&gt;</p>"+
			"<p><strong>Phone:</strong> %s</p>"+
			"<p><strong>Service:</strong> %s</p>"+
			"<p><strong>Message:</strong></p><p>%s</p>"+
			"<p><strong>IP:</strong> %s</p>",
		msg.FirstName, msg.LastName, msg.Email, msg.Phone, msg.Service, msg.Message, msg.ClientIP)
}
