package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"pixelforge/models"
	"pixelforge/repository"

	"github.com/mattn/go-mastodon"
)

// MastodonSettings is the admin-visible cross-posting configuration. The
// access token itself is never echoed back, only whether one is stored.
type MastodonSettings struct {
	Instance string `json:"instance"`
	Enabled  bool   `json:"enabled"`
	TokenSet bool   `json:"token_set"`
}

// MastodonAccount is the account info returned by a connection test.
type MastodonAccount struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	URL         string `json:"url"`
}

// MastodonStatus identifies a published status.
type MastodonStatus struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SocialService relays published posts to a Mastodon instance. It is a thin
// wrapper over the statuses API; upstream error text is surfaced verbatim
// so the admin UI can show what the instance actually said.
type SocialService interface {
	GetSettings() (*MastodonSettings, error)
	UpdateSettings(instance, accessToken string, enabled bool) error
	PostStatus(ctx context.Context, statusText string) (*MastodonStatus, error)
	TestConnection(ctx context.Context) (*MastodonAccount, error)
	// CrossPost announces a published blog post when cross-posting is
	// enabled and configured; otherwise it is a logged no-op.
	CrossPost(ctx context.Context, post *models.Post, publicBaseURL string) (*MastodonStatus, error)
}

// mastodonAPI is the slice of the client the service uses, split out so
// tests can substitute a fake.
type mastodonAPI interface {
	PostStatus(ctx context.Context, toot *mastodon.Toot) (*mastodon.Status, error)
	GetAccountCurrentUser(ctx context.Context) (*mastodon.Account, error)
}

type socialService struct {
	settingsRepo repository.SettingsRepository
	newClient    func(instance, token string) mastodonAPI
}

// NewSocialService creates a new instance of SocialService.
func NewSocialService(settingsRepo repository.SettingsRepository) SocialService {
	return &socialService{
		settingsRepo: settingsRepo,
		newClient: func(instance, token string) mastodonAPI {
			return mastodon.NewClient(&mastodon.Config{
				Server:      instance,
				AccessToken: token,
			})
		},
	}
}

// GetSettings returns the stored cross-posting configuration.
func (s *socialService) GetSettings() (*MastodonSettings, error) {
	instance, err := s.settingsRepo.GetSetting(models.SettingMastodonInstance)
	if err != nil {
		return nil, err
	}
	token, err := s.settingsRepo.GetSetting(models.SettingMastodonToken)
	if err != nil {
		return nil, err
	}
	enabled, err := s.settingsRepo.GetSetting(models.SettingMastodonEnabled)
	if err != nil {
		return nil, err
	}
	return &MastodonSettings{
		Instance: instance,
		Enabled:  enabled == "true",
		TokenSet: token != "",
	}, nil
}

// UpdateSettings stores the cross-posting configuration. An empty
// accessToken keeps the previously stored token.
func (s *socialService) UpdateSettings(instance, accessToken string, enabled bool) error {
	if enabled && strings.TrimSpace(instance) == "" {
		return invalidf("instance URL is required to enable cross-posting")
	}
	if err := s.settingsRepo.SetSetting(models.SettingMastodonInstance, strings.TrimRight(strings.TrimSpace(instance), "/")); err != nil {
		return err
	}
	if accessToken != "" {
		if err := s.settingsRepo.SetSetting(models.SettingMastodonToken, accessToken); err != nil {
			return err
		}
	}
	enabledValue := "false"
	if enabled {
		enabledValue = "true"
	}
	return s.settingsRepo.SetSetting(models.SettingMastodonEnabled, enabledValue)
}

// PostStatus publishes a status using the stored credentials.
func (s *socialService) PostStatus(ctx context.Context, statusText string) (*MastodonStatus, error) {
	if strings.TrimSpace(statusText) == "" {
		return nil, invalidf("status text is required")
	}
	client, err := s.client()
	if err != nil {
		return nil, err
	}
	status, err := client.PostStatus(ctx, &mastodon.Toot{Status: statusText})
	if err != nil {
		// Deliberately verbatim: the instance's message is the useful part.
		return nil, fmt.Errorf("mastodon: %s", err.Error())
	}
	log.Printf("INFO: [SocialService] Posted status %s.", status.ID)
	return &MastodonStatus{ID: string(status.ID), URL: status.URL}, nil
}

// TestConnection verifies the stored credentials by fetching the account.
func (s *socialService) TestConnection(ctx context.Context) (*MastodonAccount, error) {
	client, err := s.client()
	if err != nil {
		return nil, err
	}
	account, err := client.GetAccountCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("mastodon: %s", err.Error())
	}
	return &MastodonAccount{
		Username:    account.Acct,
		DisplayName: account.DisplayName,
		URL:         account.URL,
	}, nil
}

// CrossPost announces a blog post if cross-posting is enabled. Returns
// (nil, nil) when the feature is off or unconfigured.
func (s *socialService) CrossPost(ctx context.Context, post *models.Post, publicBaseURL string) (*MastodonStatus, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}
	if !settings.Enabled || !settings.TokenSet {
		log.Printf("INFO: [SocialService] Cross-posting disabled or unconfigured, skipping post '%s'.", post.Slug)
		return nil, nil
	}
	text := fmt.Sprintf("%s\n\n%s/blog/%s", post.Title, strings.TrimRight(publicBaseURL, "/"), post.Slug)
	return s.PostStatus(ctx, text)
}

func (s *socialService) client() (mastodonAPI, error) {
	instance, err := s.settingsRepo.GetSetting(models.SettingMastodonInstance)
	if err != nil {
		return nil, err
	}
	token, err := s.settingsRepo.GetSetting(models.SettingMastodonToken)
	if err != nil {
		return nil, err
	}
	if instance == "" || token == "" {
		return nil, invalidf("mastodon is not configured")
	}
	return s.newClient(instance, token), nil
}
