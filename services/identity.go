package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/edugram-labs/edugram-api/dto"
)

// IdentityService wraps the hosted OAuth identity provider. The provider is
// the source of truth for authentication; this service never validates
// tokens itself, it forwards them and interprets the provider's answer.
type IdentityService struct {
	appContext.DefaultService
	httpClient  *http.Client
	apiURL      string
	apiKey      string
	redisSvc    *RedisService
	cacheExpiry time.Duration
}

const IDENTITY_SVC = "identity_svc"

func (svc IdentityService) Id() string {
	return IDENTITY_SVC
}

func (svc *IdentityService) Configure(ctx *appContext.Context) error {
	svc.httpClient = &http.Client{
		Timeout: 10 * time.Second,
	}
	svc.apiURL = os.Getenv("AUTH_API_URL")
	svc.apiKey = os.Getenv("AUTH_API_KEY")
	svc.cacheExpiry = 5 * time.Minute
	return svc.DefaultService.Configure(ctx)
}

func (svc *IdentityService) Start() error {
	if svc.apiURL == "" {
		return fmt.Errorf("AUTH_API_URL not configured")
	}
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// GetRedirectURL asks the provider for the Google OAuth consent URL.
func (svc *IdentityService) GetRedirectURL(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.apiURL+"/api/oauth/google/redirect_url", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", svc.apiKey)

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Failed to reach identity provider for redirect URL")
		return "", fmt.Errorf("identity provider unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Error("Identity provider rejected redirect URL request")
		return "", fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var result struct {
		RedirectURL string `json:"redirectUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.WithError(err).Error("Failed to decode redirect URL response")
		return "", fmt.Errorf("identity provider returned malformed response")
	}
	if result.RedirectURL == "" {
		return "", fmt.Errorf("identity provider returned empty redirect URL")
	}

	return result.RedirectURL, nil
}

// ExchangeCode trades an OAuth authorization code for an opaque session
// token minted by the provider.
func (svc *IdentityService) ExchangeCode(ctx context.Context, code string) (string, error) {
	body, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.apiURL+"/api/sessions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", svc.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Failed to reach identity provider for code exchange")
		return "", fmt.Errorf("identity provider unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.WithField("status", resp.StatusCode).Warn("Identity provider rejected code exchange")
		return "", fmt.Errorf("code exchange failed with status %d", resp.StatusCode)
	}

	var result struct {
		SessionToken string `json:"sessionToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.WithError(err).Error("Failed to decode code exchange response")
		return "", fmt.Errorf("identity provider returned malformed response")
	}
	if result.SessionToken == "" {
		return "", fmt.Errorf("identity provider returned empty session token")
	}

	return result.SessionToken, nil
}

// GetProfile resolves an opaque provider token to the identity profile
// behind it. Profiles are cached briefly so that every authenticated
// request does not round-trip to the provider.
func (svc *IdentityService) GetProfile(ctx context.Context, token string) (*dto.IdentityProfile, error) {
	cacheKey := fmt.Sprintf("identity:profile:%s", token)

	if svc.redisSvc != nil {
		var cached dto.IdentityProfile
		err := svc.redisSvc.GetJSON(ctx, cacheKey, &cached)
		if err == nil && cached.Subject != "" {
			log.WithField("subject", cached.Subject).Debug("Identity profile cache hit")
			return &cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.apiURL+"/api/users/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Failed to reach identity provider for profile lookup")
		return nil, fmt.Errorf("identity provider unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Error("Identity provider returned non-200 status for profile lookup")
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var result struct {
		ID             string `json:"id"`
		Email          string `json:"email"`
		GoogleUserData struct {
			Name string `json:"name"`
		} `json:"google_user_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.WithError(err).Error("Failed to decode identity profile response")
		return nil, fmt.Errorf("identity provider returned malformed response")
	}
	if result.ID == "" {
		return nil, nil
	}

	profile := &dto.IdentityProfile{
		Subject: result.ID,
		Email:   result.Email,
		Name:    result.GoogleUserData.Name,
	}

	if svc.redisSvc != nil {
		if err := svc.redisSvc.Set(ctx, cacheKey, profile, svc.cacheExpiry); err != nil {
			log.WithError(err).Warn("Failed to cache identity profile")
		}
	}

	return profile, nil
}

// Invalidate revokes the token on the provider side and drops any cached
// profile. Revocation failures are logged but not surfaced; logout must
// succeed locally regardless.
func (svc *IdentityService) Invalidate(ctx context.Context, token string) {
	if svc.redisSvc != nil {
		cacheKey := fmt.Sprintf("identity:profile:%s", token)
		if err := svc.redisSvc.Delete(ctx, cacheKey); err != nil {
			log.WithError(err).Warn("Failed to drop cached identity profile")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, svc.apiURL+"/api/logout", nil)
	if err != nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("Failed to reach identity provider for logout")
		return
	}
	resp.Body.Close()
}
