package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"budgetflow/internal/config"
	"budgetflow/internal/models"
	"budgetflow/internal/repositories"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUserInfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

type googleAuthService struct {
	oauthConfig  *oauth2.Config
	userRepo     repositories.UserRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewGoogleAuthService creates the Google OAuth sign-in service.
func NewGoogleAuthService(
	cfg *config.GoogleOAuthConfig,
	userRepo repositories.UserRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) GoogleAuthServiceInterface {
	return &googleAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
		},
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// AuthCodeURL builds the Google consent page URL for the given state.
func (s *googleAuthService) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Authenticate exchanges an authorization code, fetches the Google profile
// and upserts the local user. The boolean result reports whether the user
// was created by this call.
func (s *googleAuthService) Authenticate(ctx context.Context, code string) (*models.User, bool, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		s.metrics.AuthEvent("exchange_failed")
		return nil, false, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		s.metrics.AuthEvent("userinfo_failed")
		return nil, false, err
	}

	user, err := s.userRepo.GetByGoogleID(info.ID)
	if err == nil {
		s.refreshProfile(user, info)
		if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
			s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
		}
		s.metrics.AuthEvent("sign_in")
		return user, false, nil
	}

	user, err = s.provisionUser(info)
	if err != nil {
		return nil, false, err
	}

	s.metrics.AuthEvent("sign_up")
	s.logger.Info("new user provisioned", "user_id", user.ID, "email", user.Email)
	return user, true, nil
}

func (s *googleAuthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google user info request returned status %d", resp.StatusCode)
	}

	info := &googleUserInfo{}
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, fmt.Errorf("failed to decode google user info: %w", err)
	}

	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("google user info response is incomplete")
	}

	return info, nil
}

// refreshProfile keeps the local profile in step with Google. Best effort.
func (s *googleAuthService) refreshProfile(user *models.User, info *googleUserInfo) {
	changed := false
	if info.GivenName != "" && user.FirstName != info.GivenName {
		user.FirstName = info.GivenName
		changed = true
	}
	if user.LastName != info.FamilyName {
		user.LastName = info.FamilyName
		changed = true
	}
	if info.Picture != "" && user.AvatarURL != info.Picture {
		user.AvatarURL = info.Picture
		changed = true
	}

	if !changed {
		return
	}
	if err := s.userRepo.Update(user); err != nil {
		s.logger.Warn("failed to refresh user profile", "user_id", user.ID, "error", err)
	}
}

// provisionUser creates a user with the 50/30/20 default split and seeds the
// default category for each transaction type.
func (s *googleAuthService) provisionUser(info *googleUserInfo) (*models.User, error) {
	firstName := info.GivenName
	if firstName == "" {
		firstName = info.Email
	}

	user := &models.User{
		GoogleID:          info.ID,
		Email:             info.Email,
		FirstName:         firstName,
		LastName:          info.FamilyName,
		AvatarURL:         info.Picture,
		BudgetPreferences: models.DefaultBudgetPreferences(),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	for _, transactionType := range append(models.BucketTypes(), models.TransactionTypeIncome) {
		if _, err := s.categoryRepo.FindOrCreate(models.DefaultCategory(user.ID, transactionType)); err != nil {
			s.logger.Warn("failed to seed default category",
				"user_id", user.ID,
				"transaction_type", transactionType,
				"error", err)
		}
	}

	return user, nil
}
