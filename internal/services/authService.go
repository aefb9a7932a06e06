package services

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/github"
	"github.com/markbates/goth/providers/google"
	"github.com/rs/zerolog/log"

	"secondbrain/internal/metrics"
	"secondbrain/internal/models"
	"secondbrain/internal/repositories"
	"secondbrain/internal/utils"
)

const (
	MaxAge = 86400 * 30
	IsProd = false
)

type AuthService interface {
	HandleLogin(ctx context.Context, u goth.User) (string, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func InitializeGoth() {
	googleClientID := os.Getenv("GOOGLE_CLIENT_ID")
	googleClientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	githubClientID := os.Getenv("GITHUB_CLIENT_ID")
	githubClientSecret := os.Getenv("GITHUB_CLIENT_SECRET")

	sessionKey := os.Getenv("SESSION_KEY")

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.MaxAge(MaxAge)

	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = IsProd
	store.Options.SameSite = http.SameSiteLaxMode

	gothic.Store = store

	callbackBase := os.Getenv("OAUTH_CALLBACK_BASE")
	if callbackBase == "" {
		callbackBase = "http://localhost:8080"
	}

	goth.UseProviders(
		google.New(googleClientID, googleClientSecret, callbackBase+"/api/auth/google/callback"),
		github.New(githubClientID, githubClientSecret, callbackBase+"/api/auth/github/callback"),
	)
	log.Info().Msg("Goth providers initialized")
}

// HandleLogin upserts the OAuth profile and mints the session JWT.
func (a *authService) HandleLogin(ctx context.Context, u goth.User) (string, error) {
	log.Info().Str("email", u.Email).Msg("Attempting to handle login for user")
	if u.Email == "" {
		log.Error().Msg("Missing email in Goth user data")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return "", errors.New("missing Email")
	}

	user, err := a.userRepo.FindByEmail(ctx, u.Email)
	if err != nil {
		log.Error().Err(err).Str("email", u.Email).Msg("Error finding user by email")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return "", errors.New("error finding user by email")
	}

	if user == nil {
		log.Info().Str("email", u.Email).Msg("User not found, creating new user")
		newUser := &models.User{
			Email:     u.Email,
			Username:  u.NickName,
			AvatarURL: u.AvatarURL,
			Provider:  u.Provider,
		}
		if _, err := a.userRepo.Create(ctx, newUser); err != nil {
			log.Error().Err(err).Str("email", u.Email).Msg("Error creating new user")
			metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
			return "", errors.New("error creating user")
		}
		user = newUser
		metrics.NewUsersTotal.Inc()
		log.Info().Str("email", u.Email).Str("userID", user.ID.Hex()).Msg("New user created successfully")
	} else {
		log.Info().Str("email", u.Email).Str("userID", user.ID.Hex()).Msg("User found in database")
	}

	token, err := utils.GenerateJWT(user.ID)
	if err != nil {
		log.Error().Err(err).Str("userID", user.ID.Hex()).Msg("Error generating JWT for user")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return "", errors.New("error generating JWT")
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return token, nil
}
