package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/markbates/goth/gothic"
	"github.com/rs/zerolog/log"

	"secondbrain/internal/services"
	"secondbrain/internal/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// ProviderAuth starts the OAuth dance for the provider named in the URL.
func (a *AuthHandler) ProviderAuth(w http.ResponseWriter, r *http.Request) {
	provider := mux.Vars(r)["provider"]
	if provider == "" {
		log.Warn().Msg("Provider not specified in auth URL")
		utils.SendJSONError(w, "Provider not specified", http.StatusBadRequest)
		return
	}

	log.Info().Str("provider", provider).Msg("Initiating authentication with provider")
	gothic.BeginAuthHandler(w, r)
}

// ProviderCallback completes the OAuth dance, upserts the profile and sets
// the jwt session cookie. The cookie lifetime matches the token's.
func (a *AuthHandler) ProviderCallback(w http.ResponseWriter, r *http.Request) {
	providerUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		log.Error().Err(err).Msg("Error completing provider authentication")
		http.Redirect(w, r, "/api/auth/error", http.StatusTemporaryRedirect)
		return
	}

	token, err := a.authService.HandleLogin(r.Context(), providerUser)
	if err != nil {
		log.Error().Err(err).Str("email", providerUser.Email).Msg("Error handling login after provider authentication")
		http.Redirect(w, r, "/api/auth/error", http.StatusTemporaryRedirect)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    token,
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log.Info().Str("email", providerUser.Email).Str("provider", providerUser.Provider).Msg("Login completed, session cookie set")

	http.Redirect(w, r, "/api/auth/success", http.StatusTemporaryRedirect)
}

func (a *AuthHandler) AuthSuccess(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Authentication successful"})
}

func (a *AuthHandler) AuthError(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONError(w, "Authentication failed. Please try again.", http.StatusBadRequest)
}
