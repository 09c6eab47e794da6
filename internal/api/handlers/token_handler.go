// filepath: internal/api/handlers/token_handler.go
package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"soundvault/internal/logging"
)

// TokenRequest is the payload for requesting a new token pair.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the payload for refreshing or revoking a token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// GetToken exchanges username/password credentials for a token pair.
//
//	@Summary		Issue a token pair
//	@Description	Validates credentials and returns an access and a refresh token.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		TokenRequest	true	"User credentials"
//	@Success		200	{object}	TokenResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/api/token [post]
func (h *Handlers) GetToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.Store.GetUserByUsername(req.Username)
	if err != nil {
		logging.Log.Warnf("GetToken: unknown user %q", req.Username)
		respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(req.Password)) != 1 {
		logging.Log.Warnf("GetToken: password mismatch for user %q", req.Username)
		respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	access, refresh, err := h.Tokens.GenerateTokens(user)
	if err != nil {
		logging.Log.WithError(err).Error("Failed to generate tokens")
		respondWithError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}
	respondWithJSON(w, http.StatusOK, TokenResponse{AccessToken: access, RefreshToken: refresh})
}

// RefreshToken rotates a valid refresh token into a new token pair. The old
// refresh token is revoked before the new pair is issued.
//
//	@Summary		Refresh a token pair
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			token	body		RefreshRequest	true	"Refresh token"
//	@Success		200	{object}	TokenResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/api/token/refresh [post]
func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		respondWithError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	user, err := h.Tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		logging.Log.Warnf("RefreshToken: invalid refresh token: %v", err)
		respondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// Rotate: revoke the presented token, then issue a new pair.
	if err := h.Tokens.Logout(req.RefreshToken); err != nil {
		logging.Log.WithError(err).Error("Failed to revoke refresh token")
		respondWithError(w, http.StatusInternalServerError, "Failed to refresh tokens")
		return
	}

	access, refresh, err := h.Tokens.GenerateTokens(user)
	if err != nil {
		logging.Log.WithError(err).Error("Failed to generate tokens")
		respondWithError(w, http.StatusInternalServerError, "Failed to refresh tokens")
		return
	}
	respondWithJSON(w, http.StatusOK, TokenResponse{AccessToken: access, RefreshToken: refresh})
}

// Logout revokes a refresh token.
//
//	@Summary		Revoke a refresh token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			token	body		RefreshRequest	true	"Refresh token"
//	@Success		200	{object}	MessageResponse
//	@Failure		400	{object}	ErrorResponse
//	@Security		BasicAuth
//	@Router			/api/logout [post]
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		respondWithError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	if err := h.Tokens.Logout(req.RefreshToken); err != nil {
		logging.Log.WithError(err).Warn("Failed to revoke refresh token")
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}
