package handlers

import (
	"encoding/json"
	"net/http"

	"ncwcc-portal/internal/services"
	"ncwcc-portal/internal/session"
)

type AuthHandler struct {
	auth   *services.AuthService
	google *services.GoogleService
}

func NewAuthHandler(auth *services.AuthService, google *services.GoogleService) *AuthHandler {
	return &AuthHandler{auth: auth, google: google}
}

// loginResponse wraps an auth result with the portal session id the browser
// should present on subsequent requests
type loginResponse struct {
	services.AuthResult
	SessionID string `json:"session_id,omitempty"`
}

func (h *AuthHandler) respondWithSession(w http.ResponseWriter, r *http.Request, sessionID string, res services.AuthResult) {
	out := loginResponse{AuthResult: res}
	if res.Success && h.auth.IsAuthenticated(r.Context(), sessionID) {
		out.SessionID = sessionID
	}
	status := http.StatusOK
	if !res.Success {
		status = res.Status
		if status == 0 || status < http.StatusBadRequest {
			status = http.StatusBadRequest
		}
	}
	writeJSON(w, status, out)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sessionID := session.NewID()
	res := h.auth.Register(r.Context(), sessionID, req)
	h.respondWithSession(w, r, sessionID, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sessionID := session.NewID()
	res := h.auth.Login(r.Context(), sessionID, req)
	h.respondWithSession(w, r, sessionID, res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := session.IDFromContext(r.Context())
	res := h.auth.Logout(r.Context(), sessionID)
	writeAuthResult(w, res, http.StatusOK)
}

func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Credential string `json:"credential"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		http.Error(w, "credential required", http.StatusBadRequest)
		return
	}
	sessionID := session.NewID()
	res := h.google.SignIn(r.Context(), sessionID, req.Credential)
	h.respondWithSession(w, r, sessionID, res)
}

func (h *AuthHandler) GoogleRegister(w http.ResponseWriter, r *http.Request) {
	var req services.GoogleRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		http.Error(w, "credential required", http.StatusBadRequest)
		return
	}
	sessionID := session.NewID()
	res := h.google.Register(r.Context(), sessionID, req)
	h.respondWithSession(w, r, sessionID, res)
}

func (h *AuthHandler) SocialLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider    string `json:"provider"`
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Provider == "" {
		http.Error(w, "provider and access_token required", http.StatusBadRequest)
		return
	}
	sessionID := session.NewID()
	res := h.auth.SocialLogin(r.Context(), sessionID, req.Provider, req.AccessToken)
	h.respondWithSession(w, r, sessionID, res)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	res := h.auth.ChangePassword(r.Context(), req.OldPassword, req.NewPassword)
	writeAuthResult(w, res, http.StatusOK)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "email required", http.StatusBadRequest)
		return
	}
	res := h.auth.ResetPassword(r.Context(), req.Email)
	writeAuthResult(w, res, http.StatusOK)
}

func (h *AuthHandler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UID         string `json:"uid"`
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	res := h.auth.ConfirmResetPassword(r.Context(), req.UID, req.Token, req.NewPassword)
	writeAuthResult(w, res, http.StatusOK)
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		http.Error(w, "key required", http.StatusBadRequest)
		return
	}
	res := h.auth.VerifyEmail(r.Context(), req.Key)
	writeAuthResult(w, res, http.StatusOK)
}

func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		http.Error(w, "email required", http.StatusBadRequest)
		return
	}
	res := h.auth.ResendVerification(r.Context(), req.Email)
	writeAuthResult(w, res, http.StatusOK)
}

// Me reports the session's profile and derived flags
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := session.IDFromContext(r.Context())
	user := h.auth.CurrentUser(r.Context(), sessionID)
	if user == nil {
		http.Error(w, "No active session", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"user":           user,
		"is_google_user": h.auth.IsGoogleUser(r.Context(), sessionID),
		"is_verified":    h.auth.IsVerified(r.Context(), sessionID),
		"user_type":      h.auth.UserType(r.Context(), sessionID),
		"client_type":    h.auth.ClientType(r.Context(), sessionID),
		"is_ndis_client": h.auth.IsNDISClient(r.Context(), sessionID),
	})
}

// GoogleClientID exposes the widget configuration to the front-end
func (h *AuthHandler) GoogleClientID(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"client_id": h.google.ClientID()})
}
