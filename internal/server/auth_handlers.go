package server

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/manav/nyaya/internal/auth"
	"github.com/manav/nyaya/internal/logger"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	existing, err := s.store.GetUserByEmail(email)
	if err != nil {
		logger.Error("register lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if existing != nil {
		writeError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Error("password hashing failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	verificationToken := uuid.NewString()
	userID, err := s.store.CreateUser(email, hash, verificationToken)
	if err != nil {
		logger.Error("user creation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	// Verification mail is best effort. Accounts are usable right away
	// whether or not the mail goes out.
	if s.mailer != nil && s.mailer.Enabled() {
		verifyURL := fmt.Sprintf("%s/auth/verify?token=%s", s.baseURL, verificationToken)
		if err := s.mailer.SendVerification(email, verifyURL); err != nil {
			logger.Warn("verification mail to %s failed: %v", email, err)
		}
	}
	if err := s.store.SetUserVerified(userID); err != nil {
		logger.Error("auto-verify failed: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Registered successfully. You can now login.",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		logger.Error("login lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.issuer.Mint(user.ID, email)
	if err != nil {
		logger.Error("token mint failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token, "email": email})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Missing token")
		return
	}
	user, err := s.store.GetUserByVerificationToken(token)
	if err != nil {
		logger.Error("verify lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Verification failed")
		return
	}
	if user == nil {
		writeError(w, http.StatusBadRequest, "Invalid token")
		return
	}
	if user.IsVerified {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Already verified"})
		return
	}
	if err := s.store.SetUserVerified(user.ID); err != nil {
		logger.Error("verify update failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Verification failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully"})
}

func (s *Server) handleOAuthDev(w http.ResponseWriter, r *http.Request) {
	if !s.devOAuth {
		writeError(w, http.StatusForbidden, "Dev OAuth disabled")
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		writeError(w, http.StatusBadRequest, "Email required")
		return
	}

	token, err := s.loginOrRegisterOAuthUser(email)
	if err != nil {
		logger.Error("dev oauth failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Dev OAuth failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token, "email": email})
}

// handleOAuthStart opens the popup leg of the OAuth flow. For the dev
// provider it completes immediately; real providers would redirect to
// the provider consent page carrying the issued state.
func (s *Server) handleOAuthStart(w http.ResponseWriter, r *http.Request) {
	provider := mux.Vars(r)["provider"]
	if !auth.ProviderAllowed(provider) {
		writeError(w, http.StatusBadRequest, "Unsupported OAuth provider")
		return
	}

	state := s.states.Put(provider)

	if provider == "dev" && s.devOAuth {
		email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
		if email == "" {
			email = "dev@example.com"
		}
		if _, ok := s.states.Consume(state); !ok {
			writeError(w, http.StatusBadRequest, "Invalid OAuth state")
			return
		}
		token, err := s.loginOrRegisterOAuthUser(email)
		if err != nil {
			logger.Error("dev oauth start failed: %v", err)
			writeError(w, http.StatusInternalServerError, "OAuth failed")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, oauthSuccessHTML(token, email, provider))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"provider": provider,
		"state":    state,
	})
}

// loginOrRegisterOAuthUser returns a token for the email, creating a
// verified account with a random password when none exists.
func (s *Server) loginOrRegisterOAuthUser(email string) (string, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		hash, err := auth.HashPassword(uuid.NewString())
		if err != nil {
			return "", err
		}
		userID, err := s.store.CreateUser(email, hash, "")
		if err != nil {
			return "", err
		}
		if err := s.store.SetUserVerified(userID); err != nil {
			return "", err
		}
		return s.issuer.Mint(userID, email)
	}
	return s.issuer.Mint(user.ID, email)
}

// oauthSuccessHTML posts the token event to the opener window and
// closes the popup.
func oauthSuccessHTML(token, email, provider string) string {
	return fmt.Sprintf(`<html><body>
<script>
(function(){
var data = { type: 'oauth_token', token: %q, email: %q, provider: %q };
if (window.opener) { window.opener.postMessage(data, '*'); }
window.close();
})();
</script>
<p>Login successful. You can close this window.</p>
</body></html>`, token, html.EscapeString(email), html.EscapeString(provider))
}
