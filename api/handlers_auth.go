package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/status-im/market-gateway/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// handleLogin authenticates the demo principal and returns a bearer token
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := s.tokens.Issue(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		log.Printf("Auth: issuing token: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	sendJSONResponse(w, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
