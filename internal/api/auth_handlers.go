package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/habitloop-io/habitloop/internal/auth"
	"github.com/habitloop-io/habitloop/internal/database"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (api *Api) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if !auth.ValidateEmail(creds.Email) {
		http.Error(w, "invalid email format", http.StatusBadRequest)
		return
	}
	if !auth.ValidatePassword(creds.Password) {
		http.Error(w, "password does not meet requirements", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	user, err := api.Store.CreateUser(creds.Email, hash)
	if err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Unknown email and wrong password fail identically so callers cannot
	// probe which addresses are registered.
	user, err := api.Store.GetUserByEmail(creds.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		storeError(w, err)
		return
	}

	if !auth.CheckPassword(creds.Password, user.Password) {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := api.Tokens.Generate(user.ID)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
