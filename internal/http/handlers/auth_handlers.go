package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/inventory-billing/internal/auth"
)

// RegisterHandler godoc
// @Summary Register new user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body RegisterRequest true "name, email and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {string} string "Invalid input or user exists"
// @Failure 429 {string} string "Too many requests"
// @Router /auth/register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateStruct(&req); len(errs) > 0 {
		respond(w, http.StatusBadRequest, errs)
		return
	}

	token, user, err := authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, "failed to register user", err)
		return
	}

	respond(w, http.StatusCreated, RegisterResult{
		Message: "user registered",
		Token:   token,
		Email:   user.Email,
	})
}

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Description The role must match the role stored for the user.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "email, password and role"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "invalid-credentials or invalid-role"
// @Failure 429 {string} string "Too many requests"
// @Router /auth/login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials LoginRequest
	if err := readJSON(w, r, &credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if credentials.Email == "" || credentials.Password == "" || credentials.Role == "" {
		http.Error(w, "email, password and role are required", http.StatusBadRequest)
		return
	}

	token, user, err := authService.Authenticate(r.Context(), credentials.Email, credentials.Password, credentials.Role)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrInvalidRole) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, "could not log in", err)
		return
	}

	respond(w, http.StatusOK, LoginResult{Token: token, Email: user.Email, Role: user.Role})
}
