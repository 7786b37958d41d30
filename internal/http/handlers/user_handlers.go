package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-billing/internal/auth"
	"github.com/rogerio-castellano/inventory-billing/internal/http/middleware"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
)

func userNotFoundOr500(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, repo.ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	internalError(w, msg, err)
}

// GetUsersHandler godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 403 {string} string "Forbidden"
// @Router /user/ [get]
func GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := userRepo.GetAll(r.Context())
	if err != nil {
		internalError(w, "could not fetch users", err)
		return
	}
	respond(w, http.StatusOK, users)
}

// GetUserHandler godoc
// @Summary Get user by email
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} models.User
// @Failure 404 {string} string "Not found"
// @Router /user/{email} [get]
func GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := userRepo.GetByEmail(r.Context(), auth.NormalizeEmail(chi.URLParam(r, "email")))
	if err != nil {
		userNotFoundOr500(w, err, "could not fetch user")
		return
	}
	respond(w, http.StatusOK, user)
}

// CreateUserHandler godoc
// @Summary Create user with custom role
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user body UserRequest true "User to create with role"
// @Success 201 {object} models.User
// @Failure 400 {array} ProductValidationError
// @Failure 403 {string} string "Forbidden"
// @Failure 409 {string} string "User exists"
// @Failure 500 {string} string "Server error"
// @Router /user/add [post]
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if errs := validateStruct(&req); len(errs) > 0 {
		respond(w, http.StatusBadRequest, errs)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		internalError(w, "Error hashing password", err)
		return
	}

	created, err := userRepo.Create(r.Context(), models.User{
		Email:        auth.NormalizeEmail(req.Email),
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create user: email already exists", http.StatusConflict)
			return
		}
		internalError(w, "Error creating user", err)
		return
	}
	respond(w, http.StatusCreated, created)
}

// UpdateUserHandler godoc
// @Summary Update a user
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Param user body UserUpdateRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Router /user/{email} [put]
func UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	email := auth.NormalizeEmail(chi.URLParam(r, "email"))

	var req UserUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	existing, err := userRepo.GetByEmail(r.Context(), email)
	if err != nil {
		userNotFoundOr500(w, err, "could not update user")
		return
	}

	update := models.User{Email: email, Name: existing.Name, Role: existing.Role}
	if req.Name != nil {
		update.Name = *req.Name
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			http.Error(w, "role must be admin or user", http.StatusBadRequest)
			return
		}
		update.Role = *req.Role
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			http.Error(w, "password must be at least 6 characters", http.StatusBadRequest)
			return
		}
		if update.PasswordHash, err = auth.HashPassword(*req.Password); err != nil {
			internalError(w, "Error hashing password", err)
			return
		}
	}

	updated, err := userRepo.Update(r.Context(), update)
	if err != nil {
		userNotFoundOr500(w, err, "could not update user")
		return
	}
	respond(w, http.StatusOK, updated)
}

// DeleteUserHandler godoc
// @Summary Delete a user
// @Description Admins cannot delete their own account.
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} MessageResponse
// @Failure 400 {string} string "Cannot delete yourself"
// @Failure 404 {string} string "Not found"
// @Router /user/{email} [delete]
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	email := auth.NormalizeEmail(chi.URLParam(r, "email"))

	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok && claims.Email == email {
		http.Error(w, "cannot delete your own account", http.StatusBadRequest)
		return
	}

	if err := userRepo.Delete(r.Context(), email); err != nil {
		userNotFoundOr500(w, err, "could not delete user")
		return
	}
	respond(w, http.StatusOK, MessageResponse{Message: "user deleted"})
}
