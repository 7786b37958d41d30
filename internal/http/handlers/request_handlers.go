package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-billing/internal/auth"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
)

// CreateAccessRequestHandler godoc
// @Summary Ask for access to the platform
// @Tags requests
// @Accept json
// @Produce json
// @Param request body AccessRequestInput true "Business details"
// @Success 201 {object} AccessRequestResult
// @Failure 400 {array} ProductValidationError
// @Router /request [post]
func CreateAccessRequestHandler(w http.ResponseWriter, r *http.Request) {
	var in AccessRequestInput
	if err := readJSON(w, r, &in); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateAccessRequest(&in); len(errs) > 0 {
		respond(w, http.StatusBadRequest, errs)
		return
	}

	created, err := requestRepo.Create(r.Context(), models.AccessRequest{
		BusinessName: in.BusinessName,
		Industry:     in.Industry,
		Email:        auth.NormalizeEmail(in.Email),
		Phone:        in.Phone,
		Description:  in.Description,
		Status:       models.RequestPending,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "a request with this email already exists", http.StatusBadRequest)
			return
		}
		internalError(w, "could not create request", err)
		return
	}

	respond(w, http.StatusCreated, AccessRequestResult{
		Message: "request submitted, we will get back to you soon",
		Request: created,
	})
}

// GetAccessRequestsHandler godoc
// @Summary List access requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AccessRequest
// @Failure 403 {string} string "Forbidden"
// @Router /request/ [get]
func GetAccessRequestsHandler(w http.ResponseWriter, r *http.Request) {
	requests, err := requestRepo.GetAll(r.Context())
	if err != nil {
		internalError(w, "could not fetch requests", err)
		return
	}
	respond(w, http.StatusOK, requests)
}

// UpdateAccessRequestHandler godoc
// @Summary Approve or reject an access request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request id"
// @Param status body RequestStatusUpdate true "approved or rejected"
// @Success 200 {object} models.AccessRequest
// @Failure 400 {string} string "Invalid status"
// @Failure 404 {string} string "Not found"
// @Router /request/approve-reject/{id} [put]
func UpdateAccessRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req RequestStatusUpdate
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Status != models.RequestApproved && req.Status != models.RequestRejected {
		http.Error(w, "status must be approved or rejected", http.StatusBadRequest)
		return
	}

	updated, err := requestRepo.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		if errors.Is(err, repo.ErrRequestNotFound) {
			http.Error(w, "request not found", http.StatusNotFound)
			return
		}
		internalError(w, "could not update request", err)
		return
	}
	respond(w, http.StatusOK, updated)
}
