package handler

import (
	"net/http"

	"canteen/internal/model"
	"canteen/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// AdminHandler handles directory and account management requests.
type AdminHandler struct {
	directory service.DirectoryService
	accounts  service.AccountService
	logger    zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(directory service.DirectoryService, accounts service.AccountService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		directory: directory,
		accounts:  accounts,
		logger:    logger.With().Str("handler", "admin").Logger(),
	}
}

// ListEmployees handles GET /api/admin/employees requests.
func (h *AdminHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.directory.ListEmployees(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

// GetEmployee handles GET /api/admin/employees/{id} requests.
func (h *AdminHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := parseInt64(w, "employee code", chi.URLParam(r, "id"), h.logger)
	if !ok {
		return
	}

	employee, err := h.directory.GetEmployee(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

// PutEmployee handles POST /api/admin/employees and PUT /api/admin/employees/{id} requests.
func (h *AdminHandler) PutEmployee(w http.ResponseWriter, r *http.Request) {
	var req model.EmployeeRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if idParam := chi.URLParam(r, "id"); idParam != "" {
		id, ok := parseInt64(w, "employee code", idParam, h.logger)
		if !ok {
			return
		}
		req.ID = id
	}

	employee, err := h.directory.UpsertEmployee(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

// DeleteEmployee handles DELETE /api/admin/employees/{id} requests.
func (h *AdminHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := parseInt64(w, "employee code", chi.URLParam(r, "id"), h.logger)
	if !ok {
		return
	}

	if err := h.directory.DeleteEmployee(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportRoster handles POST /api/admin/employees/import requests.
func (h *AdminHandler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	var req model.RosterImportRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	n, err := h.directory.ImportRoster(r.Context(), req.Path)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, model.RosterImportResponse{Imported: n})
}

// ListMenu handles GET /api/admin/menu requests.
func (h *AdminHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.directory.ListMenu(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// PutMenuItem handles POST /api/admin/menu and PUT /api/admin/menu/{name} requests.
func (h *AdminHandler) PutMenuItem(w http.ResponseWriter, r *http.Request) {
	var req model.MenuItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if name := chi.URLParam(r, "name"); name != "" {
		req.Name = name
	}

	item, err := h.directory.UpsertMenuItem(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /api/admin/menu/{name} requests.
func (h *AdminHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.directory.DeleteMenuItem(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUsers handles GET /api/admin/users requests.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.List(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/admin/users requests.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.CredentialRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	user, err := h.accounts.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// UpdateUser handles PUT /api/admin/users/{username} requests.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var update model.CredentialUpdate
	if !decodeJSON(w, r, &update, h.logger) {
		return
	}

	user, err := h.accounts.Update(r.Context(), chi.URLParam(r, "username"), update)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/{username} requests.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
