package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/praxishr/timecontrol-backend-go/internal/domain/biometric"
	"github.com/praxishr/timecontrol-backend-go/internal/handler/http/response"
)

// maxImportSize caps punch export uploads at 16 MiB.
const maxImportSize = 16 << 20

type BiometricHandler interface {
	CreateMapping(w http.ResponseWriter, r *http.Request)
	ListMappings(w http.ResponseWriter, r *http.Request)
	UpdateMapping(w http.ResponseWriter, r *http.Request)
	DeleteMapping(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
}

type biometricHandlerImpl struct {
	biometricService biometric.BiometricService
}

func NewBiometricHandler(biometricService biometric.BiometricService) BiometricHandler {
	return &biometricHandlerImpl{
		biometricService: biometricService,
	}
}

func (h *biometricHandlerImpl) CreateMapping(w http.ResponseWriter, r *http.Request) {
	var req biometric.CreateMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.biometricService.CreateMapping(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Biometric mapping created successfully", result)
}

func (h *biometricHandlerImpl) ListMappings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := biometric.MappingFilter{}
	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if activeStr := query.Get("active"); activeStr != "" {
		active := activeStr == "true"
		filter.Active = &active
	}

	result, err := h.biometricService.ListMappings(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *biometricHandlerImpl) UpdateMapping(w http.ResponseWriter, r *http.Request) {
	var req biometric.UpdateMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.biometricService.UpdateMapping(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Biometric mapping updated successfully", result)
}

func (h *biometricHandlerImpl) DeleteMapping(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.biometricService.DeleteMapping(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Biometric mapping deleted successfully", nil)
}

func (h *biometricHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		response.BadRequest(w, "Invalid multipart upload", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Punch export file is required", nil)
		return
	}
	defer file.Close()

	req := biometric.ImportRequest{
		Filename:      header.Filename,
		File:          file,
		ForceReimport: r.FormValue("force_reimport") == "true",
	}

	result, err := h.biometricService.ImportBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import completed", result)
}
