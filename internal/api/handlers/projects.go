package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hugh/taskhive/internal/api/dto"
	"github.com/hugh/taskhive/internal/api/middleware"
	"github.com/hugh/taskhive/internal/database/models"
	"github.com/hugh/taskhive/internal/tasks"
)

type ProjectHandler struct {
	service *tasks.Service
}

func NewProjectHandler(service *tasks.Service) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	project, err := h.service.CreateProject(r.Context(), user.ID, req.Name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create project"})
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	projects, err := h.service.ListProjects(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch projects"})
		return
	}

	response := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		response[i] = dto.ToProjectResponse(&projects[i])
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	project, err := h.service.GetProject(r.Context(), user.ID, projectID)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	var req dto.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	project, err := h.service.UpdateProject(r.Context(), user.ID, projectID, tasks.ProjectPatch{
		Name: req.Name,
	})
	if err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(project))
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	if err := h.service.DeleteProject(r.Context(), user.ID, projectID); err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Success"})
}

// writeProjectError maps service errors for project and task endpoints.
// Unowned resources surface as not found, never forbidden.
func writeProjectError(w http.ResponseWriter, err error) {
	if errors.Is(err, tasks.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Something was wrong"})
}

// taskStatusPtr converts an optional status string from a request into the
// model type after validation.
func taskStatusPtr(s *string) *models.TaskStatus {
	if s == nil {
		return nil
	}
	status := models.TaskStatus(*s)
	return &status
}
