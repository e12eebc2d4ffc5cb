package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hugh/taskhive/internal/api/dto"
	"github.com/hugh/taskhive/internal/api/middleware"
	"github.com/hugh/taskhive/internal/tasks"
)

type TaskHandler struct {
	service *tasks.Service
}

func NewTaskHandler(service *tasks.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

// taskScope pulls the owner and the owner-scoped ids out of the request.
func taskScope(r *http.Request, withTaskID bool) (owner, project, task uuid.UUID, err error) {
	owner = middleware.GetUser(r.Context()).ID
	project, err = uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		return
	}
	if withTaskID {
		task, err = uuid.Parse(chi.URLParam(r, "taskID"))
	}
	return
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, projectID, _, err := taskScope(r, false)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	task, err := h.service.CreateTask(r.Context(), ownerID, projectID, req.Name, req.Description)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, projectID, _, err := taskScope(r, false)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid project ID"})
		return
	}

	list, err := h.service.ListTasks(r.Context(), ownerID, projectID)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	response := make([]dto.TaskResponse, len(list))
	for i := range list {
		response[i] = dto.ToTaskResponse(&list[i])
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, projectID, taskID, err := taskScope(r, true)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid ID"})
		return
	}

	task, err := h.service.GetTask(r.Context(), ownerID, projectID, taskID)
	if err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, projectID, taskID, err := taskScope(r, true)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid ID"})
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	task, err := h.service.UpdateTask(r.Context(), ownerID, projectID, taskID, tasks.TaskPatch{
		Name:        req.Name,
		Description: req.Description,
		Status:      taskStatusPtr(req.Status),
	})
	if err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, projectID, taskID, err := taskScope(r, true)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid ID"})
		return
	}

	if err := h.service.DeleteTask(r.Context(), ownerID, projectID, taskID); err != nil {
		writeProjectError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Success"})
}
