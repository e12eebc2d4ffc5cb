package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hugh/taskhive/internal/api/dto"
	"github.com/hugh/taskhive/internal/api/handlers"
	"github.com/hugh/taskhive/internal/api/middleware"
	"github.com/hugh/taskhive/internal/tasks"
	"github.com/hugh/taskhive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProjectTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	tc := testutil.NewTestContext(t)

	taskService := tasks.NewService(tc.DB, testutil.NewTestLogger(t))
	projectHandler := handlers.NewProjectHandler(taskService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.Sessions, tc.AuthService))
		r.Use(middleware.RequireActive)

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projectHandler.Create)
			r.Get("/", projectHandler.List)
			r.Get("/{projectID}", projectHandler.Get)
			r.Put("/{projectID}", projectHandler.Update)
			r.Delete("/{projectID}", projectHandler.Delete)

			r.Route("/{projectID}/tasks", func(r chi.Router) {
				r.Post("/", taskHandler.Create)
				r.Get("/", taskHandler.List)
				r.Get("/{taskID}", taskHandler.Get)
				r.Put("/{taskID}", taskHandler.Update)
				r.Delete("/{taskID}", taskHandler.Delete)
			})
		})
	})

	return r, tc
}

func createProjectViaAPI(t *testing.T, router *chi.Mux, token, name string) dto.ProjectResponse {
	t.Helper()

	req := testutil.AuthenticatedRequest(t, "POST", "/projects", map[string]string{"name": name}, token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp dto.ProjectResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	return resp
}

func TestProjectHandler_CRUD(t *testing.T) {
	router, tc := setupProjectTestRouter(t)
	defer tc.Cleanup()

	t.Run("create", func(t *testing.T) {
		project := createProjectViaAPI(t, router, tc.Token, "Work")
		assert.Equal(t, "Work", project.Name)
		assert.True(t, project.IsActive)
		assert.False(t, project.IsDefault)
	})

	t.Run("create requires a name", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "POST", "/projects", map[string]string{}, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("list and get", func(t *testing.T) {
		created := createProjectViaAPI(t, router, tc.Token, "Listed")

		req := testutil.AuthenticatedRequest(t, "GET", "/projects", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)

		var list []dto.ProjectResponse
		testutil.ParseJSONResponse(t, rr, &list)
		assert.NotEmpty(t, list)

		req = testutil.AuthenticatedRequest(t, "GET", "/projects/"+created.ID, nil, tc.Token)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("update renames", func(t *testing.T) {
		created := createProjectViaAPI(t, router, tc.Token, "Old Name")

		req := testutil.AuthenticatedRequest(t, "PUT", "/projects/"+created.ID,
			map[string]string{"name": "New Name"}, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.ProjectResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "New Name", resp.Name)
	})

	t.Run("invalid uuid", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/projects/not-a-uuid", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/projects", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestProjectHandler_Delete(t *testing.T) {
	router, tc := setupProjectTestRouter(t)
	defer tc.Cleanup()

	t.Run("deleting the default project is refused", func(t *testing.T) {
		def := testutil.CreateTestProject(t, tc.DB, tc.User.ID, "Default", true)

		req := testutil.AuthenticatedRequest(t, "DELETE", "/projects/"+def.ID.String(), nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)

		// Still there.
		req = testutil.AuthenticatedRequest(t, "GET", "/projects/"+def.ID.String(), nil, tc.Token)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("deleting a regular project cascades to its tasks", func(t *testing.T) {
		project := createProjectViaAPI(t, router, tc.Token, "Scratch")
		task := testutil.CreateTestTask(t, tc.DB, tc.User.ID, mustParse(t, project.ID), "Doomed")

		req := testutil.AuthenticatedRequest(t, "DELETE", "/projects/"+project.ID, nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)

		req = testutil.AuthenticatedRequest(t, "GET", "/projects/"+project.ID+"/tasks/"+task.ID.String(), nil, tc.Token)
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestProjectHandler_OwnershipIsolation(t *testing.T) {
	router, tc := setupProjectTestRouter(t)
	defer tc.Cleanup()

	// A second account with its own project.
	other := testutil.CreateTestUser(t, tc.DB, "other@example.com")
	otherToken := testutil.IssueTestSession(t, tc.Sessions, other.ID)
	theirs := createProjectViaAPI(t, router, otherToken, "Private")

	t.Run("reads, updates, and deletes across owners all report not found", func(t *testing.T) {
		for _, tt := range []struct {
			method string
			path   string
			body   interface{}
		}{
			{"GET", "/projects/" + theirs.ID, nil},
			{"PUT", "/projects/" + theirs.ID, map[string]string{"name": "Hijacked"}},
			{"DELETE", "/projects/" + theirs.ID, nil},
			{"POST", "/projects/" + theirs.ID + "/tasks", map[string]string{"name": "Sneaky"}},
		} {
			req := testutil.AuthenticatedRequest(t, tt.method, tt.path, tt.body, tc.Token)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusNotFound, rr.Code, "%s %s", tt.method, tt.path)
		}
	})

	t.Run("listing tasks under another owner's project leaks nothing", func(t *testing.T) {
		testutil.CreateTestTask(t, tc.DB, other.ID, mustParse(t, theirs.ID), "Their task")

		req := testutil.AuthenticatedRequest(t, "GET", "/projects/"+theirs.ID+"/tasks", nil, tc.Token)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)

		var list []dto.TaskResponse
		testutil.ParseJSONResponse(t, rr, &list)
		assert.Empty(t, list)
	})
}

func mustParse(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}
