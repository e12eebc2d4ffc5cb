package tasks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hugh/taskhive/internal/database/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound covers missing rows and rows owned by someone else:
	// cross-owner access is indistinguishable from non-existence.
	ErrNotFound = errors.New("not found")
	// ErrOperationFailed is the only store-level failure callers see; the
	// underlying error is logged here and never propagated.
	ErrOperationFailed = errors.New("operation failed")
)

// Service is the ownership-scoped repository over projects and tasks. Every
// operation takes the authenticated owner's id as a mandatory filter; client
// input never supplies an owner.
type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ProjectPatch applies optional fields one by one; nil means leave as is.
type ProjectPatch struct {
	Name *string
}

// TaskPatch applies optional fields one by one; nil means leave as is.
type TaskPatch struct {
	Name        *string
	Description *string
	Status      *models.TaskStatus
}

func (s *Service) CreateProject(ctx context.Context, ownerID uuid.UUID, name string) (*models.Project, error) {
	project := models.Project{
		Name:     name,
		IsActive: true,
		UserID:   ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		s.logger.Error("creating project failed", "user_id", ownerID, "error", err)
		return nil, ErrOperationFailed
	}
	return &project, nil
}

func (s *Service) ListProjects(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Find(&projects).Error; err != nil {
		s.logger.Error("listing projects failed", "user_id", ownerID, "error", err)
		return nil, ErrOperationFailed
	}
	return projects, nil
}

func (s *Service) GetProject(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", projectID, ownerID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("getting project failed", "user_id", ownerID, "project_id", projectID, "error", err)
		return nil, ErrOperationFailed
	}
	return &project, nil
}

func (s *Service) UpdateProject(ctx context.Context, ownerID, projectID uuid.UUID, patch ProjectPatch) (*models.Project, error) {
	project, err := s.GetProject(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		project.Name = *patch.Name
	}

	if err := s.db.WithContext(ctx).Save(project).Error; err != nil {
		s.logger.Error("updating project failed", "user_id", ownerID, "project_id", projectID, "error", err)
		return nil, ErrOperationFailed
	}
	return project, nil
}

// DeleteProject removes the project and all its tasks as one transaction.
// The default project is never deletable; attempting it reports not found,
// the same as an unknown or unowned id.
func (s *Service) DeleteProject(ctx context.Context, ownerID, projectID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ? AND user_id = ?", projectID, ownerID).
			Delete(&models.Task{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ? AND is_default = ?", projectID, ownerID, false).
			Delete(&models.Project{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Missing, unowned, or default: roll back the task delete too.
			return ErrNotFound
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Error("deleting project failed", "user_id", ownerID, "project_id", projectID, "error", err)
		return ErrOperationFailed
	}
	return nil
}

// CreateTask creates a task under a project the owner holds; an unowned
// project reports not found.
func (s *Service) CreateTask(ctx context.Context, ownerID, projectID uuid.UUID, name, description string) (*models.Task, error) {
	if _, err := s.GetProject(ctx, ownerID, projectID); err != nil {
		return nil, err
	}

	task := models.Task{
		Name:        name,
		Description: description,
		Status:      models.TaskStatusNew,
		UserID:      ownerID,
		ProjectID:   projectID,
	}
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		s.logger.Error("creating task failed", "user_id", ownerID, "project_id", projectID, "error", err)
		return nil, ErrOperationFailed
	}
	return &task, nil
}

func (s *Service) ListTasks(ctx context.Context, ownerID, projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", ownerID, projectID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		s.logger.Error("listing tasks failed", "user_id", ownerID, "project_id", projectID, "error", err)
		return nil, ErrOperationFailed
	}
	return tasks, nil
}

// GetTask is triple-filtered: the task must exist under the claimed project
// and both must belong to the owner.
func (s *Service) GetTask(ctx context.Context, ownerID, projectID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.WithContext(ctx).
		Where("id = ? AND project_id = ? AND user_id = ?", taskID, projectID, ownerID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("getting task failed", "user_id", ownerID, "task_id", taskID, "error", err)
		return nil, ErrOperationFailed
	}
	return &task, nil
}

func (s *Service) UpdateTask(ctx context.Context, ownerID, projectID, taskID uuid.UUID, patch TaskPatch) (*models.Task, error) {
	task, err := s.GetTask(ctx, ownerID, projectID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		task.Name = *patch.Name
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}

	if err := s.db.WithContext(ctx).Save(task).Error; err != nil {
		s.logger.Error("updating task failed", "user_id", ownerID, "task_id", taskID, "error", err)
		return nil, ErrOperationFailed
	}
	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, ownerID, projectID, taskID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND project_id = ? AND user_id = ?", taskID, projectID, ownerID).
		Delete(&models.Task{})
	if result.Error != nil {
		s.logger.Error("deleting task failed", "user_id", ownerID, "task_id", taskID, "error", result.Error)
		return ErrOperationFailed
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
