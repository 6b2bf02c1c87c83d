package service

import (
	"log"
	"time"

	"agroio.app/errors"
	"agroio.app/models"
	"agroio.app/pkg/validation"
)

// TaskService handles the checklist
type TaskService struct {
	taskRepo TaskRepositoryInterface
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo TaskRepositoryInterface) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// ListTasks returns every checklist entry
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.GetAll()
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list tasks", err)
	}
	return tasks, nil
}

// AddTask creates a checklist entry. Entries without a category default to
// "General".
func (s *TaskService) AddTask(req *models.TaskRequest) (*models.Task, error) {
	log.Printf("[DEBUG] TaskService.AddTask: title=%s\n", req.Title)

	if !validation.IsNotEmpty(req.Title) {
		return nil, errors.NewValidationError("title is required")
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, errors.NewValidationError("dueDate must be in YYYY-MM-DD format")
	}

	category := req.Category
	if category == "" {
		category = "General"
	}

	task := &models.Task{
		Title:    req.Title,
		DueDate:  dueDate,
		Category: category,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, errors.NewDatabaseError("failed to create task", err)
	}

	return task, nil
}

// ToggleTask flips the completion flag of a checklist entry
func (s *TaskService) ToggleTask(id uint) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to find task", err)
	}
	if task == nil {
		return nil, errors.NewNotFoundError("task not found")
	}

	task.Completed = !task.Completed
	if err := s.taskRepo.Update(task); err != nil {
		return nil, errors.NewDatabaseError("failed to update task", err)
	}

	return task, nil
}

// DeleteTask removes a checklist entry
func (s *TaskService) DeleteTask(id uint) error {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		return errors.NewDatabaseError("failed to find task", err)
	}
	if task == nil {
		return errors.NewNotFoundError("task not found")
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return errors.NewDatabaseError("failed to delete task", err)
	}
	return nil
}
