package service

import (
	"context"
	"log"
	"strings"
	"time"

	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"

	"github.com/google/uuid"
)

const (
	DefaultPriority = "medium"
	DefaultCategory = "personal"
)

var allowedPriorities = map[string]bool{
	"high":   true,
	"medium": true,
	"low":    true,
}

var allowedCategories = map[string]bool{
	"personal": true,
	"work":     true,
	"health":   true,
	"study":    true,
	"other":    true,
}

type Tasks struct {
	store TaskStore
}

func NewTasks(store TaskStore) *Tasks {
	if store == nil {
		return nil
	}
	return &Tasks{store: store}
}

// validID rejects malformed identifiers before any store round trip.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (t *Tasks) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	if !validID(ownerID) {
		return nil, errors.ErrInvalidID
	}
	tasks, err := t.store.GetTasks(ctx, ownerID)
	if err != nil {
		log.Println("[ERROR] Не удалось получить задачи:", err)
		return nil, errors.ErrStorageUnavailable
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (t *Tasks) Add(ctx context.Context, ownerID string, req models.CreateTaskRequest) (*models.Task, error) {
	if !validID(ownerID) {
		return nil, errors.ErrInvalidID
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, errors.ErrEmptyTaskText
	}
	priority := req.Priority
	if priority == "" {
		priority = DefaultPriority
	}
	if !allowedPriorities[priority] {
		return nil, errors.ErrInvalidPriority
	}
	category := req.Category
	if category == "" {
		category = DefaultCategory
	}
	if !allowedCategories[category] {
		return nil, errors.ErrInvalidCategory
	}

	now := time.Now()
	task := &models.Task{
		OwnerID:   ownerID,
		Text:      text,
		Priority:  priority,
		Category:  category,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := t.store.CreateTask(ctx, task); err != nil {
		log.Println("[ERROR] Не удалось создать задачу:", err)
		return nil, errors.ErrStorageUnavailable
	}

	log.Println("[SUCCESS] Задача создана:", task.ID)
	return task, nil
}

func (t *Tasks) Update(ctx context.Context, ownerID, taskID string, req models.UpdateTaskRequest) (*models.Task, error) {
	if !validID(ownerID) || !validID(taskID) {
		return nil, errors.ErrInvalidID
	}

	if req.Text != nil {
		trimmed := strings.TrimSpace(*req.Text)
		if trimmed == "" {
			return nil, errors.ErrEmptyTaskText
		}
		req.Text = &trimmed
	}
	if req.Priority != nil && !allowedPriorities[*req.Priority] {
		return nil, errors.ErrInvalidPriority
	}
	if req.Category != nil && !allowedCategories[*req.Category] {
		return nil, errors.ErrInvalidCategory
	}

	// Ownership lives in the store predicate: a missing task and a
	// foreign task are indistinguishable on purpose.
	task, err := t.store.UpdateTask(ctx, ownerID, taskID, &req)
	if err != nil {
		if err == errors.ErrTaskNotFound {
			return nil, errors.ErrTaskNotFound
		}
		log.Println("[ERROR] Не удалось обновить задачу:", err)
		return nil, errors.ErrStorageUnavailable
	}

	log.Println("[SUCCESS] Задача обновлена:", task.ID)
	return task, nil
}

func (t *Tasks) Delete(ctx context.Context, ownerID, taskID string) error {
	if !validID(ownerID) || !validID(taskID) {
		return errors.ErrInvalidID
	}

	if err := t.store.DeleteTask(ctx, ownerID, taskID); err != nil {
		if err == errors.ErrTaskNotFound {
			return errors.ErrTaskNotFound
		}
		log.Println("[ERROR] Не удалось удалить задачу:", err)
		return errors.ErrStorageUnavailable
	}

	log.Println("[SUCCESS] Задача удалена:", taskID)
	return nil
}
