// Package service contains the account and task services: validation,
// ownership checks and the mapping of store results to transport-stable
// shapes. Transports (HTTP or in-process) call these interfaces only.
package service

import (
	"context"

	"todoapp/internal/domain/models"
)

type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*models.UserInfo, error)
	Login(ctx context.Context, email, password string) (*models.UserInfo, error)
}

type TaskService interface {
	List(ctx context.Context, ownerID string) ([]models.Task, error)
	Add(ctx context.Context, ownerID string, req models.CreateTaskRequest) (*models.Task, error)
	Update(ctx context.Context, ownerID, taskID string, req models.UpdateTaskRequest) (*models.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTasks(ctx context.Context, ownerID string) ([]models.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, patch *models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
}
