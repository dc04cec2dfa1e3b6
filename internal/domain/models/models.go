package models

import "time"

type User struct {
	ID        string    `json:"id" validate:"omitempty,uuid"`
	Name      string    `json:"name" validate:"required,min=1,max=100"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserInfo is what leaves the service after register/login. The password
// never appears here.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Task struct {
	ID        string    `json:"id" validate:"omitempty,uuid"`
	OwnerID   string    `json:"ownerId" validate:"omitempty,uuid"`
	Text      string    `json:"text" validate:"required,min=1,max=500"`
	Priority  string    `json:"priority" validate:"required,oneof=high medium low"`
	Category  string    `json:"category" validate:"required,oneof=personal work health study other"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=500"`
	Priority string `json:"priority" validate:"omitempty,oneof=high medium low"`
	Category string `json:"category" validate:"omitempty,oneof=personal work health study other"`
}

// UpdateTaskRequest is a closed patch: only these fields can change, nil
// means "leave as is".
type UpdateTaskRequest struct {
	Text      *string `json:"text,omitempty" validate:"omitempty,min=1,max=500"`
	Priority  *string `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Category  *string `json:"category,omitempty" validate:"omitempty,oneof=personal work health study other"`
	Completed *bool   `json:"completed,omitempty"`
}

type TaskStats struct {
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	Pending         int     `json:"pending"`
	Today           int     `json:"today"`
	ProgressPercent float64 `json:"progressPercent"`
}
