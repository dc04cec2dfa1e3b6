package storage

import (
	"context"
	"testing"
	"time"

	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Storage)
		user  models.User
		want  struct {
			err error
		}
	}{
		{
			name:  "first user",
			setup: func(s *Storage) {},
			user:  models.User{Name: "Ana", Email: "ana@x.com", Password: "hash"},
			want:  struct{ err error }{err: nil},
		},
		{
			name: "duplicate email",
			setup: func(s *Storage) {
				_ = s.CreateUser(context.Background(), &models.User{Name: "Ana", Email: "ana@x.com"})
			},
			user: models.User{Name: "Other", Email: "ana@x.com"},
			want: struct{ err error }{err: errors.ErrEmailTaken},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStorage()
			tt.setup(s)

			user := tt.user
			err := s.CreateUser(context.Background(), &user)

			if tt.want.err != nil {
				assert.ErrorIs(t, err, tt.want.err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, user.ID)
				assert.False(t, user.CreatedAt.IsZero())
			}
		})
	}
}

func TestGetUser(t *testing.T) {
	s := NewStorage()
	user := models.User{Name: "Ana", Email: "ana@x.com", Password: "hash"}
	assert.NoError(t, s.CreateUser(context.Background(), &user))

	byEmail, err := s.GetUserByEmail(context.Background(), "ana@x.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := s.GetUserByID(context.Background(), user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "ana@x.com", byID.Email)

	_, err = s.GetUserByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, errors.ErrUserNotFound)

	_, err = s.GetUserByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestTasksOrderedByCreatedAtDesc(t *testing.T) {
	s := NewStorage()
	owner := uuid.New().String()
	now := time.Now()

	for i, text := range []string{"oldest", "middle", "newest"} {
		task := models.Task{
			OwnerID:   owner,
			Text:      text,
			Priority:  "medium",
			Category:  "personal",
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
			UpdatedAt: now.Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, s.CreateTask(context.Background(), &task))
	}

	tasks, err := s.GetTasks(context.Background(), owner)
	assert.NoError(t, err)
	assert.Len(t, tasks, 3)
	assert.Equal(t, "newest", tasks[0].Text)
	assert.Equal(t, "middle", tasks[1].Text)
	assert.Equal(t, "oldest", tasks[2].Text)
}

func TestGetTasksScopedToOwner(t *testing.T) {
	s := NewStorage()
	owner := uuid.New().String()
	stranger := uuid.New().String()

	task := models.Task{OwnerID: owner, Text: "mine", CreatedAt: time.Now()}
	assert.NoError(t, s.CreateTask(context.Background(), &task))

	mine, err := s.GetTasks(context.Background(), owner)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := s.GetTasks(context.Background(), stranger)
	assert.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestUpdateTaskCompoundKey(t *testing.T) {
	s := NewStorage()
	owner := uuid.New().String()
	stranger := uuid.New().String()

	task := models.Task{OwnerID: owner, Text: "original", Priority: "medium", Category: "personal", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	assert.NoError(t, s.CreateTask(context.Background(), &task))

	newText := "changed"
	completed := true

	_, err := s.UpdateTask(context.Background(), stranger, task.ID, &models.UpdateTaskRequest{Text: &newText})
	assert.ErrorIs(t, err, errors.ErrTaskNotFound)

	_, err = s.UpdateTask(context.Background(), owner, uuid.New().String(), &models.UpdateTaskRequest{Text: &newText})
	assert.ErrorIs(t, err, errors.ErrTaskNotFound)

	updated, err := s.UpdateTask(context.Background(), owner, task.ID, &models.UpdateTaskRequest{
		Text:      &newText,
		Completed: &completed,
	})
	assert.NoError(t, err)
	assert.Equal(t, "changed", updated.Text)
	assert.True(t, updated.Completed)
	assert.Equal(t, "medium", updated.Priority)
	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt) || updated.UpdatedAt.Equal(task.UpdatedAt))
}

func TestDeleteTaskCompoundKey(t *testing.T) {
	s := NewStorage()
	owner := uuid.New().String()
	stranger := uuid.New().String()

	task := models.Task{OwnerID: owner, Text: "target", CreatedAt: time.Now()}
	assert.NoError(t, s.CreateTask(context.Background(), &task))

	assert.ErrorIs(t, s.DeleteTask(context.Background(), stranger, task.ID), errors.ErrTaskNotFound)

	remaining, err := s.GetTasks(context.Background(), owner)
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)

	assert.NoError(t, s.DeleteTask(context.Background(), owner, task.ID))
	assert.ErrorIs(t, s.DeleteTask(context.Background(), owner, task.ID), errors.ErrTaskNotFound)
}
