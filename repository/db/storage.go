package db

import (
	"context"
	"log"
	"time"

	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type Storage struct {
	conn              *pgx.Conn
	prepCreateUser    string
	prepGetUserByMail string
	prepGetUserByID   string
	prepCreateTask    string
	prepGetTasks      string
	prepUpdateTask    string
	prepDeleteTask    string
}

func NewStorage(connStr string) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		log.Println("[ERROR] Не удалось подключиться к базе данных:", err)
		return nil, err
	}

	s := &Storage{
		conn:              conn,
		prepCreateUser:    `INSERT INTO users (id, name, email, password, created_at) VALUES ($1, $2, $3, $4, $5)`,
		prepGetUserByMail: `SELECT id, name, email, password, created_at FROM users WHERE email = $1`,
		prepGetUserByID:   `SELECT id, name, email, password, created_at FROM users WHERE id = $1`,
		prepCreateTask:    `INSERT INTO tasks (id, owner_id, text, priority, category, completed, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		prepGetTasks:      `SELECT id, owner_id, text, priority, category, completed, created_at, updated_at FROM tasks WHERE owner_id = $1 ORDER BY created_at DESC`,
		prepUpdateTask: `UPDATE tasks
			SET text = COALESCE($1, text),
			    priority = COALESCE($2, priority),
			    category = COALESCE($3, category),
			    completed = COALESCE($4, completed),
			    updated_at = now()
			WHERE id = $5 AND owner_id = $6
			RETURNING id, owner_id, text, priority, category, completed, created_at, updated_at`,
		prepDeleteTask: `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`,
	}
	log.Println("[SUCCESS] Соединение с базой данных установлено успешно")
	return s, nil
}

func (s *Storage) Close(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close(ctx)
}

func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	user.ID = uuid.New().String()
	stmt, err := s.conn.Prepare(ctx, "create_user", s.prepCreateUser)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на создание пользователя:", err)
		return err
	}
	_, err = s.conn.Exec(ctx, stmt.Name, user.ID, user.Name, user.Email, user.Password, user.CreatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == uniqueViolation {
			log.Println("[ERROR] Email уже занят:", user.Email)
			return errors.ErrEmailTaken
		}
		log.Println("[ERROR] Не удалось создать пользователя:", err)
		return err
	}
	log.Println("[SUCCESS] Пользователь создан:", user.ID)
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_user_by_email", s.prepGetUserByMail)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на поиск пользователя по email:", err)
		return nil, err
	}
	row := s.conn.QueryRow(ctx, stmt.Name, email)
	user := &models.User{}
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.ErrUserNotFound
		}
		log.Println("[ERROR] Ошибка при поиске пользователя:", err)
		return nil, err
	}
	return user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_user_by_id", s.prepGetUserByID)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на поиск пользователя по ID:", err)
		return nil, err
	}
	row := s.conn.QueryRow(ctx, stmt.Name, id)
	user := &models.User{}
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.ErrUserNotFound
		}
		log.Println("[ERROR] Ошибка при поиске пользователя:", err)
		return nil, err
	}
	return user, nil
}

func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	task.ID = uuid.New().String()
	stmt, err := s.conn.Prepare(ctx, "create_task", s.prepCreateTask)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на создание задачи:", err)
		return err
	}
	_, err = s.conn.Exec(ctx, stmt.Name,
		task.ID, task.OwnerID, task.Text, task.Priority, task.Category,
		task.Completed, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		log.Println("[ERROR] Не удалось создать задачу:", err)
		return err
	}
	log.Println("[SUCCESS] Задача создана:", task.ID)
	return nil
}

func (s *Storage) GetTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "get_tasks", s.prepGetTasks)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на получение задач:", err)
		return nil, err
	}
	rows, err := s.conn.Query(ctx, stmt.Name, ownerID)
	if err != nil {
		log.Println("[ERROR] Не удалось получить задачи:", err)
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task := models.Task{}
		if err := rows.Scan(&task.ID, &task.OwnerID, &task.Text, &task.Priority,
			&task.Category, &task.Completed, &task.CreatedAt, &task.UpdatedAt); err != nil {
			log.Println("[ERROR] Ошибка при чтении задач:", err)
			return nil, err
		}
		tasks = append(tasks, task)
	}
	log.Println("[SUCCESS] Получено задач:", len(tasks))
	return tasks, nil
}

// UpdateTask merges the patch atomically; the WHERE clause carries both
// the task id and the owner id, so a foreign task behaves exactly like a
// missing one.
func (s *Storage) UpdateTask(ctx context.Context, ownerID, taskID string, patch *models.UpdateTaskRequest) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "update_task", s.prepUpdateTask)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на обновление задачи:", err)
		return nil, err
	}
	row := s.conn.QueryRow(ctx, stmt.Name,
		patch.Text, patch.Priority, patch.Category, patch.Completed, taskID, ownerID)
	task := &models.Task{}
	if err := row.Scan(&task.ID, &task.OwnerID, &task.Text, &task.Priority,
		&task.Category, &task.Completed, &task.CreatedAt, &task.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.ErrTaskNotFound
		}
		log.Println("[ERROR] Не удалось обновить задачу:", err)
		return nil, err
	}
	log.Println("[SUCCESS] Задача обновлена:", task.ID)
	return task, nil
}

func (s *Storage) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	stmt, err := s.conn.Prepare(ctx, "delete_task", s.prepDeleteTask)
	if err != nil {
		log.Println("[ERROR] Не удалось подготовить запрос на удаление задачи:", err)
		return err
	}
	ct, err := s.conn.Exec(ctx, stmt.Name, taskID, ownerID)
	if err != nil {
		log.Println("[ERROR] Не удалось удалить задачу:", err)
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.ErrTaskNotFound
	}
	log.Println("[SUCCESS] Задача удалена:", taskID)
	return nil
}
