// Package client is the networked counterpart of internal/service: it
// implements the same AccountService/TaskService interfaces over the HTTP
// contract, so a caller composed against the interfaces cannot tell the
// two transports apart.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"
)

type Client struct {
	baseURL string
	httpCli *http.Client
	token   string
	userID  string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpCli: &http.Client{Timeout: 15 * time.Second},
	}
}

type envelope struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	User    *models.UserInfo  `json:"user"`
	Token   string            `json:"token"`
	Task    *models.Task      `json:"task"`
	Tasks   []models.Task     `json:"tasks"`
	Stats   *models.TaskStats `json:"stats"`
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (*envelope, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, errors.ErrBadRequest
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return nil, errors.ErrBadRequest
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: "jwt_token", Value: c.token})
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, errors.ErrStorageUnavailable
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, errors.ErrInternalServer
	}
	if !env.Success {
		return nil, asServiceError(resp.StatusCode, env.Error)
	}
	return &env, nil
}

var knownErrors = []error{
	errors.ErrUserNotFound,
	errors.ErrInvalidCredentials,
	errors.ErrEmailTaken,
	errors.ErrValidationFailed,
	errors.ErrInvalidID,
	errors.ErrTaskNotFound,
	errors.ErrStorageUnavailable,
	errors.ErrUnauthorized,
	errors.ErrInvalidToken,
	errors.ErrInvalidName,
	errors.ErrInvalidEmail,
	errors.ErrInvalidPassword,
	errors.ErrEmptyTaskText,
	errors.ErrInvalidText,
	errors.ErrInvalidPriority,
	errors.ErrInvalidCategory,
	errors.ErrTooManyRequests,
}

// asServiceError restores the sentinel from the wire message, falling
// back to a status-code mapping for unrecognized text.
func asServiceError(status int, message string) error {
	for _, known := range knownErrors {
		if known.Error() == message {
			return known
		}
	}
	switch status {
	case http.StatusBadRequest:
		return errors.ErrValidationFailed
	case http.StatusUnauthorized:
		return errors.ErrUnauthorized
	case http.StatusNotFound:
		return errors.ErrTaskNotFound
	case http.StatusConflict:
		return errors.ErrEmailTaken
	case http.StatusServiceUnavailable:
		return errors.ErrStorageUnavailable
	default:
		return errors.ErrInternalServer
	}
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.UserInfo, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/register", models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, errors.ErrInternalServer
	}
	c.token = env.Token
	c.userID = env.User.ID
	return env.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.UserInfo, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", models.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, errors.ErrInternalServer
	}
	c.token = env.Token
	c.userID = env.User.ID
	return env.User, nil
}

// The session token carries the authenticated owner; requests on behalf
// of anyone else never reach the server. A foreign owner on a mutation
// gets the same answer a missing task would.
func (c *Client) checkOwner(ownerID string, mutation bool) error {
	if c.token == "" || c.userID == "" {
		return errors.ErrUnauthorized
	}
	if ownerID != c.userID {
		if mutation {
			return errors.ErrTaskNotFound
		}
		return errors.ErrUnauthorized
	}
	return nil
}

func (c *Client) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	if err := c.checkOwner(ownerID, false); err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, err
	}
	if env.Tasks == nil {
		return []models.Task{}, nil
	}
	return env.Tasks, nil
}

func (c *Client) Add(ctx context.Context, ownerID string, req models.CreateTaskRequest) (*models.Task, error) {
	if err := c.checkOwner(ownerID, false); err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodPost, "/tasks", req)
	if err != nil {
		return nil, err
	}
	if env.Task == nil {
		return nil, errors.ErrInternalServer
	}
	return env.Task, nil
}

func (c *Client) Update(ctx context.Context, ownerID, taskID string, req models.UpdateTaskRequest) (*models.Task, error) {
	if err := c.checkOwner(ownerID, true); err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodPut, "/tasks/"+taskID, req)
	if err != nil {
		return nil, err
	}
	if env.Task == nil {
		return nil, errors.ErrInternalServer
	}
	return env.Task, nil
}

func (c *Client) Delete(ctx context.Context, ownerID, taskID string) error {
	if err := c.checkOwner(ownerID, true); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodDelete, "/tasks/"+taskID, nil)
	return err
}

// Stats fetches server-side aggregates for the authenticated owner.
func (c *Client) Stats(ctx context.Context, ownerID string) (*models.TaskStats, error) {
	if err := c.checkOwner(ownerID, false); err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodGet, "/tasks/stats", nil)
	if err != nil {
		return nil, err
	}
	if env.Stats == nil {
		return nil, errors.ErrInternalServer
	}
	return env.Stats, nil
}
