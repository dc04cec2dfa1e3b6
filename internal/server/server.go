package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"golang.org/x/time/rate"
)

type TaskAPI struct {
	httpSrv  *http.Server
	accounts service.AccountService
	tasks    service.TaskService
	cfg      *Config
}

func NewTaskAPI(accounts service.AccountService, tasks service.TaskService, cfg *Config) *TaskAPI {
	if accounts == nil || tasks == nil {
		return nil
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	api := &TaskAPI{
		httpSrv: &http.Server{
			Addr: fmt.Sprintf("%s:%d", cfg.Addr, cfg.Port),
		},
		accounts: accounts,
		tasks:    tasks,
		cfg:      cfg,
	}
	api.configRoutes()
	return api
}

func (api *TaskAPI) Start() error {
	if api.httpSrv == nil {
		return errors.ErrInternalServer
	}
	if api.httpSrv.Addr == "" || api.httpSrv.Addr == ":0" {
		api.httpSrv.Addr = ":8080"
	}
	return api.httpSrv.ListenAndServe()
}

func (api *TaskAPI) Shutdown(ctx context.Context) error {
	if api.httpSrv == nil {
		return nil
	}
	return api.httpSrv.Shutdown(ctx)
}

// Handler exposes the configured router, mainly for httptest callers.
func (api *TaskAPI) Handler() http.Handler {
	return api.httpSrv.Handler
}

func (api *TaskAPI) configRoutes() {
	router := gin.Default()
	router.Use(GzipRequestDecompress(), GzipResponseCompress())

	router.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"success": false, "error": "использован некорректный HTTP-метод"})
	})

	auth := router.Group("/auth", RateLimit(rate.Limit(5), 10))
	{
		auth.POST("/register", api.register)
		auth.POST("/login", api.login)
	}

	tasks := router.Group("/tasks", api.authRequired())
	{
		tasks.GET("", api.listTasks)
		tasks.GET("/stats", api.taskStats)
		tasks.POST("", api.createTask)
		tasks.PUT("/:taskID", api.updateTask)
		tasks.DELETE("/:taskID", api.deleteTask)
	}

	api.httpSrv.Handler = router
}

func fail(ctx *gin.Context, err error) {
	ctx.JSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
}

func statusFor(err error) int {
	switch err {
	case errors.ErrValidationFailed, errors.ErrInvalidID, errors.ErrBadRequest,
		errors.ErrInvalidName, errors.ErrInvalidEmail, errors.ErrInvalidPassword,
		errors.ErrEmptyTaskText, errors.ErrInvalidText,
		errors.ErrInvalidPriority, errors.ErrInvalidCategory:
		return http.StatusBadRequest
	case errors.ErrUserNotFound, errors.ErrInvalidCredentials, errors.ErrUnauthorized, errors.ErrInvalidToken:
		return http.StatusUnauthorized
	case errors.ErrTaskNotFound:
		return http.StatusNotFound
	case errors.ErrEmailTaken:
		return http.StatusConflict
	case errors.ErrStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (api *TaskAPI) register(ctx *gin.Context) {
	var req models.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, errors.ErrBadRequest)
		return
	}

	valid := validator.New()
	if err := valid.Struct(req); err != nil {
		fail(ctx, validationErrorToErrorResponse(err))
		return
	}

	user, err := api.accounts.Register(ctx.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		fail(ctx, err)
		return
	}

	token, err := api.issueToken(user.ID)
	if err != nil {
		fail(ctx, errors.ErrInternalServer)
		return
	}
	api.setAuthCookie(ctx, token)

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "user": user, "token": token})
}

func (api *TaskAPI) login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, errors.ErrBadRequest)
		return
	}

	valid := validator.New()
	if err := valid.Struct(req); err != nil {
		fail(ctx, validationErrorToErrorResponse(err))
		return
	}

	user, err := api.accounts.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(ctx, err)
		return
	}

	token, err := api.issueToken(user.ID)
	if err != nil {
		fail(ctx, errors.ErrInternalServer)
		return
	}
	api.setAuthCookie(ctx, token)

	ctx.JSON(http.StatusOK, gin.H{"success": true, "user": user, "token": token})
}

func (api *TaskAPI) setAuthCookie(ctx *gin.Context, token string) {
	ctx.SetCookie(authCookie, token, int(api.cfg.TokenTTL.Seconds()), "/", "", false, true)
}

func (api *TaskAPI) listTasks(ctx *gin.Context) {
	ownerID := ctx.GetString(ctxUserID)

	tasks, err := api.tasks.List(ctx.Request.Context(), ownerID)
	if err != nil {
		fail(ctx, err)
		return
	}

	selector := ctx.Query("filter")
	search := ctx.Query("search")
	if selector != "" || search != "" {
		tasks = service.Filter(tasks, selector, search)
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}

func (api *TaskAPI) taskStats(ctx *gin.Context) {
	ownerID := ctx.GetString(ctxUserID)

	tasks, err := api.tasks.List(ctx.Request.Context(), ownerID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "stats": service.Stats(tasks)})
}

func (api *TaskAPI) createTask(ctx *gin.Context) {
	ownerID := ctx.GetString(ctxUserID)

	var req models.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, errors.ErrBadRequest)
		return
	}

	valid := validator.New()
	if err := valid.Struct(req); err != nil {
		fail(ctx, validationErrorToErrorResponse(err))
		return
	}

	task, err := api.tasks.Add(ctx.Request.Context(), ownerID, req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "task": task})
}

func (api *TaskAPI) updateTask(ctx *gin.Context) {
	ownerID := ctx.GetString(ctxUserID)
	taskID := ctx.Param("taskID")

	// The patch is a closed shape: unknown fields are rejected instead
	// of being merged into storage.
	dec := json.NewDecoder(ctx.Request.Body)
	dec.DisallowUnknownFields()
	var req models.UpdateTaskRequest
	if err := dec.Decode(&req); err != nil {
		fail(ctx, errors.ErrBadRequest)
		return
	}

	valid := validator.New()
	if err := valid.Struct(req); err != nil {
		fail(ctx, validationErrorToErrorResponse(err))
		return
	}

	task, err := api.tasks.Update(ctx.Request.Context(), ownerID, taskID, req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

func (api *TaskAPI) deleteTask(ctx *gin.Context) {
	ownerID := ctx.GetString(ctxUserID)
	taskID := ctx.Param("taskID")

	if err := api.tasks.Delete(ctx.Request.Context(), ownerID, taskID); err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func validationErrorToErrorResponse(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			switch verr.Field() {
			case "Name":
				return errors.ErrInvalidName
			case "Email":
				return errors.ErrInvalidEmail
			case "Password":
				return errors.ErrInvalidPassword
			case "Text":
				return errors.ErrInvalidText
			case "Priority":
				return errors.ErrInvalidPriority
			case "Category":
				return errors.ErrInvalidCategory
			}
		}
	}
	return errors.ErrValidationFailed
}
