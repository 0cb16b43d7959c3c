package routes

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"tasknest-app/tasknest/database"
	"tasknest-app/tasknest/middleware"
	"tasknest-app/tasknest/models"
	"tasknest-app/tasknest/services"

	"github.com/gin-gonic/gin"
)

type todoCreateRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=60"`
	Description string     `json:"description" binding:"required,min=1"`
	DueDate     *time.Time `json:"due_date" binding:"omitempty,futuredate"`
}

type todoUpdateRequest struct {
	Title       *string            `json:"title" binding:"omitempty,min=1,max=60"`
	Description *string            `json:"description" binding:"omitempty,min=1"`
	Status      *models.TodoStatus `json:"status" binding:"omitempty,oneof=Pending Done Cancelled"`
	DueDate     *time.Time         `json:"due_date" binding:"omitempty,futuredate"`
}

type todoListResponse struct {
	Todos []models.Todo `json:"todos"`
	Total int64         `json:"total"`
}

func RegisterTodoRoutes(router *gin.Engine, db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface, todoService services.TodoServiceInterface) {
	group := router.Group("/todos")
	group.Use(middleware.AuthMiddleware(db, authService, userService))
	{
		group.POST("/", func(c *gin.Context) { CreateTodo(c, db, todoService) })
		group.GET("/", func(c *gin.Context) { GetTodos(c, db, todoService) })
		group.GET("/:id", func(c *gin.Context) { GetTodoById(c, db, todoService) })
		group.PUT("/:id", func(c *gin.Context) { UpdateTodo(c, db, todoService) })
		group.DELETE("/:id", func(c *gin.Context) { DeleteTodo(c, db, todoService) })
	}
}

func currentUserID(c *gin.Context) (uint, bool) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return 0, false
	}
	return userIDInterface.(uint), true
}

// todoIDParam parses the path id. A non-numeric id can never name an owned
// todo, so it reports not found rather than a validation error.
func todoIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrTodoNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}

func CreateTodo(c *gin.Context, db *database.Database, todoService services.TodoServiceInterface) {
	var request todoCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	todo, err := todoService.CreateTodo(db, userID, services.TodoCreateInput{
		Title:       request.Title,
		Description: request.Description,
		DueDate:     request.DueDate,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create todo"})
		return
	}

	c.JSON(http.StatusCreated, todo)
}

func GetTodos(c *gin.Context, db *database.Database, todoService services.TodoServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var statusFilter *models.TodoStatus
	if statusParam := c.Query("status_filter"); statusParam != "" {
		status := models.TodoStatus(statusParam)
		if !status.IsValid() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "status_filter must be one of Pending, Done, Cancelled"})
			return
		}
		statusFilter = &status
	}

	skip := 0
	if skipParam := c.Query("skip"); skipParam != "" {
		parsed, err := strconv.Atoi(skipParam)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "skip must be a non-negative integer"})
			return
		}
		skip = parsed
	}

	limit := 100
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 || parsed > 1000 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "limit must be between 1 and 1000"})
			return
		}
		limit = parsed
	}

	todos, total, err := todoService.GetTodos(db, userID, statusFilter, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list todos"})
		return
	}

	if todos == nil {
		todos = []models.Todo{}
	}

	c.JSON(http.StatusOK, todoListResponse{Todos: todos, Total: total})
}

func GetTodoById(c *gin.Context, db *database.Database, todoService services.TodoServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := todoIDParam(c)
	if !ok {
		return
	}

	todo, err := todoService.GetTodoById(db, userID, id)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": services.ErrTodoNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get todo"})
		return
	}

	c.JSON(http.StatusOK, todo)
}

func UpdateTodo(c *gin.Context, db *database.Database, todoService services.TodoServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := todoIDParam(c)
	if !ok {
		return
	}

	var request todoUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	todo, err := todoService.UpdateTodo(db, userID, id, services.TodoUpdateInput{
		Title:       request.Title,
		Description: request.Description,
		Status:      request.Status,
		DueDate:     request.DueDate,
	})
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": services.ErrTodoNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update todo"})
		return
	}

	c.JSON(http.StatusOK, todo)
}

func DeleteTodo(c *gin.Context, db *database.Database, todoService services.TodoServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := todoIDParam(c)
	if !ok {
		return
	}

	if err := todoService.DeleteTodo(db, userID, id); err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": services.ErrTodoNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete todo"})
		return
	}

	c.Status(http.StatusNoContent)
}
