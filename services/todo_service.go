package services

import (
	"errors"
	"time"

	"tasknest-app/tasknest/broker"
	"tasknest-app/tasknest/database"
	"tasknest-app/tasknest/models"

	"gorm.io/gorm"
)

// TodoCreateInput carries the caller-supplied fields for a new todo. Status is
// deliberately absent; a new todo is always Pending.
type TodoCreateInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// TodoUpdateInput is a presence-aware partial update: a nil field is left
// untouched, a non-nil field is applied even when equal to the stored value.
type TodoUpdateInput struct {
	Title       *string
	Description *string
	Status      *models.TodoStatus
	DueDate     *time.Time
}

// TodoServiceInterface scopes every operation by the owning user id. A todo
// belonging to another user is indistinguishable from a missing one.
type TodoServiceInterface interface {
	CreateTodo(db *database.Database, ownerID uint, input TodoCreateInput) (models.Todo, error)
	GetTodoById(db *database.Database, ownerID, id uint) (models.Todo, error)
	GetTodos(db *database.Database, ownerID uint, statusFilter *models.TodoStatus, skip, limit int) ([]models.Todo, int64, error)
	UpdateTodo(db *database.Database, ownerID, id uint, input TodoUpdateInput) (models.Todo, error)
	DeleteTodo(db *database.Database, ownerID, id uint) error
}

type TodoService struct{}

func (s *TodoService) CreateTodo(db *database.Database, ownerID uint, input TodoCreateInput) (models.Todo, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Todo{}, tx.Error
	}

	todo := models.Todo{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.StatusPending,
		DueDate:     input.DueDate,
		UserID:      ownerID,
	}

	if err := tx.Create(&todo).Error; err != nil {
		tx.Rollback()
		return models.Todo{}, err
	}

	event, err := models.NewEvent(
		string(broker.TodoCreated),
		"todo",
		map[string]interface{}{
			"todo_id": todo.ID,
			"user_id": todo.UserID,
			"title":   todo.Title,
			"status":  todo.Status,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Todo{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Todo{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Todo{}, err
	}

	publishEvent(db, event)

	return todo, nil
}

func (s *TodoService) GetTodoById(db *database.Database, ownerID, id uint) (models.Todo, error) {
	var todo models.Todo
	if err := db.DB.Where("id = ? AND user_id = ?", id, ownerID).First(&todo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Todo{}, ErrTodoNotFound
		}
		return models.Todo{}, err
	}
	return todo, nil
}

// GetTodos returns one page of the owner's todos plus the total count of the
// filtered set before pagination.
func (s *TodoService) GetTodos(db *database.Database, ownerID uint, statusFilter *models.TodoStatus, skip, limit int) ([]models.Todo, int64, error) {
	query := db.DB.Model(&models.Todo{}).Where("user_id = ?", ownerID)
	if statusFilter != nil {
		query = query.Where("status = ?", *statusFilter)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var todos []models.Todo
	if err := query.Order("id").Offset(skip).Limit(limit).Find(&todos).Error; err != nil {
		return nil, 0, err
	}

	return todos, total, nil
}

func (s *TodoService) UpdateTodo(db *database.Database, ownerID, id uint, input TodoUpdateInput) (models.Todo, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Todo{}, tx.Error
	}

	var todo models.Todo
	if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&todo).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Todo{}, ErrTodoNotFound
		}
		return models.Todo{}, err
	}

	updates := make(map[string]interface{})
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}

	// An empty partial update applies nothing and keeps updated_at as is.
	if len(updates) == 0 {
		tx.Rollback()
		return todo, nil
	}

	if err := tx.Model(&todo).Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.Todo{}, err
	}

	event, err := models.NewEvent(
		string(broker.TodoUpdated),
		"todo",
		map[string]interface{}{
			"todo_id": todo.ID,
			"user_id": todo.UserID,
			"title":   todo.Title,
			"status":  todo.Status,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Todo{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Todo{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Todo{}, err
	}

	publishEvent(db, event)

	return todo, nil
}

func (s *TodoService) DeleteTodo(db *database.Database, ownerID, id uint) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var todo models.Todo
	if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&todo).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTodoNotFound
		}
		return err
	}

	if err := tx.Delete(&todo).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.TodoDeleted),
		"todo",
		map[string]interface{}{
			"todo_id": todo.ID,
			"user_id": todo.UserID,
		},
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	publishEvent(db, event)

	return nil
}

var TodoServiceInstance TodoServiceInterface = &TodoService{}
