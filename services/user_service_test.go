package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tasknest-app/tasknest/models"
	"tasknest-app/tasknest/testutils"
)

func TestCreateUser_Success(t *testing.T) {
	db := testutils.SetupTestDB(t)
	userService := NewUserService(newTestAuthService())

	user, err := userService.CreateUser(db, "test@example.com", "testuser", "Valid1Pass!")
	assert.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "testuser", user.Username)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "Valid1Pass!", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := testutils.SetupTestDB(t)
	userService := NewUserService(newTestAuthService())

	_, err := userService.CreateUser(db, "test@example.com", "testuser", "Valid1Pass!")
	assert.NoError(t, err)

	// Same email with a different username still conflicts
	_, err = userService.CreateUser(db, "test@example.com", "otheruser", "Valid1Pass!")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db := testutils.SetupTestDB(t)
	userService := NewUserService(newTestAuthService())

	_, err := userService.CreateUser(db, "test@example.com", "testuser", "Valid1Pass!")
	assert.NoError(t, err)

	_, err = userService.CreateUser(db, "other@example.com", "testuser", "Valid1Pass!")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestCreateUser_EmailCheckedFirst(t *testing.T) {
	db := testutils.SetupTestDB(t)
	userService := NewUserService(newTestAuthService())

	_, err := userService.CreateUser(db, "test@example.com", "testuser", "Valid1Pass!")
	assert.NoError(t, err)

	// Both fields collide; the email conflict wins
	_, err = userService.CreateUser(db, "test@example.com", "testuser", "Valid1Pass!")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestGetUserByEmail(t *testing.T) {
	db := testutils.SetupTestDB(t)
	userService := NewUserService(newTestAuthService())

	created, err := userService.CreateUser(db, "test@example.com", "testuser", "Valid1Pass!")
	assert.NoError(t, err)

	user, err := userService.GetUserByEmail(db, "test@example.com")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = userService.GetUserByEmail(db, "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserById_NotFound(t *testing.T) {
	db := testutils.SetupTestDB(t)
	userService := NewUserService(newTestAuthService())

	_, err := userService.GetUserById(db, 12345)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser_CascadesTodos(t *testing.T) {
	db := testutils.SetupTestDB(t)
	userService := NewUserService(newTestAuthService())
	todoService := &TodoService{}

	user, err := userService.CreateUser(db, "test@example.com", "testuser", "Valid1Pass!")
	assert.NoError(t, err)

	first, err := todoService.CreateTodo(db, user.ID, TodoCreateInput{Title: "First", Description: "First todo"})
	assert.NoError(t, err)
	second, err := todoService.CreateTodo(db, user.ID, TodoCreateInput{Title: "Second", Description: "Second todo"})
	assert.NoError(t, err)

	err = userService.DeleteUser(db, user.ID)
	assert.NoError(t, err)

	_, err = userService.GetUserById(db, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = todoService.GetTodoById(db, user.ID, first.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
	_, err = todoService.GetTodoById(db, user.ID, second.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)

	var count int64
	err = db.DB.Model(&models.Todo{}).Where("user_id = ?", user.ID).Count(&count).Error
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteUser_NotFound(t *testing.T) {
	db := testutils.SetupTestDB(t)
	userService := NewUserService(newTestAuthService())

	err := userService.DeleteUser(db, 12345)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateUser_RecordsEvent(t *testing.T) {
	db := testutils.SetupTestDB(t)
	userService := NewUserService(newTestAuthService())

	_, err := userService.CreateUser(db, "test@example.com", "testuser", "Valid1Pass!")
	assert.NoError(t, err)

	var events []models.Event
	err = db.DB.Where("entity = ?", "user").Find(&events).Error
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "user.created", events[0].Event)
}
