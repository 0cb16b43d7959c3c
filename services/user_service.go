package services

import (
	"errors"

	"tasknest-app/tasknest/broker"
	"tasknest-app/tasknest/database"
	"tasknest-app/tasknest/models"

	"gorm.io/gorm"
)

type UserServiceInterface interface {
	CreateUser(db *database.Database, email, username, password string) (models.User, error)
	GetUserById(db *database.Database, id uint) (models.User, error)
	GetUserByEmail(db *database.Database, email string) (models.User, error)
	DeleteUser(db *database.Database, id uint) error
}

type UserService struct {
	authService AuthServiceInterface
}

func NewUserService(authService AuthServiceInterface) *UserService {
	return &UserService{authService: authService}
}

// CreateUser registers a new account. Email uniqueness is checked before
// username uniqueness, each reporting its own conflict.
func (s *UserService) CreateUser(db *database.Database, email, username, password string) (models.User, error) {
	hashedPassword, err := s.authService.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}
	if count > 0 {
		tx.Rollback()
		return models.User{}, ErrEmailExists
	}

	if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}
	if count > 0 {
		tx.Rollback()
		return models.User{}, ErrUsernameExists
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
		IsActive:     true,
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	event, err := models.NewEvent(
		string(broker.UserCreated),
		"user",
		map[string]interface{}{
			"user_id":  user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	publishEvent(db, event)

	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id uint) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(db *database.Database, email string) (models.User, error) {
	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes an account and all of its todos in one transaction.
func (s *UserService) DeleteUser(db *database.Database, id uint) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Todo{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.UserDeleted),
		"user",
		map[string]interface{}{
			"user_id": user.ID,
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

var UserServiceInstance UserServiceInterface
