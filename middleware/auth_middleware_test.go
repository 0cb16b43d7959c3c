package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tasknest-app/tasknest/database"
	"tasknest-app/tasknest/models"
	"tasknest-app/tasknest/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockAuthService struct {
	claims *services.JWTClaims
}

func (m *mockAuthService) Login(db *database.Database, email, password string) (string, error) {
	return "mock.jwt.token", nil
}

func (m *mockAuthService) ValidateToken(tokenString string) (*services.JWTClaims, error) {
	if tokenString == "good-token" {
		return m.claims, nil
	}
	return nil, services.ErrInvalidToken
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	return "hashed-" + password, nil
}

func (m *mockAuthService) ComparePasswords(hashedPassword, password string) error {
	return nil
}

type mockUserService struct {
	users map[uint]models.User
}

func (m *mockUserService) CreateUser(db *database.Database, email, username, password string) (models.User, error) {
	return models.User{Email: email, Username: username}, nil
}

func (m *mockUserService) GetUserById(db *database.Database, id uint) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, services.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserService) GetUserByEmail(db *database.Database, email string) (models.User, error) {
	return models.User{}, services.ErrUserNotFound
}

func (m *mockUserService) DeleteUser(db *database.Database, id uint) error {
	return nil
}

func setupAuthTestRouter(claims *services.JWTClaims, users map[uint]models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	db := &database.Database{}

	authService := &mockAuthService{claims: claims}
	userService := &mockUserService{users: users}

	router.GET("/protected", AuthMiddleware(db, authService, userService), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return router
}

func TestAuthMiddleware(t *testing.T) {
	activeClaims := &services.JWTClaims{UserID: 1, Email: "active@example.com"}
	users := map[uint]models.User{
		1: {ID: 1, Email: "active@example.com", IsActive: true},
		2: {ID: 2, Email: "inactive@example.com", IsActive: false},
	}

	t.Run("Missing Header", func(t *testing.T) {
		router := setupAuthTestRouter(activeClaims, users)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		router := setupAuthTestRouter(activeClaims, users)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "good-token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		router := setupAuthTestRouter(activeClaims, users)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Token For Missing User", func(t *testing.T) {
		// Same status as an invalid token, no hint that the id once existed
		router := setupAuthTestRouter(&services.JWTClaims{UserID: 3, Email: "gone@example.com"}, users)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Inactive User", func(t *testing.T) {
		router := setupAuthTestRouter(&services.JWTClaims{UserID: 2, Email: "inactive@example.com"}, users)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Active User", func(t *testing.T) {
		router := setupAuthTestRouter(activeClaims, users)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":1`)
	})
}
