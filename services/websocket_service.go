package services

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tasknest-app/tasknest/broker"
	"tasknest-app/tasknest/database"
	"tasknest-app/tasknest/models"
	"tasknest-app/tasknest/utils/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
)

const writeTimeout = 10 * time.Second

type WebSocketServiceInterface interface {
	HandleConnection(c *gin.Context)
}

// WebSocketService streams a user's todo events over a WebSocket. Each
// connection holds its own broker subscription and only sees events whose
// payload user_id matches the authenticated user.
type WebSocketService struct {
	db          *database.Database
	authService AuthServiceInterface
	userService UserServiceInterface
	upgrader    websocket.Upgrader
	subjects    []string
}

func NewWebSocketService(db *database.Database, authService AuthServiceInterface, userService UserServiceInterface) *WebSocketService {
	return &WebSocketService{
		db:          db,
		authService: authService,
		userService: userService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		subjects: []string{broker.TodoSubjects},
	}
}

// HandleConnection authenticates the handshake with the same token the REST
// surface uses (query param or bearer header), then forwards matching events
// until either side closes.
func (ws *WebSocketService) HandleConnection(c *gin.Context) {
	tokenString, err := token.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	claims, err := ws.authService.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	user, err := ws.userService.GetUserById(ws.db, claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "inactive user"})
		return
	}

	messageChan, cancel, err := broker.Subscribe(ws.subjects)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event stream unavailable"})
		return
	}

	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cancel()
		log.Printf("Failed to upgrade WebSocket connection: %v", err)
		return
	}

	log.Printf("WebSocket client connected for user %d", user.ID)
	ws.serve(conn, cancel, messageChan, user.ID)
}

func (ws *WebSocketService) serve(conn *websocket.Conn, cancel func(), messageChan chan *nats.Msg, userID uint) {
	defer cancel()
	defer conn.Close()

	done := make(chan struct{})

	// Read pump: we never expect client payloads, but reading is required to
	// notice the close handshake.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-messageChan:
			if !ownsEvent(msg.Data, userID) {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg.Data); err != nil {
				log.Printf("Failed to write WebSocket message for user %d: %v", userID, err)
				return
			}
		case <-done:
			log.Printf("WebSocket client disconnected for user %d", userID)
			return
		}
	}
}

// ownsEvent reports whether the event payload belongs to the given user.
func ownsEvent(data []byte, userID uint) bool {
	var msg models.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return false
	}

	// JSON numbers decode as float64
	id, ok := msg.Payload["user_id"].(float64)
	if !ok {
		return false
	}

	return uint(id) == userID
}

var WebSocketServiceInstance WebSocketServiceInterface
