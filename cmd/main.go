package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tasknest-app/tasknest/broker"
	"tasknest-app/tasknest/config"
	"tasknest-app/tasknest/database"
	"tasknest-app/tasknest/middleware"
	"tasknest-app/tasknest/routes"
	"tasknest-app/tasknest/services"
	"tasknest-app/tasknest/utils/validation"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// The broker is optional; without it mutations still commit, only the
	// event feed is disabled.
	if err := broker.InitProducer(cfg.NatsURL); err != nil {
		log.Printf("Warning: Failed to connect to NATS: %v", err)
		log.Println("The application will continue, but event publishing is disabled")
	} else {
		defer broker.CloseProducer()
	}

	authService := services.NewAuthService(cfg.JWTSecret, cfg.TokenExpiryMinutes)
	services.AuthServiceInstance = authService

	userService := services.NewUserService(authService)
	services.UserServiceInstance = userService

	webSocketService := services.NewWebSocketService(db, authService, userService)
	services.WebSocketServiceInstance = webSocketService

	validation.RegisterCustomValidators()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the TaskNest API",
			"version": "1.0.0",
		})
	})

	routes.RegisterAuthRoutes(router, db, authService, userService)
	routes.RegisterTodoRoutes(router, db, authService, userService, services.TodoServiceInstance)
	routes.RegisterWebSocketRoutes(router, webSocketService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		broker.CloseProducer()
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
