package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"wellbot/internal/handler"
	"wellbot/internal/middleware"
)

type Server struct {
	router *gin.Engine
	log    *logrus.Logger
}

// NewServer wires the HTTP routes. authHandler and jwtSecret are nil in
// anonymous mode, which leaves the chat routes open and the auth routes
// absent.
func NewServer(chatHandler handler.ChatHandler, authHandler handler.AuthHandler, jwtSecret []byte, log *logrus.Logger, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		log:    log,
	}

	// Ping route for health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	if authHandler != nil {
		authGroup := router.Group("/api/auth")
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)

		authRequired := router.Group("/api")
		authRequired.Use(middleware.AuthMiddleware(jwtSecret, logger))
		{
			authRequired.POST("/chat", chatHandler.SendMessage)
			authRequired.GET("/chat/:session_id/history", chatHandler.GetHistory)
			authRequired.POST("/auth/logout", authHandler.Logout)
		}
	} else {
		router.POST("/api/chat", chatHandler.SendMessage)
		router.GET("/api/chat/:session_id/history", chatHandler.GetHistory)
	}

	return s
}

func (s *Server) Run(addr string) {
	s.log.Infof("Server starting on port %s...", addr)
	if err := s.router.Run(addr); err != nil {
		s.log.Fatalf("Server failed to start: %v", err)
	}
}
