// Package api is the HTTP surface: a thin gin layer translating JSON
// requests into app service calls.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qiming/app"
	"qiming/domain/history"
	"qiming/internal/errors"
	"qiming/internal/logging"
)

const sessionCookie = "sessionId"

// Server wires the gin router to the application services.
type Server struct {
	router  *gin.Engine
	naming  *app.NamingService
	history *app.HistoryService
	auth    *app.AuthService
	logger  *logging.Logger
}

func NewServer(naming *app.NamingService, historyService *app.HistoryService, auth *app.AuthService, ginMode string, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.DefaultLogger
	}
	if ginMode != "" {
		gin.SetMode(ginMode)
	}
	s := &Server{
		router:  gin.Default(),
		naming:  naming,
		history: historyService,
		auth:    auth,
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	apiGroup := s.router.Group("/api")
	apiGroup.Use(s.identityMiddleware())
	{
		apiGroup.POST("/generate", s.handleGenerate)
		apiGroup.GET("/history", s.handleHistory)
		apiGroup.GET("/history/export", s.handleExport)
		apiGroup.POST("/favorite", s.handleFavorite)
		apiGroup.POST("/auth", s.handleAuth)
	}
}

// Run blocks serving HTTP on the given port.
func (s *Server) Run(port string) error {
	return s.router.Run(":" + port)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// identityMiddleware resolves the caller identity: a verified bearer
// token wins, otherwise the session cookie (issued here when absent).
func (s *Server) identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookie)
		if err != nil || sessionID == "" {
			sessionID = c.GetHeader("X-Session-Id")
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(sessionCookie, sessionID, 3600*24*365, "/", "", false, true)
		}

		id := history.Identity{SessionID: sessionID}
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			userID, err := s.auth.VerifyToken(strings.TrimPrefix(auth, "Bearer "))
			if err == nil {
				id.UserID = &userID
			}
		}
		c.Set("identity", id)
		c.Next()
	}
}

func identityFrom(c *gin.Context) history.Identity {
	if v, ok := c.Get("identity"); ok {
		if id, ok := v.(history.Identity); ok {
			return id
		}
	}
	return history.Identity{}
}

// respondError maps error codes onto HTTP statuses.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeValidationError, errors.CodeConfigInvalid:
		status = http.StatusBadRequest
	case errors.CodeUnauthorized:
		status = http.StatusUnauthorized
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeLLMError, errors.CodeExternalService:
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
