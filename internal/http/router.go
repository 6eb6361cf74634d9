package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mentorhub/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	userH *UserHandler,
	mentorH *MentorHandler,
	sessionH *SessionHandler,
	settingsH *SettingsHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	auth := r.Group("/auth")
	auth.POST("/signup", userH.Signup)
	auth.POST("/login", userH.Login)
	auth.POST("/oauth", userH.OAuthLogin)
	auth.POST("/refresh", userH.Refresh)
	auth.POST("/logout", userH.Logout)

	mentors := r.Group("/mentors")
	mentors.GET("", mentorH.Browse)
	mentors.GET("/:id", mentorH.Get)
	mentors.GET("/:id/similar", mentorH.Similar)

	// Lecturas públicas de una sesión; toda mutación va autenticada y
	// además verifica participante en el handler.
	sessions := r.Group("/sessions")
	sessions.GET("/:id", sessionH.GetSession)
	sessions.GET("/:id/messages", sessionH.ListMessages)
	sessions.GET("/:id/rating/prompt", sessionH.RatingPrompt)

	protected := r.Group("/")
	protected.Use(JWTAuthMiddleware(jwtSvc))
	protected.POST("/bookings", sessionH.CreateBooking)
	protected.GET("/sessions", sessionH.ListSessions)
	protected.POST("/sessions/:id/tick", sessionH.Tick)
	protected.POST("/sessions/:id/cancel", sessionH.Cancel)
	protected.POST("/sessions/:id/messages", sessionH.PostMessage)
	protected.POST("/sessions/:id/rating", sessionH.SubmitRating)
	protected.POST("/sessions/:id/rating/skip", sessionH.SkipRating)
	protected.GET("/settings", settingsH.Get)
	protected.PUT("/settings", settingsH.Update)
	protected.PUT("/settings/password", settingsH.ChangePassword)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
