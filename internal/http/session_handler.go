package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mentorhub/internal/domain"
	"mentorhub/internal/lifecycle"
	"mentorhub/internal/service"
)

// SessionHandler mantiene dependencias para endpoints de sesiones:
// reserva, ciclo de vida, chat y calificación.
type SessionHandler struct {
	logger      *zap.Logger
	bookingServ *service.BookingService
	sessionServ *service.SessionService
	messageServ *service.MessageService
	ratingServ  *service.RatingService
}

// NewSessionHandler crea una instancia de SessionHandler con dependencias necesarias.
func NewSessionHandler(
	logger *zap.Logger,
	bookingServ *service.BookingService,
	sessionServ *service.SessionService,
	messageServ *service.MessageService,
	ratingServ *service.RatingService,
) *SessionHandler {
	return &SessionHandler{
		logger:      logger,
		bookingServ: bookingServ,
		sessionServ: sessionServ,
		messageServ: messageServ,
		ratingServ:  ratingServ,
	}
}

// CreateBooking maneja POST /bookings.
func (h *SessionHandler) CreateBooking(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		MentorID        string    `json:"mentor_id" binding:"required"`
		Topic           string    `json:"topic" binding:"required"`
		Type            string    `json:"type"`
		ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
		DurationMinutes int       `json:"duration_minutes" binding:"required"`
		JoinLink        string    `json:"join_link"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.bookingServ.Book(c.Request.Context(), service.BookingInput{
		MentorID:        req.MentorID,
		UserID:          claims.UserID,
		UserName:        claims.DisplayName,
		UserEmail:       claims.Email,
		Topic:           req.Topic,
		Type:            req.Type,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		JoinLink:        req.JoinLink,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, pgx.ErrNoRows):
			c.JSON(http.StatusNotFound, gin.H{"error": "mentor not found"})
			return
		default:
			h.logger.Error("booking failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not book session"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// ListSessions maneja GET /sessions.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	sessions, err := h.sessionServ.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list sessions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GetSession maneja GET /sessions/:id.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("get session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get session"})
		return
	}

	now := time.Now().UTC()
	c.JSON(http.StatusOK, gin.H{
		"session":        session,
		"time_to_start":  h.sessionServ.TimeToStart(session, now).Seconds(),
		"time_remaining": h.sessionServ.TimeRemaining(session, now).Seconds(),
		"countdown":      lifecycle.FormatCountdown(h.sessionServ.TimeToStart(session, now)),
	})
}

// requireParticipant carga la sesión y verifica que el caller
// autenticado sea el mentor o el usuario. Las mutaciones de una sesión
// son acciones de sus participantes, nunca de terceros.
func (h *SessionHandler) requireParticipant(c *gin.Context) (domain.Session, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return domain.Session{}, false
	}
	session, err := h.sessionServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return domain.Session{}, false
		}
		h.logger.Error("get session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get session"})
		return domain.Session{}, false
	}
	if claims.UserID != session.UserID && claims.UserID != session.MentorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a session participant"})
		return domain.Session{}, false
	}
	return session, true
}

// Tick maneja POST /sessions/:id/tick. Siempre evalúa contra la hora
// del servidor; un reloj elegido por el cliente podría forzar
// transiciones que todavía no ocurrieron.
func (h *SessionHandler) Tick(c *gin.Context) {
	if _, ok := h.requireParticipant(c); !ok {
		return
	}

	session, err := h.sessionServ.Tick(c.Request.Context(), c.Param("id"), time.Now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("tick failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not tick session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Cancel maneja POST /sessions/:id/cancel.
func (h *SessionHandler) Cancel(c *gin.Context) {
	if _, ok := h.requireParticipant(c); !ok {
		return
	}

	session, err := h.sessionServ.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("cancel failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not cancel session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ListMessages maneja GET /sessions/:id/messages.
func (h *SessionHandler) ListMessages(c *gin.Context) {
	messages, err := h.messageServ.ListBySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostMessage maneja POST /sessions/:id/messages.
func (h *SessionHandler) PostMessage(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	if _, ok := h.requireParticipant(c); !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.messageServ.Append(c.Request.Context(), domain.Message{
		SessionID:  c.Param("id"),
		SenderID:   claims.UserID,
		SenderName: claims.DisplayName,
		Kind:       domain.MessageKindText,
		Content:    req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case errors.Is(err, service.ErrMessageInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message"})
			return
		default:
			h.logger.Error("post message failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not post message"})
			return
		}
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// SubmitRating maneja POST /sessions/:id/rating.
func (h *SessionHandler) SubmitRating(c *gin.Context) {
	if _, ok := h.requireParticipant(c); !ok {
		return
	}

	var req struct {
		Rating   int    `json:"rating" binding:"required"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid rating request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.ratingServ.Submit(c.Request.Context(), c.Param("id"), req.Rating, req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, domain.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case errors.Is(err, pgx.ErrNoRows):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		default:
			h.logger.Error("submit rating failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit rating"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SkipRating maneja POST /sessions/:id/rating/skip.
func (h *SessionHandler) SkipRating(c *gin.Context) {
	if _, ok := h.requireParticipant(c); !ok {
		return
	}

	if err := h.ratingServ.Skip(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("skip rating failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not skip rating"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "dismissed"})
}

// RatingPrompt maneja GET /sessions/:id/rating/prompt.
func (h *SessionHandler) RatingPrompt(c *gin.Context) {
	pending, err := h.ratingServ.PromptPending(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("rating prompt lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check rating prompt"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}
