package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mentorhub/internal/repository"
	"mentorhub/internal/service"
)

// MentorHandler mantiene dependencias para el directorio de mentores.
type MentorHandler struct {
	logger     *zap.Logger
	mentorServ *service.MentorService
}

// NewMentorHandler crea una instancia de MentorHandler con dependencias necesarias.
func NewMentorHandler(logger *zap.Logger, mentorServ *service.MentorService) *MentorHandler {
	return &MentorHandler{
		logger:     logger,
		mentorServ: mentorServ,
	}
}

// Browse maneja GET /mentors.
func (h *MentorHandler) Browse(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	freeOnly := c.Query("free_only") == "true"

	mentors, err := h.mentorServ.Browse(c.Request.Context(), repository.MentorFilter{
		Query:        c.Query("q"),
		Tag:          c.Query("tag"),
		Language:     c.Query("language"),
		Availability: c.Query("availability"),
		FreeOnly:     freeOnly,
		Limit:        limit,
	})
	if err != nil {
		h.logger.Error("browse mentors failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not browse mentors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

// Get maneja GET /mentors/:id.
func (h *MentorHandler) Get(c *gin.Context) {
	mentor, err := h.mentorServ.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mentor not found"})
			return
		}
		h.logger.Error("get mentor failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get mentor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentor": mentor})
}

// Similar maneja GET /mentors/:id/similar.
func (h *MentorHandler) Similar(c *gin.Context) {
	k, _ := strconv.Atoi(c.Query("k"))
	mentors, err := h.mentorServ.Similar(c.Request.Context(), c.Param("id"), k)
	if err != nil {
		h.logger.Error("similar mentors failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not find similar mentors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}
