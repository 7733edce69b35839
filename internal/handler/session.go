package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/ticketera/internal/auth"
	"github.com/opsdesk/ticketera/internal/errs"
	"github.com/opsdesk/ticketera/internal/service"
	"github.com/opsdesk/ticketera/internal/session"
)

// Handler bundles the HTTP handlers and their dependencies.
type Handler struct {
	auth     *auth.Authenticator
	sessions *session.Store
	tickets  *service.TicketService
}

func New(a *auth.Authenticator, sessions *session.Store, tickets *service.TicketService) *Handler {
	return &Handler{auth: a, sessions: sessions, tickets: tickets}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := h.auth.Authenticate(req.Username, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario o contraseña incorrectos"})
		return
	}
	sess := h.sessions.Create(req.Username)
	c.JSON(http.StatusCreated, gin.H{
		"token": sess.Token,
		"user":  sess.User,
		"page":  sess.Page,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Delete(token(c))
	c.Status(http.StatusNoContent)
}

func (h *Handler) CurrentSession(c *gin.Context) {
	snap, ok := h.sessions.Snapshot(token(c))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": snap.User,
		"page": snap.Page,
	})
}

type navigateRequest struct {
	Page string `json:"page" binding:"required"`
}

func (h *Handler) Navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	to := session.Page(req.Page)
	switch to {
	case session.PageMenu, session.PageForm, session.PageHistory:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown page"})
		return
	}
	sess, err := h.sessions.Navigate(token(c), to)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "invalid page transition"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": sess.Page})
}
