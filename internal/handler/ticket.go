package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/ticketera/internal/errs"
	"github.com/opsdesk/ticketera/internal/session"
)

// CreateTicket submits the session's draft. Validation failures come back as
// the full error list; a backend failure is surfaced for a manual retry. On
// success the draft is reset and the session stays on the form.
func (h *Handler) CreateTicket(c *gin.Context) {
	tok := token(c)
	snap, ok := h.sessions.Snapshot(tok)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if snap.Page != session.PageForm {
		c.JSON(http.StatusConflict, gin.H{"error": "not on the form page"})
		return
	}
	rec, err := h.tickets.Submit(c.Request.Context(), snap.Draft, snap.User)
	if err != nil {
		var verrs errs.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verrs})
			return
		}
		var perr *errs.PersistenceError
		if errors.As(err, &perr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": perr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := h.sessions.ResetDraft(tok); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ListTickets returns the shared history. With mine=1 it narrows to the
// current operator's recent rows, newest first, capped.
func (h *Handler) ListTickets(c *gin.Context) {
	snap, ok := h.sessions.Snapshot(token(c))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	if mine := c.Query("mine"); mine == "1" || mine == "true" {
		recs, err := h.tickets.HistoryForUser(c.Request.Context(), snap.User)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tickets": recs, "total": len(recs)})
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	recs, err := h.tickets.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": recs, "total": len(recs)})
}
