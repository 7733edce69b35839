package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/ticketera/internal/catalog"
	"github.com/opsdesk/ticketera/internal/errs"
	"github.com/opsdesk/ticketera/internal/form"
	"github.com/opsdesk/ticketera/internal/model"
	"github.com/opsdesk/ticketera/internal/session"
)

func (h *Handler) GetDraft(c *gin.Context) {
	snap, ok := h.sessions.Snapshot(token(c))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, snap.Draft)
}

type patchDraftRequest struct {
	Origin  *string        `json:"origin,omitempty"`
	Fields  map[int]string `json:"fields,omitempty"`
	Reason  *string        `json:"reason,omitempty"`
	Details *string        `json:"details,omitempty"`
}

// PatchDraft applies a partial form edit. Only valid while the session is on
// the form page; setting an origin outside the catalog is rejected.
func (h *Handler) PatchDraft(c *gin.Context) {
	var req patchDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Origin != nil && !catalog.Valid(model.Origin(*req.Origin)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown origin"})
		return
	}
	var draft model.Draft
	err := h.sessions.With(token(c), func(sess *session.Session) error {
		if sess.Page != session.PageForm {
			return errs.ErrWrongPage
		}
		if req.Origin != nil {
			form.SetOrigin(sess.Draft, model.Origin(*req.Origin))
		}
		for i, v := range req.Fields {
			form.SetExtraField(sess.Draft, i, v)
		}
		if req.Reason != nil {
			form.SetReason(sess.Draft, *req.Reason)
		}
		if req.Details != nil {
			form.SetDetails(sess.Draft, *req.Details)
		}
		draft = *sess.Draft
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrWrongPage) {
			c.JSON(http.StatusConflict, gin.H{"error": "not on the form page"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *Handler) ResetDraft(c *gin.Context) {
	if err := h.sessions.ResetDraft(token(c)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	snap, _ := h.sessions.Snapshot(token(c))
	c.JSON(http.StatusOK, snap.Draft)
}
