package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"userdeck/internal/adapter/gin/middleware"
	domain "userdeck/internal/domain/user"
	"userdeck/internal/ui"
	"userdeck/internal/usecase/user"
	pkgerrors "userdeck/pkg/errors"
	"userdeck/pkg/logger"
)

// UIHandler serves the page and the form posts of the user interface.
type UIHandler struct {
	uc    user.Usecase
	label string
	log   *zap.Logger
}

// NewUIHandler creates a new UIHandler. label is the backend label the page
// mounts the user interface with.
func NewUIHandler(uc user.Usecase, label string, log *zap.Logger) *UIHandler {
	return &UIHandler{
		uc:    uc,
		label: label,
		log:   log,
	}
}

// Page handles GET /
func (h *UIHandler) Page(c *gin.Context) {
	st, err := h.uc.Mount(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.handleError(c, "mount", err)
		return
	}
	c.HTML(http.StatusOK, ui.PageTemplate, ui.NewPageView(st))
}

// Refresh handles POST /refresh
func (h *UIHandler) Refresh(c *gin.Context) {
	if _, err := h.uc.Refresh(c.Request.Context(), middleware.SessionID(c)); err != nil {
		h.handleError(c, "refresh", err)
		return
	}
	h.redirectHome(c)
}

// CreateUser handles POST /users
func (h *UIHandler) CreateUser(c *gin.Context) {
	var draft domain.NewUserDraft
	if err := c.ShouldBind(&draft); err != nil {
		h.handleError(c, "create", pkgerrors.NewValidationError("form", err.Error()))
		return
	}

	if _, err := h.uc.CreateUser(c.Request.Context(), middleware.SessionID(c), draft); err != nil {
		h.handleError(c, "create", err)
		return
	}
	h.redirectHome(c)
}

// UpdateUser handles POST /users/update
func (h *UIHandler) UpdateUser(c *gin.Context) {
	var draft domain.UpdateUserDraft
	if err := c.ShouldBind(&draft); err != nil {
		h.handleError(c, "update", pkgerrors.NewValidationError("form", err.Error()))
		return
	}

	if _, err := h.uc.UpdateUser(c.Request.Context(), middleware.SessionID(c), h.label, draft); err != nil {
		h.handleError(c, "update", err)
		return
	}
	h.redirectHome(c)
}

// DeleteUser handles POST /users/:id/delete
func (h *UIHandler) DeleteUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.handleError(c, "delete", pkgerrors.NewValidationError("id", "User ID must be a valid number"))
		return
	}

	if _, err := h.uc.DeleteUser(c.Request.Context(), middleware.SessionID(c), id); err != nil {
		h.handleError(c, "delete", err)
		return
	}
	h.redirectHome(c)
}

// redirectHome answers a form post with a redirect back to the page.
func (h *UIHandler) redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// handleError logs err and answers with its HTTP status. Client errors
// carry their message; server errors only the status text.
func (h *UIHandler) handleError(c *gin.Context, op string, err error) {
	status := pkgerrors.StatusOf(err)
	log := logger.WithContext(c.Request.Context(), h.log).With(zap.String("operation", op), zap.Error(err))
	_ = c.Error(err)

	var validationErr *pkgerrors.ValidationError
	if errors.As(err, &validationErr) {
		log.Warn("Invalid request")
		c.String(status, validationErr.Message)
		return
	}

	log.Error("Request failed")
	c.String(status, http.StatusText(status))
}
