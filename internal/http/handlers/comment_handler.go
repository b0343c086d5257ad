package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cityvoice/cityvoice-backend/internal/dto"
	"github.com/cityvoice/cityvoice-backend/internal/http/handlers/common"
	"github.com/cityvoice/cityvoice-backend/internal/service"
)

// CommentHandler предоставляет HTTP слой для комментариев к обращениям.
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler создаёт хэндлер.
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List обрабатывает GET /api/reports/:id/comments.
func (h *CommentHandler) List(c *gin.Context) {
	reportID, err := common.ParseIntIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	comments, err := h.comments.ListComments(c.Request.Context(), reportID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Create обрабатывает POST /api/reports/:id/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	sess, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	reportID, err := common.ParseIntIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.AddComment(c.Request.Context(), sess, reportID, req.Text, req.ReplyTo)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Delete обрабатывает DELETE /api/comments/:id.
func (h *CommentHandler) Delete(c *gin.Context) {
	sess, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	commentID, err := common.ParseIntIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.comments.DeleteComment(c.Request.Context(), sess, commentID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleLike обрабатывает POST /api/comments/:id/like.
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	sess, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	commentID, err := common.ParseIntIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.ToggleLike(c.Request.Context(), sess, commentID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}
