package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cityvoice/cityvoice-backend/internal/dto"
	"github.com/cityvoice/cityvoice-backend/internal/http/handlers/common"
	"github.com/cityvoice/cityvoice-backend/internal/repository"
	"github.com/cityvoice/cityvoice-backend/internal/service"
)

// ReportHandler предоставляет HTTP слой для работы с обращениями.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler создаёт хэндлер.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// List обрабатывает GET /api/reports. Доступен без авторизации.
func (h *ReportHandler) List(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	filter := repository.ReportFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}

	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			common.RespondBadRequest(c, "user_id должен быть валидным UUID")
			return
		}
		filter.UserID = &userID
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			common.RespondBadRequest(c, "from должен быть датой в формате RFC3339")
			return
		}
		filter.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			common.RespondBadRequest(c, "to должен быть датой в формате RFC3339")
			return
		}
		filter.To = &to
	}

	reports, total, err := h.reports.ListReports(c.Request.Context(), filter, limit, offset)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedReportsResponse{
		Reports: reports,
		Pagination: dto.Pagination{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	})
}

// Get обрабатывает GET /api/reports/:id.
func (h *ReportHandler) Get(c *gin.Context) {
	id, err := common.ParseIntIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	report, err := h.reports.GetReport(c.Request.Context(), id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Create обрабатывает POST /api/reports.
func (h *ReportHandler) Create(c *gin.Context) {
	sess, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	photoID, err := parseOptionalUUID(req.PhotoID)
	if err != nil {
		common.RespondBadRequest(c, "photo_id должен быть валидным UUID")
		return
	}

	report, err := h.reports.CreateReport(c.Request.Context(), sess, service.CreateReportInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		PhotoID:     photoID,
		Date:        req.Date,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// Update обрабатывает PUT /api/reports/:id.
func (h *ReportHandler) Update(c *gin.Context) {
	sess, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseIntIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	photoID, err := parseOptionalUUID(req.PhotoID)
	if err != nil {
		common.RespondBadRequest(c, "photo_id должен быть валидным UUID")
		return
	}

	report, err := h.reports.EditReport(c.Request.Context(), sess, id, service.UpdateReportInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		PhotoID:     photoID,
		Date:        req.Date,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Delete обрабатывает DELETE /api/reports/:id.
func (h *ReportHandler) Delete(c *gin.Context) {
	sess, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseIntIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.reports.DeleteReport(c.Request.Context(), sess, id); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleUpvote обрабатывает POST /api/reports/:id/upvote.
func (h *ReportHandler) ToggleUpvote(c *gin.Context) {
	sess, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseIntIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	report, err := h.reports.ToggleUpvote(c.Request.Context(), sess, id)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// UpdateStatus обрабатывает PUT /api/reports/:id/status. Только для
// администраторов.
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	sess, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseIntIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	report, err := h.reports.UpdateStatus(c.Request.Context(), sess, id, req.Status)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// parseOptionalUUID разбирает необязательный UUID из строки запроса.
func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
