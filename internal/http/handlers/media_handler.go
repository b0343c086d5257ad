package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cityvoice/cityvoice-backend/internal/http/handlers/common"
	"github.com/cityvoice/cityvoice-backend/internal/service"
)

// MediaHandler управляет загрузкой и удалением фотографий обращений.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler создаёт хэндлер.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// UploadPhoto обрабатывает POST /api/media/photos.
func (h *MediaHandler) UploadPhoto(c *gin.Context) {
	sess, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "поле file обязательно")
		return
	}

	if file.Size == 0 {
		common.RespondBadRequest(c, "файл не может быть пустым")
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	defer src.Close()

	media, err := h.media.Upload(c.Request.Context(), sess, file.Filename, src)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

// DeleteMedia обрабатывает DELETE /api/media/:id.
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	sess, err := common.CurrentSession(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	mediaID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.media.Delete(c.Request.Context(), sess, mediaID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
