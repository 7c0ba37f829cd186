package document

import (
	"mime"
	"net/http"

	sharedContext "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/context"
	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for boundaries and the title field on top of the file itself
const multipartOverhead = 64 << 10

type DocumentHandler struct {
	documentService *DocumentService
	maxUploadBytes  int64
}

func NewDocumentHandler(documentService *DocumentService, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxUploadBytes:  maxUploadBytes,
	}
}

func (h *DocumentHandler) List(c *gin.Context) {
	response, err := h.documentService.List(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	response, err := h.documentService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	doc, rc, err := h.documentService.Open(c.Request.Context(), id)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	defer rc.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName})
	c.DataFromReader(http.StatusOK, doc.Size, doc.ContentType, rc, map[string]string{
		"Content-Disposition": disposition,
	})
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	var request UploadDocumentRequest
	if !handler.BindForm(c, &request) {
		return
	}
	if request.File.Size > h.maxUploadBytes {
		handler.RespondError(c, nil, sharedError.PayloadTooLarge)
		return
	}

	file, err := request.File.Open()
	if err != nil {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}
	defer file.Close()

	upload := Upload{
		Title:       request.Title,
		FileName:    request.File.Filename,
		ContentType: request.File.Header.Get("Content-Type"),
		Size:        request.File.Size,
	}
	response, err := h.documentService.Upload(c.Request.Context(), memberID, upload, file)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	principal, ok := sharedContext.RequirePrincipal(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), id, principal.MemberID, principal.IsAdmin); err != nil {
		handler.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
