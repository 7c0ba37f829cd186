package document

import (
	"mime/multipart"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
)

type DocumentResponse struct {
	ID           uint32    `json:"id"`
	Title        string    `json:"title"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploadedAt"`
	UploadedByID uint32    `json:"uploadedById"`
}

func toDocumentResponse(d *model.Document) DocumentResponse {
	return DocumentResponse{
		ID:           d.ID,
		Title:        d.Title,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		Size:         d.Size,
		UploadedAt:   d.UploadedAt,
		UploadedByID: d.UploadedByID,
	}
}

type UploadDocumentRequest struct {
	Title string                `form:"title" binding:"required,max=200"`
	File  *multipart.FileHeader `form:"file" binding:"required"`
}

// Upload is the service-level view of an incoming file
type Upload struct {
	Title       string
	FileName    string
	ContentType string
	Size        int64
}
