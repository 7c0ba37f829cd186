package document

import (
	"context"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	*repository.Repository[model.Document]
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{Repository: repository.New[model.Document]()}
}

func (r *DocumentRepository) List(ctx context.Context, db *gorm.DB) ([]model.Document, error) {
	return r.FindAll(ctx, db, repository.OrderBy("uploaded_at DESC, id DESC"))
}
