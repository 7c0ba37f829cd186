package connection

import (
	"context"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"gorm.io/gorm"
)

type ConnectionRepository struct {
	*repository.Repository[model.Connection]
}

func NewConnectionRepository() *ConnectionRepository {
	return &ConnectionRepository{Repository: repository.New[model.Connection]()}
}

// FindByKind lists newest first. A nil isNeed returns both needs and offers.
func (r *ConnectionRepository) FindByKind(ctx context.Context, db *gorm.DB, isNeed *bool) ([]model.Connection, error) {
	scopes := []repository.Scope{
		repository.Preload("CreatedBy"),
		repository.OrderBy("created_at DESC, id DESC"),
	}
	if isNeed != nil {
		scopes = append(scopes, repository.Where("is_need = ?", *isNeed))
	}
	return r.FindAll(ctx, db, scopes...)
}
