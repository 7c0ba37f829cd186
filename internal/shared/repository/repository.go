// Package repository provides a single CRUD abstraction over gorm, parameterized by entity type.
//
// Every method takes the *gorm.DB to run on so callers can pass either the pooled handle or a
// transaction from database.WithTransaction. Predicates are gorm scopes.
package repository

import (
	"context"
	"errors"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"

	"gorm.io/gorm"
)

// Scope narrows a query. Compose with Where, OrderBy, Preload.
type Scope = func(*gorm.DB) *gorm.DB

type Repository[T model.Entity] struct{}

func New[T model.Entity]() *Repository[T] {
	return &Repository[T]{}
}

func (r *Repository[T]) FindByID(ctx context.Context, db *gorm.DB, id uint32, scopes ...Scope) (*T, error) {
	var entity T
	err := db.WithContext(ctx).Scopes(scopes...).First(&entity, id).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// First returns the first row matching scopes, or gorm.ErrRecordNotFound
func (r *Repository[T]) First(ctx context.Context, db *gorm.DB, scopes ...Scope) (*T, error) {
	var entity T
	err := db.WithContext(ctx).Scopes(scopes...).First(&entity).Error
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *Repository[T]) FindAll(ctx context.Context, db *gorm.DB, scopes ...Scope) ([]T, error) {
	entities := make([]T, 0)
	err := db.WithContext(ctx).Scopes(scopes...).Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *Repository[T]) Count(ctx context.Context, db *gorm.DB, scopes ...Scope) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository[T]) Exists(ctx context.Context, db *gorm.DB, scopes ...Scope) (bool, error) {
	count, err := r.Count(ctx, db, scopes...)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository[T]) Create(ctx context.Context, db *gorm.DB, entity *T) error {
	return db.WithContext(ctx).Create(entity).Error
}

// Update writes every column of a previously loaded entity
func (r *Repository[T]) Update(ctx context.Context, db *gorm.DB, entity *T) error {
	return db.WithContext(ctx).Save(entity).Error
}

// Delete soft-deletes by id. A missing or already deleted row yields gorm.ErrRecordNotFound.
func (r *Repository[T]) Delete(ctx context.Context, db *gorm.DB, id uint32) error {
	result := db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HardDelete physically removes the row, soft-deleted or not
func (r *Repository[T]) HardDelete(ctx context.Context, db *gorm.DB, id uint32) error {
	result := db.WithContext(ctx).Unscoped().Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Paginate counts rows matching filters, then loads one page ordered by order.
// Ordering and preloads are kept out of the count query.
func (r *Repository[T]) Paginate(ctx context.Context, db *gorm.DB, page Page, order string, filters []Scope, preloads ...string) (*PageResult[T], error) {
	page = page.Normalize()

	total, err := r.Count(ctx, db, filters...)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, page.Size)
	query := db.WithContext(ctx).Scopes(filters...)
	for _, p := range preloads {
		query = query.Preload(p)
	}
	if order != "" {
		query = query.Order(order)
	}
	if err := query.Offset(page.Offset()).Limit(page.Size).Find(&items).Error; err != nil {
		return nil, err
	}

	return &PageResult[T]{
		Items:       items,
		TotalCount:  total,
		PageSize:    page.Size,
		CurrentPage: page.Number,
	}, nil
}

// IsNotFound reports whether err is gorm's record-not-found
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports a unique-constraint violation (requires TranslateError on the gorm config)
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
