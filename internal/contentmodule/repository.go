package contentmodule

import (
	"context"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"gorm.io/gorm"
)

type ModuleRepository struct {
	*repository.Repository[model.ContentModule]
}

func NewModuleRepository() *ModuleRepository {
	return &ModuleRepository{Repository: repository.New[model.ContentModule]()}
}

func (r *ModuleRepository) FindActive(ctx context.Context, db *gorm.DB) ([]model.ContentModule, error) {
	return r.FindAll(ctx, db, repository.Where("is_active = ?", true), repository.OrderBy("title ASC, id ASC"))
}

// AdjustBookings moves current_bookings by delta without going below zero
func (r *ModuleRepository) AdjustBookings(ctx context.Context, db *gorm.DB, moduleID uint32, delta int) error {
	return db.WithContext(ctx).
		Model(&model.ContentModule{}).
		Where("id = ? AND current_bookings + ? >= 0", moduleID, delta).
		UpdateColumn("current_bookings", gorm.Expr("current_bookings + ?", delta)).Error
}

type BookingRepository struct {
	*repository.Repository[model.ModuleBooking]
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{Repository: repository.New[model.ModuleBooking]()}
}

func (r *BookingRepository) FindActive(ctx context.Context, db *gorm.DB, moduleID, memberID uint32) (*model.ModuleBooking, error) {
	return r.First(ctx, db, repository.Where("content_module_id = ? AND member_id = ?", moduleID, memberID))
}

type ProgressRepository struct {
	*repository.Repository[model.ModuleProgress]
}

func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{Repository: repository.New[model.ModuleProgress]()}
}

func (r *ProgressRepository) Find(ctx context.Context, db *gorm.DB, moduleID, memberID uint32) (*model.ModuleProgress, error) {
	return r.First(ctx, db, repository.Where("content_module_id = ? AND member_id = ?", moduleID, memberID))
}
