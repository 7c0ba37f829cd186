package contentmodule

import (
	"context"
	"fmt"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"gorm.io/gorm"
)

type ModuleService struct {
	db                 *gorm.DB
	moduleRepository   *ModuleRepository
	bookingRepository  *BookingRepository
	progressRepository *ProgressRepository
	now                func() time.Time
}

func NewModuleService(db *gorm.DB, moduleRepository *ModuleRepository, bookingRepository *BookingRepository, progressRepository *ProgressRepository) *ModuleService {
	return &ModuleService{
		db:                 db,
		moduleRepository:   moduleRepository,
		bookingRepository:  bookingRepository,
		progressRepository: progressRepository,
		now:                time.Now,
	}
}

func (s *ModuleService) loadModule(ctx context.Context, db *gorm.DB, id uint32, scopes ...repository.Scope) (*model.ContentModule, error) {
	module, err := s.moduleRepository.FindByID(ctx, db, id, scopes...)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("module id=%d: %w", id, ErrModuleNotFound)
		}
		return nil, fmt.Errorf("find module: %w", err)
	}
	return module, nil
}

// List returns the modules open for booking
func (s *ModuleService) List(ctx context.Context) ([]ModuleResponse, error) {
	modules, err := s.moduleRepository.FindActive(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	out := make([]ModuleResponse, 0, len(modules))
	for i := range modules {
		out = append(out, toModuleResponse(&modules[i]))
	}
	return out, nil
}

func (s *ModuleService) Get(ctx context.Context, id uint32) (*ModuleResponse, error) {
	module, err := s.loadModule(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	resp := toModuleResponse(module)
	return &resp, nil
}

func (s *ModuleService) Book(ctx context.Context, moduleID, memberID uint32) (*BookingResponse, error) {
	var booking *model.ModuleBooking
	var module *model.ContentModule
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		module, err = s.loadModule(ctx, tx, moduleID, repository.ForUpdate())
		if err != nil {
			return err
		}
		if !module.IsActive {
			return fmt.Errorf("module id=%d: %w", moduleID, ErrModuleInactive)
		}

		exists, err := s.bookingRepository.Exists(ctx, tx, repository.Where("content_module_id = ? AND member_id = ?", moduleID, memberID))
		if err != nil {
			return fmt.Errorf("check booking: %w", err)
		}
		if exists {
			return fmt.Errorf("module id=%d member id=%d: %w", moduleID, memberID, ErrAlreadyBooked)
		}
		if module.IsFull() {
			return fmt.Errorf("module id=%d: %w", moduleID, ErrModuleFull)
		}

		booking = &model.ModuleBooking{
			MemberID:        memberID,
			ContentModuleID: moduleID,
			BookedAt:        s.now().UTC(),
		}
		if err := s.bookingRepository.Create(ctx, tx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		if err := s.moduleRepository.AdjustBookings(ctx, tx, moduleID, 1); err != nil {
			return fmt.Errorf("increment bookings: %w", err)
		}
		module.CurrentBookings++
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Module booked", "module_id", moduleID, "member_id", memberID)
	return &BookingResponse{
		ModuleID:        moduleID,
		MemberID:        memberID,
		BookedAt:        booking.BookedAt,
		CurrentBookings: module.CurrentBookings,
	}, nil
}

func (s *ModuleService) Unbook(ctx context.Context, moduleID, memberID uint32) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.loadModule(ctx, tx, moduleID, repository.ForUpdate()); err != nil {
			return err
		}

		booking, err := s.bookingRepository.FindActive(ctx, tx, moduleID, memberID)
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("module id=%d member id=%d: %w", moduleID, memberID, ErrNotBooked)
			}
			return fmt.Errorf("find booking: %w", err)
		}

		if err := s.bookingRepository.Delete(ctx, tx, booking.ID); err != nil {
			return fmt.Errorf("delete booking: %w", err)
		}
		return s.moduleRepository.AdjustBookings(ctx, tx, moduleID, -1)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Module booking cancelled", "module_id", moduleID, "member_id", memberID)
	return nil
}

// UpdateProgress records the member's progress on a booked module.
// Timestamps follow the status: StartedAt is set once, CompletedAt only while Completed.
func (s *ModuleService) UpdateProgress(ctx context.Context, moduleID, memberID uint32, status model.ModuleCompletionStatus) (*ProgressResponse, error) {
	var progress *model.ModuleProgress
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		booking, err := s.bookingRepository.FindActive(ctx, tx, moduleID, memberID)
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("module id=%d member id=%d: %w", moduleID, memberID, ErrNotBooked)
			}
			return fmt.Errorf("find booking: %w", err)
		}

		progress, err = s.progressRepository.Find(ctx, tx, moduleID, memberID)
		switch {
		case repository.IsNotFound(err):
			progress = &model.ModuleProgress{MemberID: memberID, ContentModuleID: moduleID}
		case err != nil:
			return fmt.Errorf("find progress: %w", err)
		}

		applyStatus(progress, status, s.now().UTC())
		if progress.ID == 0 {
			err = s.progressRepository.Create(ctx, tx, progress)
		} else {
			err = s.progressRepository.Update(ctx, tx, progress)
		}
		if err != nil {
			return fmt.Errorf("save progress: %w", err)
		}

		completed := status == model.ModuleCompleted
		if booking.IsCompleted != completed {
			booking.IsCompleted = completed
			if err := s.bookingRepository.Update(ctx, tx, booking); err != nil {
				return fmt.Errorf("update booking: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Module progress updated", "module_id", moduleID, "member_id", memberID, "status", status)
	resp := toProgressResponse(progress)
	return &resp, nil
}

func applyStatus(p *model.ModuleProgress, status model.ModuleCompletionStatus, now time.Time) {
	p.Status = status
	switch status {
	case model.ModuleNotStarted:
		p.StartedAt = nil
		p.CompletedAt = nil
	case model.ModuleInProgress, model.ModuleFailed:
		if p.StartedAt == nil {
			p.StartedAt = &now
		}
		p.CompletedAt = nil
	case model.ModuleCompleted:
		if p.StartedAt == nil {
			p.StartedAt = &now
		}
		if p.CompletedAt == nil {
			p.CompletedAt = &now
		}
	}
}

func (s *ModuleService) Create(ctx context.Context, req *CreateModuleRequest) (*ModuleResponse, error) {
	module := &model.ContentModule{
		Title:       req.Title,
		Description: req.Description,
		ContentURL:  req.ContentURL,
		IsActive:    req.IsActive == nil || *req.IsActive,
		MaxBookings: req.MaxBookings,
	}
	if err := s.moduleRepository.Create(ctx, s.db, module); err != nil {
		return nil, fmt.Errorf("create module: %w", err)
	}

	logger.FromContext(ctx).Info("Module created", "module_id", module.ID)
	resp := toModuleResponse(module)
	return &resp, nil
}

func (s *ModuleService) Update(ctx context.Context, id uint32, req *UpdateModuleRequest) (*ModuleResponse, error) {
	var module *model.ContentModule
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		module, err = s.loadModule(ctx, tx, id, repository.ForUpdate())
		if err != nil {
			return err
		}
		if req.MaxBookings != nil && *req.MaxBookings < module.CurrentBookings {
			return fmt.Errorf("module id=%d has %d bookings: %w", id, module.CurrentBookings, ErrLimitBelowBookings)
		}

		module.Title = req.Title
		module.Description = req.Description
		module.ContentURL = req.ContentURL
		module.IsActive = req.IsActive
		module.MaxBookings = req.MaxBookings
		return s.moduleRepository.Update(ctx, tx, module)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Module updated", "module_id", id)
	resp := toModuleResponse(module)
	return &resp, nil
}
