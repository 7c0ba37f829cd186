package event

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

type EventService struct {
	db                   *gorm.DB
	eventRepository      *EventRepository
	attendanceRepository *AttendanceRepository
	now                  func() time.Time
}

func NewEventService(db *gorm.DB, eventRepository *EventRepository, attendanceRepository *AttendanceRepository) *EventService {
	return &EventService{
		db:                   db,
		eventRepository:      eventRepository,
		attendanceRepository: attendanceRepository,
		now:                  time.Now,
	}
}

func (s *EventService) loadEvent(ctx context.Context, db *gorm.DB, id uint32, scopes ...repository.Scope) (*model.Event, error) {
	event, err := s.eventRepository.FindByID(ctx, db, id, scopes...)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("event id=%d: %w", id, ErrEventNotFound)
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

func (s *EventService) toResponses(ctx context.Context, events []model.Event) ([]EventResponse, error) {
	ids := make([]uint32, 0, len(events))
	for i := range events {
		ids = append(ids, events[i].ID)
	}
	counts, err := s.attendanceRepository.CountByEvents(ctx, s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}

	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, toEventResponse(&events[i], counts[events[i].ID]))
	}
	return out, nil
}

func (s *EventService) List(ctx context.Context) ([]EventResponse, error) {
	events, err := s.eventRepository.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return s.toResponses(ctx, events)
}

func (s *EventService) Get(ctx context.Context, id uint32) (*EventResponse, error) {
	event, err := s.loadEvent(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	count, err := s.attendanceRepository.CountByEvent(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}
	resp := toEventResponse(event, count)
	return &resp, nil
}

func (s *EventService) Search(ctx context.Context, filter SearchFilter, page repository.Page) (*repository.PageResult[EventResponse], error) {
	result, err := s.eventRepository.Search(ctx, s.db, filter, page)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	items, err := s.toResponses(ctx, result.Items)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[EventResponse]{
		Items:       items,
		TotalCount:  result.TotalCount,
		PageSize:    result.PageSize,
		CurrentPage: result.CurrentPage,
	}, nil
}

// Attend registers the member. The event row stays locked from the capacity check until the insert commits.
func (s *EventService) Attend(ctx context.Context, eventID, memberID uint32) (*AttendanceResponse, error) {
	log := logger.FromContext(ctx)

	var attendance *model.EventAttendance
	var count int64
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		event, err := s.loadEvent(ctx, tx, eventID, repository.ForUpdate())
		if err != nil {
			return err
		}
		if event.IsCancelled {
			return fmt.Errorf("event id=%d: %w", eventID, ErrEventCancelled)
		}

		exists, err := s.attendanceRepository.Exists(ctx, tx, repository.Where("event_id = ? AND member_id = ?", eventID, memberID))
		if err != nil {
			return fmt.Errorf("check registration: %w", err)
		}
		if exists {
			return fmt.Errorf("event id=%d member id=%d: %w", eventID, memberID, ErrAlreadyRegistered)
		}

		count, err = s.attendanceRepository.CountByEvent(ctx, tx, eventID)
		if err != nil {
			return fmt.Errorf("count attendees: %w", err)
		}
		if count >= int64(event.MaxAttendees) {
			return fmt.Errorf("event id=%d at %d/%d: %w", eventID, count, event.MaxAttendees, ErrEventFull)
		}

		attendance = &model.EventAttendance{
			EventID:      eventID,
			MemberID:     memberID,
			RegisteredAt: s.now().UTC(),
		}
		if err := s.attendanceRepository.Create(ctx, tx, attendance); err != nil {
			return fmt.Errorf("create attendance: %w", err)
		}
		count++
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Member registered for event", "event_id", eventID, "member_id", memberID, "attendees", count)
	return &AttendanceResponse{
		EventID:          eventID,
		MemberID:         memberID,
		RegisteredAt:     attendance.RegisteredAt,
		CurrentAttendees: count,
	}, nil
}

// CancelAttendance soft-deletes the registration, which frees the seat and allows re-registering
func (s *EventService) CancelAttendance(ctx context.Context, eventID, memberID uint32) error {
	attendance, err := s.attendanceRepository.FindActive(ctx, s.db, eventID, memberID)
	if err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("event id=%d member id=%d: %w", eventID, memberID, ErrNotRegistered)
		}
		return fmt.Errorf("find attendance: %w", err)
	}

	if err := s.attendanceRepository.Delete(ctx, s.db, attendance.ID); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}

	logger.FromContext(ctx).Info("Event registration cancelled", "event_id", eventID, "member_id", memberID)
	return nil
}

// MyRegistrations lists the member's live registrations; events deleted since are left out
func (s *EventService) MyRegistrations(ctx context.Context, memberID uint32) ([]RegistrationResponse, error) {
	rows, err := s.attendanceRepository.FindByMember(ctx, s.db, memberID)
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}

	ids := make([]uint32, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].EventID)
	}
	counts, err := s.attendanceRepository.CountByEvents(ctx, s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}

	out := make([]RegistrationResponse, 0, len(rows))
	for i := range rows {
		if rows[i].Event == nil {
			continue
		}
		out = append(out, RegistrationResponse{
			Event:        toEventResponse(rows[i].Event, counts[rows[i].EventID]),
			RegisteredAt: rows[i].RegisteredAt,
			HasAttended:  rows[i].HasAttended,
		})
	}
	return out, nil
}

func validateSchedule(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return fmt.Errorf("end %s before start %s: %w", end.Format(time.RFC3339), start.Format(time.RFC3339), ErrInvalidEventSchedule)
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, req *CreateEventRequest) (*EventResponse, error) {
	if err := validateSchedule(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		StartDate:    req.StartDate.UTC(),
		EndDate:      utcPtr(req.EndDate),
		MaxAttendees: req.MaxAttendees,
	}
	if err := s.eventRepository.Create(ctx, s.db, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	logger.FromContext(ctx).Info("Event created", "event_id", event.ID)
	resp := toEventResponse(event, 0)
	return &resp, nil
}

func (s *EventService) Update(ctx context.Context, id uint32, req *UpdateEventRequest) (*EventResponse, error) {
	if err := validateSchedule(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	var event *model.Event
	var count int64
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		event, err = s.loadEvent(ctx, tx, id, repository.ForUpdate())
		if err != nil {
			return err
		}

		count, err = s.attendanceRepository.CountByEvent(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("count attendees: %w", err)
		}
		if int64(req.MaxAttendees) < count {
			return fmt.Errorf("event id=%d has %d attendees: %w", id, count, ErrCapacityBelowCount)
		}

		event.Title = req.Title
		event.Description = req.Description
		event.Location = req.Location
		event.StartDate = req.StartDate.UTC()
		event.EndDate = utcPtr(req.EndDate)
		event.MaxAttendees = req.MaxAttendees
		return s.eventRepository.Update(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Event updated", "event_id", id)
	resp := toEventResponse(event, count)
	return &resp, nil
}

func (s *EventService) Delete(ctx context.Context, id uint32) error {
	event, err := s.loadEvent(ctx, s.db, id)
	if err != nil {
		return err
	}
	if err := s.eventRepository.Delete(ctx, s.db, event.ID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	logger.FromContext(ctx).Info("Event deleted", "event_id", id)
	return nil
}

// Cancel marks the event cancelled. Existing registrations are kept; new ones are refused.
func (s *EventService) Cancel(ctx context.Context, id uint32) (*EventResponse, error) {
	event, err := s.loadEvent(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if !event.IsCancelled {
		event.IsCancelled = true
		if err := s.eventRepository.Update(ctx, s.db, event); err != nil {
			return nil, fmt.Errorf("cancel event: %w", err)
		}
		logger.FromContext(ctx).Info("Event cancelled", "event_id", id)
	}
	return s.Get(ctx, id)
}

func (s *EventService) Attendees(ctx context.Context, eventID uint32) ([]AttendeeResponse, error) {
	if _, err := s.loadEvent(ctx, s.db, eventID); err != nil {
		return nil, err
	}

	rows, err := s.attendanceRepository.FindByEvent(ctx, s.db, eventID)
	if err != nil {
		return nil, fmt.Errorf("find attendees: %w", err)
	}

	out := make([]AttendeeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toAttendeeResponse(&rows[i]))
	}
	return out, nil
}

func (s *EventService) MarkAttended(ctx context.Context, eventID, memberID uint32, attended bool) (*AttendeeResponse, error) {
	attendance, err := s.attendanceRepository.FindActive(ctx, s.db, eventID, memberID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("event id=%d member id=%d: %w", eventID, memberID, ErrNotRegistered)
		}
		return nil, fmt.Errorf("find attendance: %w", err)
	}

	attendance.HasAttended = attended
	if err := s.attendanceRepository.Update(ctx, s.db, attendance); err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}

	resp := toAttendeeResponse(attendance)
	return &resp, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
