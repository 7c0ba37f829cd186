package event

import (
	"context"
	"strings"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"gorm.io/gorm"
)

type EventRepository struct {
	*repository.Repository[model.Event]
}

func NewEventRepository() *EventRepository {
	return &EventRepository{Repository: repository.New[model.Event]()}
}

// SearchFilter narrows event listings. Nil and empty fields are ignored.
type SearchFilter struct {
	StartFrom  *time.Time // start_date >= StartFrom
	EndBefore  *time.Time // end (or start when open-ended) < EndBefore
	MinGuests  *int
	MaxGuests  *int
	SearchTerm string
}

func (f SearchFilter) scopes() []repository.Scope {
	var scopes []repository.Scope

	if f.StartFrom != nil {
		scopes = append(scopes, repository.Where("start_date >= ?", *f.StartFrom))
	}
	if f.EndBefore != nil {
		scopes = append(scopes, repository.Where("COALESCE(end_date, start_date) < ?", *f.EndBefore))
	}
	if f.MinGuests != nil {
		scopes = append(scopes, repository.Where("max_attendees >= ?", *f.MinGuests))
	}
	if f.MaxGuests != nil {
		scopes = append(scopes, repository.Where("max_attendees <= ?", *f.MaxGuests))
	}
	if term := strings.TrimSpace(f.SearchTerm); term != "" {
		pattern := "%" + repository.EscapeLike(strings.ToLower(term)) + "%"
		scopes = append(scopes, repository.Where(
			"(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')",
			pattern, pattern,
		))
	}
	return scopes
}

const eventOrder = "start_date ASC, id ASC"

func (r *EventRepository) List(ctx context.Context, db *gorm.DB) ([]model.Event, error) {
	return r.FindAll(ctx, db, repository.OrderBy(eventOrder))
}

func (r *EventRepository) Search(ctx context.Context, db *gorm.DB, filter SearchFilter, page repository.Page) (*repository.PageResult[model.Event], error) {
	return r.Paginate(ctx, db, page, eventOrder, filter.scopes())
}

type AttendanceRepository struct {
	*repository.Repository[model.EventAttendance]
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{Repository: repository.New[model.EventAttendance]()}
}

// FindActive returns the member's live registration for the event
func (r *AttendanceRepository) FindActive(ctx context.Context, db *gorm.DB, eventID, memberID uint32) (*model.EventAttendance, error) {
	return r.First(ctx, db, repository.Where("event_id = ? AND member_id = ?", eventID, memberID))
}

func (r *AttendanceRepository) CountByEvent(ctx context.Context, db *gorm.DB, eventID uint32) (int64, error) {
	return r.Count(ctx, db, repository.Where("event_id = ?", eventID))
}

type attendeeCount struct {
	EventID uint32
	Total   int64
}

// CountByEvents returns live registration counts keyed by event id; events without rows are absent
func (r *AttendanceRepository) CountByEvents(ctx context.Context, db *gorm.DB, eventIDs []uint32) (map[uint32]int64, error) {
	counts := make(map[uint32]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	var rows []attendeeCount
	err := db.WithContext(ctx).
		Model(&model.EventAttendance{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.EventID] = row.Total
	}
	return counts, nil
}

func (r *AttendanceRepository) FindByEvent(ctx context.Context, db *gorm.DB, eventID uint32) ([]model.EventAttendance, error) {
	return r.FindAll(ctx, db,
		repository.Where("event_id = ?", eventID),
		repository.Preload("Member"),
		repository.Preload("Member.User"),
		repository.OrderBy("registered_at ASC, id ASC"),
	)
}

func (r *AttendanceRepository) FindByMember(ctx context.Context, db *gorm.DB, memberID uint32) ([]model.EventAttendance, error) {
	return r.FindAll(ctx, db,
		repository.Where("member_id = ?", memberID),
		repository.Preload("Event"),
		repository.OrderBy("registered_at DESC, id DESC"),
	)
}
