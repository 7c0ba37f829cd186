package analytics

import (
	"context"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"gorm.io/gorm"
)

// AnalyticsRepository is read-only. Every count honors soft deletes unless stated otherwise.
type AnalyticsRepository struct {
	users       *repository.Repository[model.User]
	members     *repository.Repository[model.Member]
	attendances *repository.Repository[model.EventAttendance]
	progress    *repository.Repository[model.ModuleProgress]
	connections *repository.Repository[model.Connection]
}

func NewAnalyticsRepository() *AnalyticsRepository {
	return &AnalyticsRepository{
		users:       repository.New[model.User](),
		members:     repository.New[model.Member](),
		attendances: repository.New[model.EventAttendance](),
		progress:    repository.New[model.ModuleProgress](),
		connections: repository.New[model.Connection](),
	}
}

func (r *AnalyticsRepository) CountUsers(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.users.Count(ctx, db)
}

func (r *AnalyticsRepository) CountMembers(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.members.Count(ctx, db)
}

func (r *AnalyticsRepository) CountMembersActiveSince(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	return r.members.Count(ctx, db, repository.Where("last_login >= ?", since))
}

// CountMembersWithInterest counts members holding at least one live interest row
func (r *AnalyticsRepository) CountMembersWithInterest(ctx context.Context, db *gorm.DB) (int64, error) {
	holders := db.Model(&model.MemberInterest{}).Select("member_id")
	return r.members.Count(ctx, db, repository.Where("id IN (?)", holders))
}

func (r *AnalyticsRepository) CountAttendances(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.attendances.Count(ctx, db)
}

func (r *AnalyticsRepository) CountProgress(ctx context.Context, db *gorm.DB, scopes ...repository.Scope) (int64, error) {
	return r.progress.Count(ctx, db, scopes...)
}

func (r *AnalyticsRepository) CountConnections(ctx context.Context, db *gorm.DB) (int64, error) {
	return r.connections.Count(ctx, db)
}

// CountActiveConversations counts conversations with at least one message sent since the given time
func (r *AnalyticsRepository) CountActiveConversations(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("sent_at >= ?", since).
		Distinct("conversation_id").
		Count(&total).Error
	return total, err
}

// AttendanceTimes and its siblings return the raw timestamps in [from, to) for one trend metric
func (r *AnalyticsRepository) AttendanceTimes(ctx context.Context, db *gorm.DB, from, to time.Time) ([]time.Time, error) {
	return pluckTimes(ctx, db.Model(&model.EventAttendance{}), "registered_at", from, to)
}

func (r *AnalyticsRepository) LoginTimes(ctx context.Context, db *gorm.DB, from, to time.Time) ([]time.Time, error) {
	return pluckTimes(ctx, db.Model(&model.Member{}), "last_login", from, to)
}

func (r *AnalyticsRepository) CompletionTimes(ctx context.Context, db *gorm.DB, from, to time.Time) ([]time.Time, error) {
	query := db.Model(&model.ModuleProgress{}).Where("status = ?", model.ModuleCompleted)
	return pluckTimes(ctx, query, "completed_at", from, to)
}

func pluckTimes(ctx context.Context, query *gorm.DB, column string, from, to time.Time) ([]time.Time, error) {
	var times []time.Time
	err := query.WithContext(ctx).
		Where(column+" >= ? AND "+column+" < ?", from, to).
		Pluck(column, &times).Error
	return times, err
}

type interestCount struct {
	Interest model.InterestType
	Total    int64
}

// InterestHolders counts distinct live members per interest as of now
func (r *AnalyticsRepository) InterestHolders(ctx context.Context, db *gorm.DB) (map[model.InterestType]int64, error) {
	members := db.Model(&model.Member{}).Select("id")
	query := db.Model(&model.MemberInterest{}).Where("member_id IN (?)", members)
	return countByInterest(ctx, query)
}

// InterestHoldersAt reconstructs the holder counts at a past instant from soft-deleted history:
// a row counts when it was created before the instant and not deleted until after it.
func (r *AnalyticsRepository) InterestHoldersAt(ctx context.Context, db *gorm.DB, at time.Time) (map[model.InterestType]int64, error) {
	const aliveAt = "created_at < ? AND (deleted_at IS NULL OR deleted_at >= ?)"
	members := db.Unscoped().Model(&model.Member{}).Select("id").Where(aliveAt, at, at)
	query := db.Unscoped().Model(&model.MemberInterest{}).
		Where(aliveAt, at, at).
		Where("member_id IN (?)", members)
	return countByInterest(ctx, query)
}

func countByInterest(ctx context.Context, query *gorm.DB) (map[model.InterestType]int64, error) {
	var rows []interestCount
	err := query.WithContext(ctx).
		Select("interest, COUNT(DISTINCT member_id) AS total").
		Group("interest").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.InterestType]int64, len(rows))
	for _, row := range rows {
		counts[row.Interest] = row.Total
	}
	return counts, nil
}
