package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/metrics"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/scheduler"
	"gorm.io/gorm"
)

const (
	activeWindow     = 30 * 24 * time.Hour
	interestLookback = 30 * 24 * time.Hour
	discussionWindow = 7 * 24 * time.Hour
	maxTrendDays     = 366
	trendDateLayout  = "2006-01-02"
)

// FunnelPublisher receives funnel snapshots from the background job
type FunnelPublisher interface {
	PublishFunnel(metrics.FunnelSnapshot)
}

type AnalyticsService struct {
	db                  *gorm.DB
	analyticsRepository *AnalyticsRepository
	now                 func() time.Time
}

func NewAnalyticsService(db *gorm.DB, analyticsRepository *AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{
		db:                  db,
		analyticsRepository: analyticsRepository,
		now:                 time.Now,
	}
}

func (s *AnalyticsService) Funnel(ctx context.Context) (*FunnelResponse, error) {
	visitors, err := s.analyticsRepository.CountUsers(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	registered, err := s.analyticsRepository.CountMembers(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	active, err := s.analyticsRepository.CountMembersActiveSince(ctx, s.db, s.now().UTC().Add(-activeWindow))
	if err != nil {
		return nil, fmt.Errorf("count active members: %w", err)
	}
	interested, err := s.analyticsRepository.CountMembersWithInterest(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("count interested members: %w", err)
	}

	return &FunnelResponse{
		TotalVisitors:     visitors,
		InterestedMembers: interested,
		RegisteredMembers: registered,
		ActiveMembers:     active,
	}, nil
}

// Trends returns one bucket per calendar day from start to end inclusive, empty days included
func (s *AnalyticsService) Trends(ctx context.Context, start, end time.Time) ([]TrendResponse, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("trends %s..%s: %w", start.Format(trendDateLayout), end.Format(trendDateLayout), ErrInvalidDateRange)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxTrendDays {
		return nil, fmt.Errorf("trends span %d days: %w", days, ErrInvalidDateRange)
	}
	until := end.AddDate(0, 0, 1)

	attendance, err := s.analyticsRepository.AttendanceTimes(ctx, s.db, start, until)
	if err != nil {
		return nil, fmt.Errorf("load attendance times: %w", err)
	}
	logins, err := s.analyticsRepository.LoginTimes(ctx, s.db, start, until)
	if err != nil {
		return nil, fmt.Errorf("load login times: %w", err)
	}
	completions, err := s.analyticsRepository.CompletionTimes(ctx, s.db, start, until)
	if err != nil {
		return nil, fmt.Errorf("load completion times: %w", err)
	}

	trends := make([]TrendResponse, days)
	for i := range trends {
		trends[i].Date = start.AddDate(0, 0, i).Format(trendDateLayout)
	}
	bucket := func(times []time.Time, inc func(*TrendResponse)) {
		for _, t := range times {
			if i := int(truncateDay(t).Sub(start).Hours() / 24); i >= 0 && i < days {
				inc(&trends[i])
			}
		}
	}
	bucket(attendance, func(t *TrendResponse) { t.EventAttendance++ })
	bucket(logins, func(t *TrendResponse) { t.MemberActivity++ })
	bucket(completions, func(t *TrendResponse) { t.ModuleProgress++ })

	return trends, nil
}

// InterestShifts compares current holders of each interest with the holders 30 days ago
func (s *AnalyticsService) InterestShifts(ctx context.Context) ([]InterestShiftResponse, error) {
	cutoff := s.now().UTC().Add(-interestLookback)

	initial, err := s.analyticsRepository.InterestHoldersAt(ctx, s.db, cutoff)
	if err != nil {
		return nil, fmt.Errorf("count past interest holders: %w", err)
	}
	current, err := s.analyticsRepository.InterestHolders(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("count interest holders: %w", err)
	}

	interests := model.AllInterests()
	out := make([]InterestShiftResponse, 0, len(interests))
	for _, interest := range interests {
		out = append(out, InterestShiftResponse{
			Interest:         interest,
			InitialCount:     initial[interest],
			CurrentCount:     current[interest],
			PercentageChange: percentChange(initial[interest], current[interest]),
		})
	}
	return out, nil
}

func (s *AnalyticsService) Engagement(ctx context.Context) (*EngagementResponse, error) {
	members, err := s.analyticsRepository.CountMembers(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	attendances, err := s.analyticsRepository.CountAttendances(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("count attendances: %w", err)
	}
	progress, err := s.analyticsRepository.CountProgress(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("count progress: %w", err)
	}
	completed, err := s.analyticsRepository.CountProgress(ctx, s.db, repository.Where("status = ?", model.ModuleCompleted))
	if err != nil {
		return nil, fmt.Errorf("count completed progress: %w", err)
	}
	connections, err := s.analyticsRepository.CountConnections(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("count connections: %w", err)
	}
	discussions, err := s.analyticsRepository.CountActiveConversations(ctx, s.db, s.now().UTC().Add(-discussionWindow))
	if err != nil {
		return nil, fmt.Errorf("count active discussions: %w", err)
	}

	return &EngagementResponse{
		AverageEventsPerMember:      ratio(attendances, members),
		ContentModuleCompletionRate: ratio(completed, progress) * 100,
		TotalConnections:            connections,
		ActiveDiscussions:           discussions,
	}, nil
}

// SnapshotTask computes the funnel and hands it to the publisher on every run
func (s *AnalyticsService) SnapshotTask(publisher FunnelPublisher) scheduler.Task {
	return func(ctx context.Context) error {
		funnel, err := s.Funnel(ctx)
		if err != nil {
			return fmt.Errorf("funnel snapshot: %w", err)
		}
		publisher.PublishFunnel(metrics.FunnelSnapshot{
			Visitors:   funnel.TotalVisitors,
			Registered: funnel.RegisteredMembers,
			Active:     funnel.ActiveMembers,
			Interested: funnel.InterestedMembers,
			TakenAt:    s.now().UTC(),
		})
		logger.FromContext(ctx).Debug("Funnel snapshot published",
			"visitors", funnel.TotalVisitors,
			"registered", funnel.RegisteredMembers,
			"active", funnel.ActiveMembers,
			"interested", funnel.InterestedMembers,
		)
		return nil
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ratio(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

func percentChange(initial, current int64) float64 {
	if initial == 0 {
		return 0
	}
	return float64(current-initial) / float64(initial) * 100
}
