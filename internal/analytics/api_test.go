package analytics_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/analytics"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/metrics"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/middleware"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type analyticsTestEnv struct {
	db      *gorm.DB
	router  *gin.Engine
	service *analytics.AnalyticsService
	admin   *testutil.TestAccount
	member  *testutil.TestAccount
}

func setupTestEnvironment(t *testing.T) *analyticsTestEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	tokenManager := testutil.NewTokenManager()

	analyticsService := analytics.NewAnalyticsService(db, analytics.NewAnalyticsRepository())
	analyticsHandler := analytics.NewAnalyticsHandler(analyticsService)

	router := testutil.SetupTestRouter()
	group := router.Group("/api/analytics", middleware.JWT(tokenManager), middleware.RequireAdmin())
	{
		group.GET("/funnel", analyticsHandler.Funnel)
		group.GET("/trends", analyticsHandler.Trends)
		group.GET("/interests", analyticsHandler.InterestShifts)
		group.GET("/engagement", analyticsHandler.Engagement)
	}

	return &analyticsTestEnv{
		db:      db,
		router:  router,
		service: analyticsService,
		admin:   testutil.CreateAccount(t, db, tokenManager, "admin@example.com", true),
		member:  testutil.CreateAccount(t, db, tokenManager, "member@example.com", false),
	}
}

func (e *analyticsTestEnv) get(t *testing.T, url string, v interface{}) int {
	t.Helper()
	recorder := testutil.ExecuteRequest(t, e.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    url,
		Token:  e.admin.Token,
	})
	if recorder.Code == http.StatusOK && v != nil {
		testutil.ParseResponse(t, recorder, v)
	}
	return recorder.Code
}

func addInterest(t *testing.T, db *gorm.DB, memberID uint32, interest model.InterestType, createdAt time.Time, deletedAt *time.Time) {
	t.Helper()
	row := &model.MemberInterest{MemberID: memberID, Interest: interest}
	row.CreatedAt = createdAt
	if deletedAt != nil {
		row.DeletedAt = gorm.DeletedAt{Time: *deletedAt, Valid: true}
	}
	testutil.MustCreate(t, db, row)
}

func backdateMember(t *testing.T, db *gorm.DB, memberID uint32, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&model.Member{}).Where("id = ?", memberID).UpdateColumn("created_at", createdAt).Error)
}

func setLastLogin(t *testing.T, db *gorm.DB, memberID uint32, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&model.Member{}).Where("id = ?", memberID).UpdateColumn("last_login", at).Error)
}

func TestAnalytics_AdminOnly(t *testing.T) {
	env := setupTestEnvironment(t)

	for _, url := range []string{"/api/analytics/funnel", "/api/analytics/interests", "/api/analytics/engagement"} {
		recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
			Method: http.MethodGet,
			URL:    url,
			Token:  env.member.Token,
		})
		assert.Equal(t, http.StatusForbidden, recorder.Code, url)
	}
}

func TestFunnel_Counts(t *testing.T) {
	// Given: a bare user without a member profile, one recent login and one stale login
	env := setupTestEnvironment(t)
	now := time.Now().UTC()

	testutil.MustCreate(t, env.db, model.NewUser("visitor@example.com", "hash", "Just", "Looking"))
	setLastLogin(t, env.db, env.member.Member.ID, now.Add(-24*time.Hour))
	setLastLogin(t, env.db, env.admin.Member.ID, now.Add(-40*24*time.Hour))

	addInterest(t, env.db, env.member.Member.ID, model.InterestArt, now, nil)
	addInterest(t, env.db, env.member.Member.ID, model.InterestMusic, now, nil)
	removed := now.Add(-time.Hour)
	addInterest(t, env.db, env.admin.Member.ID, model.InterestArt, now.Add(-2*time.Hour), &removed)

	// When
	var funnel analytics.FunnelResponse
	code := env.get(t, "/api/analytics/funnel", &funnel)

	// Then
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, analytics.FunnelResponse{
		TotalVisitors:     3,
		RegisteredMembers: 2,
		ActiveMembers:     1,
		InterestedMembers: 1,
	}, funnel)
}

func TestFunnel_InterestedTracksInterestRows(t *testing.T) {
	env := setupTestEnvironment(t)
	ctx := context.Background()

	before, err := env.service.Funnel(ctx)
	require.NoError(t, err)
	assert.Zero(t, before.InterestedMembers)

	addInterest(t, env.db, env.admin.Member.ID, model.InterestSports, time.Now().UTC(), nil)

	after, err := env.service.Funnel(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.InterestedMembers)
	assert.LessOrEqual(t, after.InterestedMembers, after.RegisteredMembers)
}

func TestTrends_BucketsByDay(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	day := func(d, hour int) time.Time { return time.Date(2026, time.March, d, hour, 0, 0, 0, time.UTC) }

	event := &model.Event{Title: "Open Studio", Description: "d", StartDate: day(1, 18), MaxAttendees: 10}
	testutil.MustCreate(t, env.db, event)
	testutil.MustCreate(t, env.db,
		&model.EventAttendance{EventID: event.ID, MemberID: env.member.Member.ID, RegisteredAt: day(1, 9)},
		&model.EventAttendance{EventID: event.ID, MemberID: env.admin.Member.ID, RegisteredAt: day(1, 23)},
		&model.EventAttendance{EventID: event.ID, MemberID: env.admin.Member.ID, RegisteredAt: day(5, 12)},
	)
	setLastLogin(t, env.db, env.member.Member.ID, day(3, 8))

	module := &model.ContentModule{Title: "Printing", Description: "d", ContentURL: "https://example.com", IsActive: true}
	testutil.MustCreate(t, env.db, module)
	completedAt := day(3, 15)
	testutil.MustCreate(t, env.db,
		&model.ModuleProgress{MemberID: env.member.Member.ID, ContentModuleID: module.ID, Status: model.ModuleCompleted, CompletedAt: &completedAt},
		&model.ModuleProgress{MemberID: env.admin.Member.ID, ContentModuleID: module.ID, Status: model.ModuleInProgress},
	)

	// When
	var trends []analytics.TrendResponse
	code := env.get(t, "/api/analytics/trends?startDate=2026-03-01&endDate=2026-03-03", &trends)

	// Then: the March 5 registration is outside the range
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []analytics.TrendResponse{
		{Date: "2026-03-01", EventAttendance: 2},
		{Date: "2026-03-02"},
		{Date: "2026-03-03", MemberActivity: 1, ModuleProgress: 1},
	}, trends)
}

func TestTrends_RangeValidation(t *testing.T) {
	env := setupTestEnvironment(t)

	tests := []struct {
		name     string
		query    string
		wantCode string
	}{
		{name: "end before start", query: "startDate=2026-03-02&endDate=2026-03-01", wantCode: "ANALYTICS-001"},
		{name: "longer than 366 days", query: "startDate=2025-01-01&endDate=2026-01-02", wantCode: "ANALYTICS-001"},
		{name: "missing start", query: "endDate=2026-03-01"},
		{name: "malformed date", query: "startDate=03/01/2026&endDate=2026-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
				Method: http.MethodGet,
				URL:    "/api/analytics/trends?" + tt.query,
				Token:  env.admin.Token,
			})
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, testutil.ParseError(t, recorder).Code)
			}
		})
	}

	var trends []analytics.TrendResponse
	require.Equal(t, http.StatusOK, env.get(t, "/api/analytics/trends?startDate=2025-01-01&endDate=2026-01-01", &trends))
	assert.Len(t, trends, 366)
}

func TestInterestShifts(t *testing.T) {
	// Given: both members joined well before the lookback window
	env := setupTestEnvironment(t)
	now := time.Now().UTC()
	longAgo := now.Add(-60 * 24 * time.Hour)
	backdateMember(t, env.db, env.member.Member.ID, longAgo)
	backdateMember(t, env.db, env.admin.Member.ID, longAgo)

	// Art: one holder then, two now
	addInterest(t, env.db, env.member.Member.ID, model.InterestArt, now.Add(-40*24*time.Hour), nil)
	addInterest(t, env.db, env.admin.Member.ID, model.InterestArt, now.Add(-10*24*time.Hour), nil)
	// Music: held then, dropped five days ago
	dropped := now.Add(-5 * 24 * time.Hour)
	addInterest(t, env.db, env.member.Member.ID, model.InterestMusic, now.Add(-40*24*time.Hour), &dropped)
	// Sports: only picked up recently
	addInterest(t, env.db, env.admin.Member.ID, model.InterestSports, now.Add(-time.Hour), nil)

	// When
	var shifts []analytics.InterestShiftResponse
	require.Equal(t, http.StatusOK, env.get(t, "/api/analytics/interests", &shifts))

	// Then
	require.Len(t, shifts, len(model.AllInterests()))
	byInterest := make(map[model.InterestType]analytics.InterestShiftResponse, len(shifts))
	for _, s := range shifts {
		byInterest[s.Interest] = s
	}

	assert.Equal(t, analytics.InterestShiftResponse{Interest: model.InterestArt, InitialCount: 1, CurrentCount: 2, PercentageChange: 100}, byInterest[model.InterestArt])
	assert.Equal(t, analytics.InterestShiftResponse{Interest: model.InterestMusic, InitialCount: 1, CurrentCount: 0, PercentageChange: -100}, byInterest[model.InterestMusic])
	assert.Equal(t, analytics.InterestShiftResponse{Interest: model.InterestSports, InitialCount: 0, CurrentCount: 1, PercentageChange: 0}, byInterest[model.InterestSports])
	assert.Equal(t, analytics.InterestShiftResponse{Interest: model.InterestHealth}, byInterest[model.InterestHealth])
}

func TestEngagement(t *testing.T) {
	// Given
	env := setupTestEnvironment(t)
	now := time.Now().UTC()

	event := &model.Event{Title: "Talk", Description: "d", StartDate: now, MaxAttendees: 10}
	other := &model.Event{Title: "Walk", Description: "d", StartDate: now, MaxAttendees: 10}
	testutil.MustCreate(t, env.db, event, other)
	testutil.MustCreate(t, env.db,
		&model.EventAttendance{EventID: event.ID, MemberID: env.member.Member.ID, RegisteredAt: now},
		&model.EventAttendance{EventID: other.ID, MemberID: env.member.Member.ID, RegisteredAt: now},
		&model.EventAttendance{EventID: event.ID, MemberID: env.admin.Member.ID, RegisteredAt: now},
	)

	module := &model.ContentModule{Title: "Zine", Description: "d", ContentURL: "https://example.com", IsActive: true}
	testutil.MustCreate(t, env.db, module)
	for _, status := range []model.ModuleCompletionStatus{model.ModuleCompleted, model.ModuleInProgress, model.ModuleNotStarted, model.ModuleFailed} {
		testutil.MustCreate(t, env.db, &model.ModuleProgress{MemberID: env.member.Member.ID, ContentModuleID: module.ID, Status: status})
	}

	testutil.MustCreate(t, env.db,
		&model.Connection{Title: "Need a printer", IsNeed: true, CreatedByID: env.member.Member.ID},
		&model.Connection{Title: "Offering a studio", CreatedByID: env.admin.Member.ID},
	)

	recent, stale := &model.Conversation{}, &model.Conversation{}
	testutil.MustCreate(t, env.db, recent, stale)
	testutil.MustCreate(t, env.db,
		&model.ChatMessage{ConversationID: recent.ID, SenderID: env.member.Member.ID, Content: "hi", SentAt: now.Add(-24 * time.Hour)},
		&model.ChatMessage{ConversationID: recent.ID, SenderID: env.admin.Member.ID, Content: "hello", SentAt: now.Add(-time.Hour)},
		&model.ChatMessage{ConversationID: stale.ID, SenderID: env.member.Member.ID, Content: "old", SentAt: now.Add(-10 * 24 * time.Hour)},
	)

	// When
	var engagement analytics.EngagementResponse
	require.Equal(t, http.StatusOK, env.get(t, "/api/analytics/engagement", &engagement))

	// Then
	assert.InDelta(t, 1.5, engagement.AverageEventsPerMember, 1e-9)
	assert.InDelta(t, 25.0, engagement.ContentModuleCompletionRate, 1e-9)
	assert.Equal(t, int64(2), engagement.TotalConnections)
	assert.Equal(t, int64(1), engagement.ActiveDiscussions)
}

func TestEngagement_EmptyDatabaseHasNoDivisionByZero(t *testing.T) {
	service := analytics.NewAnalyticsService(testutil.SetupTestDB(t), analytics.NewAnalyticsRepository())

	engagement, err := service.Engagement(context.Background())

	require.NoError(t, err)
	assert.Equal(t, analytics.EngagementResponse{}, *engagement)
}

type recordingPublisher struct {
	snapshots []metrics.FunnelSnapshot
}

func (p *recordingPublisher) PublishFunnel(s metrics.FunnelSnapshot) {
	p.snapshots = append(p.snapshots, s)
}

func TestSnapshotTask_PublishesFunnel(t *testing.T) {
	env := setupTestEnvironment(t)
	addInterest(t, env.db, env.member.Member.ID, model.InterestSocial, time.Now().UTC(), nil)

	publisher := &recordingPublisher{}
	task := env.service.SnapshotTask(publisher)

	require.NoError(t, task(context.Background()))
	require.Len(t, publisher.snapshots, 1)
	snapshot := publisher.snapshots[0]
	assert.Equal(t, int64(2), snapshot.Visitors)
	assert.Equal(t, int64(2), snapshot.Registered)
	assert.Equal(t, int64(1), snapshot.Interested)
	assert.False(t, snapshot.TakenAt.IsZero())
}

func TestSnapshotTask_FeedsPrometheusGauges(t *testing.T) {
	env := setupTestEnvironment(t)
	m := metrics.New()

	require.NoError(t, env.service.SnapshotTask(m)(context.Background()))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	stages := map[string]float64{}
	for _, family := range families {
		if family.GetName() != "together_culture_funnel_members" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "stage" {
					stages[label.GetValue()] = metric.GetGauge().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{"visitors": 2, "registered": 2, "active": 0, "interested": 0}, stages)
}
