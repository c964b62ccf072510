package stats

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.User{}, &models.Service{}, &models.Inquiry{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func uintPtr(n uint64) *uint64 { return &n }

func TestGrowthRate(t *testing.T) {
	testCases := []struct {
		name      string
		thisMonth int64
		lastMonth int64
		expected  float64
	}{
		{name: "no previous data yields zero", thisMonth: 12, lastMonth: 0, expected: 0},
		{name: "both zero", thisMonth: 0, lastMonth: 0, expected: 0},
		{name: "fifty percent growth", thisMonth: 15, lastMonth: 10, expected: 50},
		{name: "decline", thisMonth: 5, lastMonth: 10, expected: -50},
		{name: "rounded to one decimal", thisMonth: 1, lastMonth: 3, expected: -66.7},
		{name: "flat", thisMonth: 7, lastMonth: 7, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, GrowthRate(tc.thisMonth, tc.lastMonth), 0.0001)
		})
	}
}

func TestTimeBuckets(t *testing.T) {
	// Wednesday
	now := time.Date(2026, time.March, 18, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC), StartOfDay(now))
	assert.Equal(t, time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC), StartOfWeek(now), "weeks start on Monday")
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(now))

	// a Sunday belongs to the week of the previous Monday
	sunday := time.Date(2026, time.March, 22, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))

	// a Monday is its own week start
	monday := time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, StartOfWeek(monday))
}

func TestCollect(t *testing.T) {
	db := setupTestDB(t)

	now := time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.User{ID: 1, Name: "Admin", Email: "admin@drisavo.com", Role: models.RoleAdmin}).Error)
	require.NoError(t, db.Create(&models.User{ID: 2, Name: "Rider", Email: "rider@example.com", Role: models.RoleUser}).Error)

	require.NoError(t, db.Create(&models.Service{ID: 1, Title: "Personal Driver", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Service{ID: 2, Title: "Corporate Services", IsActive: false}).Error)

	inquiries := []models.Inquiry{
		// today
		{Name: "A", Email: "a@example.com", Status: models.InquiryStatusNew, Priority: models.InquiryPriorityHigh, ServiceID: uintPtr(1), CreatedAt: now.Add(-time.Hour)},
		// earlier this week, this month
		{Name: "B", Email: "b@example.com", Status: models.InquiryStatusCompleted, Priority: models.InquiryPriorityMedium, ServiceID: uintPtr(1), CreatedAt: now.AddDate(0, 0, -2)},
		// this month, previous week
		{Name: "C", Email: "c@example.com", Status: models.InquiryStatusInProgress, Priority: models.InquiryPriorityMedium, ServiceID: uintPtr(2), CreatedAt: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)},
		// last month
		{Name: "D", Email: "d@example.com", Status: models.InquiryStatusCompleted, Priority: models.InquiryPriorityLow, CreatedAt: time.Date(2026, time.February, 14, 9, 0, 0, 0, time.UTC)},
		// last month
		{Name: "E", Email: "e@example.com", Status: models.InquiryStatusCancelled, Priority: models.InquiryPriorityUrgent, CreatedAt: time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)},
	}
	for _, inq := range inquiries {
		require.NoError(t, db.Create(&inq).Error)
	}

	d, err := Collect(db, now)
	require.NoError(t, err)

	assert.Equal(t, int64(5), d.Overview.TotalInquiries)
	assert.Equal(t, int64(2), d.Overview.TotalServices)
	assert.Equal(t, int64(1), d.Overview.TotalUsers, "admins do not count as users")
	assert.Equal(t, int64(1), d.Overview.ActiveServices)
	assert.Equal(t, int64(1), d.Overview.NewInquiries)
	assert.Equal(t, int64(1), d.Overview.InProgressInquiries)
	assert.Equal(t, int64(2), d.Overview.CompletedInquiries)
	assert.Equal(t, int64(1), d.Overview.TodayInquiries)
	assert.Equal(t, int64(2), d.Overview.ThisWeekInquiries)
	assert.Equal(t, int64(3), d.Overview.ThisMonthInquiries)
	// 3 this month over 2 last month
	assert.InDelta(t, 50.0, d.Overview.GrowthRate, 0.0001)

	require.Len(t, d.MonthlyInquiries, 6)
	assert.Equal(t, "Oct 2025", d.MonthlyInquiries[0].Month)
	assert.Equal(t, "Mar 2026", d.MonthlyInquiries[5].Month)
	assert.Equal(t, int64(2), d.MonthlyInquiries[4].Count)
	assert.Equal(t, int64(3), d.MonthlyInquiries[5].Count)

	assert.Equal(t, map[string]int64{
		"low":    1,
		"medium": 2,
		"high":   1,
		"urgent": 1,
	}, d.PriorityDistribution)

	require.NotEmpty(t, d.InquiriesByService)
	assert.Equal(t, "Personal Driver", d.InquiriesByService[0].Service)
	assert.Equal(t, int64(2), d.InquiriesByService[0].Count)

	require.Len(t, d.RecentInquiries, 5)
	assert.Equal(t, "A", d.RecentInquiries[0].Name, "most recent first")
	require.NotNil(t, d.RecentInquiries[0].Service)
	assert.Equal(t, "Personal Driver", d.RecentInquiries[0].Service.Title)

	require.Len(t, d.InquiriesByStatus, 3)
	assert.Equal(t, "New", d.InquiriesByStatus[0].Status)
	assert.Equal(t, "#3b82f6", d.InquiriesByStatus[0].Color)

	_, err = Collect(nil, now)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestCollectInquiryStats(t *testing.T) {
	db := setupTestDB(t)

	now := time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.Inquiry{
		Name: "A", Email: "a@example.com",
		Status: models.InquiryStatusNew, Priority: models.InquiryPriorityMedium,
		CreatedAt: now.Add(-30 * time.Minute),
	}).Error)
	require.NoError(t, db.Create(&models.Inquiry{
		Name: "B", Email: "b@example.com",
		Status: models.InquiryStatusCompleted, Priority: models.InquiryPriorityMedium,
		CreatedAt: time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC),
	}).Error)

	s, err := CollectInquiryStats(db, now)
	require.NoError(t, err)

	assert.Equal(t, int64(2), s.Stats["total"])
	assert.Equal(t, int64(1), s.Stats["new"])
	assert.Equal(t, int64(1), s.Stats["completed"])
	assert.Equal(t, int64(0), s.Stats["cancelled"])
	assert.Equal(t, int64(1), s.Stats["today"])
	assert.Equal(t, int64(1), s.Stats["this_week"])
	assert.Equal(t, int64(1), s.Stats["this_month"])
	assert.Len(t, s.Recent, 2)
}

func TestCompletionRate(t *testing.T) {
	db := setupTestDB(t)

	rate, err := CompletionRate(db)
	require.NoError(t, err)
	assert.Zero(t, rate, "empty store has no completion rate")

	seed := []models.Inquiry{
		{Name: "A", Email: "a@example.com", Status: models.InquiryStatusCompleted},
		{Name: "B", Email: "b@example.com", Status: models.InquiryStatusNew},
		{Name: "C", Email: "c@example.com", Status: models.InquiryStatusNew},
	}
	for _, inq := range seed {
		require.NoError(t, db.Create(&inq).Error)
	}

	rate, err = CompletionRate(db)
	require.NoError(t, err)
	assert.InDelta(t, 33.3, rate, 0.0001)

	_, err = CompletionRate(nil)
	require.ErrorIs(t, err, ErrDBNil)
}
