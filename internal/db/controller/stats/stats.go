// Package stats computes the dashboard aggregations. Every figure is an
// independent count query executed at request time; the snapshot is
// read-committed per query, not transactionally consistent across them.
package stats

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Lelasalasad/new-drisavo/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

const (
	monthlySeriesLen = 6
	recentLimit      = 5
	topServicesLimit = 5
)

// statusColors match the palette the frontend charts use.
var statusColors = map[models.InquiryStatus]string{ //nolint:gochecknoglobals
	models.InquiryStatusNew:        "#3b82f6",
	models.InquiryStatusInProgress: "#f59e0b",
	models.InquiryStatusCompleted:  "#10b981",
	models.InquiryStatusCancelled:  "#ef4444",
}

// Overview holds the raw and time-windowed counts.
type Overview struct {
	TotalInquiries      int64   `json:"total_inquiries"`
	TotalServices       int64   `json:"total_services"`
	TotalUsers          int64   `json:"total_users"`
	ActiveServices      int64   `json:"active_services"`
	NewInquiries        int64   `json:"new_inquiries"`
	InProgressInquiries int64   `json:"in_progress_inquiries"`
	CompletedInquiries  int64   `json:"completed_inquiries"`
	TodayInquiries      int64   `json:"today_inquiries"`
	ThisWeekInquiries   int64   `json:"this_week_inquiries"`
	ThisMonthInquiries  int64   `json:"this_month_inquiries"`
	GrowthRate          float64 `json:"growth_rate"`
}

// ServiceCount is one row of the top-services ranking.
type ServiceCount struct {
	Service string `json:"service"`
	Count   int64  `json:"count"`
}

// StatusCount is one slice of the by-status chart.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
	Color  string `json:"color"`
}

// MonthCount is one bucket of the trailing monthly series.
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// Dashboard is the full statistics snapshot.
type Dashboard struct {
	Overview             Overview         `json:"overview"`
	RecentInquiries      []models.Inquiry `json:"recent_inquiries"`
	InquiriesByService   []ServiceCount   `json:"inquiries_by_service"`
	InquiriesByStatus    []StatusCount    `json:"inquiries_by_status"`
	MonthlyInquiries     []MonthCount     `json:"monthly_inquiries"`
	PriorityDistribution map[string]int64 `json:"priority_distribution"`
}

// Widget is one quick-stats card. Value is a count or a formatted
// string depending on the card. Change and Trend are display hints the
// frontend shows verbatim.
type Widget struct {
	Title  string      `json:"title"`
	Value  interface{} `json:"value"`
	Icon   string      `json:"icon"`
	Color  string      `json:"color"`
	Change string      `json:"change"`
	Trend  string      `json:"trend"`
}

// CollectQuickStats builds the dashboard header cards.
func CollectQuickStats(db *gorm.DB, now time.Time) ([]Widget, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var total int64
	if err := db.Model(&models.Inquiry{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var activeServices int64
	if err := db.Model(&models.Service{}).
		Where("is_active = ?", true).
		Count(&activeServices).Error; err != nil {
		return nil, err
	}

	week := StartOfWeek(now)
	newThisWeek, err := countInquiriesBetween(db, week, week.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	completionRate, err := CompletionRate(db)
	if err != nil {
		return nil, err
	}

	return []Widget{
		{Title: "Total Inquiries", Value: total, Icon: "MessageSquare", Color: "blue", Change: "+12%", Trend: "up"},
		{Title: "Active Services", Value: activeServices, Icon: "Settings", Color: "green", Change: "+2", Trend: "up"},
		{Title: "New This Week", Value: newThisWeek, Icon: "TrendingUp", Color: "purple", Change: "+8%", Trend: "up"},
		{Title: "Completion Rate", Value: fmt.Sprintf("%g%%", completionRate), Icon: "Users", Color: "orange", Change: "+5%", Trend: "up"},
	}, nil
}

// GrowthRate computes the month-over-month growth percentage rounded to
// one decimal place. A zero previous month yields exactly 0, never a
// division by zero; callers rely on that value, do not change it.
func GrowthRate(thisMonth, lastMonth int64) float64 {
	if lastMonth == 0 {
		return 0
	}

	rate := float64(thisMonth-lastMonth) / float64(lastMonth) * 100

	return math.Round(rate*10) / 10
}

// StartOfDay returns midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)

	offset := int(day.Weekday()-time.Monday+7) % 7

	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Collect produces the dashboard snapshot as of now.
func Collect(db *gorm.DB, now time.Time) (*Dashboard, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var (
		d   Dashboard
		err error
	)

	if d.Overview, err = collectOverview(db, now); err != nil {
		return nil, err
	}

	for _, s := range []models.InquiryStatus{
		models.InquiryStatusNew,
		models.InquiryStatusInProgress,
		models.InquiryStatusCompleted,
	} {
		count, err := countInquiriesByStatus(db, s)
		if err != nil {
			return nil, err
		}

		d.InquiriesByStatus = append(d.InquiriesByStatus, StatusCount{
			Status: statusLabel(s),
			Count:  count,
			Color:  statusColors[s],
		})
	}

	if d.MonthlyInquiries, err = collectMonthlySeries(db, now); err != nil {
		return nil, err
	}

	d.PriorityDistribution = make(map[string]int64, len(models.InquiryPriorities()))
	for _, p := range models.InquiryPriorities() {
		var count int64
		if err := db.Model(&models.Inquiry{}).
			Where("priority = ?", p).
			Count(&count).Error; err != nil {
			return nil, err
		}

		d.PriorityDistribution[string(p)] = count
	}

	if d.InquiriesByService, err = TopServices(db, topServicesLimit); err != nil {
		return nil, err
	}

	if d.RecentInquiries, err = RecentInquiries(db, recentLimit); err != nil {
		return nil, err
	}

	return &d, nil
}

func collectOverview(db *gorm.DB, now time.Time) (Overview, error) {
	var (
		o   Overview
		err error
	)

	counts := []struct {
		dst *int64
		tx  *gorm.DB
	}{
		{&o.TotalInquiries, db.Model(&models.Inquiry{})},
		{&o.TotalServices, db.Model(&models.Service{})},
		{&o.TotalUsers, db.Model(&models.User{}).Where("role = ?", models.RoleUser)},
		{&o.ActiveServices, db.Model(&models.Service{}).Where("is_active = ?", true)},
		{&o.NewInquiries, db.Model(&models.Inquiry{}).Where("status = ?", models.InquiryStatusNew)},
		{&o.InProgressInquiries, db.Model(&models.Inquiry{}).Where("status = ?", models.InquiryStatusInProgress)},
		{&o.CompletedInquiries, db.Model(&models.Inquiry{}).Where("status = ?", models.InquiryStatusCompleted)},
	}

	for _, c := range counts {
		if err = c.tx.Count(c.dst).Error; err != nil {
			return Overview{}, err
		}
	}

	day := StartOfDay(now)
	if o.TodayInquiries, err = countInquiriesBetween(db, day, day.AddDate(0, 0, 1)); err != nil {
		return Overview{}, err
	}

	week := StartOfWeek(now)
	if o.ThisWeekInquiries, err = countInquiriesBetween(db, week, week.AddDate(0, 0, 7)); err != nil {
		return Overview{}, err
	}

	month := StartOfMonth(now)
	if o.ThisMonthInquiries, err = countInquiriesBetween(db, month, month.AddDate(0, 1, 0)); err != nil {
		return Overview{}, err
	}

	lastMonth, err := countInquiriesBetween(db, month.AddDate(0, -1, 0), month)
	if err != nil {
		return Overview{}, err
	}

	o.GrowthRate = GrowthRate(o.ThisMonthInquiries, lastMonth)

	return o, nil
}

// collectMonthlySeries counts inquiries per calendar month for the
// trailing six months, oldest first.
func collectMonthlySeries(db *gorm.DB, now time.Time) ([]MonthCount, error) {
	series := make([]MonthCount, 0, monthlySeriesLen)

	for i := monthlySeriesLen - 1; i >= 0; i-- {
		from := StartOfMonth(now).AddDate(0, -i, 0)

		count, err := countInquiriesBetween(db, from, from.AddDate(0, 1, 0))
		if err != nil {
			return nil, err
		}

		series = append(series, MonthCount{
			Month: from.Format("Jan 2006"),
			Count: count,
		})
	}

	return series, nil
}

// TopServices ranks services by descending inquiry count. Ties break in
// store-defined order.
func TopServices(db *gorm.DB, limit int) ([]ServiceCount, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var out []ServiceCount
	err := db.Model(&models.Service{}).
		Select("services.title AS service, COUNT(inquiries.id) AS count").
		Joins("LEFT JOIN inquiries ON inquiries.service_id = services.id").
		Group("services.id, services.title").
		Order("count DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}

	return out, nil
}

// RecentInquiries returns the most recently created inquiries with
// their service and submitter attached.
func RecentInquiries(db *gorm.DB, limit int) ([]models.Inquiry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var inquiries []models.Inquiry
	err := db.
		Preload("Service").
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		return nil, err
	}

	return inquiries, nil
}

// InquiryStats is the payload of the inquiries-statistics endpoint.
type InquiryStats struct {
	Stats     map[string]int64 `json:"stats"`
	ByService []ServiceCount   `json:"by_service"`
	Recent    []models.Inquiry `json:"recent"`
}

// CollectInquiryStats computes the flat inquiry statistics block.
func CollectInquiryStats(db *gorm.DB, now time.Time) (*InquiryStats, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	out := InquiryStats{Stats: make(map[string]int64)}

	var total int64
	if err := db.Model(&models.Inquiry{}).Count(&total).Error; err != nil {
		return nil, err
	}

	out.Stats["total"] = total

	for _, s := range models.InquiryStatuses() {
		count, err := countInquiriesByStatus(db, s)
		if err != nil {
			return nil, err
		}

		out.Stats[string(s)] = count
	}

	var err error

	day := StartOfDay(now)
	if out.Stats["today"], err = countInquiriesBetween(db, day, day.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}

	week := StartOfWeek(now)
	if out.Stats["this_week"], err = countInquiriesBetween(db, week, week.AddDate(0, 0, 7)); err != nil {
		return nil, err
	}

	month := StartOfMonth(now)
	if out.Stats["this_month"], err = countInquiriesBetween(db, month, month.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}

	// unbounded, every service, not just the top slice
	if out.ByService, err = TopServices(db, -1); err != nil {
		return nil, err
	}

	if out.Recent, err = RecentInquiries(db, recentLimit); err != nil {
		return nil, err
	}

	return &out, nil
}

// CompletionRate is the share of completed inquiries in percent,
// rounded to one decimal place, 0 for an empty store.
func CompletionRate(db *gorm.DB) (float64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var total, completed int64
	if err := db.Model(&models.Inquiry{}).Count(&total).Error; err != nil {
		return 0, err
	}

	if total == 0 {
		return 0, nil
	}

	if err := db.Model(&models.Inquiry{}).
		Where("status = ?", models.InquiryStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, err
	}

	return math.Round(float64(completed)/float64(total)*1000) / 10, nil
}

func countInquiriesBetween(db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Inquiry{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error

	return count, err
}

func countInquiriesByStatus(db *gorm.DB, s models.InquiryStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Inquiry{}).
		Where("status = ?", s).
		Count(&count).Error

	return count, err
}

func statusLabel(s models.InquiryStatus) string {
	switch s {
	case models.InquiryStatusNew:
		return "New"
	case models.InquiryStatusInProgress:
		return "In Progress"
	case models.InquiryStatusCompleted:
		return "Completed"
	case models.InquiryStatusCancelled:
		return "Cancelled"
	}

	return string(s)
}
