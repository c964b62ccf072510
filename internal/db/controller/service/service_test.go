package service

import (
	"testing"

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

	err = db.AutoMigrate(&models.Service{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedServices inserts test data into the database.
func seedServices(t *testing.T, db *gorm.DB, services []models.Service) {
	t.Helper()
	for _, svc := range services {
		err := db.Create(&svc).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func boolPtr(b bool) *bool { return &b }

func intPtr(n int) *int { return &n }

func TestList(t *testing.T) {
	db := setupTestDB(t)

	seed := []models.Service{
		{Title: "Personal Driver", Description: "A dedicated driver", IsActive: true, SortOrder: 2},
		{Title: "Commercial Transport", Description: "Freight and goods", IsActive: true, SortOrder: 1},
		{Title: "Corporate Services", Description: "Business accounts", IsActive: false, SortOrder: 3},
	}

	testCases := []struct {
		name           string
		dbParam        *gorm.DB
		params         ListParams
		expectedError  error
		expectedTitles []string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			expectedError: ErrDBNil,
		},
		{
			name:           "all services ordered by sort order",
			dbParam:        db,
			expectedTitles: []string{"Commercial Transport", "Personal Driver", "Corporate Services"},
		},
		{
			name:           "only active",
			dbParam:        db,
			params:         ListParams{Active: boolPtr(true)},
			expectedTitles: []string{"Commercial Transport", "Personal Driver"},
		},
		{
			name:           "only inactive",
			dbParam:        db,
			params:         ListParams{Active: boolPtr(false)},
			expectedTitles: []string{"Corporate Services"},
		},
		{
			name:           "search matches title",
			dbParam:        db,
			params:         ListParams{Search: "personal"},
			expectedTitles: []string{"Personal Driver"},
		},
		{
			name:           "search matches description",
			dbParam:        db,
			params:         ListParams{Search: "freight"},
			expectedTitles: []string{"Commercial Transport"},
		},
		{
			name:           "search matches nothing",
			dbParam:        db,
			params:         ListParams{Search: "helicopter"},
			expectedTitles: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM services")
				seedServices(t, tc.dbParam, seed)
			}

			services, err := List(tc.dbParam, tc.params)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, services)
			} else {
				require.NoError(t, err)

				titles := make([]string, 0, len(services))
				for _, svc := range services {
					titles = append(titles, svc.Title)
				}
				assert.Equal(t, tc.expectedTitles, titles)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name              string
		dbParam           *gorm.DB
		seedData          []models.Service
		params            CreateParams
		expectedError     error
		expectedSortOrder int
		expectedIcon      string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			params:        CreateParams{Title: "Test"},
			expectedError: ErrDBNil,
		},
		{
			name:              "first service gets sort order one",
			dbParam:           db,
			params:            CreateParams{Title: "Personal Driver"},
			expectedSortOrder: 1,
			expectedIcon:      "car",
		},
		{
			name:    "sort order defaults to max plus one",
			dbParam: db,
			seedData: []models.Service{
				{Title: "A", SortOrder: 4},
				{Title: "B", SortOrder: 7},
			},
			params:            CreateParams{Title: "C"},
			expectedSortOrder: 8,
			expectedIcon:      "car",
		},
		{
			name:    "explicit sort order is kept",
			dbParam: db,
			seedData: []models.Service{
				{Title: "A", SortOrder: 9},
			},
			params:            CreateParams{Title: "B", SortOrder: intPtr(2), Icon: "truck"},
			expectedSortOrder: 2,
			expectedIcon:      "truck",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM services")
			}
			if tc.seedData != nil {
				seedServices(t, tc.dbParam, tc.seedData)
			}

			svc, err := Create(tc.dbParam, tc.params)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, svc)
			} else {
				require.NoError(t, err)
				require.NotNil(t, svc)
				assert.NotZero(t, svc.ID)
				assert.Equal(t, tc.params.Title, svc.Title)
				assert.Equal(t, tc.expectedSortOrder, svc.SortOrder)
				assert.Equal(t, tc.expectedIcon, svc.Icon)
			}
		})
	}
}

func TestCreateActiveFlag(t *testing.T) {
	db := setupTestDB(t)

	// absent flag means active
	svc, err := Create(db, CreateParams{Title: "Visible"})
	require.NoError(t, err)
	assert.True(t, svc.IsActive)

	// an explicit false must survive both the insert and the re-read
	svc, err = Create(db, CreateParams{Title: "Hidden Service", IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, svc.IsActive)

	stored, err := Get(db, svc.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	svc, err = Create(db, CreateParams{Title: "Shown", IsActive: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, svc.IsActive)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		serviceID     uint64
		params        UpdateParams
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			serviceID:     1,
			expectedError: ErrDBNil,
		},
		{
			name:          "not found",
			dbParam:       db,
			serviceID:     999,
			params:        UpdateParams{Title: "X"},
			expectedError: ErrServiceNotFound,
		},
		{
			name:      "successful update keeps sort order when nil",
			dbParam:   db,
			serviceID: 1,
			params:    UpdateParams{Title: "Renamed", Description: "new text", IsActive: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM services")
				seedServices(t, tc.dbParam, []models.Service{
					{ID: 1, Title: "Original", Icon: "car", SortOrder: 5, IsActive: false},
				})
			}

			svc, err := Update(tc.dbParam, tc.serviceID, tc.params)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, svc)
			} else {
				require.NoError(t, err)
				require.NotNil(t, svc)
				assert.Equal(t, "Renamed", svc.Title)
				assert.Equal(t, 5, svc.SortOrder, "sort order must survive an update without one")
				assert.Equal(t, "car", svc.Icon, "icon must survive an update without one")
				assert.True(t, svc.IsActive)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	seedServices(t, db, []models.Service{{ID: 1, Title: "Doomed"}})

	err := Delete(db, 999)
	require.ErrorIs(t, err, ErrServiceNotFound)

	err = Delete(db, 1)
	require.NoError(t, err)

	_, err = Get(db, 1)
	require.ErrorIs(t, err, ErrServiceNotFound)

	err = Delete(nil, 1)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestToggleActive(t *testing.T) {
	db := setupTestDB(t)
	seedServices(t, db, []models.Service{{ID: 1, Title: "Switch", IsActive: false}})

	svc, err := ToggleActive(db, 1)
	require.NoError(t, err)
	assert.True(t, svc.IsActive)

	svc, err = ToggleActive(db, 1)
	require.NoError(t, err)
	assert.False(t, svc.IsActive)

	_, err = ToggleActive(db, 999)
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUpdateOrder(t *testing.T) {
	db := setupTestDB(t)
	seedServices(t, db, []models.Service{
		{ID: 1, Title: "A", SortOrder: 1},
		{ID: 2, Title: "B", SortOrder: 2},
	})

	// unknown ids are skipped without error
	err := UpdateOrder(db, []OrderAssignment{
		{ID: 1, SortOrder: 20},
		{ID: 999, SortOrder: 30},
		{ID: 2, SortOrder: 10},
	})
	require.NoError(t, err)

	services, err := List(db, ListParams{})
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "B", services[0].Title)
	assert.Equal(t, 10, services[0].SortOrder)
	assert.Equal(t, "A", services[1].Title)
	assert.Equal(t, 20, services[1].SortOrder)

	err = UpdateOrder(nil, nil)
	require.ErrorIs(t, err, ErrDBNil)
}
