package services

import (
	"testing"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRating(t *testing.T) {
	db := newTestDB(t)
	staffRepo := repositories.NewStaffRepository(db)
	svc := NewRatingService(repositories.NewRatingRepository(db), staffRepo, db)
	staffID := createTestStaff(t, db, "dana", models.RoleCashier)

	rating, err := svc.CreateRating(CreateRatingRequest{StaffID: staffID, Score: 4.5})
	require.NoError(t, err)
	assert.NotZero(t, rating.ID)
	assert.Equal(t, 4.5, rating.Score)
	assert.NotEmpty(t, rating.Date)

	_, err = svc.CreateRating(CreateRatingRequest{StaffID: staffID, Score: 5.5})
	assert.ErrorIs(t, err, ErrInvalidRatingScore)

	_, err = svc.CreateRating(CreateRatingRequest{StaffID: staffID, Score: -1})
	assert.ErrorIs(t, err, ErrInvalidRatingScore)

	_, err = svc.CreateRating(CreateRatingRequest{StaffID: 9999, Score: 3})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetRatings_FilterByStaff(t *testing.T) {
	db := newTestDB(t)
	staffRepo := repositories.NewStaffRepository(db)
	svc := NewRatingService(repositories.NewRatingRepository(db), staffRepo, db)
	first := createTestStaff(t, db, "dana", models.RoleCashier)
	second := createTestStaff(t, db, "tomas", models.RoleWaiter)

	for _, score := range []float64{4.0, 4.5} {
		_, err := svc.CreateRating(CreateRatingRequest{StaffID: first, Score: score})
		require.NoError(t, err)
	}
	_, err := svc.CreateRating(CreateRatingRequest{StaffID: second, Score: 3.5})
	require.NoError(t, err)

	all, total, err := svc.GetRatings(models.RatingFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)

	ratings, total, err := svc.GetRatings(models.RatingFilters{StaffID: &first})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, ratings, 2)
	for _, r := range ratings {
		assert.Equal(t, first, r.StaffID)
		require.NotNil(t, r.StaffName)
		assert.Equal(t, "dana", *r.StaffName)
	}
}
