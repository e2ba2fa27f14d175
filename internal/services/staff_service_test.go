package services

import (
	"testing"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaffService(t *testing.T) (StaffService, AuthService) {
	t.Helper()
	db := newTestDB(t)
	staffRepo := repositories.NewStaffRepository(db)
	return NewStaffService(staffRepo, db), NewAuthService(staffRepo, db)
}

func TestUpdateStaffMember(t *testing.T) {
	staffSvc, authSvc := newStaffService(t)
	user := registerTestStaff(t, authSvc, "tomas", "correct-horse", "Waiter")

	updated, err := staffSvc.UpdateStaffMember(user.ID, UpdateStaffRequest{
		FirstName: "Tomas",
		LastName:  "Novak",
		Email:     "tomas.novak@coffeepos.test",
		Role:      "Supervisor",
		IsActive:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSupervisor, updated.Role)
	assert.Equal(t, "Tomas", updated.FirstName)
	assert.Equal(t, user.Username, updated.Username, "username is not editable")

	_, err = staffSvc.UpdateStaffMember(user.ID, UpdateStaffRequest{
		FirstName: "Tomas", LastName: "Novak",
		Email: "tomas.novak@coffeepos.test", Role: "Janitor", IsActive: true,
	})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = staffSvc.UpdateStaffMember(9999, UpdateStaffRequest{
		FirstName: "Ghost", LastName: "User",
		Email: "ghost@coffeepos.test", Role: "Waiter", IsActive: true,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetStaffMembers_Filters(t *testing.T) {
	staffSvc, authSvc := newStaffService(t)
	registerTestStaff(t, authSvc, "alina", "correct-horse", "Manager")
	registerTestStaff(t, authSvc, "dana", "correct-horse", "Cashier")
	waiter := registerTestStaff(t, authSvc, "tomas", "correct-horse", "Waiter")

	require.NoError(t, staffSvc.DeactivateStaffMember(waiter.ID))

	all, total, err := staffSvc.GetStaffMembers(models.StaffFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)

	role := "Manager"
	managers, total, err := staffSvc.GetStaffMembers(models.StaffFilters{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, managers, 1)
	assert.Equal(t, "alina", managers[0].Username)

	active := true
	activeOnly, total, err := staffSvc.GetStaffMembers(models.StaffFilters{IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, u := range activeOnly {
		assert.True(t, u.IsActive)
	}
}
