package access

import (
	"testing"

	"coffee_pos_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name   string
		role   models.Role
		action Action
		want   bool
	}{
		{"waiter can create a sale", models.RoleWaiter, ActionCreateSale, true},
		{"waiter can edit sale lines", models.RoleWaiter, ActionEditSale, true},
		{"waiter cannot delete a sale", models.RoleWaiter, ActionDeleteSale, false},
		{"cashier cannot delete a sale", models.RoleCashier, ActionDeleteSale, false},
		{"supervisor can delete a sale", models.RoleSupervisor, ActionDeleteSale, true},
		{"manager can delete a sale", models.RoleManager, ActionDeleteSale, true},
		{"superuser can delete a sale", models.RoleSuperuser, ActionDeleteSale, true},

		{"waiter cannot create items", models.RoleWaiter, ActionCreateItem, false},
		{"cashier cannot edit items", models.RoleCashier, ActionEditItem, false},
		{"manager can create items", models.RoleManager, ActionCreateItem, true},
		{"superuser can edit items", models.RoleSuperuser, ActionEditItem, true},
		{"everyone can view items", models.RoleWaiter, ActionViewItems, true},
		{"everyone can view sales", models.RoleCashier, ActionViewSales, true},

		{"only managers register staff", models.RoleManager, ActionRegisterStaff, true},
		{"superuser does not register staff", models.RoleSuperuser, ActionRegisterStaff, false},
		{"supervisor does not register staff", models.RoleSupervisor, ActionRegisterStaff, false},

		{"waiter cannot view ratings", models.RoleWaiter, ActionViewRatings, false},
		{"manager can create ratings", models.RoleManager, ActionCreateRating, true},
		{"supervisor cannot see the summary", models.RoleSupervisor, ActionViewSalesSummary, false},
		{"manager can see the summary", models.RoleManager, ActionViewSalesSummary, true},

		{"unknown role gets nothing", models.Role("Janitor"), ActionViewItems, false},
		{"unknown action allows nobody", models.RoleSuperuser, Action("reboot"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.action))
		})
	}
}

func TestCanViewSalesHistory(t *testing.T) {
	assert.True(t, CanViewSalesHistory(7, models.RoleWaiter, 7), "owner reads their own history")
	assert.False(t, CanViewSalesHistory(7, models.RoleWaiter, 8), "waiter cannot read a colleague's history")
	assert.False(t, CanViewSalesHistory(7, models.RoleCashier, 8))
	assert.False(t, CanViewSalesHistory(7, models.RoleSupervisor, 8))
	assert.True(t, CanViewSalesHistory(7, models.RoleManager, 8))
	assert.True(t, CanViewSalesHistory(7, models.RoleSuperuser, 8))
}
