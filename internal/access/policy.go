// Package access holds the role/action authorization table. Policy evaluation
// is stateless and side-effect-free; every mutating entry point consults it
// before touching the data model.
package access

import "coffee_pos_backend/internal/models"

// Action names a guarded operation.
type Action string

const (
	ActionCreateItem       Action = "create_item"
	ActionEditItem         Action = "edit_item"
	ActionViewItems        Action = "view_items"
	ActionCreateSale       Action = "create_sale"
	ActionEditSale         Action = "edit_sale"
	ActionDeleteSale       Action = "delete_sale"
	ActionViewSales        Action = "view_sales"
	ActionViewRatings      Action = "view_ratings"
	ActionCreateRating     Action = "create_rating"
	ActionRegisterStaff    Action = "register_staff"
	ActionManageStaff      Action = "manage_staff"
	ActionViewSalesSummary Action = "view_sales_summary"
)

// policy maps each action to the set of roles allowed to perform it.
// Staff registration is deliberately Manager-only.
var policy = map[Action][]models.Role{
	ActionCreateItem:       {models.RoleManager, models.RoleSuperuser},
	ActionEditItem:         {models.RoleManager, models.RoleSuperuser},
	ActionViewItems:        anyRole(),
	ActionCreateSale:       {models.RoleWaiter, models.RoleManager, models.RoleCashier, models.RoleSupervisor, models.RoleSuperuser},
	ActionEditSale:         {models.RoleCashier, models.RoleManager, models.RoleSupervisor, models.RoleWaiter, models.RoleSuperuser},
	ActionDeleteSale:       {models.RoleManager, models.RoleSupervisor, models.RoleSuperuser},
	ActionViewSales:        anyRole(),
	ActionViewRatings:      {models.RoleManager, models.RoleSuperuser},
	ActionCreateRating:     {models.RoleManager, models.RoleSuperuser},
	ActionRegisterStaff:    {models.RoleManager},
	ActionManageStaff:      {models.RoleManager, models.RoleSuperuser},
	ActionViewSalesSummary: {models.RoleManager, models.RoleSuperuser},
}

func anyRole() []models.Role {
	return append([]models.Role(nil), models.ValidRoles...)
}

// Allowed reports whether role may perform action.
func Allowed(role models.Role, action Action) bool {
	for _, allowed := range policy[action] {
		if role == allowed {
			return true
		}
	}
	return false
}

// CanViewSalesHistory reports whether the requester may read the sales history
// of the staff member identified by ownerID: the owner themselves, or a
// Manager or Superuser.
func CanViewSalesHistory(requesterID int64, requesterRole models.Role, ownerID int64) bool {
	if requesterID == ownerID {
		return true
	}
	return requesterRole == models.RoleManager || requesterRole == models.RoleSuperuser
}
