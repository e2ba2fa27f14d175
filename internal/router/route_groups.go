package router

import (
	"coffee_pos_backend/internal/access"
	"coffee_pos_backend/internal/handlers"
	"coffee_pos_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupItemRoutes sets up the catalog item routes. Reads are open to any
// authenticated staff member; writes are gated per action.
func SetupItemRoutes(authenticatedGroup *gin.RouterGroup, itemHandler *handlers.ItemHandler) {
	itemRoutes := authenticatedGroup.Group("/items")
	{
		itemRoutes.GET("", middleware.RequireAction(access.ActionViewItems), itemHandler.GetItems)
		itemRoutes.GET("/:id", middleware.RequireAction(access.ActionViewItems), itemHandler.GetItemByID)
		itemRoutes.POST("", middleware.RequireAction(access.ActionCreateItem), itemHandler.CreateItem)
		itemRoutes.PUT("/:id", middleware.RequireAction(access.ActionEditItem), itemHandler.UpdateItem)
		itemRoutes.DELETE("/:id", middleware.RequireAction(access.ActionEditItem), itemHandler.DeactivateItem)
	}
}

// SetupSaleRoutes sets up the sale routes. The per-staff history route carries
// no action guard; the handler itself checks ownership against the requester.
func SetupSaleRoutes(authenticatedGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := authenticatedGroup.Group("/sales")
	{
		saleRoutes.GET("", middleware.RequireAction(access.ActionViewSales), saleHandler.GetSales)
		saleRoutes.GET("/:id", middleware.RequireAction(access.ActionViewSales), saleHandler.GetSaleByID)
		saleRoutes.POST("", middleware.RequireAction(access.ActionCreateSale), saleHandler.CreateSale)
		saleRoutes.PUT("/:id/items", middleware.RequireAction(access.ActionEditSale), saleHandler.UpdateSaleLines)
		saleRoutes.DELETE("/:id/items/:lineID", middleware.RequireAction(access.ActionEditSale), saleHandler.DeleteSaleLine)
		saleRoutes.DELETE("/:id", middleware.RequireAction(access.ActionDeleteSale), saleHandler.DeleteSale)
		saleRoutes.GET("/history/:staffID", saleHandler.GetSalesHistory)
	}
}

// SetupRatingRoutes sets up the staff rating routes.
func SetupRatingRoutes(authenticatedGroup *gin.RouterGroup, ratingHandler *handlers.RatingHandler) {
	ratingRoutes := authenticatedGroup.Group("/ratings")
	{
		ratingRoutes.GET("", middleware.RequireAction(access.ActionViewRatings), ratingHandler.GetRatings)
		ratingRoutes.GET("/staff/:staffID", middleware.RequireAction(access.ActionViewRatings), ratingHandler.GetRatingsForStaff)
		ratingRoutes.POST("", middleware.RequireAction(access.ActionCreateRating), ratingHandler.CreateRating)
	}
}

// SetupStaffRoutes sets up the staff management routes.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := authenticatedGroup.Group("/staff")
	staffRoutes.Use(middleware.RequireAction(access.ActionManageStaff))
	{
		staffRoutes.GET("", staffHandler.GetStaffMembers)
		staffRoutes.GET("/:id", staffHandler.GetStaffMemberByID)
		staffRoutes.PUT("/:id", staffHandler.UpdateStaffMember)
		staffRoutes.DELETE("/:id", staffHandler.DeactivateStaffMember)
	}
}

// SetupReportRoutes sets up the reporting routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RequireAction(access.ActionViewSalesSummary))
	{
		reportRoutes.GET("/sales-summary", reportHandler.GetSalesSummary)
	}
}
