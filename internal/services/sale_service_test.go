package services

import (
	"database/sql"
	"testing"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleTestEnv struct {
	db       *sql.DB
	itemRepo repositories.ItemRepository
	items    ItemService
	sales    SaleService
	staffID  int64
}

func newSaleTestEnv(t *testing.T) *saleTestEnv {
	t.Helper()
	db := newTestDB(t)
	itemRepo := repositories.NewItemRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	return &saleTestEnv{
		db:       db,
		itemRepo: itemRepo,
		items:    NewItemService(itemRepo, db),
		sales:    NewSaleService(saleRepo, itemRepo, db),
		staffID:  createTestStaff(t, db, "barista", models.RoleWaiter),
	}
}

func (e *saleTestEnv) stockOf(t *testing.T, itemID int64) int {
	t.Helper()
	item, err := e.itemRepo.GetItemByID(nil, itemID)
	require.NoError(t, err)
	return item.Quantity
}

func TestCreateSale_ReservesStockAndComputesTotal(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)

	sale, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	assert.True(t, dec("12.00").Equal(sale.TotalAmount), "total = %s", sale.TotalAmount)
	require.Len(t, sale.SaleItems, 1)
	assert.Equal(t, 4, sale.SaleItems[0].Quantity)
	assert.True(t, dec("12.00").Equal(sale.SaleItems[0].Subtotal))
	assert.Equal(t, 6, env.stockOf(t, espresso.ID))
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)

	_, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 11}},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, espresso.ID, stockErr.ItemID)
	assert.Equal(t, "Espresso", stockErr.ItemName)
	assert.Equal(t, 10, stockErr.Available)
	assert.Equal(t, 11, stockErr.Requested)

	assert.Equal(t, 10, env.stockOf(t, espresso.ID), "failed sale must not touch stock")

	sales, total, err := env.sales.GetSales(models.SaleFilters{})
	require.NoError(t, err)
	assert.Empty(t, sales)
	assert.Zero(t, total)
}

func TestCreateSale_BatchFailureRollsBackEarlierLines(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)
	latte := createTestItem(t, env.items, "Latte", "4.50", 2)

	_, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{
			{ItemID: espresso.ID, Quantity: 4}, // would succeed alone
			{ItemID: latte.ID, Quantity: 3},    // more than available
		},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, latte.ID, stockErr.ItemID)

	assert.Equal(t, 10, env.stockOf(t, espresso.ID), "earlier reservation must roll back")
	assert.Equal(t, 2, env.stockOf(t, latte.ID))
}

func TestCreateSale_RejectsBadRequests(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)

	_, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{
			{ItemID: espresso.ID, Quantity: 1},
			{ItemID: espresso.ID, Quantity: 2},
		},
	})
	assert.ErrorIs(t, err, ErrValidation, "duplicate items in one request")

	var qtyErr *InvalidQuantityError
	_, err = env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 0}},
	})
	assert.ErrorAs(t, err, &qtyErr)

	_, err = env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleDate:  "31-12-2025",
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrValidation, "sale_date must be YYYY-MM-DD")

	var notFound *ItemNotFoundError
	_, err = env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{{ItemID: 9999, Quantity: 1}},
	})
	assert.ErrorAs(t, err, &notFound)

	assert.Equal(t, 10, env.stockOf(t, espresso.ID))
}

func TestUpdateSaleLines_DecreaseReleasesStock(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)

	sale, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, 6, env.stockOf(t, espresso.ID))

	updated, err := env.sales.UpdateSaleLines(sale.ID, UpdateSaleLinesRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, env.stockOf(t, espresso.ID))
	assert.True(t, dec("6.00").Equal(updated.TotalAmount), "total = %s", updated.TotalAmount)
	require.Len(t, updated.SaleItems, 1)
	assert.Equal(t, 2, updated.SaleItems[0].Quantity)
}

func TestUpdateSaleLines_IncreaseReservesOnlyDelta(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)

	sale, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	// 6 on hand, going 4 -> 9 needs only the delta of 5.
	updated, err := env.sales.UpdateSaleLines(sale.ID, UpdateSaleLinesRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 9}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, env.stockOf(t, espresso.ID))
	assert.True(t, dec("27.00").Equal(updated.TotalAmount))
}

func TestUpdateSaleLines_ZeroQuantityRemovesLine(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)
	latte := createTestItem(t, env.items, "Latte", "4.50", 8)

	sale, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{
			{ItemID: espresso.ID, Quantity: 2},
			{ItemID: latte.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	updated, err := env.sales.UpdateSaleLines(sale.ID, UpdateSaleLinesRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 0}},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, env.stockOf(t, espresso.ID))
	require.Len(t, updated.SaleItems, 1)
	assert.Equal(t, latte.ID, updated.SaleItems[0].ItemID)
	assert.True(t, dec("4.50").Equal(updated.TotalAmount))

	// Removing an already-removed line is a no-op, so the same update can be
	// retried safely.
	again, err := env.sales.UpdateSaleLines(sale.ID, UpdateSaleLinesRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, env.stockOf(t, espresso.ID))
	assert.True(t, dec("4.50").Equal(again.TotalAmount))
}

func TestUpdateSaleLines_RepeatedUpdateIsIdempotent(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)

	sale, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	req := UpdateSaleLinesRequest{SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 3}}}
	for i := 0; i < 3; i++ {
		updated, err := env.sales.UpdateSaleLines(sale.ID, req)
		require.NoError(t, err)
		assert.Equal(t, 7, env.stockOf(t, espresso.ID), "iteration %d", i)
		assert.True(t, dec("9.00").Equal(updated.TotalAmount), "iteration %d", i)
	}
}

func TestUpdateSaleLines_InsufficientStockRollsBackWholeBatch(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)
	latte := createTestItem(t, env.items, "Latte", "4.50", 2)

	sale, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	_, err = env.sales.UpdateSaleLines(sale.ID, UpdateSaleLinesRequest{
		SaleItems: []SaleLineRequest{
			{ItemID: espresso.ID, Quantity: 1}, // release that must be undone
			{ItemID: latte.ID, Quantity: 5},    // fails
		},
	})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	assert.Equal(t, 6, env.stockOf(t, espresso.ID), "released stock must be re-reserved by rollback")
	assert.Equal(t, 2, env.stockOf(t, latte.ID))

	unchanged, err := env.sales.GetSaleByID(sale.ID)
	require.NoError(t, err)
	assert.True(t, dec("12.00").Equal(unchanged.TotalAmount))
	require.Len(t, unchanged.SaleItems, 1)
	assert.Equal(t, 4, unchanged.SaleItems[0].Quantity)
}

func TestUpdateSaleLines_PriceChangeOnlyAffectsTouchedLines(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)
	latte := createTestItem(t, env.items, "Latte", "4.50", 8)

	sale, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{
			{ItemID: espresso.ID, Quantity: 2},
			{ItemID: latte.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	// Reprice the latte after the sale was recorded.
	_, err = env.items.UpdateItem(latte.ID, UpdateItemRequest{
		Name: "Latte", Price: dec("5.00"), Quantity: 6, IsActive: true,
	})
	require.NoError(t, err)

	// Touching only the espresso line must leave the latte's stored subtotal
	// at the price it sold for.
	updated, err := env.sales.UpdateSaleLines(sale.ID, UpdateSaleLinesRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	subtotals := map[int64]decimal.Decimal{}
	for _, line := range updated.SaleItems {
		subtotals[line.ItemID] = line.Subtotal
	}
	assert.True(t, dec("9.00").Equal(subtotals[espresso.ID]))
	assert.True(t, dec("9.00").Equal(subtotals[latte.ID]), "untouched line keeps its original 2 x 4.50")
	assert.True(t, dec("18.00").Equal(updated.TotalAmount))

	// Touching the latte line restamps it at the current price.
	updated, err = env.sales.UpdateSaleLines(sale.ID, UpdateSaleLinesRequest{
		SaleItems: []SaleLineRequest{{ItemID: latte.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	for _, line := range updated.SaleItems {
		if line.ItemID == latte.ID {
			assert.True(t, dec("10.00").Equal(line.Subtotal))
		}
	}
	assert.True(t, dec("19.00").Equal(updated.TotalAmount))
}

func TestUpdateSaleLines_UnknownSale(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)

	var notFound *SaleNotFoundError
	_, err := env.sales.UpdateSaleLines(42, UpdateSaleLinesRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 1}},
	})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(42), notFound.SaleID)
}

func TestDeleteSale_ReleasesAllLines(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)
	latte := createTestItem(t, env.items, "Latte", "4.50", 8)

	sale, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{
			{ItemID: espresso.ID, Quantity: 4},
			{ItemID: latte.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.sales.DeleteSale(sale.ID))

	assert.Equal(t, 10, env.stockOf(t, espresso.ID))
	assert.Equal(t, 8, env.stockOf(t, latte.ID))

	var notFound *SaleNotFoundError
	_, err = env.sales.GetSaleByID(sale.ID)
	assert.ErrorAs(t, err, &notFound)
}

func TestDeleteSaleLine_ReleasesAndRecomputes(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 10)
	latte := createTestItem(t, env.items, "Latte", "4.50", 8)

	sale, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleItems: []SaleLineRequest{
			{ItemID: espresso.ID, Quantity: 4},
			{ItemID: latte.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	var espressoLineID int64
	for _, line := range sale.SaleItems {
		if line.ItemID == espresso.ID {
			espressoLineID = line.ID
		}
	}
	require.NotZero(t, espressoLineID)

	require.NoError(t, env.sales.DeleteSaleLine(sale.ID, espressoLineID))

	assert.Equal(t, 10, env.stockOf(t, espresso.ID))
	after, err := env.sales.GetSaleByID(sale.ID)
	require.NoError(t, err)
	require.Len(t, after.SaleItems, 1)
	assert.True(t, dec("9.00").Equal(after.TotalAmount))

	var lineNotFound *SaleLineNotFoundError
	err = env.sales.DeleteSaleLine(sale.ID, espressoLineID)
	assert.ErrorAs(t, err, &lineNotFound)
}

func TestGetSalesHistory(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 100)
	otherStaff := createTestStaff(t, env.db, "cashier", models.RoleCashier)

	for i := 0; i < 3; i++ {
		_, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
			SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}
	_, err := env.sales.CreateSale(otherStaff, CreateSaleRequest{
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	history, err := env.sales.GetSalesHistory(env.staffID)
	require.NoError(t, err)
	assert.Equal(t, env.staffID, history.StaffID)
	assert.Equal(t, 3, history.SalesCount)
	require.Len(t, history.Sales, 3)
	for _, sale := range history.Sales {
		assert.Equal(t, env.staffID, sale.StaffID)
	}
}

func TestGetSalesSummary(t *testing.T) {
	env := newSaleTestEnv(t)
	espresso := createTestItem(t, env.items, "Espresso", "3.00", 100)

	_, err := env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleDate:  "2026-08-30",
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleDate:  "2026-08-30",
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = env.sales.CreateSale(env.staffID, CreateSaleRequest{
		SaleDate:  "2026-08-31",
		SaleItems: []SaleLineRequest{{ItemID: espresso.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	summary, err := env.sales.GetSalesSummary()
	require.NoError(t, err)
	require.Len(t, summary, 2)

	assert.Equal(t, "2026-08-31", summary[0].SaleDate)
	assert.Equal(t, 1, summary[0].SalesCount)
	assert.True(t, dec("12.00").Equal(summary[0].Revenue))

	assert.Equal(t, "2026-08-30", summary[1].SaleDate)
	assert.Equal(t, 2, summary[1].SalesCount)
	assert.True(t, dec("9.00").Equal(summary[1].Revenue))
}
