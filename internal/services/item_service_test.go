package services

import (
	"database/sql"
	"testing"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItemService(t *testing.T) (ItemService, repositories.ItemRepository, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	repo := repositories.NewItemRepository(db)
	return NewItemService(repo, db), repo, db
}

func TestCreateItem(t *testing.T) {
	svc, _, _ := newItemService(t)

	item := createTestItem(t, svc, "Flat White", "4.25", 30)
	assert.NotZero(t, item.ID)
	assert.True(t, item.IsActive)

	fetched, err := svc.GetItemByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flat White", fetched.Name)
	assert.True(t, dec("4.25").Equal(fetched.Price))
	assert.Equal(t, 30, fetched.Quantity)
}

func TestCreateItem_Validation(t *testing.T) {
	svc, _, _ := newItemService(t)

	_, err := svc.CreateItem(CreateItemRequest{Name: "Broken", Price: dec("-1.00"), Quantity: 5})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = svc.CreateItem(CreateItemRequest{Name: "Broken", Price: dec("1.00"), Quantity: -5})
	assert.ErrorIs(t, err, ErrNegativeStock)
}

func TestUpdateItem(t *testing.T) {
	svc, _, _ := newItemService(t)
	item := createTestItem(t, svc, "Mocha", "4.75", 20)

	updated, err := svc.UpdateItem(item.ID, UpdateItemRequest{
		Name: "Mocha", Price: dec("5.25"), Quantity: 25, IsActive: true,
	})
	require.NoError(t, err)
	assert.True(t, dec("5.25").Equal(updated.Price))
	assert.Equal(t, 25, updated.Quantity)

	var notFound *ItemNotFoundError
	_, err = svc.UpdateItem(999, UpdateItemRequest{Name: "Ghost", Price: dec("1.00")})
	assert.ErrorAs(t, err, &notFound)
}

func TestDeactivateItem_HidesFromDefaultListing(t *testing.T) {
	svc, _, _ := newItemService(t)
	keep := createTestItem(t, svc, "Americano", "3.50", 40)
	gone := createTestItem(t, svc, "Iced Tea", "3.25", 40)

	require.NoError(t, svc.DeactivateItem(gone.ID))

	items, total, err := svc.GetItems(models.ItemFilters{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)

	// Deactivated items stay readable by ID so historical sale lines resolve.
	fetched, err := svc.GetItemByID(gone.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsActive)

	items, total, err = svc.GetItems(models.ItemFilters{IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)
}

func TestTryDecrementStock_Boundaries(t *testing.T) {
	svc, repo, db := newItemService(t)
	item := createTestItem(t, svc, "Espresso", "3.00", 3)

	applied, err := repo.TryDecrementStock(db, item.ID, 4)
	require.NoError(t, err)
	assert.False(t, applied, "cannot take more than on hand")

	applied, err = repo.TryDecrementStock(db, item.ID, 3)
	require.NoError(t, err)
	assert.True(t, applied, "taking exactly the on-hand amount succeeds")

	applied, err = repo.TryDecrementStock(db, item.ID, 1)
	require.NoError(t, err)
	assert.False(t, applied, "stock is exhausted")

	current, err := repo.GetItemByID(nil, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Quantity)
}

func TestAdjustStock_GuardsAgainstNegative(t *testing.T) {
	svc, repo, db := newItemService(t)
	item := createTestItem(t, svc, "Espresso", "3.00", 5)

	newQty, err := repo.AdjustStock(db, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, newQty)

	_, err = repo.AdjustStock(db, item.ID, -9)
	assert.ErrorIs(t, err, repositories.ErrNotFound, "guarded update must not go below zero")

	current, err := repo.GetItemByID(nil, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, current.Quantity)
}
