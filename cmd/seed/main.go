// Command seed populates a development database with a coffee shop catalog,
// a handful of staff accounts, and some sample sales and ratings. Running it
// twice is safe: duplicate users and items are skipped.
package main

import (
	"errors"
	"log"

	"coffee_pos_backend/internal/database"
	"coffee_pos_backend/internal/repositories"
	"coffee_pos_backend/internal/services"
	"coffee_pos_backend/pkg/utils"

	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"
)

type seedUser struct {
	firstName string
	lastName  string
	email     string
	username  string
	password  string
	role      string
}

var seedUsers = []seedUser{
	{"Alina", "Petrova", "alina.petrova@coffeepos.local", "alina", "changeme-alina", "Manager"},
	{"Marco", "Ruiz", "marco.ruiz@coffeepos.local", "marco", "changeme-marco", "Supervisor"},
	{"Dana", "Kim", "dana.kim@coffeepos.local", "dana", "changeme-dana", "Cashier"},
	{"Tomas", "Novak", "tomas.novak@coffeepos.local", "tomas", "changeme-tomas", "Waiter"},
	{"Leyla", "Aliyeva", "leyla.aliyeva@coffeepos.local", "leyla", "changeme-leyla", "Waiter"},
}

type seedItem struct {
	name     string
	price    string
	quantity int
}

var seedItems = []seedItem{
	{"Espresso", "3.00", 100},
	{"Latte", "4.50", 100},
	{"Cappuccino", "4.25", 100},
	{"Mocha", "4.75", 80},
	{"Americano", "3.50", 100},
	{"Flat White", "4.25", 80},
	{"Macchiato", "3.75", 60},
	{"Chai Latte", "4.50", 60},
	{"Iced Coffee", "4.00", 90},
	{"Matcha Latte", "5.00", 50},
	{"Fruit Smoothie", "5.50", 40},
	{"Iced Tea", "3.25", 90},
	{"Croissant", "3.50", 40},
	{"Chocolate Muffin", "3.75", 40},
	{"Blueberry Muffin", "3.75", 40},
	{"Banana Bread", "3.50", 30},
	{"Cinnamon Roll", "4.00", 30},
	{"Bagel with Cream Cheese", "4.25", 30},
	{"Ham & Cheese Sandwich", "6.50", 25},
	{"Chicken Avocado Sandwich", "7.50", 25},
	{"Turkey Club Sandwich", "7.25", 25},
	{"Veggie Wrap", "6.75", 25},
	{"Caesar Salad", "8.00", 20},
	{"Greek Salad", "8.25", 20},
	{"Cheesecake", "5.50", 20},
	{"Chocolate Brownie", "4.50", 30},
	{"Apple Pie", "5.00", 20},
}

func main() {
	utils.InitLogger()

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "coffee_pos_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "coffee_pos_password")
	dbName := utils.Getenv("DB_NAME", "coffee_pos_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "db_schema.sql")

	db, err := database.Open(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	staffRepo := repositories.NewStaffRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)

	authService := services.NewAuthService(staffRepo, db)
	itemService := services.NewItemService(itemRepo, db)
	saleService := services.NewSaleService(saleRepo, itemRepo, db)
	ratingService := services.NewRatingService(ratingRepo, staffRepo, db)

	staffIDs := seedStaff(authService)
	itemIDs := seedCatalog(itemService)
	seedSales(saleService, staffIDs, itemIDs)
	seedRatings(ratingService, staffIDs)

	utils.LogInfo("Seeding complete", map[string]interface{}{
		"staff": len(staffIDs), "items": len(itemIDs),
	})
}

func seedStaff(authService services.AuthService) []int64 {
	ids := make([]int64, 0, len(seedUsers))
	for _, u := range seedUsers {
		user, err := authService.RegisterStaff(services.RegisterStaffRequest{
			FirstName: u.firstName,
			LastName:  u.lastName,
			Email:     u.email,
			Username:  u.username,
			Password:  u.password,
			Role:      u.role,
		})
		if err != nil {
			if errors.Is(err, services.ErrUsernameExists) || errors.Is(err, services.ErrEmailExists) {
				continue
			}
			log.Fatalf("Failed to seed staff %q: %v", u.username, err)
		}
		ids = append(ids, user.ID)
	}
	return ids
}

func seedCatalog(itemService services.ItemService) []int64 {
	ids := make([]int64, 0, len(seedItems))
	for _, it := range seedItems {
		price, err := decimal.NewFromString(it.price)
		if err != nil {
			log.Fatalf("Bad seed price %q for %q: %v", it.price, it.name, err)
		}
		item, err := itemService.CreateItem(services.CreateItemRequest{
			Name:     it.name,
			Price:    price,
			Quantity: it.quantity,
		})
		if err != nil {
			if errors.Is(err, services.ErrItemNameExists) {
				continue
			}
			log.Fatalf("Failed to seed item %q: %v", it.name, err)
		}
		ids = append(ids, item.ID)
	}
	return ids
}

// seedSales writes a few sales through the reconciler so totals and stock
// levels come out consistent with production behavior.
func seedSales(saleService services.SaleService, staffIDs, itemIDs []int64) {
	if len(staffIDs) == 0 || len(itemIDs) < 4 {
		return
	}
	carts := [][]services.SaleLineRequest{
		{{ItemID: itemIDs[0], Quantity: 2}, {ItemID: itemIDs[1], Quantity: 1}},
		{{ItemID: itemIDs[2], Quantity: 1}, {ItemID: itemIDs[3], Quantity: 2}},
		{{ItemID: itemIDs[1], Quantity: 3}},
	}
	for i, cart := range carts {
		staffID := staffIDs[i%len(staffIDs)]
		if _, err := saleService.CreateSale(staffID, services.CreateSaleRequest{SaleItems: cart}); err != nil {
			log.Fatalf("Failed to seed sale for staff %d: %v", staffID, err)
		}
	}
}

func seedRatings(ratingService services.RatingService, staffIDs []int64) {
	scores := []float64{4.5, 3.8, 5.0, 4.2, 4.9}
	for i, staffID := range staffIDs {
		score := scores[i%len(scores)]
		if _, err := ratingService.CreateRating(services.CreateRatingRequest{StaffID: staffID, Score: score}); err != nil {
			log.Fatalf("Failed to seed rating for staff %d: %v", staffID, err)
		}
	}
}
