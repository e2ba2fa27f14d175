package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"coffee_pos_backend/internal/models"
)

// RatingRepository defines the interface for staff rating database operations.
// Ratings are append-only: there are no update or delete methods.
type RatingRepository interface {
	CreateRating(executor SQLExecutor, rating *models.Rating) (int64, error)
	GetRatings(filters models.RatingFilters) ([]models.Rating, int, error)
}

type ratingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new instance of RatingRepository.
func NewRatingRepository(db *sql.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) CreateRating(executor SQLExecutor, rating *models.Rating) (int64, error) {
	query := `INSERT INTO ratings (staff_id, rating_score, rating_date)
	          VALUES ($1, $2, $3)
	          RETURNING rating_id`
	err := executor.QueryRow(query, rating.StaffID, rating.Score, rating.Date).Scan(&rating.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating rating for staff %d: %v", ErrDatabaseError, rating.StaffID, err)
	}
	return rating.ID, nil
}

func (r *ratingRepository) GetRatings(filters models.RatingFilters) ([]models.Rating, int, error) {
	ratings := []models.Rating{}
	totalCount := 0

	query := `SELECT rt.rating_id, rt.staff_id, rt.rating_score, CAST(rt.rating_date AS TEXT), u.username,
	                 COUNT(*) OVER() AS total_count
	          FROM ratings rt
	          JOIN users u ON u.user_id = rt.staff_id`
	args := []interface{}{}
	conditions := []string{}
	argPos := 1
	if filters.StaffID != nil {
		conditions = append(conditions, fmt.Sprintf("rt.staff_id = $%d", argPos))
		args = append(args, *filters.StaffID)
		argPos++
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY rt.rating_id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: getting ratings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rating models.Rating
		var staffName string
		if err := rows.Scan(&rating.ID, &rating.StaffID, &rating.Score, &rating.Date, &staffName, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("%w: scanning rating: %v", ErrDatabaseError, err)
		}
		rating.StaffName = &staffName
		ratings = append(ratings, rating)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating ratings: %v", ErrDatabaseError, err)
	}
	return ratings, totalCount, nil
}
