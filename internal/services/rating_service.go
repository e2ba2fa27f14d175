package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/repositories"
)

var ErrInvalidRatingScore = errors.New("rating score must be between 0 and 5")

// CreateRatingRequest is the payload for recording a staff rating.
type CreateRatingRequest struct {
	StaffID int64   `json:"staff_id" binding:"required"`
	Score   float64 `json:"rating_score"`
}

// --- RatingService Interface ---

// RatingService records and lists staff ratings. The log is append-only.
type RatingService interface {
	CreateRating(req CreateRatingRequest) (*models.Rating, error)
	GetRatings(filters models.RatingFilters) ([]models.Rating, int, error)
}

type ratingService struct {
	ratingRepo repositories.RatingRepository
	staffRepo  repositories.StaffRepository
	db         *sql.DB
}

// NewRatingService creates a new instance of RatingService.
func NewRatingService(rr repositories.RatingRepository, sr repositories.StaffRepository, db *sql.DB) RatingService {
	return &ratingService{ratingRepo: rr, staffRepo: sr, db: db}
}

func (s *ratingService) CreateRating(req CreateRatingRequest) (*models.Rating, error) {
	if req.Score < 0 || req.Score > 5 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidRatingScore, req.Score)
	}

	if _, err := s.staffRepo.GetUserByID(nil, req.StaffID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up rated staff member: %w", err)
	}

	rating := &models.Rating{
		StaffID: req.StaffID,
		Score:   req.Score,
		Date:    time.Now().Format("2006-01-02"),
	}
	if _, err := s.ratingRepo.CreateRating(s.db, rating); err != nil {
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}
	return rating, nil
}

func (s *ratingService) GetRatings(filters models.RatingFilters) ([]models.Rating, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 20
	}
	ratings, totalCount, err := s.ratingRepo.GetRatings(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get ratings: %w", err)
	}
	return ratings, totalCount, nil
}
