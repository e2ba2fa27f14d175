package models

// Rating is an append-only score recorded against a staff member.
// There is no update or delete path.
type Rating struct {
	ID        int64   `json:"rating_id" db:"rating_id"`
	StaffID   int64   `json:"staff_id" db:"staff_id"`
	Score     float64 `json:"rating_score" db:"rating_score"`
	Date      string  `json:"rating_date" db:"rating_date"` // YYYY-MM-DD
	StaffName *string `json:"staff_name,omitempty"`
}

// RatingFilters defines the available filters for listing ratings.
type RatingFilters struct {
	StaffID  *int64 `form:"staff_id"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
