package repositories

import (
	"context"
	"fmt"
	"time"

	"campground_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// ReviewRepository defines the interface for campsite review operations.
type ReviewRepository interface {
	CreateReview(ctx context.Context, executor SQLExecutor, review *models.Review) (int64, error)
	GetReviewsForCampsites(ctx context.Context, campsiteIDs []int64) ([]models.Review, error)
}

type reviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateReview(ctx context.Context, executor SQLExecutor, review *models.Review) (int64, error) {
	query := executor.Rebind(`INSERT INTO reviews (camper_id, campsite_id, rating, comment, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?)
	          RETURNING id`)
	now := time.Now().UTC()
	review.CreatedAt, review.UpdatedAt = now, now
	err := executor.GetContext(ctx, &review.ID, query,
		review.CamperID, review.CampsiteID, review.Rating, review.Comment, review.CreatedAt, review.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating review: %v", ErrDatabaseError, err)
	}
	return review.ID, nil
}

// GetReviewsForCampsites returns reviews newest first with the author's username.
func (r *reviewRepository) GetReviewsForCampsites(ctx context.Context, campsiteIDs []int64) ([]models.Review, error) {
	reviews := []models.Review{}
	if len(campsiteIDs) == 0 {
		return reviews, nil
	}
	query, args, err := sqlx.In(`SELECT rv.id, rv.camper_id, rv.campsite_id, u.username, rv.rating, rv.comment, rv.created_at, rv.updated_at
	          FROM reviews rv
	          JOIN campers c ON c.id = rv.camper_id
	          JOIN users u ON u.id = c.user_id
	          WHERE rv.campsite_id IN (?)
	          ORDER BY rv.created_at DESC, rv.id DESC`, campsiteIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: building review query: %v", ErrDatabaseError, err)
	}
	if err := r.db.SelectContext(ctx, &reviews, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: listing reviews: %v", ErrDatabaseError, err)
	}
	return reviews, nil
}
