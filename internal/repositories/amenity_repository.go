package repositories

import (
	"context"
	"fmt"

	"campground_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// AmenityRepository defines the interface for the amenity catalogue.
type AmenityRepository interface {
	CreateAmenity(ctx context.Context, executor SQLExecutor, amenity *models.Amenity) (int64, error)
	GetAmenities(ctx context.Context) ([]models.Amenity, error)
	GetAmenitiesByIDs(ctx context.Context, ids []int64) ([]models.Amenity, error)
}

type amenityRepository struct {
	db *sqlx.DB
}

// NewAmenityRepository creates a new instance of AmenityRepository.
func NewAmenityRepository(db *sqlx.DB) AmenityRepository {
	return &amenityRepository{db: db}
}

func (r *amenityRepository) CreateAmenity(ctx context.Context, executor SQLExecutor, amenity *models.Amenity) (int64, error) {
	query := executor.Rebind(`INSERT INTO amenities (name) VALUES (?) RETURNING id`)
	if err := executor.GetContext(ctx, &amenity.ID, query, amenity.Name); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: amenity '%s' already exists", ErrDuplicateKey, amenity.Name)
		}
		return 0, fmt.Errorf("%w: creating amenity: %v", ErrDatabaseError, err)
	}
	return amenity.ID, nil
}

func (r *amenityRepository) GetAmenities(ctx context.Context) ([]models.Amenity, error) {
	amenities := []models.Amenity{}
	if err := r.db.SelectContext(ctx, &amenities, `SELECT id, name FROM amenities ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%w: listing amenities: %v", ErrDatabaseError, err)
	}
	return amenities, nil
}

// GetAmenitiesByIDs returns the amenities that exist among ids. Missing IDs
// are silently absent from the result.
func (r *amenityRepository) GetAmenitiesByIDs(ctx context.Context, ids []int64) ([]models.Amenity, error) {
	amenities := []models.Amenity{}
	if len(ids) == 0 {
		return amenities, nil
	}
	query, args, err := sqlx.In(`SELECT id, name FROM amenities WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: building amenity query: %v", ErrDatabaseError, err)
	}
	if err := r.db.SelectContext(ctx, &amenities, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: finding amenities: %v", ErrDatabaseError, err)
	}
	return amenities, nil
}
